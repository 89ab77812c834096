package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points all lookups at a fresh directory so the developer's own settings do not leak in
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{"IMGCURATOR_CONFIG", "IMGCURATOR_DEBUG", "IMGCURATOR_LOG_DIR", "IMGCURATOR_LOG_JSON", "IMGCURATOR_PLAIN", "IMGCURATOR_NEW_SUFFIX"} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	assert.Equal(t, Config{}, Load())
}

func TestLoadFileWithOverrides(t *testing.T) {
	dir := isolate(t)
	configFile := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("debug: true\nlog_dir: /var/log/imgcurator\nplain: true\nnew_suffix: _renumbered\n"), 0o644))
	t.Setenv("IMGCURATOR_CONFIG", configFile)
	t.Setenv("IMGCURATOR_PLAIN", "false")
	t.Setenv("IMGCURATOR_LOG_JSON", "1")

	assert.Equal(t, Config{
		Debug:     true,
		LogDir:    "/var/log/imgcurator",
		LogJSON:   true,
		Plain:     false,
		NewSuffix: "_renumbered",
	}, Load())
}

func TestLoadFromUserConfigDir(t *testing.T) {
	isolate(t)
	if _, err := os.UserConfigDir(); err != nil {
		t.Skip("no user config directory on this platform")
	}
	location := Path()
	require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
	require.NoError(t, os.WriteFile(location, []byte("new_suffix: .v2\n"), 0o644))
	t.Setenv("IMGCURATOR_NEW_SUFFIX", "")

	assert.Equal(t, ".v2", Load().NewSuffix)
}

func TestLoadIgnoresBrokenInput(t *testing.T) {
	dir := isolate(t)
	configFile := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("debug: [unterminated\n"), 0o644))
	t.Setenv("IMGCURATOR_CONFIG", configFile)
	t.Setenv("IMGCURATOR_DEBUG", "maybe")

	assert.Equal(t, Config{}, Load())
}
