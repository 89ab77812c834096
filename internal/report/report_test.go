package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/n2code/imgcurator/internal/cleanup"
	"github.com/n2code/imgcurator/internal/rename"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fixedClock(t *testing.T) {
	previous := Now
	Now = func() time.Time { return time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC) }
	t.Cleanup(func() { Now = previous })
}

func TestSaveCleanup(t *testing.T) {
	fixedClock(t)
	result := cleanup.DeleteReport{
		Count:    1,
		Deleted:  []string{"/docs/img/c.gif"},
		Failures: []cleanup.Failure{{Path: "/docs/img/d.png", Err: errors.New("permission denied")}},
	}
	path := filepath.Join(t.TempDir(), "reports", "clean.yaml")
	require.NoError(t, Save(path, FromDelete("/docs/doc.md", "/docs/img", result)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `context:
    document: /docs/doc.md
    imagedir: /docs/img
    timestamp: 2024-03-01_14-05-09
count: 1
deleted:
    - /docs/img/c.gif
failures:
    - path: /docs/img/d.png
      error: permission denied
`, string(data))
}

func TestSaveRename(t *testing.T) {
	fixedClock(t)
	result := rename.Report{
		Pairs: []rename.Pair{
			{Index: 1, Source: "/docs/a.png", Target: "/docs/1.png"},
			{Index: 2, Source: "/docs/b.jpg", Target: "/docs/2.jpg"},
		},
		NewDocumentPath: "/docs/doc_new.md",
	}
	path := filepath.Join(t.TempDir(), "rename.yaml")
	require.NoError(t, Save(path, FromRename("/docs/doc.md", "/docs", result)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var loaded Rename
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, "/docs/doc_new.md", loaded.NewDocument)
	assert.Equal(t, []Mapping{{"/docs/a.png", "/docs/1.png"}, {"/docs/b.jpg", "/docs/2.jpg"}}, loaded.Renamed)
	assert.Empty(t, loaded.Replaced)
	assert.NotContains(t, string(data), "replaced")
}
