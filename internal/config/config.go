// Package config assembles the settings of imgcurator from an optional YAML file and the environment.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds imgcurator settings.
// Loaded from $XDG_CONFIG_HOME/imgcurator/config.yaml with environment variable overrides.
type Config struct {
	// Debug enables debug-level logging.
	// Env override: IMGCURATOR_DEBUG=1
	Debug bool `yaml:"debug"`

	// LogDir enables a rotating log file inside the given directory.
	// Env override: IMGCURATOR_LOG_DIR
	LogDir string `yaml:"log_dir"`

	// LogJSON switches log records from text to JSON.
	// Env override: IMGCURATOR_LOG_JSON=1
	LogJSON bool `yaml:"log_json"`

	// Plain disables terminal escape sequences (colors, raw prompt).
	// Env override: IMGCURATOR_PLAIN=1
	Plain bool `yaml:"plain"`

	// NewSuffix is inserted before the extension of the rewritten document, empty means the built-in default.
	// Env override: IMGCURATOR_NEW_SUFFIX
	NewSuffix string `yaml:"new_suffix"`
}

// LoadDotEnv reads a .env file from the working directory if present.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Path yields the config file location: IMGCURATOR_CONFIG if set, else the user config directory.
func Path() string {
	if explicit := strings.TrimSpace(os.Getenv("IMGCURATOR_CONFIG")); explicit != "" {
		return explicit
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "imgcurator", "config.yaml")
}

// Load reads the config file, then applies environment variable overrides.
// A missing file is not an error, a broken one is reported as warning and ignored.
func Load() Config {
	var cfg Config

	if configPath := Path(); configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				slog.Warn("Failed to parse config file", "path", configPath, "error", err)
				cfg = Config{}
			}
		case !os.IsNotExist(err):
			slog.Warn("Failed to read config file", "path", configPath, "error", err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg
}

// applyEnvOverrides applies environment variable overrides to the config.
// Env vars take precedence over config file values.
func applyEnvOverrides(cfg *Config) {
	cfg.Debug = envBool("IMGCURATOR_DEBUG", cfg.Debug)
	cfg.LogJSON = envBool("IMGCURATOR_LOG_JSON", cfg.LogJSON)
	cfg.Plain = envBool("IMGCURATOR_PLAIN", cfg.Plain)
	cfg.LogDir = firstNonEmpty(strings.TrimSpace(os.Getenv("IMGCURATOR_LOG_DIR")), cfg.LogDir)
	cfg.NewSuffix = firstNonEmpty(strings.TrimSpace(os.Getenv("IMGCURATOR_NEW_SUFFIX")), cfg.NewSuffix)
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("Ignoring malformed boolean", "variable", key, "value", raw)
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
