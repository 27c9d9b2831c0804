package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvVariant  = "GRIDSTATE_VARIANT"
	EnvLives    = "GRIDSTATE_LIVES"
	EnvPolicy   = "GRIDSTATE_POLICY"
	EnvLogLevel = "GRIDSTATE_LOG_LEVEL"
	EnvDBPath   = "GRIDSTATE_DB"
	EnvMode     = "GRIDSTATE_MODE"
)

// Load loads the configuration.
// Search order: customPath -> ~/.gridstate/config.yaml -> ./configs/gridstate.yaml -> embedded default.
// Values missing from the file keep their defaults. Environment overrides
// (including a .env file in the working directory) are applied last.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	if err := LoadDotEnv(".env"); err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{userConfigPath("config.yaml"), filepath.Join("configs", "gridstate.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := Default()
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			return fileCfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set are not overwritten. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with GRIDSTATE_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v, ok := lookupEnv(EnvVariant); ok {
		cfg.Machine.Variant = v
	}
	if v, ok := lookupEnv(EnvPolicy); ok {
		cfg.Machine.CollisionPolicy = v
	}
	if v, ok := lookupEnv(EnvLives); ok {
		lives, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("environment variable %s must be an integer: %w", EnvLives, err)
		}
		cfg.Machine.Lives = lives
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		cfg.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvDBPath); ok {
		cfg.Storage.DBPath = v
	}
	if v, ok := lookupEnv(EnvMode); ok {
		cfg.Session.Mode = v
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridstate", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
