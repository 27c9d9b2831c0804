package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridstate/internal/fsm"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, err := loadFile("")
	if err != nil {
		t.Fatalf("loadFile() failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	// Only compare when no user/local config shadows the embedded file
	if _, err := os.Stat(filepath.Join("configs", "gridstate.yaml")); err == nil {
		t.Skip("local config present")
	}
	if path := userConfigPath("config.yaml"); path != "" {
		if _, err := os.Stat(path); err == nil {
			t.Skip("user config present")
		}
	}

	if cfg != Default() {
		t.Errorf("embedded config = %+v, expected %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
machine:
  variant: mousetrap
  lives: 3
  collision_policy: sudden-death
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	fc, err := cfg.MachineFor(fsm.DefaultConfig())
	if err != nil {
		t.Fatalf("MachineFor() failed: %v", err)
	}
	if fc.Variant.Name() != "mousetrap" {
		t.Errorf("variant = %s, expected mousetrap", fc.Variant.Name())
	}
	if fc.Lives != 3 {
		t.Errorf("lives = %d, expected 3", fc.Lives)
	}
	if fc.Policy != fsm.PolicySuddenDeath {
		t.Errorf("policy = %s, expected sudden-death", fc.Policy)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v, expected debug", cfg.LogLevel())
	}
	// Unset sections keep defaults
	if cfg.Session.TickRate != 60 {
		t.Errorf("tick rate = %d, expected default 60", cfg.Session.TickRate)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() succeeded for a missing file, expected error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLives, "4")
	t.Setenv(EnvPolicy, "always-life-lost")
	t.Setenv(EnvVariant, "base")
	t.Setenv(EnvDBPath, "/tmp/journal.db")
	t.Setenv(EnvMode, "mousetrap")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}

	if cfg.Machine.Lives != 4 {
		t.Errorf("lives = %d, expected 4", cfg.Machine.Lives)
	}
	if cfg.Machine.CollisionPolicy != "always-life-lost" {
		t.Errorf("policy = %q, expected always-life-lost", cfg.Machine.CollisionPolicy)
	}
	if cfg.Machine.Variant != "base" {
		t.Errorf("variant = %q, expected base", cfg.Machine.Variant)
	}
	if cfg.Storage.DBPath != "/tmp/journal.db" {
		t.Errorf("db path = %q, expected /tmp/journal.db", cfg.Storage.DBPath)
	}
	if cfg.Session.Mode != "mousetrap" {
		t.Errorf("mode = %q, expected mousetrap", cfg.Session.Mode)
	}
}

func TestApplyEnvRejectsBadLives(t *testing.T) {
	t.Setenv(EnvLives, "many")

	cfg := Default()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("ApplyEnv() succeeded, expected error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("GRIDSTATE_TEST_DOTENV=loaded\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("GRIDSTATE_TEST_DOTENV") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}
	if got := os.Getenv("GRIDSTATE_TEST_DOTENV"); got != "loaded" {
		t.Errorf("GRIDSTATE_TEST_DOTENV = %q, expected loaded", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "absent.env")); err != nil {
		t.Errorf("LoadDotEnv() on a missing file failed: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative lives", func(c *Config) { c.Machine.Lives = -1 }},
		{"unknown variant", func(c *Config) { c.Machine.Variant = "arena" }},
		{"unknown policy", func(c *Config) { c.Machine.CollisionPolicy = "lenient" }},
		{"zero tick rate", func(c *Config) { c.Session.TickRate = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() succeeded, expected error")
			}
		})
	}
}

func TestMachineForKeepsBase(t *testing.T) {
	base := fsm.Config{Variant: fsm.MouseTrap, Lives: 2, Policy: fsm.PolicySuddenDeath}

	got, err := Default().MachineFor(base)
	if err != nil {
		t.Fatalf("MachineFor() failed: %v", err)
	}
	if got.Variant.Name() != "mousetrap" || got.Lives != 2 || got.Policy != fsm.PolicySuddenDeath {
		t.Errorf("MachineFor() = %+v, expected base unchanged", got)
	}

	cfg := Default()
	cfg.Machine.Lives = 4
	cfg.Machine.ManualInit = true
	got, err = cfg.MachineFor(base)
	if err != nil {
		t.Fatalf("MachineFor() failed: %v", err)
	}
	if got.Lives != 4 || !got.ManualInit {
		t.Errorf("MachineFor() = %+v, expected lives 4 and manual init", got)
	}
	if got.Policy != fsm.PolicySuddenDeath {
		t.Errorf("policy = %s, expected base policy kept", got.Policy)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		wantLives  int
		wantPolicy string
	}{
		{DifficultyEasy, 5, "life-counting"},
		{DifficultyNormal, 3, "life-counting"},
		{DifficultyHard, 1, "life-counting"},
		{DifficultyClassic, 1, "always-life-lost"},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := Default()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Machine.Lives != tc.wantLives {
				t.Errorf("lives = %d, expected %d", cfg.Machine.Lives, tc.wantLives)
			}
			if cfg.Machine.CollisionPolicy != tc.wantPolicy {
				t.Errorf("policy = %q, expected %q", cfg.Machine.CollisionPolicy, tc.wantPolicy)
			}
		})
	}

	cfg := Default()
	ApplyPreset(&cfg, "")
	if cfg != Default() {
		t.Error("empty preset should leave config unchanged")
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) succeeded, expected error")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.gridstate/journal.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if got != filepath.Join(home, ".gridstate", "journal.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got, _ := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(/abs/path) = %q, expected unchanged", got)
	}
}
