package config

import (
	"os"
	"path/filepath"
	"testing"

	reconerrors "coderecon/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if cfg.StateDir != ".coderecon" {
		t.Errorf("StateDir = %q, want .coderecon", cfg.StateDir)
	}
	if cfg.Hazards.MaxNestingDepth != 3 {
		t.Errorf("MaxNestingDepth = %d, want 3", cfg.Hazards.MaxNestingDepth)
	}
	if cfg.Signals.Severity["untested_function"] != "medium" {
		t.Errorf("untested_function severity = %q, want medium", cfg.Signals.Severity["untested_function"])
	}
	if cfg.Topology.FallbackCoreCount != 5 {
		t.Errorf("FallbackCoreCount = %d, want 5", cfg.Topology.FallbackCoreCount)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Extract.BatchSize != 32 {
		t.Errorf("BatchSize = %d, want 32", cfg.Extract.BatchSize)
	}
	if len(cfg.Discovery.Extensions) != len(DefaultConfig().Discovery.Extensions) {
		t.Errorf("Extensions = %v, want defaults", cfg.Discovery.Extensions)
	}
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, DefaultStateDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `version = 1

[hazards]
max_nesting_depth = 5

[discovery]
exclude_globs = ["**/generated/**"]

[diff]
fingerprint = "v2"
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Hazards.MaxNestingDepth != 5 {
		t.Errorf("MaxNestingDepth = %d, want 5", cfg.Hazards.MaxNestingDepth)
	}
	if cfg.Hazards.LargeFunctionLines != 50 {
		t.Errorf("LargeFunctionLines = %d, want default 50", cfg.Hazards.LargeFunctionLines)
	}
	if len(cfg.Discovery.ExcludeGlobs) != 1 || cfg.Discovery.ExcludeGlobs[0] != "**/generated/**" {
		t.Errorf("ExcludeGlobs = %v", cfg.Discovery.ExcludeGlobs)
	}
	if cfg.Diff.Fingerprint != "v2" {
		t.Errorf("Fingerprint = %q, want v2", cfg.Diff.Fingerprint)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("CODERECON_EXTRACT_WORKERS", "3")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Extract.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Extract.Workers)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, DefaultStateDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[diff]\nfingerprint = \"v9\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(root)
	if !reconerrors.HasCode(err, reconerrors.ConfigInvalid) {
		t.Errorf("expected CONFIG_INVALID, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Topology.HeatmapWidth = 30

	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Topology.HeatmapWidth != 30 {
		t.Errorf("HeatmapWidth = %d, want 30", loaded.Topology.HeatmapWidth)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad version", func(c *Config) { c.Version = 7 }},
		{"negative workers", func(c *Config) { c.Extract.Workers = -1 }},
		{"zero batch", func(c *Config) { c.Extract.BatchSize = 0 }},
		{"inverted hazard tiers", func(c *Config) { c.Hazards.LargeFunctionLines = 200 }},
		{"inverted length tiers", func(c *Config) { c.Signals.MediumLengthThreshold = 500 }},
		{"unknown fingerprint", func(c *Config) { c.Diff.Fingerprint = "v3" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}
