package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Pool struct {
		Name    string `yaml:"name" json:"name"`
		Workers int    `yaml:"workers" json:"workers"`
	} `yaml:"pool" json:"pool"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" json:"enabled"`
		Addr    string `yaml:"addr" json:"addr"`
	} `yaml:"metrics" json:"metrics"`
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeTempFile(t, "pool.yaml", `
pool:
  name: workers
  workers: 16
metrics:
  enabled: true
  addr: ":9090"
`)

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Pool.Name != "workers" {
		t.Errorf("Pool.Name = %q, want %q", cfg.Pool.Name, "workers")
	}
	if cfg.Pool.Workers != 16 {
		t.Errorf("Pool.Workers = %d, want 16", cfg.Pool.Workers)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Addr != ":9090" {
		t.Errorf("Metrics = %+v, want enabled on :9090", cfg.Metrics)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeTempFile(t, "pool.json", `{
  "pool": {"name": "workers", "workers": 4},
  "metrics": {"enabled": false, "addr": ""}
}`)

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Pool.Workers != 4 {
		t.Errorf("Pool.Workers = %d, want 4", cfg.Pool.Workers)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err == nil {
		t.Error("Load() on a missing file should fail")
	}
}

func TestLoadWithEnv(t *testing.T) {
	path := writeTempFile(t, "pool.yaml", `
pool:
  name: workers
  workers: 8
`)

	t.Setenv("TESTCFG_POOL_WORKERS", "32")
	t.Setenv("TESTCFG_METRICS_ENABLED", "true")

	var cfg testConfig
	if err := LoadWithEnv(path, "TESTCFG", &cfg); err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}

	if cfg.Pool.Workers != 32 {
		t.Errorf("Pool.Workers = %d, want env override 32", cfg.Pool.Workers)
	}
	if cfg.Pool.Name != "workers" {
		t.Errorf("Pool.Name = %q, file value should survive", cfg.Pool.Name)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be set from env")
	}
}

func TestApplyEnvOverrides_NonStruct(t *testing.T) {
	var n int
	if err := ApplyEnvOverrides("X", &n); err == nil {
		t.Error("ApplyEnvOverrides() on a non-struct target should fail")
	}
}

func TestValidate_Required(t *testing.T) {
	var cfg testConfig
	cfg.Pool.Workers = 8

	err := Validate(&cfg, Required("Pool.Name"))
	if err == nil {
		t.Error("Validate() should fail for empty Pool.Name")
	}

	cfg.Pool.Name = "workers"
	if err := Validate(&cfg, Required("Pool.Name", "Pool.Workers")); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_IntRange(t *testing.T) {
	var cfg testConfig
	cfg.Pool.Workers = 0

	if err := Validate(&cfg, IntRange("Pool.Workers", 1, 4096)); err == nil {
		t.Error("Validate() should fail for workers below range")
	}

	cfg.Pool.Workers = 8
	if err := Validate(&cfg, IntRange("Pool.Workers", 1, 4096)); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	cfg.Pool.Workers = 10000
	if err := Validate(&cfg, IntRange("Pool.Workers", 1, 4096)); err == nil {
		t.Error("Validate() should fail for workers above range")
	}
}

func TestValidate_UnknownField(t *testing.T) {
	var cfg testConfig
	if err := Validate(&cfg, IntRange("Pool.Bogus", 0, 1)); err == nil {
		t.Error("Validate() should fail for an unknown field path")
	}
	if err := Validate(&cfg, Required("Nope")); err == nil {
		t.Error("Validate() should fail for an unknown required field")
	}
}

func TestValidatorFunc(t *testing.T) {
	sentinel := errors.New("rejected")
	v := ValidatorFunc(func(interface{}) error { return sentinel })

	if err := Validate(&testConfig{}, v); !errors.Is(err, sentinel) {
		t.Errorf("Validate() error = %v, want wrapped sentinel", err)
	}
}
