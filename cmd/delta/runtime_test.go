package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRuntimeWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
core:
  data_root: ` + filepath.Join(dir, "data") + `
consent:
  mode: allow_all
metadata:
  backend: memory
audit:
  backend: memory
telemetry:
  logging:
    level: error
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfgFile = path
	defer func() { cfgFile = "config.yaml" }()

	rt, err := newRuntime()
	if err != nil {
		t.Fatalf("newRuntime: %v", err)
	}
	defer rt.Close()

	if rt.service == nil {
		t.Fatal("runtime has no service")
	}
	if rt.cfg.Consent.Mode != "allow_all" {
		t.Errorf("consent mode = %q, want allow_all", rt.cfg.Consent.Mode)
	}
}

func TestLoadConfigExplicitPathMustExist(t *testing.T) {
	cfgFile = filepath.Join(t.TempDir(), "nope.yaml")
	defer func() { cfgFile = "config.yaml" }()

	if _, err := loadConfig(); err == nil {
		t.Error("expected an error for a missing explicit config path")
	}
}

func TestLoadConfigDefaultPathMayBeAbsent(t *testing.T) {
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
	cfgFile = "config.yaml"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Consent.Mode != "allow_all" {
		t.Errorf("default consent mode = %q, want allow_all", cfg.Consent.Mode)
	}
}
