package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingDefaultIsFine(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("explicit missing config did not error")
	}
}

func TestLoadConfigHuJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lmer.json")
	data := `{
	// sampling defaults
	"count": 5000,
	"eps": 0.1, // trailing comma below is fine too
	"out_dir": "/tmp/lmer",
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Count != 5000 || cfg.Eps != 0.1 || cfg.OutDir != "/tmp/lmer" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Seed != DefaultConfig().Seed {
		t.Errorf("unset field did not keep its default: %+v", cfg)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lmer.json")
	if err := os.WriteFile(path, []byte(`{"eps": -1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("negative eps accepted")
	}
}
