package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected default seed 42, got %d", cfg.Seed)
	}
	if cfg.DataDir != "./data" {
		t.Fatalf("unexpected data dir %q", cfg.DataDir)
	}
	if cfg.DatasetPath() != filepath.Join("data", DefaultDatasetFile) {
		t.Fatalf("unexpected dataset path %q", cfg.DatasetPath())
	}
	if cfg.ConfigFile != "" {
		t.Fatalf("expected no config file, got %q", cfg.ConfigFile)
	}
}

func TestLoad_ReadsConfigFileAndEnvOverrides(t *testing.T) {
	d := t.TempDir()
	chdir(t, d)
	if err := os.WriteFile(filepath.Join(d, "novagen.yaml"), []byte("data_dir: ./datasets\nseed: 7\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NOVA_SEED", "99")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "./datasets" {
		t.Fatalf("expected data_dir from file, got %q", cfg.DataDir)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log_level from file, got %q", cfg.LogLevel)
	}
	if cfg.Seed != 99 {
		t.Fatalf("expected NOVA_SEED to win over file, got %d", cfg.Seed)
	}
}

func TestLoadFile_MissingExplicitFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_RunsDBFollowsDataDir(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("NOVA_DATA_DIR", "/srv/nova")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/srv/nova", DefaultRunsDBFile); cfg.RunsDBPath != want {
		t.Fatalf("expected runs db %q, got %q", want, cfg.RunsDBPath)
	}

	moved := cfg.WithDataDir("/tmp/other")
	if want := filepath.Join("/tmp/other", DefaultRunsDBFile); moved.RunsDBPath != want {
		t.Fatalf("expected runs db to follow data dir, got %q", moved.RunsDBPath)
	}
	if moved.DatasetPath() != filepath.Join("/tmp/other", DefaultDatasetFile) {
		t.Fatalf("unexpected dataset path %q", moved.DatasetPath())
	}
	if cfg.DataDir != "/srv/nova" {
		t.Fatal("WithDataDir modified the original config")
	}
}

func TestLoad_ExplicitRunsDBIsKept(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("NOVA_RUNS_DB", "/var/lib/nova/runs.sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	moved := cfg.WithDataDir("/tmp/other")
	if moved.RunsDBPath != "/var/lib/nova/runs.sqlite" {
		t.Fatalf("explicit runs db was rewritten: %q", moved.RunsDBPath)
	}
}
