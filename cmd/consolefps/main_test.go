package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samdwyer/consolefps/internal/config"
	"github.com/samdwyer/consolefps/internal/gamedata"
)

// restoreLog puts the standard logger back after serve redirects it.
func restoreLog(t *testing.T) {
	t.Helper()
	out, prefix := log.Writer(), log.Prefix()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetPrefix(prefix)
	})
}

func TestServeReturnsExitCodeAndFlushesLog(t *testing.T) {
	restoreLog(t)
	dir := t.TempDir()

	cfg := config.Default()
	cfg.LogFile = filepath.Join(dir, "consolefps.log")
	cfg.Map.File = filepath.Join(dir, "absent.txt")

	if code := serve(cfg); code != 1 {
		t.Fatalf("serve() = %d, want 1", code)
	}

	content, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "Game error") {
		t.Errorf("Log = %q, want the game error", content)
	}
}

func TestServeBadLogFile(t *testing.T) {
	restoreLog(t)

	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "missing", "dir", "consolefps.log")

	if code := serve(cfg); code != 1 {
		t.Errorf("serve() = %d, want 1", code)
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	applyFlags(&cfg, "maze", 0)
	if cfg.Map.Name != "maze" || cfg.Map.File != "" || cfg.Map.Generate {
		t.Errorf("Map = %+v, want embedded maze", cfg.Map)
	}

	cfg = config.Default()
	applyFlags(&cfg, "levels/custom.txt", 0)
	if cfg.Map.File != "levels/custom.txt" {
		t.Errorf("Map.File = %q, want the path", cfg.Map.File)
	}

	cfg = config.Default()
	applyFlags(&cfg, "", 7)
	if !cfg.Map.Generate || cfg.Map.Seed != 7 {
		t.Errorf("Map = %+v, want generated with seed 7", cfg.Map)
	}

	if _, err := gamedata.LoadLayout(config.Default().Map.Name); err != nil {
		t.Errorf("Default layout should be embedded: %v", err)
	}
}
