package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/username/vacation-tracker-cli/internal/config"
	"go.uber.org/zap"
)

func TestInitializeApp_ReusesLoadedConfig(t *testing.T) {
	origCfg, origErr, origPath := cfg, cfgErr, configPath
	t.Cleanup(func() {
		cfg, cfgErr, configPath = origCfg, origErr, origPath
	})

	logger = zap.NewNop()
	// Point at a path that does not exist: a second Load would fail here,
	// so a passing run proves the preloaded config is reused
	configPath = filepath.Join(t.TempDir(), "does-not-exist.yaml")
	cfg = &config.Config{API: config.APIConfig{Endpoint: "http://localhost:9999"}}
	cfgErr = nil

	app, err := initializeApp()
	if err != nil {
		t.Fatalf("initializeApp() error = %v", err)
	}
	if app.cfg != cfg {
		t.Error("initializeApp() should reuse the config loaded in PersistentPreRun")
	}
	if app.client == nil || app.store == nil || app.calendar == nil {
		t.Error("initializeApp() left components unwired")
	}
}

func TestInitializeApp_PropagatesConfigError(t *testing.T) {
	origCfg, origErr := cfg, cfgErr
	t.Cleanup(func() {
		cfg, cfgErr = origCfg, origErr
	})

	logger = zap.NewNop()
	cfg = nil
	cfgErr = os.ErrNotExist

	if _, err := initializeApp(); err == nil {
		t.Error("initializeApp() should fail when config loading failed")
	}
}

func TestPromptPassword_PipedInput(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	origStdin := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = origStdin
		r.Close()
	})

	if _, err := w.WriteString("s3cret\n"); err != nil {
		t.Fatalf("Failed to write to pipe: %v", err)
	}
	w.Close()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	got, err := promptPassword(cmd, "Password: ")
	if err != nil {
		t.Fatalf("promptPassword() error = %v", err)
	}
	if got != "s3cret" {
		t.Errorf("promptPassword() = %q, want %q", got, "s3cret")
	}
}
