package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"EXTHOST_EXTENSION", "EXTHOST_EXTENSION_PATH", "EXTHOST_WORKSPACE",
		"EXTHOST_VIEW_ID", "EXTHOST_STORAGE_DIR", "EXTHOST_HISTORY_PATH",
		"EXTHOST_LISTEN", "EXTHOST_AUTH_SECRET", "EXTHOST_AUTH_AUDIENCE",
		"EXTHOST_READY_TIMEOUT", "EXTHOST_TASK_TIMEOUT",
		"EXTHOST_ENABLE_TERMINALS", "EXTHOST_SHELL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ViewID != "exthost.mainView" {
		t.Fatalf("ViewID = %s", cfg.ViewID)
	}
	if cfg.ListenAddr != "127.0.0.1:7171" {
		t.Fatalf("ListenAddr = %s", cfg.ListenAddr)
	}
	if cfg.AuthAudience != "exthost-attach" {
		t.Fatalf("AuthAudience = %s", cfg.AuthAudience)
	}
	if cfg.ReadyTimeout != 30*time.Second {
		t.Fatalf("ReadyTimeout = %s", cfg.ReadyTimeout)
	}
	if cfg.TaskTimeout != 60*time.Minute {
		t.Fatalf("TaskTimeout = %s", cfg.TaskTimeout)
	}
	wd, _ := os.Getwd()
	if cfg.WorkspacePath != wd {
		t.Fatalf("WorkspacePath = %s, want working dir", cfg.WorkspacePath)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "exthost.yaml")
	body := `
extensionName: demo
viewId: demo.view
listenAddr: 127.0.0.1:9999
readyTimeout: 10s
enableTerminals: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ExtensionName != "demo" || cfg.ViewID != "demo.view" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.ListenAddr != "127.0.0.1:9999" {
		t.Fatalf("ListenAddr = %s", cfg.ListenAddr)
	}
	if cfg.ReadyTimeout != 10*time.Second {
		t.Fatalf("ReadyTimeout = %s", cfg.ReadyTimeout)
	}
	if !cfg.EnableTerminals {
		t.Fatal("EnableTerminals not set from file")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "exthost.yaml")
	if err := os.WriteFile(path, []byte("viewId: file.view\nlistenAddr: 127.0.0.1:9999\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("EXTHOST_VIEW_ID", "env.view")
	t.Setenv("EXTHOST_READY_TIMEOUT", "5s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ViewID != "env.view" {
		t.Fatalf("ViewID = %s, env should win", cfg.ViewID)
	}
	// File values without env overrides survive.
	if cfg.ListenAddr != "127.0.0.1:9999" {
		t.Fatalf("ListenAddr = %s", cfg.ListenAddr)
	}
	if cfg.ReadyTimeout != 5*time.Second {
		t.Fatalf("ReadyTimeout = %s", cfg.ReadyTimeout)
	}
}

func TestLoadMissingFileTolerated(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ViewID != "exthost.mainView" {
		t.Fatalf("ViewID = %s", cfg.ViewID)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "exthost.yaml")
	if err := os.WriteFile(path, []byte("viewId: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config accepted")
	}
}

func TestEnvParsers(t *testing.T) {
	t.Setenv("X_BOOL", "true")
	if !getEnvBool("X_BOOL", false) {
		t.Fatal("bool not parsed")
	}
	t.Setenv("X_BOOL", "not-a-bool")
	if getEnvBool("X_BOOL", false) {
		t.Fatal("invalid bool should fall back")
	}
	t.Setenv("X_DUR", "90s")
	if getEnvDuration("X_DUR", 0) != 90*time.Second {
		t.Fatal("duration not parsed")
	}
	t.Setenv("X_DUR", "ninety")
	if getEnvDuration("X_DUR", time.Minute) != time.Minute {
		t.Fatal("invalid duration should fall back")
	}
}
