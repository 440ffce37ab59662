// Package config provides configuration loading for the extension host.
// Values come from an optional YAML file overlaid by environment
// variables; env wins.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for the extension host process.
type Config struct {
	// Extension settings
	ExtensionName string `yaml:"extensionName"`
	ExtensionPath string `yaml:"extensionPath"`
	WorkspacePath string `yaml:"workspacePath"`
	ViewID        string `yaml:"viewId"`

	// Storage settings
	StorageDir  string `yaml:"storageDir"`
	HistoryPath string `yaml:"historyPath"`

	// Attach transport settings
	ListenAddr   string `yaml:"listenAddr"`
	AuthSecret   string `yaml:"authSecret"`
	AuthAudience string `yaml:"authAudience"`

	// Lifecycle settings
	ReadyTimeout time.Duration `yaml:"readyTimeout"`
	TaskTimeout  time.Duration `yaml:"taskTimeout"`

	// Terminal settings
	EnableTerminals bool   `yaml:"enableTerminals"`
	DefaultShell    string `yaml:"defaultShell"`
}

// Load reads the optional YAML file at path (empty means skip), then
// applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	cfg.ExtensionName = getEnv("EXTHOST_EXTENSION", cfg.ExtensionName)
	cfg.ExtensionPath = getEnv("EXTHOST_EXTENSION_PATH", cfg.ExtensionPath)
	cfg.WorkspacePath = getEnv("EXTHOST_WORKSPACE", cfg.WorkspacePath)
	cfg.ViewID = getEnv("EXTHOST_VIEW_ID", cfg.ViewID)
	cfg.StorageDir = getEnv("EXTHOST_STORAGE_DIR", cfg.StorageDir)
	cfg.HistoryPath = getEnv("EXTHOST_HISTORY_PATH", cfg.HistoryPath)
	cfg.ListenAddr = getEnv("EXTHOST_LISTEN", cfg.ListenAddr)
	cfg.AuthSecret = getEnv("EXTHOST_AUTH_SECRET", cfg.AuthSecret)
	cfg.AuthAudience = getEnv("EXTHOST_AUTH_AUDIENCE", cfg.AuthAudience)
	cfg.ReadyTimeout = getEnvDuration("EXTHOST_READY_TIMEOUT", cfg.ReadyTimeout)
	cfg.TaskTimeout = getEnvDuration("EXTHOST_TASK_TIMEOUT", cfg.TaskTimeout)
	cfg.EnableTerminals = getEnvBool("EXTHOST_ENABLE_TERMINALS", cfg.EnableTerminals)
	cfg.DefaultShell = getEnv("EXTHOST_SHELL", cfg.DefaultShell)

	applyDefaults(cfg)

	if cfg.WorkspacePath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		cfg.WorkspacePath = wd
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ViewID == "" {
		cfg.ViewID = "exthost.mainView"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:7171"
	}
	if cfg.AuthAudience == "" {
		cfg.AuthAudience = "exthost-attach"
	}
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = 30 * time.Second
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 60 * time.Minute
	}
	if cfg.DefaultShell == "" {
		cfg.DefaultShell = "/bin/bash"
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
