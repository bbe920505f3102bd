// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Recommend.Neighbors != 5 {
		t.Errorf("Neighbors = %d, want 5", cfg.Recommend.Neighbors)
	}
	if cfg.Recommend.RefreshInterval != 60*time.Second {
		t.Errorf("RefreshInterval = %v, want 60s", cfg.Recommend.RefreshInterval)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "port out of range",
			mutate: func(c *Config) { c.Server.Port = 70000 },
		},
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
		},
		{
			name:   "max_top_n below default_top_n",
			mutate: func(c *Config) { c.Recommend.MaxTopN = 3 },
		},
		{
			name:   "sub-second refresh interval",
			mutate: func(c *Config) { c.Recommend.RefreshInterval = 100 * time.Millisecond },
		},
		{
			name:   "missing database name",
			mutate: func(c *Config) { c.Database.Name = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() error = nil, want rejection")
			}
		})
	}
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
recommend:
  neighbors: 7
  alpha_cf: 0.8
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMEND_NEIGHBORS", "9")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// File overrides defaults.
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 from file", cfg.Server.Port)
	}
	if cfg.Recommend.AlphaCF != 0.8 {
		t.Errorf("AlphaCF = %f, want 0.8 from file", cfg.Recommend.AlphaCF)
	}
	// Environment overrides the file.
	if cfg.Recommend.Neighbors != 9 {
		t.Errorf("Neighbors = %d, want 9 from env", cfg.Recommend.Neighbors)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug from env", cfg.Logging.Level)
	}
	// Untouched values keep their defaults.
	if cfg.Database.Port != 3306 {
		t.Errorf("Database.Port = %d, want default 3306", cfg.Database.Port)
	}
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db.local", Port: 3306,
		User: "svc", Password: "secret", Name: "foodreview",
	}
	want := "svc:secret@tcp(db.local:3306)/foodreview?parseTime=true&charset=utf8mb4"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
