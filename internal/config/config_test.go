// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Server.URL == "" || cfg.Server.CompanyID == "" {
		t.Error("defaults must include a server URL and company ID")
	}
	if cfg.UI.TypingMsPerChar != 10 {
		t.Errorf("TypingMsPerChar = %d, want 10", cfg.UI.TypingMsPerChar)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad scheme", func(c *Config) { c.Server.URL = "ftp://example.com" }, true},
		{"empty company", func(c *Config) { c.Server.CompanyID = "" }, true},
		{"zero typing speed", func(c *Config) { c.UI.TypingMsPerChar = 0 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"https ok", func(c *Config) { c.Server.URL = "https://insights.example.com" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadFromPathTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
url = "http://testhost:9999"
company_id = "company2"
timeout_secs = 30

[ui]
typing_ms_per_char = 5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Server.URL != "http://testhost:9999" {
		t.Errorf("URL = %q", cfg.Server.URL)
	}
	if cfg.Server.CompanyID != "company2" {
		t.Errorf("CompanyID = %q", cfg.Server.CompanyID)
	}
	if cfg.UI.TypingMsPerChar != 5 {
		t.Errorf("TypingMsPerChar = %d", cfg.UI.TypingMsPerChar)
	}
	// Unset fields pick up defaults.
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default", cfg.Log.Level)
	}
}

func TestLoadFromPathJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"server": {"url": "http://jsonhost:8081", "company_id": "company3"}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Server.URL != "http://jsonhost:8081" {
		t.Errorf("URL = %q", cfg.Server.URL)
	}
}

func TestLoadFromPathUnsupportedExt(t *testing.T) {
	if _, err := LoadFromPath("config.yaml"); err == nil {
		t.Error("expected an error for unsupported extensions")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INSIGHTS_SERVER_URL", "http://envhost:1234")
	t.Setenv("INSIGHTS_COMPANY_ID", "envcompany")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.URL != "http://envhost:1234" {
		t.Errorf("URL = %q, env should win", cfg.Server.URL)
	}
	if cfg.Server.CompanyID != "envcompany" {
		t.Errorf("CompanyID = %q, env should win", cfg.Server.CompanyID)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.Server.URL = "http://savedhost:7777"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := ConfigPathTOML()
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.Server.URL != "http://savedhost:7777" {
		t.Errorf("URL after round trip = %q", loaded.Server.URL)
	}
}

// TestGlobalConcurrentAccess checks that Global() and SetGlobal() are safe
// to call concurrently. Run with: go test -race ./internal/config/
func TestGlobalConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}
