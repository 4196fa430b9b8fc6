package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadAppliesDefaults(t *testing.T) {
	p := writeConfig(t, "version: 1\n")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.API.BaseURL != DefaultBaseURL {
		t.Errorf("base url = %q, want %q", c.API.BaseURL, DefaultBaseURL)
	}
	if c.CDN.LogoBaseURL != DefaultLogoBaseURL {
		t.Errorf("logo base url = %q, want %q", c.CDN.LogoBaseURL, DefaultLogoBaseURL)
	}
	if c.API.TimeoutSeconds != 15 {
		t.Errorf("timeout = %d, want 15", c.API.TimeoutSeconds)
	}
	if c.UI.Mode != "today" {
		t.Errorf("ui.mode = %q, want today", c.UI.Mode)
	}
}

func TestLoadOverrides(t *testing.T) {
	p := writeConfig(t, strings.Join([]string{
		"version: 1",
		"api:",
		"  base_url: http://recaps.example:9000",
		"  timeout_seconds: 3",
		"ui:",
		"  mode: previous",
	}, "\n"))
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.API.BaseURL != "http://recaps.example:9000" {
		t.Errorf("base url = %q", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds != 3 {
		t.Errorf("timeout = %d, want 3", c.API.TimeoutSeconds)
	}
	if c.UI.Mode != "previous" {
		t.Errorf("ui.mode = %q, want previous", c.UI.Mode)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("RECAPS_HOST", "api.example")
	p := writeConfig(t, strings.Join([]string{
		"version: 1",
		"api:",
		"  base_url: http://${RECAPS_HOST}:8000",
	}, "\n"))
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.API.BaseURL != "http://api.example:8000" {
		t.Errorf("base url = %q", c.API.BaseURL)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad version", "version: 2\n"},
		{"bad base url", "version: 1\napi:\n  base_url: \"not a url\"\n"},
		{"bad mode", "version: 1\nui:\n  mode: yesterday\n"},
		{"bad level", "version: 1\nlogging:\n  level: loud\n"},
		{"bad format", "version: 1\nlogging:\n  format: xml\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeConfig(t, tc.body)
			if _, err := Load(p); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	c, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("load or default: %v", err)
	}
	if c.API.BaseURL != DefaultBaseURL {
		t.Errorf("base url = %q, want default", c.API.BaseURL)
	}
}
