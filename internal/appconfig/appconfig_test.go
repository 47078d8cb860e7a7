// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad covers a valid hub config, defaults for omitted keys, and the
// failure modes: invalid JSON, invalid values and a missing file.
func TestLoad(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	dir := t.TempDir()

	path := writeConfig(t, dir, `{"source": "hub", "hubToken": "hf_secret", "requestsPerSecond": 2}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.Source != SourceHub || cfg.RequestsPerSecond != 2 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.PageSize != 100 || cfg.Seed != 42 || cfg.DataDir != "data" {
		t.Fatalf("expected defaults to be applied, got %+v", cfg)
	}
	if cfg.RequestTimeout() != 60*time.Second {
		t.Fatalf("expected default timeout of 60s, got %v", cfg.RequestTimeout())
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected ConfigPath %q, got %q", path, cfg.ConfigPath)
	}

	if _, err := Load(writeConfig(t, t.TempDir(), `{ "source": `)); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}
	if _, err := Load(writeConfig(t, t.TempDir(), `{"source": "s3"}`)); err == nil || !strings.Contains(err.Error(), "source") {
		t.Fatalf("expected invalid source error, got %v", err)
	}
	if _, err := Load(writeConfig(t, t.TempDir(), `{"pageSize": 500}`)); err == nil {
		t.Fatal("expected pageSize above the hub maximum to fail")
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("Load() with a nonexistent file should have failed")
	}
}

func TestApplyDefaultsReadsTokenFromEnv(t *testing.T) {
	t.Setenv(TokenEnvVar, "hf_from_env")
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.HubToken != "hf_from_env" {
		t.Fatalf("expected token from env, got %q", cfg.HubToken)
	}

	explicit := Config{HubToken: "hf_explicit"}
	explicit.ApplyDefaults()
	if explicit.HubToken != "hf_explicit" {
		t.Fatalf("env must not override an explicit token, got %q", explicit.HubToken)
	}
}

func TestMaskedToken(t *testing.T) {
	tests := map[string]string{
		"":            "(none)",
		"abc":         "****",
		"hf_abcd1234": "*******1234",
	}
	for token, want := range tests {
		if got := (Config{HubToken: token}).MaskedToken(); got != want {
			t.Errorf("MaskedToken(%q) = %q, want %q", token, got, want)
		}
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "", nil, Defaults())
	out := buf.String()
	if !strings.Contains(out, "No config file loaded") || !strings.Contains(out, "Data Dir:            data") {
		t.Fatalf("unexpected fallback output:\n%s", out)
	}

	buf.Reset()
	cfg := Defaults()
	cfg.Source = SourceHub
	cfg.HubToken = "hf_abcd1234"
	ShowConfig(&buf, "config/config.json", &cfg, Defaults())
	out = buf.String()
	if !strings.Contains(out, "Config file: config/config.json") || !strings.Contains(out, "*******1234") {
		t.Fatalf("unexpected hub output:\n%s", out)
	}
	if strings.Contains(out, "hf_abcd1234") {
		t.Fatal("token must be masked")
	}
}
