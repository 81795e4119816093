package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/internal/config"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, used, err := config.Load(context.Background(), config.LoadOptions{SearchPaths: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if used != "" {
		t.Fatalf("expected no config file, got %q", used)
	}
	if diff := cmp.Diff(config.DefaultConfig(), *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contactform.yaml")
	body := []byte("server:\n  addr: \":9000\"\n  cors:\n    allowed_origins: [\"https://example.com\"]\nform:\n  reset_delay: 3s\nlog:\n  format: json\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONTACTFORM_LOG_LEVEL", "debug")

	cfg, used, err := config.Load(context.Background(), config.LoadOptions{SearchPaths: []string{dir}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if used != path {
		t.Fatalf("expected %q, got %q", path, used)
	}
	if cfg.Server.Addr != ":9000" || cfg.Form.ResetDelay != 3*time.Second {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"https://example.com"}, cfg.Server.CORS.AllowedOrigins); diff != "" {
		t.Fatalf("origins mismatch (-want +got):\n%s", diff)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("log config not applied: %+v", cfg.Log)
	}
	if cfg.Form.FocusDelay != 500*time.Millisecond {
		t.Fatalf("expected default focus delay, got %s", cfg.Form.FocusDelay)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, _, err := config.Load(context.Background(), config.LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("expected missing explicit file to fail")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := config.Load(context.Background(), config.LoadOptions{ConfigFilePath: path}); err == nil {
		t.Fatal("expected invalid log format to fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := config.Load(ctx, config.LoadOptions{}); err == nil {
		t.Fatal("expected cancelled context to fail")
	}
}

func TestValidate_ReportsConfigKeys(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Addr = ""
	cfg.Form.ResetDelay = 0
	cfg.Form.FocusDelay = -time.Second
	cfg.Log.Format = "XML"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected invalid config to fail")
	}
	for _, want := range []string{
		"server.addr is required",
		"form.reset_delay must be positive",
		"form.focus_delay must not be negative",
		`log.format "xml" is not one of text, json, logfmt`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}

	cfg = config.DefaultConfig()
	cfg.Log.Format = "JSON"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected upper case format to pass, got %v", err)
	}
}
