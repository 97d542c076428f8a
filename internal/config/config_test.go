package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(APIKeyEnv, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Config{
		DataDir:       filepath.Join(home, ".local/share/polar"),
		MirrorBackend: "file",
		MirrorKey:     "hielo-polar-assets",
		LogFile:       filepath.Join(home, ".local/share/polar/polar.log"),
		LogLevel:      "info",
		Remote:        Remote{Table: "assets"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Remote.Enabled() {
		t.Fatalf("remote should be disabled by default")
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(APIKeyEnv, "")

	path := writeConfig(t, `
data_dir = "  ~/polar-data  "
mirror_backend = "SQLite"
mirror_key = "custom"
seed_file = "~/seed.json"
log_level = "debug"

[remote]
url = " https://abc.supabase.co "
api_key = " file-key "
table = "conservadores"
pull_seconds = 45
pull_on_start = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Config{
		DataDir:       filepath.Join(home, "polar-data"),
		MirrorBackend: "sqlite",
		MirrorKey:     "custom",
		SeedFile:      filepath.Join(home, "seed.json"),
		LogFile:       filepath.Join(home, "polar-data", "polar.log"),
		LogLevel:      "debug",
		Remote: Remote{
			URL:         "https://abc.supabase.co",
			APIKey:      "file-key",
			Table:       "conservadores",
			PullEvery:   45 * time.Second,
			PullOnStart: true,
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Remote.Enabled() {
		t.Fatalf("remote should be enabled")
	}
}

func TestLoad_EnvOverridesAPIKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(APIKeyEnv, "env-key")

	cfg, err := Load(writeConfig(t, "[remote]\napi_key = \"file-key\"\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Remote.APIKey != "env-key" {
		t.Fatalf("APIKey = %q, want env-key", cfg.Remote.APIKey)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(writeConfig(t, `
data_dir = "   "
mirror_backend = ""
log_file = ""
[remote]
pull_seconds = -5
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, ".local/share/polar") || cfg.MirrorBackend != "file" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Remote.PullEvery != 0 {
		t.Fatalf("PullEvery = %v, want 0 for negative seconds", cfg.Remote.PullEvery)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `data_dir = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidEnumsFail(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	for _, body := range []string{`mirror_backend = "redis"`, `log_level = "loud"`} {
		if _, err := Load(writeConfig(t, body)); err == nil || !strings.Contains(err.Error(), "invalid config") {
			t.Fatalf("Load(%s) = %v, want invalid config error", body, err)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if want := filepath.Join(home, "a/b"); got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
