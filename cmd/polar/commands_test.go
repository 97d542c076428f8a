package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hielopolar/polar/internal/asset"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := strings.Join([]string{
		`data_dir = "` + filepath.ToSlash(dir) + `"`,
		`mirror_backend = "file"`,
		`log_file = "` + filepath.ToSlash(filepath.Join(dir, "polar.log")) + `"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListPrintsSeed(t *testing.T) {
	cfg := writeConfig(t)
	out, err := execute(t, "--config", cfg, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(asset.Seed())+1 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "CON-001") {
		t.Fatalf("first row = %q", lines[1])
	}
}

func TestListStatusFilter(t *testing.T) {
	cfg := writeConfig(t)
	out, err := execute(t, "--config", cfg, "list", "--status", "Mantenimiento")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "CON-003") || strings.Contains(out, "CON-001") {
		t.Fatalf("filtered output:\n%s", out)
	}

	if _, err := execute(t, "--config", cfg, "list", "--status", "congelado"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	cfg := writeConfig(t)
	if _, err := execute(t, "--config", cfg, "reset"); err == nil {
		t.Fatalf("reset without --yes succeeded")
	}
	out, err := execute(t, "--config", cfg, "reset", "--yes")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(out, "8 conservadores") {
		t.Fatalf("reset output = %q", out)
	}
}

func TestPullWithoutRemote(t *testing.T) {
	cfg := writeConfig(t)
	if _, err := execute(t, "--config", cfg, "pull"); err == nil {
		t.Fatalf("pull without a remote succeeded")
	}
	if _, err := execute(t, "--config", cfg, "push"); err == nil {
		t.Fatalf("push without a remote succeeded")
	}
}
