package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()

	if err := loadEnv(filepath.Join(dir, "missing.env"), false); err != nil {
		t.Fatalf("missing default file should be ignored: %v", err)
	}
	if err := loadEnv(filepath.Join(dir, "missing.env"), true); err == nil {
		t.Fatalf("missing explicit file should fail")
	}

	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("PUBS_TEST_FROM_FILE=file\nPUBS_TEST_PRESET=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PUBS_TEST_PRESET", "env")
	t.Cleanup(func() { _ = os.Unsetenv("PUBS_TEST_FROM_FILE") })

	if err := loadEnv(path, true); err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	if got := os.Getenv("PUBS_TEST_FROM_FILE"); got != "file" {
		t.Fatalf("PUBS_TEST_FROM_FILE = %q", got)
	}
	if got := os.Getenv("PUBS_TEST_PRESET"); got != "env" {
		t.Fatalf("existing variable overridden: %q", got)
	}
}

func TestVersionCommand(t *testing.T) {
	old := version
	version = "v9.9.9"
	t.Cleanup(func() { version = old })

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--env-file", filepath.Join(t.TempDir(), "none.env")})

	// An explicit env file that does not exist is an error even for version.
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for missing explicit env file")
	}

	cmd = rootCmd()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != appName+" v9.9.9" {
		t.Fatalf("version output = %q", got)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := rootCmd()
	want := map[string]bool{"serve": false, "migrate": false, "version": false}
	for _, c := range cmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
	if cmd.RunE == nil {
		t.Fatalf("root command should default to serve")
	}
}
