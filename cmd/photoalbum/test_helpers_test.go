package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	libraryDir string
	configPath string
	sourceDir  string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("PHOTOALBUM_LIBRARY_DIR", "")
	t.Setenv("PHOTOALBUM_LOG_LEVEL", "")

	env := &cliTestEnv{
		libraryDir: filepath.Join(base, "library"),
		configPath: filepath.Join(base, "photoalbum.toml"),
		sourceDir:  filepath.Join(base, "incoming"),
		baseDir:    base,
	}
	for _, dir := range []string{env.libraryDir, env.sourceDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	writeTestConfig(t, env.configPath, env.libraryDir)
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path, libraryDir string) {
	t.Helper()
	content := fmt.Sprintf("[paths]\nlibrary_dir = %q\nlog_dir = \"\"\n\n[logging]\nlevel = \"error\"\n", libraryDir)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
