package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"photoalbum/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PHOTOALBUM_LIBRARY_DIR", "")
	t.Setenv("PHOTOALBUM_LOG_LEVEL", "")
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	clearEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLibrary := filepath.Join(tempHome, "Pictures", "photoalbum")
	if cfg.Paths.LibraryDir != wantLibrary {
		t.Fatalf("unexpected library dir: got %q want %q", cfg.Paths.LibraryDir, wantLibrary)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "photoalbum", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Raster.MaxWidth != 600 || cfg.Raster.MaxHeight != 400 {
		t.Fatalf("unexpected raster bounds: %+v", cfg.Raster)
	}
	if cfg.Raster.ThumbnailWidth != 120 || cfg.Raster.ThumbnailHeight != 80 {
		t.Fatalf("unexpected thumbnail bounds: %+v", cfg.Raster)
	}
	if got := strings.Join(cfg.Library.Extensions, ","); got != ".jpg,.jpeg" {
		t.Fatalf("unexpected extensions: %q", got)
	}
	if cfg.Library.DecodeWorkers != 1 {
		t.Fatalf("expected sequential decode by default, got %d", cfg.Library.DecodeWorkers)
	}
	if !cfg.Library.VerifyCopies {
		t.Fatal("expected verified copies by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "photoalbum.toml")
	content := `
[paths]
library_dir = "~/photos"
log_dir = "~/logs"

[raster]
max_width = 800
max_height = 600

[library]
extensions = ["JPG", ".Jpeg", ".jpg", " "]
decode_workers = 4
verify_copies = false

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.LibraryDir != filepath.Join(tempHome, "photos") {
		t.Fatalf("unexpected library dir: %q", cfg.Paths.LibraryDir)
	}
	if cfg.Raster.MaxWidth != 800 || cfg.Raster.MaxHeight != 600 {
		t.Fatalf("unexpected raster bounds: %+v", cfg.Raster)
	}
	if cfg.Raster.ThumbnailWidth != 120 {
		t.Fatalf("expected thumbnail default to survive, got %d", cfg.Raster.ThumbnailWidth)
	}
	if got := strings.Join(cfg.Library.Extensions, ","); got != ".jpg,.jpeg" {
		t.Fatalf("expected normalized extensions, got %q", got)
	}
	if cfg.Library.DecodeWorkers != 4 {
		t.Fatalf("unexpected decode workers: %d", cfg.Library.DecodeWorkers)
	}
	if cfg.Library.VerifyCopies {
		t.Fatal("expected verify_copies false")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestEnvOverridesLibraryDirAndLogLevel(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	library := filepath.Join(t.TempDir(), "albums")
	t.Setenv("PHOTOALBUM_LIBRARY_DIR", library)
	t.Setenv("PHOTOALBUM_LOG_LEVEL", "warn")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.LibraryDir != library {
		t.Fatalf("expected env library dir, got %q", cfg.Paths.LibraryDir)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(configPath, []byte("[paths\nlibrary_dir = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.LibraryDir, "photoalbum") {
		t.Fatalf("expected library dir to contain photoalbum, got %q", cfg.Paths.LibraryDir)
	}
	defaults := config.Default()
	if cfg.Raster != defaults.Raster {
		t.Fatalf("sample raster section drifted from defaults: %+v vs %+v", cfg.Raster, defaults.Raster)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Raster.MaxWidth = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative width")
	}

	cfg = config.Default()
	cfg.Raster.ThumbnailWidth = cfg.Raster.MaxWidth + 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when thumbnail exceeds raster bounds")
	}

	cfg = config.Default()
	cfg.Library.Extensions = []string{"../jpg"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for extension containing a path separator")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg = config.Default()
	cfg.Paths.LibraryDir = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for blank library dir")
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LibraryDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}
