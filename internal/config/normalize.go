package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRaster()
	c.normalizeLibrary()
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = defaultWatchDebounceMS
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(envLibraryDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.LibraryDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		c.Paths.LibraryDir = defaultLibraryDir
	}
	var err error
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRaster() {
	if c.Raster.MaxWidth == 0 {
		c.Raster.MaxWidth = defaultMaxWidth
	}
	if c.Raster.MaxHeight == 0 {
		c.Raster.MaxHeight = defaultMaxHeight
	}
	if c.Raster.ThumbnailWidth == 0 {
		c.Raster.ThumbnailWidth = defaultThumbnailWidth
	}
	if c.Raster.ThumbnailHeight == 0 {
		c.Raster.ThumbnailHeight = defaultThumbnailHeight
	}
}

func (c *Config) normalizeLibrary() {
	seen := make(map[string]struct{}, len(c.Library.Extensions))
	extensions := make([]string, 0, len(c.Library.Extensions))
	for _, ext := range c.Library.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		extensions = append(extensions, ext)
	}
	if len(extensions) == 0 {
		extensions = append(extensions, defaultExtensions...)
	}
	c.Library.Extensions = extensions
	if c.Library.DecodeWorkers <= 0 {
		c.Library.DecodeWorkers = defaultDecodeWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
