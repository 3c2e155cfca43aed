package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRaster(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return fmt.Errorf("paths.library_dir must be set (or export %s)", envLibraryDir)
	}
	return nil
}

func (c *Config) validateRaster() error {
	if c.Raster.MaxWidth < 1 || c.Raster.MaxHeight < 1 {
		return errors.New("raster.max_width and raster.max_height must be positive")
	}
	if c.Raster.ThumbnailWidth < 1 || c.Raster.ThumbnailHeight < 1 {
		return errors.New("raster.thumbnail_width and raster.thumbnail_height must be positive")
	}
	if c.Raster.ThumbnailWidth > c.Raster.MaxWidth || c.Raster.ThumbnailHeight > c.Raster.MaxHeight {
		return errors.New("raster thumbnail bounds must not exceed raster.max_width/max_height")
	}
	return nil
}

func (c *Config) validateLibrary() error {
	for _, ext := range c.Library.Extensions {
		if strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("library.extensions: invalid extension %q", ext)
		}
	}
	if c.Library.DecodeWorkers > 64 {
		return errors.New("library.decode_workers must be between 1 and 64")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
}
