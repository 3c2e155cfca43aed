package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"photoalbum/internal/catalog"
	"photoalbum/internal/config"
	"photoalbum/internal/library"
	"photoalbum/internal/logging"
	"photoalbum/internal/preflight"
)

type commandContext struct {
	configFlag   *string
	outputFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, outputFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		outputFlag:   outputFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) outputFormat() string {
	if c.outputFlag == nil {
		return outputTable
	}
	return normalizeOutputFormat(*c.outputFlag)
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// openLibrary checks the library root, builds a synchronizer, and loads the
// catalog from disk.
func (c *commandContext) openLibrary(ctx context.Context) (*library.Synchronizer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if check := preflight.CheckDirectoryAccess("Library directory", cfg.Paths.LibraryDir); !check.Passed {
		return nil, fmt.Errorf("library unavailable: %s", check.Detail)
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	lib, err := library.New(library.OptionsFromConfig(cfg, logger))
	if err != nil {
		return nil, err
	}
	if _, err := lib.LoadLibrary(ctx); err != nil {
		return nil, err
	}
	return lib, nil
}

// persist writes the metadata of the changed photos back to their files and
// fails when any of them could not be written.
func (c *commandContext) persist(ctx context.Context, lib *library.Synchronizer, changed ...*catalog.Photo) error {
	if len(changed) == 0 {
		return nil
	}
	report, err := lib.WritePhotoMetadata(ctx, changed...)
	if err != nil {
		return err
	}
	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("metadata write failed for %d of %d photos (first: %v)", len(failed), len(report.Outcomes), failed[0].Err)
	}
	return nil
}

func findPhoto(lib *library.Synchronizer, album, photo string) (*catalog.Photo, error) {
	if _, ok := lib.Catalog().Albums.Find(album); !ok {
		return nil, fmt.Errorf("album %q not found", album)
	}
	p, ok := lib.Catalog().FindPhoto(album, photo)
	if !ok {
		return nil, fmt.Errorf("photo %q not found in album %q", photo, album)
	}
	return p, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
