package library

import (
	"log/slog"
	"time"

	"photoalbum/internal/catalog"
	"photoalbum/internal/config"
	"photoalbum/internal/raster"
	"photoalbum/internal/rastercodec"
)

// Options configures a Synchronizer. Zero values fall back to defaults.
type Options struct {
	Root          string
	Catalog       *catalog.Catalog
	Codec         rastercodec.Codec
	Limits        raster.Limits
	Extensions    []string
	DecodeWorkers int
	VerifyCopies  bool
	Now           func() time.Time
	Logger        *slog.Logger
}

// OptionsFromConfig maps configuration onto synchronizer options.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		Root: cfg.Paths.LibraryDir,
		Limits: raster.Limits{
			Max:   raster.Bounds{Width: cfg.Raster.MaxWidth, Height: cfg.Raster.MaxHeight},
			Thumb: raster.Bounds{Width: cfg.Raster.ThumbnailWidth, Height: cfg.Raster.ThumbnailHeight},
		},
		Extensions:    cfg.Library.Extensions,
		DecodeWorkers: cfg.Library.DecodeWorkers,
		VerifyCopies:  cfg.Library.VerifyCopies,
		Logger:        logger,
	}
}
