package config

const (
	defaultConfigPath       = "~/.config/photoalbum/config.toml"
	projectConfigName       = "photoalbum.toml"
	defaultLibraryDir       = "~/Pictures/photoalbum"
	defaultLogDir           = "~/.local/share/photoalbum/logs"
	defaultLogRetentionDays = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultMaxWidth         = 600
	defaultMaxHeight        = 400
	defaultThumbnailWidth   = 120
	defaultThumbnailHeight  = 80
	defaultDecodeWorkers    = 1
	defaultWatchDebounceMS  = 500

	envLibraryDir = "PHOTOALBUM_LIBRARY_DIR"
	envLogLevel   = "PHOTOALBUM_LOG_LEVEL"
)

var defaultExtensions = []string{".jpg", ".jpeg"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Raster: Raster{
			MaxWidth:        defaultMaxWidth,
			MaxHeight:       defaultMaxHeight,
			ThumbnailWidth:  defaultThumbnailWidth,
			ThumbnailHeight: defaultThumbnailHeight,
		},
		Library: Library{
			Extensions:    append([]string(nil), defaultExtensions...),
			DecodeWorkers: defaultDecodeWorkers,
			VerifyCopies:  true,
		},
		Watch: Watch{
			DebounceMS: defaultWatchDebounceMS,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
