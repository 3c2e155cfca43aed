package preflight

import (
	"context"

	"photoalbum/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Library directory (always checked)
	library := CheckDirectoryAccess("Library directory", cfg.Paths.LibraryDir)
	results = append(results, library)

	// Log directory (when file logging is on)
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	if library.Passed {
		results = append(results, CheckFreeSpace("Library free space", cfg.Paths.LibraryDir, MinFreeBytes))
		results = append(results, CheckLibraryLock(ctx, cfg.Paths.LibraryDir))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
