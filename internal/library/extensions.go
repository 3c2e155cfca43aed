package library

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultExtensions are accepted when no extensions are configured.
var DefaultExtensions = []string{".jpg", ".jpeg"}

// ExtensionFilter matches file names by extension, ignoring case. Directory
// scans and imports share one filter.
type ExtensionFilter struct {
	exts []string
}

func NewExtensionFilter(exts []string) ExtensionFilter {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return ExtensionFilter{exts: out}
}

// Match reports whether name ends in an accepted extension and has a
// non-empty stem. Hidden files never match.
func (f ExtensionFilter) Match(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || len(ext) == len(name) {
		return false
	}
	for _, want := range f.exts {
		if ext == want {
			return true
		}
	}
	return false
}

// Extensions returns the accepted extensions in configured order.
func (f ExtensionFilter) Extensions() []string {
	return append([]string(nil), f.exts...)
}

// PhotoName derives a photo name from a file name by dropping the extension.
func PhotoName(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sameName compares photo names after NFC normalization, so names typed on
// one system match files written by another.
func sameName(a, b string) bool {
	return a == b || norm.NFC.String(a) == norm.NFC.String(b)
}
