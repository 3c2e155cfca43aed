package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"photoalbum/internal/iptc"
)

// WriteFile writes raw bytes to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// JPEGBytes encodes a width x height image filled with c.
func JPEGBytes(t testing.TB, width, height int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// WriteJPEG writes a plain JPEG without embedded metadata.
func WriteJPEG(t testing.TB, path string, width, height int, c color.RGBA) {
	t.Helper()
	WriteFile(t, path, JPEGBytes(t, width, height, c))
}

// WriteTaggedJPEG writes a JPEG carrying the given IPTC fields.
func WriteTaggedJPEG(t testing.TB, path string, width, height int, u iptc.Update) {
	t.Helper()
	data, err := iptc.Apply(JPEGBytes(t, width, height, color.RGBA{R: 80, G: 120, B: 160, A: 255}), u)
	if err != nil {
		t.Fatalf("apply iptc: %v", err)
	}
	WriteFile(t, path, data)
}
