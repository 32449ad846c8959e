// Package imaging shrinks uploaded profile pictures before storage.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	DefaultMaxDimension = 800
	DefaultQuality      = 80
)

// Compressor downsizes pictures to fit a square box and re-encodes them as
// JPEG.
type Compressor struct {
	MaxDimension int
	Quality      int
}

func NewCompressor() *Compressor {
	return &Compressor{MaxDimension: DefaultMaxDimension, Quality: DefaultQuality}
}

// Compress returns the JPEG bytes and the matching content type.
func (c *Compressor) Compress(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	w, h := Fit(bounds.Dx(), bounds.Dy(), c.MaxDimension)

	// Flatten onto white so transparent PNGs do not turn black.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: c.Quality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// Fit scales (w, h) down so that the longer side is at most max, keeping
// the aspect ratio. Smaller images are left alone.
func Fit(w, h, max int) (int, int) {
	if max <= 0 || (w <= max && h <= max) {
		return w, h
	}
	if w >= h {
		nh := h * max / w
		if nh < 1 {
			nh = 1
		}
		return max, nh
	}
	nw := w * max / h
	if nw < 1 {
		nw = 1
	}
	return nw, max
}

// SanitizeFilename keeps ASCII letters, digits, underscores and hyphens of
// the base name. Spaces become underscores.
func SanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.ReplaceAll(strings.TrimSuffix(filename, ext), " ", "_")

	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
