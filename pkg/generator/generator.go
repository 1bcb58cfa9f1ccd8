// Package generator encodes rendered placeholders to image files.
//
// All output follows one pipeline: build an image.Image first, then encode it
// in the format named by the file extension.
package generator

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

// Config holds parameters for image generation.
type Config struct {
	Image   image.Image // Rendered image to encode (required)
	Quality int         // JPEG quality 1-100 (default: 90)
}

var errNoImage = errors.New("no image to encode")

// Generate creates an output file. The format is inferred from the file extension:
//   - ".png" → PNG image
//   - ".jpg", ".jpeg" → JPEG image
func Generate(output string, cfg Config) error {
	if cfg.Image == nil {
		return errNoImage
	}

	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".png":
		return writePNG(output, cfg.Image)
	case ".jpg", ".jpeg":
		return writeJPEG(output, cfg.Image, cfg.Quality)
	default:
		return fmt.Errorf("unsupported format %q: use .png or .jpg", ext)
	}
}

// GenerateToWriter writes an image to w. The format is given by ext (".png" or ".jpg").
func GenerateToWriter(w io.Writer, ext string, cfg Config) error {
	if cfg.Image == nil {
		return errNoImage
	}

	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, cfg.Image)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, cfg.Image, &jpeg.Options{Quality: quality(cfg.Quality)})
	default:
		return fmt.Errorf("unsupported format %q: use .png or .jpg", ext)
	}
}

func quality(q int) int {
	if q <= 0 || q > 100 {
		return 90
	}
	return q
}
