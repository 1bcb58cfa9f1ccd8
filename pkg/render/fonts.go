// fonts.go - Font loading with custom TTF support and embedded fallback font.
// Falls back to Go Regular when no custom font is given or when it cannot be
// read or parsed.
package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontManager handles font loading with fallback.
type FontManager struct {
	parsed   *opentype.Font
	fallback bool
	loadErr  error // why the requested font was not used
}

// NewFontManager creates a font manager with the specified font.
// If customPath is empty or unusable, uses the embedded Go font and records
// the reason in LoadError. Callers decide whether that deserves a warning.
func NewFontManager(customPath string) (*FontManager, error) {
	var loadErr error
	if customPath != "" {
		parsed, err := loadFont(customPath)
		if err == nil {
			return &FontManager{parsed: parsed}, nil
		}
		loadErr = fmt.Errorf("load font %s: %w", customPath, err)
	}
	return embedded(loadErr)
}

// NewFontManagerFromBytes parses an in-memory font, falling back to the
// embedded Go font if data is empty or unparsable.
func NewFontManagerFromBytes(data []byte) (*FontManager, error) {
	if len(data) > 0 {
		parsed, err := opentype.Parse(data)
		if err == nil {
			return &FontManager{parsed: parsed}, nil
		}
		return embedded(fmt.Errorf("parse font data: %w", err))
	}
	return embedded(nil)
}

func embedded(loadErr error) (*FontManager, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	return &FontManager{parsed: parsed, fallback: true, loadErr: loadErr}, nil
}

// Fallback reports whether the embedded font is in use.
func (fm *FontManager) Fallback() bool {
	return fm.fallback
}

// LoadError returns why a requested font was replaced by the embedded one,
// or nil if no font was requested or it loaded fine.
func (fm *FontManager) LoadError() error {
	return fm.loadErr
}

// Face returns a font.Face at the specified pixel size (72 DPI).
func (fm *FontManager) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(fm.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}

func loadFont(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return opentype.Parse(data)
}
