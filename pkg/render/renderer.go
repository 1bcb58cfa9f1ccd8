// renderer.go - Placeholder rendering: category background, wrapped product
// name centered with a drop shadow, category label along the bottom edge.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/viticommall/placegen/pkg/catalog"
	"github.com/viticommall/placegen/pkg/generator"
	"github.com/viticommall/placegen/pkg/textwrap"
)

// Options controls placeholder geometry and fonts. Zero fields take defaults.
// LineSpacing and ShadowOffset accept a negative value to mean none.
type Options struct {
	Width        int     // canvas width (default 400)
	Height       int     // canvas height (default 400)
	FontSize     float64 // product name size in px (default 40)
	LineSpacing  int     // extra px between name lines (default 10, <0 for none)
	Margin       int     // horizontal space excluded from the wrap width (default 40)
	ShadowOffset int     // drop shadow offset in px (default 2, <0 for no shadow)
	LabelSize    float64 // category label size in px (default 20)
	LabelOffset  int     // label top, measured up from the bottom edge (default 40)
	FontPath     string  // preferred TTF/OTF; falls back to Go Regular
	FontData     []byte  // in-memory font; takes precedence over FontPath
	Palette      catalog.Palette
}

// DefaultFontPath is the preferred font file, looked up relative to the working directory.
const DefaultFontPath = "Arial.ttf"

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 400
	}
	if o.Height <= 0 {
		o.Height = 400
	}
	if o.FontSize <= 0 {
		o.FontSize = 40
	}
	switch {
	case o.LineSpacing == 0:
		o.LineSpacing = 10
	case o.LineSpacing < 0:
		o.LineSpacing = 0
	}
	if o.Margin <= 0 {
		o.Margin = 40
	}
	switch {
	case o.ShadowOffset == 0:
		o.ShadowOffset = 2
	case o.ShadowOffset < 0:
		o.ShadowOffset = 0
	}
	if o.LabelSize <= 0 {
		o.LabelSize = 20
	}
	if o.LabelOffset <= 0 {
		o.LabelOffset = 40
	}
	if o.Palette == nil {
		o.Palette = catalog.NewPalette(nil)
	}
	return o
}

var (
	textColor   = color.RGBA{255, 255, 255, 255}
	shadowColor = color.RGBA{0, 0, 0, 255}
	defaultBG   = color.RGBA{0xCC, 0xCC, 0xCC, 255}
)

// Renderer draws placeholder images. Safe for concurrent use.
type Renderer struct {
	opts  Options
	fonts *FontManager

	mu        sync.Mutex // faces are not safe for concurrent use
	nameFace  font.Face
	labelFace font.Face
}

// NewRenderer creates a renderer, loading opts.FontPath with fallback.
func NewRenderer(opts Options) (*Renderer, error) {
	opts = opts.withDefaults()

	var fm *FontManager
	var err error
	if opts.FontData != nil {
		fm, err = NewFontManagerFromBytes(opts.FontData)
	} else {
		fm, err = NewFontManager(opts.FontPath)
	}
	if err != nil {
		return nil, err
	}
	nameFace, err := fm.Face(opts.FontSize)
	if err != nil {
		return nil, err
	}
	labelFace, err := fm.Face(opts.LabelSize)
	if err != nil {
		nameFace.Close()
		return nil, err
	}

	return &Renderer{
		opts:      opts,
		fonts:     fm,
		nameFace:  nameFace,
		labelFace: labelFace,
	}, nil
}

// Options returns the effective options after defaults.
func (r *Renderer) Options() Options {
	return r.opts
}

// Fonts returns the renderer's font manager.
func (r *Renderer) Fonts() *FontManager {
	return r.fonts
}

// FontWarning describes why a requested font was not used. It returns ""
// unless requested is set and the renderer fell back to the embedded font.
func (r *Renderer) FontWarning(requested bool) string {
	if !requested || !r.fonts.Fallback() || r.fonts.LoadError() == nil {
		return ""
	}
	return fmt.Sprintf("%v; using the built-in font", r.fonts.LoadError())
}

// Close releases the font faces.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.nameFace.Close(), r.labelFace.Close())
}

// Lines returns the product name broken into the rows Render draws.
func (r *Renderer) Lines(name string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lines(name)
}

func (r *Renderer) lines(name string) []string {
	maxWidth := float64(r.opts.Width - r.opts.Margin)
	return textwrap.Strings(textwrap.WrapString(name, maxWidth, textwrap.FaceMeasure(r.nameFace)))
}

// Render creates the placeholder for p. A category color that does not parse
// as #rrggbb renders on the default gray. Layers, bottom to top:
// 1. Solid background in the category color
// 2. Product name lines, each centered, shadow first then white text
// 3. Category label centered near the bottom edge
func (r *Renderer) Render(p catalog.Product) (*image.RGBA, error) {
	bg := generator.ParseHexRGBA(r.opts.Palette.ColorFor(p.Category), defaultBG)
	img := generator.NewSolidImage(r.opts.Width, r.opts.Height, bg)

	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.lines(p.Name)
	pitch := int(r.opts.FontSize) + r.opts.LineSpacing
	yStart := (r.opts.Height - len(lines)*pitch) / 2

	for i, line := range lines {
		x := (r.opts.Width - measure(r.nameFace, line)) / 2
		y := yStart + i*pitch
		if off := r.opts.ShadowOffset; off > 0 {
			drawString(img, line, x+off, y+off, shadowColor, r.nameFace)
		}
		drawString(img, line, x, y, textColor, r.nameFace)
	}

	if p.Category != "" {
		x := (r.opts.Width - measure(r.labelFace, p.Category)) / 2
		y := r.opts.Height - r.opts.LabelOffset
		drawString(img, p.Category, x, y, textColor, r.labelFace)
	}

	return img, nil
}

// measure returns the advance width of text in whole pixels.
func measure(face font.Face, text string) int {
	return font.MeasureString(face, text).Ceil()
}

// drawString draws text with its top edge at y.
func drawString(dst draw.Image, text string, x, y int, col color.Color, face font.Face) {
	ascent := face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+ascent),
	}
	d.DrawString(text)
}
