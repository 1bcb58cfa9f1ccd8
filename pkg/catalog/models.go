// Package catalog holds the product records placeholders are generated for.
package catalog

// Product is one placeholder to render.
type Product struct {
	Name     string `json:"name"`     // text drawn in the middle of the image
	Category string `json:"category"` // selects the background color, drawn near the bottom
	Stem     string `json:"stem"`     // output filename without extension
}

// File is the top-level structure of a products JSON file.
type File struct {
	Products   []Product         `json:"products"`
	Categories map[string]string `json:"categories,omitempty"` // extra or overriding category colors
}

// DefaultColor is used for categories missing from the color table.
const DefaultColor = "#CCCCCC"

// DownloadCategory labels placeholders produced by the download stub.
const DownloadCategory = "Producto"

// CategoryColors maps category names to background colors.
var CategoryColors = map[string]string{
	"Cumpleaños":   "#FF6B9D",
	"Bodas":        "#FFD700",
	"Graduaciones": "#4A90E2",
	"Baby Shower":  "#FFB6C1",
	"Fiestas":      "#9370DB",
}

// ColorFor returns the background color for category.
func ColorFor(category string) string {
	if c, ok := CategoryColors[category]; ok {
		return c
	}
	return DefaultColor
}

// Palette is a category color table with a fallback.
type Palette map[string]string

// NewPalette returns the built-in colors overlaid with extra.
func NewPalette(extra map[string]string) Palette {
	p := make(Palette, len(CategoryColors)+len(extra))
	for k, v := range CategoryColors {
		p[k] = v
	}
	for k, v := range extra {
		p[k] = v
	}
	return p
}

// ColorFor returns the color for category, or DefaultColor.
func (p Palette) ColorFor(category string) string {
	if c, ok := p[category]; ok {
		return c
	}
	return DefaultColor
}

// Defaults is the built-in product list.
var Defaults = []Product{
	{"Kit Decoración Cumpleaños Premium", "Cumpleaños", "birthday_kit"},
	{"Centro de Mesa Boda Elegante", "Bodas", "wedding_centerpiece"},
	{"Set Baby Shower Completo", "Baby Shower", "baby_shower_set"},
	{"Arco de Globos Profesional", "Fiestas", "balloon_arch"},
	{"Gorra Graduación", "Graduaciones", "graduation_cap"},
	{"Luces LED Fiesta", "Fiestas", "led_lights"},
	{"Globos Metálicos", "Cumpleaños", "metallic_balloons"},
	{"Velo de Novia", "Bodas", "wedding_veil"},
	{"Toga Graduación", "Graduaciones", "graduation_gown"},
	{"Kit Fiesta Temática", "Fiestas", "party_kit"},
	{"Decoración Baby Shower Rosa", "Baby Shower", "baby_shower_pink"},
	{"Mesa de Dulces", "Cumpleaños", "candy_table"},
	{"Cojines Decorativos", "Bodas", "decorative_pillows"},
	{"Diploma Personalizado", "Graduaciones", "custom_diploma"},
	{"Ramo de Globos", "Baby Shower", "balloon_bouquet"},
	{"Candeleros Elegantes", "Bodas", "elegant_candles"},
	{"Kit Graduación Completo", "Graduaciones", "graduation_kit"},
	{"Decoración Fiesta Neon", "Fiestas", "neon_decor"},
}

// Find returns the product with the given stem.
func Find(products []Product, stem string) (Product, bool) {
	for _, p := range products {
		if p.Stem == stem {
			return p, true
		}
	}
	return Product{}, false
}
