// loader.go — Load product lists from JSON files.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/viticommall/placegen/pkg/generator"
)

// Load reads a products JSON file. An empty path returns the built-in list.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{Products: append([]Product(nil), Defaults...)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	return Parse(data)
}

// Parse decodes a products JSON document and trims its fields.
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse products JSON: %w", err)
	}

	for i := range f.Products {
		p := &f.Products[i]
		p.Name = strings.TrimSpace(p.Name)
		p.Category = strings.TrimSpace(p.Category)
		p.Stem = strings.TrimSpace(p.Stem)
	}
	return &f, nil
}

// Palette returns the file's color table merged over the built-in one.
func (f *File) Palette() Palette {
	return NewPalette(f.Categories)
}

// Validate reports problems with a product list. Returns warnings, never fatal errors.
func Validate(f *File) []string {
	if f == nil {
		return nil
	}

	var warnings []string
	if len(f.Products) == 0 {
		warnings = append(warnings, "product list is empty — nothing to generate")
	}

	palette := f.Palette()
	seen := make(map[string]int, len(f.Products))
	for i, p := range f.Products {
		if p.Stem == "" {
			warnings = append(warnings, fmt.Sprintf("product %d (%q) has no stem — skipped", i, p.Name))
			continue
		}
		if strings.ContainsAny(p.Stem, `/\`) {
			warnings = append(warnings, fmt.Sprintf("stem %q contains a path separator — skipped", p.Stem))
		}
		if prev, ok := seen[p.Stem]; ok {
			warnings = append(warnings, fmt.Sprintf("stem %q used by products %d and %d — later one overwrites", p.Stem, prev, i))
		}
		seen[p.Stem] = i

		if p.Name == "" {
			warnings = append(warnings, fmt.Sprintf("product %q has an empty name", p.Stem))
		}
		if _, ok := palette[p.Category]; !ok {
			warnings = append(warnings, fmt.Sprintf("product %q: unknown category %q — using %s", p.Stem, p.Category, DefaultColor))
		}
	}

	names := make([]string, 0, len(f.Categories))
	for name := range f.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := f.Categories[name]
		if _, _, _, err := generator.ParseHex(c); err != nil {
			warnings = append(warnings, fmt.Sprintf("category %q has invalid color %q — using %s", name, c, DefaultColor))
		}
	}

	return warnings
}

// Usable filters out products that cannot be written to disk.
func Usable(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Stem == "" || strings.ContainsAny(p.Stem, `/\`) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SampleJSON returns a starter products file for placegen init.
func SampleJSON() string {
	return `{
  "categories": {
    "Navidad": "#2E8B57"
  },
  "products": [
    { "name": "Kit Decoración Cumpleaños Premium", "category": "Cumpleaños", "stem": "birthday_kit" },
    { "name": "Centro de Mesa Boda Elegante", "category": "Bodas", "stem": "wedding_centerpiece" },
    { "name": "Gorra Graduación", "category": "Graduaciones", "stem": "graduation_cap" },
    { "name": "Árbol Navideño Dorado", "category": "Navidad", "stem": "christmas_tree" }
  ]
}
`
}
