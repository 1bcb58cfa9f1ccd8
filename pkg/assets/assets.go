// Package assets writes rendered placeholders into an asset directory.
package assets

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/viticommall/placegen/pkg/catalog"
	"github.com/viticommall/placegen/pkg/generator"
)

// DefaultDir is where placeholders land when no output directory is given.
const DefaultDir = "ViticomMall/Assets.xcassets/ProductImages"

// Renderer draws one placeholder.
type Renderer interface {
	Render(p catalog.Product) (*image.RGBA, error)
}

// Options controls where and how placeholders are written.
type Options struct {
	Dir      string    // output directory (default DefaultDir)
	Format   string    // "png" (default) or "jpg"
	ImageSet bool      // write <stem>.imageset/ folders with Contents.json
	Out      io.Writer // progress output (default os.Stdout)
}

func (o Options) withDefaults() Options {
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.Format == "" {
		o.Format = "png"
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	return o
}

// Summary describes a completed run.
type Summary struct {
	Dir   string
	Files []string
}

// Run renders every product and writes it under opts.Dir. It stops at the
// first failure.
func Run(r Renderer, products []catalog.Product, opts Options) (*Summary, error) {
	opts = opts.withDefaults()
	ext, err := extension(opts.Format)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintln(opts.Out, "Generating product placeholder images...")

	sum := &Summary{Dir: opts.Dir}
	for _, p := range products {
		path, err := writeOne(r, p, opts, ext)
		if err != nil {
			return sum, fmt.Errorf("%s: %w", p.Stem, err)
		}
		sum.Files = append(sum.Files, path)
		fmt.Fprintf(opts.Out, "Image created: %s\n", path)
	}

	fmt.Fprintf(opts.Out, "\nGenerated %d images in %s\n", len(sum.Files), opts.Dir)
	if !opts.ImageSet {
		fmt.Fprint(opts.Out, `
To use these images:
1. Drag the images into Assets.xcassets in Xcode
2. Create Image Sets with the matching names
3. The images will load automatically in the app
`)
	}
	return sum, nil
}

// Path returns the file a product is written to.
func Path(p catalog.Product, opts Options) string {
	opts = opts.withDefaults()
	ext, err := extension(opts.Format)
	if err != nil {
		ext = ".png"
	}
	return outputPath(p, opts, ext)
}

func outputPath(p catalog.Product, opts Options, ext string) string {
	name := p.Stem + ext
	if opts.ImageSet {
		return filepath.Join(opts.Dir, p.Stem+".imageset", name)
	}
	return filepath.Join(opts.Dir, name)
}

func writeOne(r Renderer, p catalog.Product, opts Options, ext string) (string, error) {
	img, err := r.Render(p)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	path := outputPath(p, opts, ext)
	if opts.ImageSet {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("create image set: %w", err)
		}
		if err := writeContents(filepath.Dir(path), filepath.Base(path)); err != nil {
			return "", err
		}
	}

	if err := generator.Generate(path, generator.Config{Image: img}); err != nil {
		return "", err
	}
	return path, nil
}

// Download is the remote-image stub. It never touches the network: it renders
// a placeholder for query under the generic product category instead.
func Download(r Renderer, query, filename string) error {
	img, err := r.Render(catalog.Product{Name: query, Category: catalog.DownloadCategory})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := generator.Generate(filename, generator.Config{Image: img}); err != nil {
		return err
	}
	return nil
}

func extension(format string) (string, error) {
	switch format {
	case "png", ".png":
		return ".png", nil
	case "jpg", "jpeg", ".jpg", ".jpeg":
		return ".jpg", nil
	default:
		return "", fmt.Errorf("unsupported format %q: use png or jpg", format)
	}
}
