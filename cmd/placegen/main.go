// placegen — Placeholder product images for an Xcode asset catalog.
//
// Usage:
//
//	placegen [-o <dir>] [--products <file>] [options]
//	placegen list [--products <file>]
//	placegen download --query <text> -o <file>
//	placegen serve [--port 8080]
//	placegen init
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/viticommall/placegen/clients/server"
	"github.com/viticommall/placegen/pkg/assets"
	"github.com/viticommall/placegen/pkg/catalog"
	"github.com/viticommall/placegen/pkg/render"
)

func main() {
	cmd, args := "", os.Args[1:]
	if len(args) > 0 {
		cmd = args[0]
	}

	var err error
	switch cmd {
	case "init":
		err = runInit(args[1:])
	case "list":
		err = runList(args[1:])
	case "download":
		err = runDownload(args[1:])
	case "serve":
		err = server.RunServe(args[1:])
	case "help", "-h", "--help":
		printUsage()
	default:
		// Default: generate mode (all flags on root).
		err = run(args)
	}
	if err != nil {
		fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("placegen", flag.ExitOnError)

	var (
		outDir       string
		productsPath string
		fontPath     string
		size         int
		format       string
		imageSet     bool
	)

	fs.StringVar(&outDir, "o", assets.DefaultDir, "Output directory")
	fs.StringVar(&outDir, "out", assets.DefaultDir, "Output directory")
	fs.StringVar(&productsPath, "products", "", "Products JSON file (default: built-in list)")
	fs.StringVar(&fontPath, "font", render.DefaultFontPath, "Preferred font file")
	fs.IntVar(&size, "size", 400, "Image width and height in pixels")
	fs.StringVar(&format, "format", "png", "Output format: png or jpg")
	fs.BoolVar(&imageSet, "imageset", false, "Write <stem>.imageset folders with Contents.json")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := loadProducts(productsPath)
	if err != nil {
		return err
	}

	r, err := render.NewRenderer(render.Options{
		Width:    size,
		Height:   size,
		FontPath: fontPath,
		Palette:  f.Palette(),
	})
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer r.Close()
	warnFont(r, fs)

	_, err = assets.Run(r, catalog.Usable(f.Products), assets.Options{
		Dir:      outDir,
		Format:   format,
		ImageSet: imageSet,
	})
	return err
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var productsPath string
	fs.StringVar(&productsPath, "products", "", "Products JSON file (default: built-in list)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := loadProducts(productsPath)
	if err != nil {
		return err
	}
	fmt.Print(formatList(f))
	return nil
}

func runDownload(args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	var query, output, fontPath string
	fs.StringVar(&query, "query", "", "Search text (rendered as the placeholder label)")
	fs.StringVar(&output, "o", "", "Output file path (.png or .jpg)")
	fs.StringVar(&output, "output", "", "Output file path (.png or .jpg)")
	fs.StringVar(&fontPath, "font", render.DefaultFontPath, "Preferred font file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if query == "" {
		return fmt.Errorf("--query is required for download")
	}
	if output == "" {
		return fmt.Errorf("output file is required (-o)")
	}

	r, err := render.NewRenderer(render.Options{FontPath: fontPath})
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer r.Close()
	warnFont(r, fs)

	fmt.Println("Remote images are not configured; generating a placeholder instead.")
	if err := assets.Download(r, query, output); err != nil {
		return err
	}
	fmt.Printf("Image created: %s\n", output)
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var productsOut string
	fs.StringVar(&productsOut, "products", "products.json", "Output path for sample products file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.WriteFile(productsOut, []byte(catalog.SampleJSON()), 0o644); err != nil {
		return fmt.Errorf("write products: %w", err)
	}

	fmt.Printf("Created: %s\n", productsOut)
	fmt.Printf("Run: placegen --products %s\n", productsOut)
	return nil
}

// loadProducts reads the product list and prints validation warnings.
func loadProducts(path string) (*catalog.File, error) {
	f, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	for _, w := range catalog.Validate(f) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	return f, nil
}

// warnFont prints a warning when a font given with --font could not be used.
// The default Arial.ttf falls back to Go Regular silently.
func warnFont(r *render.Renderer, fs *flag.FlagSet) {
	if w := r.FontWarning(flagSet(fs, "font")); w != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
}

// flagSet reports whether name was given on the command line.
func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func formatList(f *catalog.File) string {
	palette := f.Palette()
	var s string
	for _, p := range f.Products {
		s += fmt.Sprintf("%-22s %-8s %-14s %s\n", p.Stem, palette.ColorFor(p.Category), p.Category, p.Name)
	}
	s += fmt.Sprintf("\n%d products\n", len(f.Products))
	return s
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`placegen — Placeholder product images (Pure Go)

USAGE:
    placegen [options]
    placegen list [--products <file>]
    placegen download --query <text> -o <file>
    placegen serve [--port 8080] [--cache <file>]
    placegen init [--products <file>]

GENERATE:
    -o, --out <dir>        Output directory (default: ViticomMall/Assets.xcassets/ProductImages)
    --products <file>      Products JSON (default: built-in 18 products)
    --font <path>          Preferred font, falls back to Go Regular (default: Arial.ttf)
    --size <px>            Image width and height (default: 400)
    --format <png|jpg>     Output format (default: png)
    --imageset             Write Xcode .imageset folders with Contents.json

DOWNLOAD:
    --query <text>         Text for the placeholder (no network access is made)
    -o, --output <path>    Output file (.png or .jpg)

SERVE:
    --port <port>          Listen port (default: 8080)
    --cache <file>         SQLite cache for rendered images
    --products <file>      Products JSON
    --open                 Open the product list in a browser

EXAMPLES:
    placegen
    placegen -o out --imageset
    placegen init && placegen --products products.json
    placegen download --query "Globos Dorados" -o globos.png
    placegen serve --cache renders.db
`)
}
