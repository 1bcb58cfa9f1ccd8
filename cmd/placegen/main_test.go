package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/viticommall/placegen/pkg/catalog"
)

func TestRunGeneratesCatalog(t *testing.T) {
	dir := t.TempDir()
	products := filepath.Join(dir, "products.json")
	if err := runInit([]string{"--products", products}); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	out := filepath.Join(dir, "out")
	if err := run([]string{"-o", out, "--products", products, "--size", "120", "--font", filepath.Join(dir, "none.ttf")}); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := catalog.Load(products)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range f.Products {
		if _, err := os.Stat(filepath.Join(out, p.Stem+".png")); err != nil {
			t.Errorf("missing %s.png: %v", p.Stem, err)
		}
	}
}

func TestRunDownload(t *testing.T) {
	out := filepath.Join(t.TempDir(), "globos.png")
	if err := runDownload([]string{"--query", "Globos Dorados", "-o", out}); err != nil {
		t.Fatalf("runDownload: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}

	if err := runDownload([]string{"-o", out}); err == nil {
		t.Fatal("expected error without --query")
	}
	if err := runDownload([]string{"--query", "x"}); err == nil {
		t.Fatal("expected error without output")
	}
}

func TestFormatList(t *testing.T) {
	f, err := catalog.Load("")
	if err != nil {
		t.Fatal(err)
	}
	s := formatList(f)
	if !strings.Contains(s, "birthday_kit") || !strings.Contains(s, "#FF6B9D") {
		t.Fatalf("list missing first product:\n%s", s)
	}
	if !strings.HasSuffix(s, "18 products\n") {
		t.Fatalf("list missing count:\n%s", s)
	}
}

func TestLoadProductsMissingFile(t *testing.T) {
	if _, err := loadProducts(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestFlagSet(t *testing.T) {
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	fs.String("font", "Arial.ttf", "")
	fs.Int("size", 400, "")
	if err := fs.Parse([]string{"--size", "120"}); err != nil {
		t.Fatal(err)
	}
	if flagSet(fs, "font") {
		t.Fatal("font reported as set when only its default applies")
	}
	if !flagSet(fs, "size") {
		t.Fatal("size not reported as set")
	}
}
