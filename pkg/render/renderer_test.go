package render

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/viticommall/placegen/pkg/catalog"
)

func newTestRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	r, err := NewRenderer(opts)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func countBright(img *image.RGBA, rect image.Rectangle) int {
	n := 0
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.R > 200 && c.G > 200 && c.B > 200 {
				n++
			}
		}
	}
	return n
}

func countDark(img *image.RGBA, rect image.Rectangle) int {
	n := 0
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.R < 64 && c.G < 64 && c.B < 64 {
				n++
			}
		}
	}
	return n
}

func TestFontFallback(t *testing.T) {
	fm, err := NewFontManager(filepath.Join(t.TempDir(), "Missing.ttf"))
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	if !fm.Fallback() {
		t.Fatal("expected fallback to embedded font")
	}
	if err := fm.LoadError(); err == nil || !strings.Contains(err.Error(), "Missing.ttf") {
		t.Fatalf("LoadError = %v, want the missing path", err)
	}

	fm, err = NewFontManager("")
	if err != nil {
		t.Fatalf("NewFontManager(empty): %v", err)
	}
	if !fm.Fallback() {
		t.Fatal("empty path should use embedded font")
	}
	if fm.LoadError() != nil {
		t.Fatalf("no font requested, got LoadError %v", fm.LoadError())
	}
	face, err := fm.Face(20)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	face.Close()
}

func TestRenderDefaults(t *testing.T) {
	r := newTestRenderer(t, Options{FontPath: filepath.Join(t.TempDir(), "Arial.ttf")})
	opts := r.Options()
	if opts.Width != 400 || opts.Height != 400 || opts.FontSize != 40 || opts.LabelSize != 20 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}

	img, err := r.Render(catalog.Product{Name: "Kit Decoración Cumpleaños Premium", Category: "Cumpleaños", Stem: "birthday_kit"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 400 {
		t.Fatalf("bounds = %v", b)
	}

	pink := color.RGBA{0xFF, 0x6B, 0x9D, 0xFF}
	if got := img.RGBAAt(0, 0); got != pink {
		t.Fatalf("corner = %v, want %v", got, pink)
	}

	if countBright(img, image.Rect(0, 0, 400, 340)) == 0 {
		t.Error("no white name text drawn")
	}
	if countDark(img, image.Rect(0, 0, 400, 340)) == 0 {
		t.Error("no shadow drawn")
	}
	if countBright(img, image.Rect(0, 360, 400, 400)) == 0 {
		t.Error("no category label drawn")
	}
}

func TestRenderUnknownCategory(t *testing.T) {
	r := newTestRenderer(t, Options{})
	img, err := r.Render(catalog.Product{Name: "Algo", Category: catalog.DownloadCategory})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := color.RGBA{0xCC, 0xCC, 0xCC, 0xFF}
	if got := img.RGBAAt(399, 0); got != want {
		t.Fatalf("corner = %v, want %v", got, want)
	}
}

func TestRenderBadPaletteColor(t *testing.T) {
	r := newTestRenderer(t, Options{Palette: catalog.Palette{"Rota": "#12", "Azar": "random"}})
	want := color.RGBA{0xCC, 0xCC, 0xCC, 0xFF}
	for _, category := range []string{"Rota", "Azar", "Azar"} {
		img, err := r.Render(catalog.Product{Name: "x", Category: category})
		if err != nil {
			t.Fatalf("Render(%s): %v", category, err)
		}
		if got := img.RGBAAt(0, 0); got != want {
			t.Fatalf("%s: corner = %v, want fallback %v", category, got, want)
		}
	}
}

// inkBounds returns the bounding box of pixels in rect whose coverage
// exceeds one half.
func inkBounds(img *image.RGBA, rect image.Rectangle, coverage func(color.RGBA) float64) image.Rectangle {
	var box image.Rectangle
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if coverage(img.RGBAAt(x, y)) > 0.5 {
				box = box.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return box
}

// Ink coverage of white text on black and of the black shadow on white.
func whiteInk(c color.RGBA) float64 { return float64(c.R) / 0xFF }
func darkInk(c color.RGBA) float64  { return 1 - float64(c.R)/0xFF }

func TestRenderGeometry(t *testing.T) {
	const w, h = 240, 400
	palette := catalog.Palette{"Negro": "#000000", "Blanco": "#FFFFFF"}
	onBlack := catalog.Product{Name: "MMMM MMMM", Category: "Negro"}
	onWhite := catalog.Product{Name: "MMMM MMMM", Category: "Blanco"}

	plain := newTestRenderer(t, Options{Width: w, Height: h, ShadowOffset: -1, Palette: palette})
	if got := plain.Lines(onBlack.Name); len(got) != 2 || got[0] != "MMMM" || got[1] != "MMMM" {
		t.Fatalf("lines = %q, want two identical lines", got)
	}
	img, err := plain.Render(onBlack)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// pitch 50, block height 100, so line tops sit at 150 and 200.
	first := inkBounds(img, image.Rect(0, 0, w, 200), whiteInk)
	second := inkBounds(img, image.Rect(0, 200, w, 300), whiteInk)
	if first.Empty() || second.Empty() {
		t.Fatalf("missing name ink: %v %v", first, second)
	}
	if d := second.Min.Y - first.Min.Y; d != 50 {
		t.Errorf("line pitch = %d, want 50", d)
	}
	if second.Sub(image.Pt(0, 50)) != first {
		t.Errorf("second line %v is not the first %v moved down one pitch", second, first)
	}
	ascent := plain.nameFace.Metrics().Ascent.Ceil()
	if first.Min.Y < 150 || first.Max.Y > 150+ascent+1 {
		t.Errorf("first line ink rows %d..%d outside top 150 + ascent %d", first.Min.Y, first.Max.Y, ascent)
	}
	if left, right := first.Min.X, w-first.Max.X; left-right > 4 || right-left > 4 {
		t.Errorf("line not centered: left %d right %d", left, right)
	}

	label := inkBounds(img, image.Rect(0, 300, w, h), whiteInk)
	if label.Empty() {
		t.Fatal("no category label drawn")
	}
	if label.Min.Y < h-40 || label.Min.Y > h-40+plain.labelFace.Metrics().Ascent.Ceil() {
		t.Errorf("label ink starts at row %d, want top at %d", label.Min.Y, h-40)
	}

	// White text on white leaves only the shadow visible.
	bare, err := plain.Render(onWhite)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := countDark(bare, bare.Bounds()); n != 0 {
		t.Fatalf("negative shadow offset drew %d dark pixels", n)
	}

	shadowed := newTestRenderer(t, Options{Width: w, Height: h, Palette: palette})
	simg, err := shadowed.Render(onWhite)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	shadow := inkBounds(simg, image.Rect(0, 0, w, 200), darkInk)
	if want := first.Max.Add(image.Pt(2, 2)); shadow.Max != want {
		t.Errorf("shadow ends at %v, want white ink end %v moved by (2,2)", shadow.Max, want)
	}
}

func TestRendererClose(t *testing.T) {
	r, err := NewRenderer(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestLinesFitCanvas(t *testing.T) {
	r := newTestRenderer(t, Options{})
	for _, p := range catalog.Defaults {
		lines := r.Lines(p.Name)
		if len(lines) == 0 {
			t.Fatalf("%s: no lines", p.Stem)
		}
		for _, l := range lines {
			if w := measure(r.nameFace, l); w > 360 && len(strings.Fields(l)) > 1 {
				t.Errorf("%s: line %q is %d px", p.Stem, l, w)
			}
		}
	}

	if got := r.Lines("Kit Decoración Cumpleaños Premium"); len(got) < 2 {
		t.Fatalf("expected the long name to wrap, got %q", got)
	}
}

func TestRenderCustomSize(t *testing.T) {
	r := newTestRenderer(t, Options{Width: 200, Height: 120, FontSize: 20})
	img, err := r.Render(catalog.Product{Name: "Velo de Novia", Category: "Bodas"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 120 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestFontDataFallback(t *testing.T) {
	fm, err := NewFontManagerFromBytes([]byte("not a font"))
	if err != nil {
		t.Fatalf("NewFontManagerFromBytes: %v", err)
	}
	if !fm.Fallback() || fm.LoadError() == nil {
		t.Fatal("expected fallback with a load error for unparsable font data")
	}

	r := newTestRenderer(t, Options{FontData: []byte("junk")})
	if !r.Fonts().Fallback() {
		t.Fatal("renderer should fall back on bad font data")
	}
}

func TestFontWarning(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "Arial.ttf")
	r := newTestRenderer(t, Options{FontPath: missing})
	if got := r.FontWarning(false); got != "" {
		t.Fatalf("default font path should fall back quietly, got %q", got)
	}
	if got := r.FontWarning(true); !strings.Contains(got, missing) || !strings.Contains(got, "built-in font") {
		t.Fatalf("FontWarning(true) = %q", got)
	}

	r = newTestRenderer(t, Options{})
	if got := r.FontWarning(true); got != "" {
		t.Fatalf("no font requested, got %q", got)
	}
}
