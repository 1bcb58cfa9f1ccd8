// Package server provides an HTTP preview API for placeholder images.
package server

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/google/uuid"

	"github.com/viticommall/placegen/pkg/cache"
	"github.com/viticommall/placegen/pkg/catalog"
	"github.com/viticommall/placegen/pkg/render"
)

// ── Server ──

type srv struct {
	renderer *render.Renderer
	products []catalog.Product
	palette  catalog.Palette
	cache    *cache.Store // nil disables caching
}

// New returns the API handler. store may be nil.
func New(r *render.Renderer, f *catalog.File, store *cache.Store) http.Handler {
	s := &srv{
		renderer: r,
		products: catalog.Usable(f.Products),
		palette:  f.Palette(),
		cache:    store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", s.handleProducts)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/placeholder/{stem}", s.handlePlaceholder)
	mux.HandleFunc("POST /api/render", s.handleRender)

	return withRequestID(mux)
}

// RunServe starts the preview server.
func RunServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		port         string
		cachePath    string
		fontPath     string
		productsPath string
		open         bool
	)
	fs.StringVar(&port, "port", "8080", "Port to listen on")
	fs.StringVar(&port, "p", "8080", "Port to listen on")
	fs.StringVar(&cachePath, "cache", "", "SQLite cache file for rendered images (optional)")
	fs.StringVar(&fontPath, "font", render.DefaultFontPath, "Preferred font file")
	fs.StringVar(&productsPath, "products", "", "Products JSON file (default: built-in list)")
	fs.BoolVar(&open, "open", false, "Open the product list in a browser")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := catalog.Load(productsPath)
	if err != nil {
		return err
	}
	for _, w := range catalog.Validate(f) {
		log.Printf("Warning: %s", w)
	}

	r, err := render.NewRenderer(render.Options{FontPath: fontPath, Palette: f.Palette()})
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer r.Close()
	fontGiven := false
	fs.Visit(func(f *flag.Flag) { fontGiven = fontGiven || f.Name == "font" })
	if w := r.FontWarning(fontGiven); w != "" {
		log.Printf("Warning: %s", w)
	}

	var store *cache.Store
	if cachePath != "" {
		store, err = cache.Open(cachePath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	addr := ":" + port
	log.Printf("placegen preview → http://localhost%s/api/products", addr)
	if open {
		go openBrowser("http://localhost" + addr + "/api/products")
	}

	return http.ListenAndServe(addr, New(r, f, store))
}

// ── Middleware ──

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		log.Printf("%s %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// ── Catalog ──

type productView struct {
	catalog.Product
	Color string `json:"color"`
	URL   string `json:"url"`
}

func (s *srv) handleProducts(w http.ResponseWriter, r *http.Request) {
	views := make([]productView, 0, len(s.products))
	for _, p := range s.products {
		views = append(views, productView{
			Product: p,
			Color:   s.palette.ColorFor(p.Category),
			URL:     "/api/placeholder/" + p.Stem,
		})
	}
	writeJSON(w, views)
}

func (s *srv) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.palette)
}

// ── Render ──

func (s *srv) handlePlaceholder(w http.ResponseWriter, r *http.Request) {
	stem := r.PathValue("stem")
	p, ok := catalog.Find(s.products, stem)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.servePNG(w, p)
}

type renderRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (s *srv) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req renderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "decode request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	s.servePNG(w, catalog.Product{Name: req.Name, Category: req.Category})
}

func (s *srv) servePNG(w http.ResponseWriter, p catalog.Product) {
	data, err := s.renderPNG(p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func (s *srv) renderPNG(p catalog.Product) ([]byte, error) {
	opts := s.renderer.Options()
	key := cache.Key(p.Name, p.Category, s.palette.ColorFor(p.Category),
		strconv.Itoa(opts.Width), strconv.Itoa(opts.Height),
		strconv.FormatFloat(opts.FontSize, 'f', -1, 64), opts.FontPath)

	if s.cache != nil {
		data, ok, err := s.cache.Get(key)
		if err != nil {
			log.Printf("Warning: %v", err)
		} else if ok {
			return data, nil
		}
	}

	img, err := s.renderer.Render(p)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Put(key, buf.Bytes()); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	return buf.Bytes(), nil
}

// ── Helpers ──

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Warning: encode response: %v", err)
	}
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	cmd.Start()
}
