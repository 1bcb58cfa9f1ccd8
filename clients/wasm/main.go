//go:build js && wasm

// placegen WASM — Client-side placeholder renderer.
// Compiled with: GOOS=js GOARCH=wasm go build -o placegen.wasm ./clients/wasm/
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"syscall/js"

	"github.com/viticommall/placegen/pkg/catalog"
	"github.com/viticommall/placegen/pkg/generator"
	"github.com/viticommall/placegen/pkg/render"
)

// Font bytes registered from JS; nil means the embedded font.
var (
	fontMu   sync.RWMutex
	fontData []byte
)

func main() {
	fmt.Println("placegen WASM loaded")

	js.Global().Set("goRenderPlaceholder", js.FuncOf(renderPlaceholder))
	js.Global().Set("goRegisterFont", js.FuncOf(registerFont))
	js.Global().Set("goCatalog", js.FuncOf(catalogJSON))
	js.Global().Set("goReady", js.ValueOf(true))

	// Block forever (WASM must not exit).
	select {}
}

// goRegisterFont(base64Data) — use a custom font for later renders.
func registerFont(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("error: need base64Data")
	}
	data, err := base64.StdEncoding.DecodeString(args[0].String())
	if err != nil {
		return js.ValueOf("error: invalid base64: " + err.Error())
	}

	fontMu.Lock()
	fontData = data
	fontMu.Unlock()
	return js.ValueOf("ok")
}

// goCatalog() — the built-in products as JSON.
func catalogJSON(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(catalog.File{Products: catalog.Defaults, Categories: catalog.CategoryColors})
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	return js.ValueOf(string(data))
}

// goRenderPlaceholder(name, category) — render and return base64 PNG.
func renderPlaceholder(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("error: need name, category")
	}
	p := catalog.Product{Name: args[0].String(), Category: args[1].String()}

	fontMu.RLock()
	opts := render.Options{FontData: fontData}
	fontMu.RUnlock()

	r, err := render.NewRenderer(opts)
	if err != nil {
		return js.ValueOf("error: renderer: " + err.Error())
	}
	defer r.Close()

	img, err := r.Render(p)
	if err != nil {
		return js.ValueOf("error: render: " + err.Error())
	}

	var buf bytes.Buffer
	if err := generator.GenerateToWriter(&buf, ".png", generator.Config{Image: img}); err != nil {
		return js.ValueOf("error: encode: " + err.Error())
	}
	return js.ValueOf(base64.StdEncoding.EncodeToString(buf.Bytes()))
}
