// Package web serves a read-only browser for a tile catalog and the
// saved map documents: PNG per tile, animated GIF per asset group, and
// an HTML index with inline previews.
package web

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
	"github.com/gorilla/mux"

	"github.com/tradelegends/mapedit/catalog"
	"github.com/tradelegends/mapedit/classify"
	"github.com/tradelegends/mapedit/compositor"
	"github.com/tradelegends/mapedit/mapdoc"
)

// generation is baked into ETags; bump it when the way images are
// generated changes.
const generation = 1

// Handler serves one catalog and one maps directory.
type Handler struct {
	tileLock sync.Mutex

	cat     *catalog.Catalog
	mapsDir string
}

// NewHandler constructs a web handler for the passed catalog. mapsDir
// may be empty, which disables the map endpoints.
func NewHandler(cat *catalog.Catalog, mapsDir string) *Handler {
	return &Handler{cat: cat, mapsDir: mapsDir}
}

// RegisterRoutes attaches all handler routes to the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/tile/{category}/{name}.png", h.tileHandler)
	r.HandleFunc("/group/{name}.gif", h.groupGIFHandler)
	r.HandleFunc("/maps", h.mapListHandler)
	r.HandleFunc("/map/{name}.json", h.mapHandler)
	r.HandleFunc("/map/{name}.png", h.mapImageHandler)
}

// fallbackTile renders the solid-color stand-in used when a tile type
// has no texture.
func (h *Handler) fallbackTile(name string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, catalog.TileSize, catalog.TileSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(h.cat.Color(name)), image.ZP, draw.Src)
	return img
}

func (h *Handler) tileHandler(w http.ResponseWriter, r *http.Request) {
	h.tileLock.Lock()
	defer h.tileLock.Unlock()

	vars := mux.Vars(r)
	cat := classify.Category(vars["category"])
	name := vars["name"]
	if !classify.Valid(cat) {
		http.Error(w, "unknown category", http.StatusNotFound)
		return
	}

	mime := "image/png"
	etag := fmt.Sprintf(`W/"tile:%d:%s:%s:%s"`, generation, cat, name, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	img := h.tileImage(cat, name)

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=36000")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}

// tileImage resolves the tile's texture, degrading to the fallback
// color stand-in when the catalog has no such entry.
func (h *Handler) tileImage(cat classify.Category, name string) image.Image {
	if t, ok := h.cat.Tile(cat, name); ok {
		return t.Texture
	}
	glog.Warningf("no texture for %s/%s; serving fallback color", cat, name)
	return h.fallbackTile(name)
}

func (h *Handler) groupGIFHandler(w http.ResponseWriter, r *http.Request) {
	h.tileLock.Lock()
	defer h.tileLock.Unlock()

	vars := mux.Vars(r)
	g, ok := h.cat.Group(vars["name"])
	if !ok {
		http.Error(w, "unknown asset group", http.StatusNotFound)
		return
	}

	mime := "image/gif"
	etag := fmt.Sprintf(`W/"group:%d:%s:%d:%s"`, generation, g.Name, len(g.Tiles), mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "public; max-age=36000")
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	anim := &gif.GIF{}
	q := quantize.MedianCutQuantizer{}
	for _, name := range g.Tiles {
		img := h.tileImage(g.Category, name)

		pal := q.Quantize(make([]color.Color, 0, 255), img)

		// Prepend transparency so empty pixels default to it, then
		// copy the frame over with the combined palette.
		frame := image.NewPaletted(img.Bounds(), append(color.Palette{color.Transparent}, pal...))
		draw.Draw(frame, img.Bounds(), img, image.ZP, draw.Over)

		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 50) // hundredths of a second
	}
	if len(anim.Image) == 0 {
		http.Error(w, "asset group has no tiles", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=36000")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	gif.EncodeAll(w, anim)
}

func (h *Handler) mapListHandler(w http.ResponseWriter, r *http.Request) {
	if h.mapsDir == "" {
		http.Error(w, "no maps directory configured", http.StatusNotFound)
		return
	}
	paths, err := mapdoc.ListMaps(h.mapsDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, p := range paths {
		fmt.Fprintln(w, strings.TrimSuffix(filepath.Base(p), ".json"))
	}
}

func (h *Handler) mapHandler(w http.ResponseWriter, r *http.Request) {
	if h.mapsDir == "" {
		http.Error(w, "no maps directory configured", http.StatusNotFound)
		return
	}
	vars := mux.Vars(r)

	// The route variable is a map name, not a path; FileName flattens it
	// to the conventional file name so traversal is not possible.
	path := filepath.Join(h.mapsDir, mapdoc.FileName(vars["name"]))
	d, err := mapdoc.Load(path)
	if err != nil {
		glog.Errorf("loading map for serving: %v", err)
		http.Error(w, "map not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := d.Encode(w); err != nil {
		glog.Errorf("encoding map %q: %v", d.Name, err)
	}
}

// mapImageHandler renders the stored map through the compositor.
func (h *Handler) mapImageHandler(w http.ResponseWriter, r *http.Request) {
	if h.mapsDir == "" {
		http.Error(w, "no maps directory configured", http.StatusNotFound)
		return
	}
	vars := mux.Vars(r)

	path := filepath.Join(h.mapsDir, mapdoc.FileName(vars["name"]))
	d, err := mapdoc.Load(path)
	if err != nil {
		glog.Errorf("loading map for rendering: %v", err)
		http.Error(w, "map not found", http.StatusNotFound)
		return
	}

	h.tileLock.Lock()
	img := compositor.Compose(d, h.cat)
	h.tileLock.Unlock()

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}
