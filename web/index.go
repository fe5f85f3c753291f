package web

import (
	"bytes"
	"fmt"
	"html"
	"image/png"
	"net/http"

	"github.com/golang/glog"
	"github.com/vincent-petithory/dataurl"

	"github.com/tradelegends/mapedit/classify"
)

// indexHandler renders a single-page overview of the catalog: every
// category with its registered tiles, previews inlined as data URLs so
// the page works when saved to disk.
func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	h.tileLock.Lock()
	defer h.tileLock.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<!doctype html><title>tile catalog</title>")
	fmt.Fprint(w, "<style>img{image-rendering:pixelated;width:32px;height:32px;margin:1px}figure{display:inline-block;margin:4px;text-align:center;font:10px monospace}</style>")
	fmt.Fprintf(w, "<h1>tile catalog (%d tile types)</h1>", h.cat.Len())

	for _, cat := range classify.Categories() {
		tiles := h.cat.TilesIn(cat)
		fmt.Fprintf(w, "<h2>%s (%d)</h2>", cat, len(tiles))
		for _, t := range tiles {
			var buf bytes.Buffer
			if err := png.Encode(&buf, t.Texture); err != nil {
				glog.Errorf("encoding %s/%s for index: %v", cat, t.Key, err)
				continue
			}
			du := dataurl.New(buf.Bytes(), "image/png")
			fmt.Fprintf(w, `<figure><img src=%q alt=%q><figcaption>%s</figcaption></figure>`,
				du.String(), html.EscapeString(t.Key), html.EscapeString(t.Key))
		}
	}

	fmt.Fprint(w, "<h2>asset groups</h2>")
	for _, g := range h.cat.Groups() {
		fmt.Fprintf(w, `<figure><img src="/group/%s.gif" alt=%q><figcaption>%s (%d)</figcaption></figure>`,
			html.EscapeString(g.Name), html.EscapeString(g.Name), html.EscapeString(g.Name), len(g.Tiles))
	}
}
