// Package compositor paints a map document into an image.Image using a
// tile catalog.
//
// Placements hold soft references (a tile type name plus provenance),
// not texture handles, so every cell goes through an explicit resolution
// step here. A reference the catalog cannot satisfy degrades to the
// tile's fallback color; it never fails the composition.
package compositor

import (
	"image"
	"image/draw"

	"github.com/golang/glog"

	"github.com/tradelegends/mapedit/catalog"
	"github.com/tradelegends/mapedit/classify"
	"github.com/tradelegends/mapedit/mapdoc"
)

// Resolve returns the texture for a placement. It prefers the recorded
// source category, then falls back to searching every category, since a
// document may have been saved against a differently organized catalog.
// ok is false when the reference could not be satisfied at all.
func Resolve(cat *catalog.Catalog, p *mapdoc.Placement) (image.Image, bool) {
	if c := classify.Category(p.SourceCategory); classify.Valid(c) {
		if t, found := cat.Tile(c, p.Type); found {
			return t.Texture, true
		}
	}
	for _, c := range classify.Categories() {
		if t, found := cat.Tile(c, p.Type); found {
			return t.Texture, true
		}
	}
	return nil, false
}

// Compose renders the whole document, layers painted in their fixed
// order, each placement at its grid cell. Cells no layer covers stay
// transparent.
func Compose(doc *mapdoc.Document, cat *catalog.Catalog) *image.RGBA {
	ts := doc.TileSize
	img := image.NewRGBA(image.Rect(0, 0, doc.Width*ts, doc.Height*ts))

	for _, layer := range mapdoc.Layers() {
		doc.EachPlacement(layer, func(p *mapdoc.Placement) {
			dst := image.Rect(p.X*ts, p.Y*ts, (p.X+1)*ts, (p.Y+1)*ts)

			tex, ok := Resolve(cat, p)
			if !ok {
				glog.Warningf("map %q: no texture for %s at (%d,%d) on %s; using fallback color",
					doc.Name, p.Type, p.X, p.Y, layer)
				draw.Draw(img, dst, image.NewUniform(cat.Color(p.Type)), image.ZP, draw.Over)
				return
			}
			draw.Draw(img, dst, tex, tex.Bounds().Min, draw.Over)
		})
	}
	return img
}
