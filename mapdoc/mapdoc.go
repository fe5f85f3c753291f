// Package mapdoc implements the layered sparse map document: a bounded
// 2D grid composed of independent named layers, each a sparse set of
// placed tiles.
//
// A document is independent of any tile catalog. Placements carry a tile
// type name and provenance metadata, not texture handles; whoever renders
// the document resolves those soft references against whatever catalog is
// loaded at the time and falls back to a placeholder for missing entries.
package mapdoc

import (
	"fmt"

	"github.com/pkg/errors"
)

// DefaultTileSize is the grid cell edge a new document records. It
// matches the canonical texture size the ingestion pipeline produces.
const DefaultTileSize = 32

// DefaultName is the name a freshly created document carries.
const DefaultName = "New Map"

// Layers returns the fixed layer set of every document, in paint order.
func Layers() []string {
	return []string{"terrain", "vegetation", "buildings", "decorations", "npcs"}
}

// ValidLayer reports whether name is one of the fixed layer names.
func ValidLayer(name string) bool {
	for _, l := range Layers() {
		if l == name {
			return true
		}
	}
	return false
}

var (
	// ErrOutOfBounds rejects a placement outside the document grid.
	ErrOutOfBounds = errors.New("placement out of bounds")
	// ErrNoTileType rejects a placement with an empty tile type.
	ErrNoTileType = errors.New("no tile type given")
	// ErrUnknownLayer rejects an operation on a layer outside the fixed set.
	ErrUnknownLayer = errors.New("unknown layer")
)

// pos packs a cell coordinate into a single map key.
type pos uint64

func posFromCoord(x, y int) pos {
	return pos(uint64(uint32(y))<<32 | uint64(uint32(x)))
}

func (p pos) String() string {
	return fmt.Sprintf("(%d,%d)", uint32(p), uint32(p>>32))
}

// Placement is a single tile-type reference bound to one cell on one
// layer. The coordinate fields repeat the containing cell and always
// agree with it; the provenance fields let a renderer re-resolve the
// texture later.
type Placement struct {
	Type  string `json:"type"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Layer string `json:"layer"`

	Path           string `json:"path,omitempty"`
	SourceCategory string `json:"source_category,omitempty"`
	Sliced         bool   `json:"is_sliced,omitempty"`
	SheetIndex     int    `json:"tileset_index,omitempty"`
}

// Provenance carries the asset metadata recorded alongside a placement.
type Provenance struct {
	Path       string
	Category   string
	Sliced     bool
	SheetIndex int
}

// Document is a bounded grid of named layers holding sparse tile
// placements.
type Document struct {
	Name     string
	Width    int
	Height   int
	TileSize int

	layers map[string]map[pos]*Placement
}

// New returns an empty document of the given size. Every layer of the
// fixed set is present from the start.
func New(width, height int) *Document {
	d := &Document{
		Name:     DefaultName,
		Width:    width,
		Height:   height,
		TileSize: DefaultTileSize,
		layers:   map[string]map[pos]*Placement{},
	}
	for _, l := range Layers() {
		d.layers[l] = map[pos]*Placement{}
	}
	return d
}

// inBounds reports whether (x, y) addresses a cell of the grid.
func (d *Document) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.Width && y < d.Height
}

// Place inserts or overwrites the placement at (x, y) on the layer. The
// provenance, when non-nil, is carried into the stored record.
func (d *Document) Place(layer string, x, y int, tileType string, prov *Provenance) error {
	cells, ok := d.layers[layer]
	if !ok {
		return errors.Wrapf(ErrUnknownLayer, "layer %q", layer)
	}
	if !d.inBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "(%d,%d) outside %dx%d", x, y, d.Width, d.Height)
	}
	if tileType == "" {
		return ErrNoTileType
	}

	p := &Placement{Type: tileType, X: x, Y: y, Layer: layer}
	if prov != nil {
		p.Path = prov.Path
		p.SourceCategory = prov.Category
		p.Sliced = prov.Sliced
		p.SheetIndex = prov.SheetIndex
	}
	cells[posFromCoord(x, y)] = p
	return nil
}

// Remove deletes the placement at (x, y) on the layer. An absent cell,
// an out-of-bounds coordinate or an unknown layer is a no-op.
func (d *Document) Remove(layer string, x, y int) {
	cells, ok := d.layers[layer]
	if !ok || !d.inBounds(x, y) {
		return
	}
	delete(cells, posFromCoord(x, y))
}

// At returns the placement at (x, y) on the layer, if any.
func (d *Document) At(layer string, x, y int) (*Placement, bool) {
	p, ok := d.layers[layer][posFromCoord(x, y)]
	return p, ok
}

// LayerLen returns the number of placements on the layer.
func (d *Document) LayerLen(layer string) int {
	return len(d.layers[layer])
}

// Len returns the total number of placements across all layers.
func (d *Document) Len() int {
	n := 0
	for _, cells := range d.layers {
		n += len(cells)
	}
	return n
}

// EachPlacement calls fn for every placement on the layer. Iteration
// order is unspecified.
func (d *Document) EachPlacement(layer string, fn func(*Placement)) {
	for _, p := range d.layers[layer] {
		fn(p)
	}
}
