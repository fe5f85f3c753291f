// Package tileset decides whether a decoded image is a single sprite or
// a tile sheet, and slices sheets into discrete, equally sized tiles.
//
// Sheets are distinguished from large single sprites by exact
// divisibility against a fixed ladder of candidate cell sizes, not by a
// confidence score. A large sprite whose dimensions happen to divide
// evenly will be misclassified as a sheet; callers that know better
// should not pass such images here.
package tileset

import (
	"image"
	"image/draw"

	"github.com/golang/glog"
)

// UnitCandidates is the ladder of cell sizes probed against a sheet's
// dimensions, in probe order. The first candidate evenly dividing both
// width and height wins.
var UnitCandidates = [5]int{16, 24, 32, 48, 64}

// maxSpriteSize is the largest dimension at which an image is always
// treated as a single sprite, regardless of divisibility.
const maxSpriteSize = 64

// ProbeUnit returns the effective slicing unit for a w×h image, probing
// UnitCandidates in order. ok is false when no candidate divides both
// dimensions evenly.
func ProbeUnit(w, h int) (unit int, ok bool) {
	for _, size := range UnitCandidates {
		if w%size == 0 && h%size == 0 {
			return size, true
		}
	}
	return 0, false
}

// Grid describes the cell layout of a sliced sheet.
type Grid struct {
	Unit int // cell edge, pixels
	Cols int
	Rows int
}

// GridFor computes the grid a w×h sheet yields for the given unit.
// Trailing pixels that do not fill a cell are not part of the grid.
func GridFor(w, h, unit int) Grid {
	return Grid{Unit: unit, Cols: w / unit, Rows: h / unit}
}

// Len returns the tile count of the grid.
func (g Grid) Len() int { return g.Cols * g.Rows }

// Cell maps a row-major tile index to its row and column.
func (g Grid) Cell(i int) (row, col int) {
	return i / g.Cols, i % g.Cols
}

// Slice partitions img into a row-major (top-to-bottom, left-to-right)
// sequence of tiles. The returned order is stable: downstream code uses
// slice indices as identifiers.
//
// The decision procedure, in order:
//
//  1. either dimension smaller than hint: single sprite;
//  2. both dimensions at most 64: single sprite, regardless of
//     divisibility;
//  3. otherwise the first of UnitCandidates dividing both dimensions
//     evenly becomes the slicing unit, overriding hint;
//  4. no candidate divides evenly: single sprite.
//
// A single sprite comes back as a one-element slice holding img itself.
// Partial trailing rows and columns of a sheet are dropped, not padded.
func Slice(img image.Image, hint int) []image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w < hint || h < hint {
		return []image.Image{img}
	}
	if w <= maxSpriteSize && h <= maxSpriteSize {
		return []image.Image{img}
	}

	unit, ok := ProbeUnit(w, h)
	if !ok {
		return []image.Image{img}
	}

	grid := GridFor(w, h, unit)
	glog.V(1).Infof("slicing %dx%d sheet into %d tiles of %dx%d", w, h, grid.Len(), unit, unit)

	tiles := make([]image.Image, 0, grid.Len())
	for y := b.Min.Y; y+unit <= b.Max.Y; y += unit {
		for x := b.Min.X; x+unit <= b.Max.X; x += unit {
			tile := image.NewRGBA(image.Rect(0, 0, unit, unit))
			draw.Draw(tile, tile.Bounds(), img, image.Pt(x, y), draw.Src)
			tiles = append(tiles, tile)
		}
	}
	return tiles
}
