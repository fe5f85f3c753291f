package tileset

import (
	"image"
	"image/color"
	"testing"

	"github.com/bradfitz/iter"
)

func TestProbeUnit(t *testing.T) {
	cases := []struct {
		w, h   int
		unit   int
		sliced bool
	}{
		{128, 96, 16, true},  // 16 divides both and is probed before 32
		{96, 96, 16, true},
		{120, 72, 24, true},  // 16 does not divide 120
		{96, 160, 16, true},
		{97, 96, 0, false},   // prime-ish width
		{100, 70, 0, false},
	}
	for _, c := range cases {
		unit, ok := ProbeUnit(c.w, c.h)
		if ok != c.sliced || unit != c.unit {
			t.Errorf("ProbeUnit(%d, %d) = %d, %v; want %d, %v", c.w, c.h, unit, ok, c.unit, c.sliced)
		}
	}
}

func TestSliceSmallImagesStaySingle(t *testing.T) {
	for _, size := range []int{16, 31, 48, 64} {
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		tiles := Slice(img, 32)
		if len(tiles) != 1 {
			t.Errorf("%dx%d: got %d tiles; want 1", size, size, len(tiles))
			continue
		}
		if got := tiles[0].Bounds().Size(); got.X != size || got.Y != size {
			t.Errorf("%dx%d: single tile resized to %v; want original size", size, size, got)
		}
	}
}

func TestSliceBelowHintStaysSingle(t *testing.T) {
	// 128 wide but only 24 tall: smaller than the hint in one dimension.
	img := image.NewRGBA(image.Rect(0, 0, 128, 24))
	if tiles := Slice(img, 32); len(tiles) != 1 {
		t.Errorf("got %d tiles; want 1", len(tiles))
	}
}

func TestSliceIndivisibleStaysSingle(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 130, 70))
	if tiles := Slice(img, 32); len(tiles) != 1 {
		t.Errorf("got %d tiles; want 1", len(tiles))
	}
}

func TestSliceWallsSheet(t *testing.T) {
	// A 128x96 sheet resolves to unit 16 (probed before 32), an 8x6 grid.
	img := image.NewRGBA(image.Rect(0, 0, 128, 96))
	tiles := Slice(img, 32)
	if len(tiles) != 48 {
		t.Fatalf("got %d tiles; want 48", len(tiles))
	}
	for i, tile := range tiles {
		if got := tile.Bounds().Size(); got.X != 16 || got.Y != 16 {
			t.Fatalf("tile %d sized %v; want 16x16", i, got)
		}
	}
}

func TestSliceRowMajorOrder(t *testing.T) {
	// Paint each 16px cell of a 48x80 sheet with a distinct gray level
	// and verify the slice order is top-to-bottom, left-to-right.
	img := image.NewRGBA(image.Rect(0, 0, 48, 80))
	grid := GridFor(48, 80, 16)
	for i := range iter.N(grid.Len()) {
		row, col := grid.Cell(i)
		shade := color.RGBA{R: uint8(i * 20), G: uint8(i * 20), B: uint8(i * 20), A: 0xFF}
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				img.SetRGBA(col*16+x, row*16+y, shade)
			}
		}
	}

	tiles := Slice(img, 16)
	if len(tiles) != grid.Len() {
		t.Fatalf("got %d tiles; want %d", len(tiles), grid.Len())
	}
	for i, tile := range tiles {
		want := uint8(i * 20)
		r, _, _, _ := tile.At(tile.Bounds().Min.X, tile.Bounds().Min.Y).RGBA()
		if uint8(r>>8) != want {
			t.Errorf("tile %d shade = %d; want %d", i, uint8(r>>8), want)
		}
	}
}

func TestSliceDropsPartialCells(t *testing.T) {
	// 96x80 resolves to unit 16 giving a full 6x5 grid; shift bounds so
	// the image does not start at the origin to check offset handling.
	img := image.NewRGBA(image.Rect(10, 20, 106, 100))
	tiles := Slice(img, 32)
	if len(tiles) != 30 {
		t.Errorf("got %d tiles; want 30", len(tiles))
	}
}

func TestGridCell(t *testing.T) {
	g := GridFor(128, 96, 16)
	if g.Cols != 8 || g.Rows != 6 {
		t.Fatalf("grid = %+v; want 8x6", g)
	}
	if row, col := g.Cell(0); row != 0 || col != 0 {
		t.Errorf("Cell(0) = %d,%d; want 0,0", row, col)
	}
	if row, col := g.Cell(9); row != 1 || col != 1 {
		t.Errorf("Cell(9) = %d,%d; want 1,1", row, col)
	}
	if row, col := g.Cell(47); row != 5 || col != 7 {
		t.Errorf("Cell(47) = %d,%d; want 5,7", row, col)
	}
}
