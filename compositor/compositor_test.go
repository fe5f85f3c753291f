package compositor

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tradelegends/mapedit/catalog"
	"github.com/tradelegends/mapedit/mapdoc"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "buildings", "house.png")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 48, 48))); err != nil {
		t.Fatal(err)
	}
	f.Close()
	s := &catalog.Scanner{Roots: []string{root}}
	return s.Scan()
}

func TestResolve(t *testing.T) {
	cat := testCatalog(t)

	p := &mapdoc.Placement{Type: "house", SourceCategory: "buildings"}
	if _, ok := Resolve(cat, p); !ok {
		t.Error("resolution via source category failed")
	}

	// A stale or missing source category still resolves by searching
	// every category.
	p2 := &mapdoc.Placement{Type: "house", SourceCategory: "terrain"}
	if _, ok := Resolve(cat, p2); !ok {
		t.Error("resolution across categories failed")
	}

	p3 := &mapdoc.Placement{Type: "ghost"}
	if _, ok := Resolve(cat, p3); ok {
		t.Error("resolved a tile type the catalog does not have")
	}
}

func TestComposeSize(t *testing.T) {
	cat := testCatalog(t)
	doc := mapdoc.New(5, 4)
	if err := doc.Place("buildings", 2, 1, "house", &mapdoc.Provenance{Category: "buildings"}); err != nil {
		t.Fatal(err)
	}

	img := Compose(doc, cat)
	want := image.Rect(0, 0, 5*doc.TileSize, 4*doc.TileSize)
	if img.Bounds() != want {
		t.Errorf("bounds = %v; want %v", img.Bounds(), want)
	}
}

func TestComposeFallbackColor(t *testing.T) {
	cat := testCatalog(t)
	doc := mapdoc.New(2, 2)
	if err := doc.Place("terrain", 0, 0, "no_such_tile", nil); err != nil {
		t.Fatal(err)
	}

	img := Compose(doc, cat)
	want := cat.Color("no_such_tile")
	got := img.RGBAAt(1, 1)
	if got != want {
		t.Errorf("fallback pixel = %v; want %v", got, want)
	}

	// Empty cells stay transparent.
	if a := img.RGBAAt(doc.TileSize+1, doc.TileSize+1).A; a != 0 {
		t.Errorf("empty cell alpha = %d; want 0", a)
	}
}
