package catalog

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/tradelegends/mapedit/classify"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for fixture: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
}

func TestBaseGroupName(t *testing.T) {
	cases := []struct{ stem, want string }{
		{"wall_02", "wall"},
		{"wall_07", "wall"},
		{"tileseta_3", "tileseta"},
		{"grass", "grass"},
		{"big_tree_12", "big_tree"},
		{"4ever", "ever"},
	}
	for _, c := range cases {
		if got := BaseGroupName(c.stem); got != c.want {
			t.Errorf("BaseGroupName(%q) = %q; want %q", c.stem, got, c.want)
		}
	}
}

func TestScanSingleSprite(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "buildings", "house.png"), 64, 64)

	s := &Scanner{Roots: []string{root}}
	c := s.Scan()

	tile, ok := c.Tile(classify.Buildings, "house")
	if !ok {
		t.Fatalf("tile buildings/house not registered; names: %v", c.Names(classify.Buildings))
	}
	if tile.Sliced {
		t.Error("64x64 sprite registered as sliced")
	}
	if got := tile.Texture.Bounds().Size(); got.X != TileSize || got.Y != TileSize {
		t.Errorf("texture size = %v; want %dx%d", got, TileSize, TileSize)
	}
	if tile.OriginalW != 64 || tile.OriginalH != 64 {
		t.Errorf("original size = %dx%d; want 64x64", tile.OriginalW, tile.OriginalH)
	}
	g, ok := c.Group("house")
	if !ok {
		t.Fatal("group house missing")
	}
	if len(g.Tiles) != 1 || g.Tiles[0] != "house" {
		t.Errorf("group tiles = %v; want [house]", g.Tiles)
	}
	if g.Preview == nil {
		t.Error("group preview missing")
	}
}

func TestScanWallsSheet(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "tiles", "walls.png"), 128, 96)

	s := &Scanner{Roots: []string{root}}
	c := s.Scan()

	// "tiles" classifies the directory as terrain and marks the file as
	// a sheet; 128x96 resolves to unit 16, an 8x6 grid of 48 tiles.
	for i := 1; i <= 48; i++ {
		key := "walls_" + strconv.Itoa(i)
		tile, ok := c.Tile(classify.Terrain, key)
		if !ok {
			t.Fatalf("tile terrain/%s not registered", key)
		}
		if !tile.Sliced {
			t.Fatalf("tile %s not marked sliced", key)
		}
		if tile.SheetIndex != i-1 {
			t.Fatalf("tile %s sheet index = %d; want %d", key, tile.SheetIndex, i-1)
		}
		if got := tile.Texture.Bounds().Size(); got.X != TileSize || got.Y != TileSize {
			t.Fatalf("tile %s texture size = %v; want %dx%d", key, got, TileSize, TileSize)
		}
		if tile.OriginalW != 16 || tile.OriginalH != 16 {
			t.Fatalf("tile %s original size = %dx%d; want 16x16", key, tile.OriginalW, tile.OriginalH)
		}
	}
	g, ok := c.Group("walls")
	if !ok {
		t.Fatal("group walls missing")
	}
	if len(g.Tiles) != 48 {
		t.Errorf("group walls has %d tiles; want 48", len(g.Tiles))
	}
}

func TestKnownAssetCategoryOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "misc", "elder.png")
	writePNG(t, path, 48, 48)

	s := &Scanner{Known: []KnownAsset{{Path: path, Category: classify.NPCs}}}
	c := s.Scan()

	if _, ok := c.Tile(classify.NPCs, "elder"); !ok {
		t.Errorf("known asset not registered under hinted category; npc names: %v", c.Names(classify.NPCs))
	}
}

func TestKnownDirMasksRootScan(t *testing.T) {
	root := t.TempDir()
	knownDir := filepath.Join(root, "tiles")
	writePNG(t, filepath.Join(knownDir, "fence_01.png"), 32, 32)

	s := &Scanner{
		Roots: []string{root},
		Known: []KnownAsset{{Path: knownDir, Category: classify.Decorations}},
	}
	c := s.Scan()

	// The known-dir hint must win; the root walk would have classified
	// the "tiles" directory as terrain.
	if _, ok := c.Tile(classify.Decorations, "fence_01_1"); !ok {
		t.Errorf("known dir asset missing from decorations; got names %v", c.Names(classify.Decorations))
	}
	if _, ok := c.Tile(classify.Terrain, "fence_01_1"); ok {
		t.Error("known dir asset re-registered by root scan under terrain")
	}
}

func TestScanIdempotence(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "tiles", "walls.png"), 128, 96)
	writePNG(t, filepath.Join(root, "buildings", "house.png"), 64, 64)

	s := &Scanner{Roots: []string{root}}
	a, b := s.Scan(), s.Scan()

	for _, cat := range classify.Categories() {
		an, bn := a.Names(cat), b.Names(cat)
		if len(an) != len(bn) {
			t.Fatalf("%s: %d names vs %d names across passes", cat, len(an), len(bn))
		}
		for i := range an {
			if an[i] != bn[i] {
				t.Errorf("%s name %d: %q vs %q", cat, i, an[i], bn[i])
			}
		}
	}
	for _, g := range a.Groups() {
		g2, ok := b.Group(g.Name)
		if !ok {
			t.Fatalf("group %s missing from second pass", g.Name)
		}
		if len(g.Tiles) != len(g2.Tiles) {
			t.Errorf("group %s: %d tiles vs %d tiles", g.Name, len(g.Tiles), len(g2.Tiles))
		}
	}
}

func TestPerDirLimit(t *testing.T) {
	root := t.TempDir()
	stems := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta"}
	for _, stem := range stems {
		writePNG(t, filepath.Join(root, "props", stem+".png"), 16, 16)
	}

	s := &Scanner{Roots: []string{root}}
	c := s.Scan()

	seeds := len(New().Names(classify.Decorations))
	if got := len(c.Names(classify.Decorations)) - seeds; got != defaultPerDirLimit {
		t.Errorf("registered %d tiles from directory; want %d", got, defaultPerDirLimit)
	}
}

func TestCollisionLastWriteWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a", "grass.png")
	second := filepath.Join(dir, "b", "grass_cliff.png")
	writePNG(t, first, 16, 16)
	writePNG(t, second, 16, 16)

	s := &Scanner{Known: []KnownAsset{
		{Path: first, Category: classify.Terrain},
		{Path: second, Category: classify.Terrain},
	}}
	c := s.Scan()

	// Both stems contain the seed name "grass", so both resolve to the
	// same key; the later registration wins.
	tile, ok := c.Tile(classify.Terrain, "grass")
	if !ok {
		t.Fatal("tile terrain/grass missing")
	}
	if tile.SourcePath != second {
		t.Errorf("tile source = %q; want %q", tile.SourcePath, second)
	}
}

func TestCorruptAssetIsSkipped(t *testing.T) {
	root := t.TempDir()
	bad := filepath.Join(root, "ground", "broken.png")
	if err := os.MkdirAll(filepath.Dir(bad), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(root, "ground", "dirt.png"), 16, 16)

	s := &Scanner{Roots: []string{root}}
	c := s.Scan()

	if _, ok := c.Tile(classify.Terrain, "dirt"); !ok {
		t.Error("healthy asset not ingested after corrupt sibling")
	}
}

func TestMissingRootIsSkipped(t *testing.T) {
	s := &Scanner{Roots: []string{filepath.Join(t.TempDir(), "nope")}}
	c := s.Scan()
	if c.Len() != 0 {
		t.Errorf("catalog has %d tiles; want 0", c.Len())
	}
}

func TestFallbackColorStableAndInRange(t *testing.T) {
	a, b := fallbackColor("walls_17"), fallbackColor("walls_17")
	if a != b {
		t.Errorf("fallbackColor not stable: %v vs %v", a, b)
	}
	for _, v := range []uint8{a.R, a.G, a.B} {
		if v < 100 || v > 200 {
			t.Errorf("channel %d outside [100, 200]", v)
		}
	}
}

func TestColorSentinel(t *testing.T) {
	c := New()
	got := c.Color("never_registered")
	if got.R != 200 || got.G != 0 || got.B != 200 {
		t.Errorf("sentinel color = %v; want magenta", got)
	}
	if g := c.Color("grass"); g != seedColors["grass"] {
		t.Errorf("seed color = %v; want %v", g, seedColors["grass"])
	}
}
