// Package catalog turns a tree of raster asset files into a named,
// queryable catalog of tile types.
//
// A Catalog is built by one ingestion pass (see Scanner) and is not
// mutated afterwards. Renderers and other consumers treat it as
// read-only: category → tile type → normalized texture plus provenance.
package catalog

import (
	"hash/fnv"
	"image"
	"image/color"
	"regexp"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"github.com/tradelegends/mapedit/classify"
)

// TileSize is the canonical edge, in pixels, of every texture the
// ingestion pipeline produces.
const TileSize = 32

// TileType is one placeable tile texture within a category. The key is
// unique within its category, not across categories.
type TileType struct {
	Key        string
	Category   classify.Category
	Texture    image.Image // TileSize×TileSize after normalization
	SourcePath string
	Group      string

	// Sliced marks tiles cut out of a sheet; SheetIndex is the tile's
	// row-major position within that sheet and is meaningless otherwise.
	Sliced     bool
	SheetIndex int

	// Pre-normalization dimensions, kept for diagnostics.
	OriginalW, OriginalH int
}

// AssetGroup clusters tile types whose source filenames share a base
// name (digit runs stripped). The preview is the first tile the group
// produced.
type AssetGroup struct {
	Name     string
	Category classify.Category
	Tiles    []string
	Preview  image.Image
}

// add records a tile key in the group. Re-adding a present key is a
// no-op.
func (g *AssetGroup) add(key string) {
	for _, t := range g.Tiles {
		if t == key {
			return
		}
	}
	g.Tiles = append(g.Tiles, key)
}

// Catalog holds the result of an ingestion pass.
type Catalog struct {
	tiles  map[classify.Category]map[string]*TileType
	names  map[classify.Category][]string
	colors map[string]color.RGBA
	groups map[string]*AssetGroup
}

// New returns a catalog seeded with the starter tile names and display
// colors for each category. The seeds are names only; they gain textures
// if ingestion encounters matching assets.
func New() *Catalog {
	c := &Catalog{
		tiles:  map[classify.Category]map[string]*TileType{},
		names:  map[classify.Category][]string{},
		colors: map[string]color.RGBA{},
		groups: map[string]*AssetGroup{},
	}
	for cat, names := range seedNames {
		c.names[cat] = append([]string(nil), names...)
		c.tiles[cat] = map[string]*TileType{}
	}
	for name, col := range seedColors {
		c.colors[name] = col
	}
	return c
}

// Tile returns the tile type registered under the category and key.
func (c *Catalog) Tile(cat classify.Category, key string) (*TileType, bool) {
	t, ok := c.tiles[cat][key]
	return t, ok
}

// Names returns the known tile-type names of the category, seed names
// included, in registration order.
func (c *Catalog) Names(cat classify.Category) []string {
	return append([]string(nil), c.names[cat]...)
}

// TilesIn returns the registered tile types of the category in name
// order. Seed names without a texture are not included.
func (c *Catalog) TilesIn(cat classify.Category) []*TileType {
	var out []*TileType
	for _, name := range c.names[cat] {
		if t, ok := c.tiles[cat][name]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the total number of registered tile types.
func (c *Catalog) Len() int {
	n := 0
	for _, m := range c.tiles {
		n += len(m)
	}
	return n
}

// Group returns the asset group with the given base name.
func (c *Catalog) Group(name string) (*AssetGroup, bool) {
	g, ok := c.groups[name]
	return g, ok
}

// Groups returns every asset group, sorted by name.
func (c *Catalog) Groups() []*AssetGroup {
	out := make([]*AssetGroup, 0, len(c.groups))
	for _, g := range c.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Color returns the fallback display color for the tile-type name. A
// name the catalog has never seen gets the magenta sentinel, so a
// missing entry degrades to a visible placeholder instead of failing.
func (c *Catalog) Color(name string) color.RGBA {
	if col, ok := c.colors[name]; ok {
		return col
	}
	return color.RGBA{R: 200, G: 0, B: 200, A: 0xFF}
}

// register inserts the tile type into its category, appending the key to
// the category's known names and assigning a fallback color when the key
// is new. A key collision is logged and resolved last-write-wins.
func (c *Catalog) register(t *TileType) {
	if c.tiles[t.Category] == nil {
		c.tiles[t.Category] = map[string]*TileType{}
	}
	if prev, ok := c.tiles[t.Category][t.Key]; ok && prev.SourcePath != t.SourcePath {
		glog.Warningf("tile type %s/%s from %q overwrites earlier registration from %q",
			t.Category, t.Key, t.SourcePath, prev.SourcePath)
	}
	c.tiles[t.Category][t.Key] = t
	if !c.knownName(t.Category, t.Key) {
		c.names[t.Category] = append(c.names[t.Category], t.Key)
	}
	if _, ok := c.colors[t.Key]; !ok {
		c.colors[t.Key] = fallbackColor(t.Key)
	}
}

func (c *Catalog) knownName(cat classify.Category, key string) bool {
	for _, n := range c.names[cat] {
		if n == key {
			return true
		}
	}
	return false
}

// matchKnownName returns the first known tile-type name of the category
// contained in the filename stem, or "".
func (c *Catalog) matchKnownName(cat classify.Category, stem string) string {
	for _, name := range c.names[cat] {
		if strings.Contains(stem, name) {
			return name
		}
	}
	return ""
}

// addToGroup records the tile key under the group, creating the group
// with the tile's texture as preview when it is first seen.
func (c *Catalog) addToGroup(name string, cat classify.Category, key string, preview image.Image) {
	g, ok := c.groups[name]
	if !ok {
		g = &AssetGroup{Name: name, Category: cat, Preview: preview}
		c.groups[name] = g
	}
	g.add(key)
}

var digitRuns = regexp.MustCompile(`[0-9]+`)

// BaseGroupName derives the asset-group base name from a filename stem:
// digit runs are stripped and leftover separator characters trimmed, so
// "wall_02" and "wall_07" both normalize to "wall".
func BaseGroupName(stem string) string {
	return strings.Trim(digitRuns.ReplaceAllString(stem, ""), "_- ")
}

// fallbackColor derives a stable display color for a tile-type name,
// with each channel in [100, 200]. Deriving from the name rather than a
// random source keeps re-ingestion idempotent.
func fallbackColor(name string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(name))
	v := h.Sum32()
	return color.RGBA{
		R: 100 + uint8(v%101),
		G: 100 + uint8((v>>8)%101),
		B: 100 + uint8((v>>16)%101),
		A: 0xFF,
	}
}

// normalize resamples img to a size×size texture. Nearest neighbour
// keeps pixel-art edges crisp.
func normalize(img image.Image, size int) image.Image {
	return resize.Resize(uint(size), uint(size), img, resize.NearestNeighbor)
}

// Starter tile names per category. Unseen names discovered during
// ingestion are appended after these.
var seedNames = map[classify.Category][]string{
	classify.Terrain:     {"grass", "dirt", "sand", "water", "stone"},
	classify.Vegetation:  {"tree", "bush", "flower", "plant"},
	classify.Buildings:   {"house", "shrine", "shop", "market"},
	classify.NPCs:        {"villager", "merchant", "guard", "elder"},
	classify.Decorations: {"fence", "barrel", "sign", "rock"},
}

// Display colors for the starter tile names.
var seedColors = map[string]color.RGBA{
	"grass":    {76, 153, 47, 0xFF},
	"dirt":     {155, 118, 83, 0xFF},
	"sand":     {255, 235, 156, 0xFF},
	"water":    {52, 152, 219, 0xFF},
	"stone":    {127, 140, 141, 0xFF},
	"tree":     {30, 130, 30, 0xFF},
	"bush":     {40, 180, 40, 0xFF},
	"flower":   {255, 100, 100, 0xFF},
	"plant":    {50, 200, 50, 0xFF},
	"house":    {184, 134, 11, 0xFF},
	"shrine":   {120, 60, 0, 0xFF},
	"shop":     {205, 92, 92, 0xFF},
	"market":   {205, 133, 63, 0xFF},
	"villager": {230, 126, 34, 0xFF},
	"merchant": {241, 196, 15, 0xFF},
	"guard":    {52, 73, 94, 0xFF},
	"elder":    {142, 68, 173, 0xFF},
	"fence":    {139, 69, 19, 0xFF},
	"barrel":   {160, 82, 45, 0xFF},
	"sign":     {230, 230, 230, 0xFF},
	"rock":     {128, 128, 128, 0xFF},
}
