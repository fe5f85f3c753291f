// Command mapedit is the headless core of the map editor: it ingests
// tile assets into a catalog and creates, edits and persists layered map
// documents. The interactive renderer consumes the same packages; this
// tool covers scripted use and inspection.
package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"

	"github.com/tradelegends/mapedit/catalog"
	"github.com/tradelegends/mapedit/classify"
	"github.com/tradelegends/mapedit/mapdoc"
	"github.com/tradelegends/mapedit/paths"
)

var (
	assetRoots  = flag.String("asset_roots", strings.Join(paths.AssetRootNames, ","), "comma-separated directories to scan for tile assets")
	knownAssets = flag.String("known_assets", "", "comma-separated high-priority asset files or directories, each optionally prefixed category= (e.g. buildings=asset_packs/houses)")

	mapName   = flag.String("map_name", "", "map to operate on; loaded from the maps directory unless -new_map is set")
	newMap    = flag.Bool("new_map", false, "create a new map instead of loading one")
	mapWidth  = flag.Int("map_width", 40, "width of a new map, in tiles")
	mapHeight = flag.Int("map_height", 30, "height of a new map, in tiles")

	place   = flag.String("place", "", "placement to apply, as layer:x:y:tile_type")
	remove  = flag.String("remove", "", "removal to apply, as layer:x:y")
	listMap = flag.Bool("list_maps", false, "list available maps and exit")
	summary = flag.Bool("summary", true, "print a catalog summary")

	mapsDir string
)

func init() {
	paths.SetupDirPathFlag("maps_dir", "directory map documents are saved to", &mapsDir, paths.MapsDirName)
}

func main() {
	flagutil.Parse()

	figure.NewFigure("mapedit", "", true).Print()

	if mapsDir == "" {
		mapsDir = paths.MapsDir()
	}

	if *listMap {
		maps, err := mapdoc.ListMaps(mapsDir)
		if err != nil {
			glog.Exitf("listing maps: %v", err)
		}
		for _, m := range maps {
			fmt.Println(m)
		}
		return
	}

	cat := scanCatalog()
	if *summary {
		printSummary(cat)
	}

	if *mapName == "" && !*newMap {
		return
	}

	doc, err := openDocument()
	if err != nil {
		glog.Exitf("%v", err)
	}

	changed := false
	if *place != "" {
		if err := applyPlace(doc, cat, *place); err != nil {
			glog.Exitf("applying -place: %v", err)
		}
		changed = true
	}
	if *remove != "" {
		if err := applyRemove(doc, *remove); err != nil {
			glog.Exitf("applying -remove: %v", err)
		}
		changed = true
	}

	if changed || *newMap {
		if _, err := doc.Save(mapsDir); err != nil {
			glog.Exitf("saving map: %v", err)
		}
	}
}

func scanCatalog() *catalog.Catalog {
	s := &catalog.Scanner{}
	for _, root := range strings.Split(*assetRoots, ",") {
		if root = strings.TrimSpace(root); root != "" {
			s.Roots = append(s.Roots, root)
		}
	}
	for _, entry := range strings.Split(*knownAssets, ",") {
		if entry = strings.TrimSpace(entry); entry == "" {
			continue
		}
		known := catalog.KnownAsset{Path: entry}
		if cat, path, ok := strings.Cut(entry, "="); ok {
			known = catalog.KnownAsset{Path: path, Category: classify.Category(cat)}
			if !classify.Valid(known.Category) {
				glog.Exitf("unknown category %q in -known_assets entry %q", cat, entry)
			}
		}
		s.Known = append(s.Known, known)
	}
	return s.Scan()
}

func printSummary(cat *catalog.Catalog) {
	fmt.Printf("catalog: %d tile types\n", cat.Len())
	for _, c := range classify.Categories() {
		tiles := cat.TilesIn(c)
		fmt.Printf("  %-12s %d tiles\n", c, len(tiles))
	}
	for _, g := range cat.Groups() {
		fmt.Printf("  group %-20s %s, %d tiles\n", g.Name, g.Category, len(g.Tiles))
	}
}

func openDocument() (*mapdoc.Document, error) {
	if *newMap {
		doc := mapdoc.New(*mapWidth, *mapHeight)
		if *mapName != "" {
			doc.Name = *mapName
		}
		return doc, nil
	}
	return mapdoc.Load(filepath.Join(mapsDir, mapdoc.FileName(*mapName)))
}

// applyPlace parses layer:x:y:tile_type, resolves provenance against the
// catalog when the tile type is registered there, and places it.
func applyPlace(doc *mapdoc.Document, cat *catalog.Catalog, arg string) error {
	parts := strings.Split(arg, ":")
	if len(parts) != 4 {
		return fmt.Errorf("want layer:x:y:tile_type, got %q", arg)
	}
	layer := parts[0]
	x, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("x %q: %v", parts[1], err)
	}
	y, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("y %q: %v", parts[2], err)
	}
	tileType := parts[3]

	var prov *mapdoc.Provenance
	for _, c := range classify.Categories() {
		if t, ok := cat.Tile(c, tileType); ok {
			prov = &mapdoc.Provenance{
				Path:       t.SourcePath,
				Category:   string(t.Category),
				Sliced:     t.Sliced,
				SheetIndex: t.SheetIndex,
			}
			break
		}
	}
	if prov == nil {
		glog.Warningf("tile type %q not in catalog; placing without provenance", tileType)
	}
	return doc.Place(layer, x, y, tileType, prov)
}

func applyRemove(doc *mapdoc.Document, arg string) error {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return fmt.Errorf("want layer:x:y, got %q", arg)
	}
	x, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("x %q: %v", parts[1], err)
	}
	y, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("y %q: %v", parts[2], err)
	}
	doc.Remove(parts[0], x, y)
	return nil
}
