// Command tileprint draws catalog tile textures on the terminal, for
// eyeballing what the ingestion pipeline produced.
package main

import (
	"flag"
	"fmt"
	"image"
	"strings"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"github.com/tradelegends/mapedit/catalog"
	"github.com/tradelegends/mapedit/classify"
	"github.com/tradelegends/mapedit/imageprint"
	"github.com/tradelegends/mapedit/paths"
)

var (
	assetRoots = flag.String("asset_roots", strings.Join(paths.AssetRootNames, ","), "comma-separated directories to scan for tile assets")

	categoryFlag = flag.String("category", "terrain", "category of the tile to print")
	tileFlag     = flag.String("tile", "", "tile type to print")
	groupFlag    = flag.String("group", "", "asset group to print (every member tile)")

	col256   = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm    = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm  = flag.Bool("rasterm", false, "whether to print with rasterm (kitty, iterm, sixel)")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", false, "whether to shrink large textures before printing")
	maxPx    = flag.Uint("max_px", 64, "longest edge after -downsize")
)

func main() {
	flagutil.Parse()

	s := &catalog.Scanner{}
	for _, root := range strings.Split(*assetRoots, ",") {
		if root = strings.TrimSpace(root); root != "" {
			s.Roots = append(s.Roots, root)
		}
	}
	cat := s.Scan()

	switch {
	case *groupFlag != "":
		g, ok := cat.Group(*groupFlag)
		if !ok {
			glog.Exitf("no asset group %q", *groupFlag)
		}
		for _, name := range g.Tiles {
			t, ok := cat.Tile(g.Category, name)
			if !ok {
				glog.Warningf("group member %s/%s has no texture", g.Category, name)
				continue
			}
			fmt.Println(name)
			out(t.Texture, name)
		}
	case *tileFlag != "":
		c := classify.Category(*categoryFlag)
		if !classify.Valid(c) {
			glog.Exitf("unknown category %q", *categoryFlag)
		}
		t, ok := cat.Tile(c, *tileFlag)
		if !ok {
			glog.Exitf("no tile %s/%s in catalog", c, *tileFlag)
		}
		out(t.Texture, t.Key)
	default:
		glog.Exit("pass -tile or -group")
	}
}

func out(img image.Image, name string) {
	if *downsize {
		img = resize.Thumbnail(*maxPx, *maxPx, img, resize.NearestNeighbor)
	}

	o := imageprint.Options{Blanks: *blanks, Name: name + ".png"}
	switch {
	case *rasterm:
		o.Mode = imageprint.ModeRasTerm
	case *iterm:
		o.Mode = imageprint.ModeITerm
	case *col256:
		o.Mode = imageprint.Mode256Color
	default:
		o.Mode = imageprint.Mode24Bit
	}
	imageprint.Print(img, o)
}
