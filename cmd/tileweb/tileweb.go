// Command tileweb serves the tile catalog and saved maps over HTTP.
package main

import (
	"flag"
	"net/http"
	"os"
	"strings"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/tradelegends/mapedit/catalog"
	"github.com/tradelegends/mapedit/paths"
	"github.com/tradelegends/mapedit/web"
)

var (
	listenAddress = flag.String("listen_address", ":8099", "address to serve the catalog browser on")
	assetRoots    = flag.String("asset_roots", strings.Join(paths.AssetRootNames, ","), "comma-separated directories to scan for tile assets")

	mapsDir string
)

func init() {
	paths.SetupDirPathFlag("maps_dir", "directory map documents are read from", &mapsDir, paths.MapsDirName)
}

func main() {
	flagutil.Parse()

	s := &catalog.Scanner{}
	for _, root := range strings.Split(*assetRoots, ",") {
		if root = strings.TrimSpace(root); root != "" {
			s.Roots = append(s.Roots, root)
		}
	}
	cat := s.Scan()

	r := mux.NewRouter()
	web.NewHandler(cat, mapsDir).RegisterRoutes(r)

	glog.Infof("serving %d tile types on %s", cat.Len(), *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.CombinedLoggingHandler(os.Stdout, r)))
}
