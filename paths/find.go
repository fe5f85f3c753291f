// Package paths locates the asset and map directories a tool should
// work with, looking in the conventional project locations.
package paths

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
)

// AssetRootNames are the directory names probed, in order, when looking
// for asset packs relative to the working directory.
var AssetRootNames = []string{
	"asset_packs",
	"src/assets",
	"assets",
}

// MapsDirName is the conventional directory map documents are saved to.
const MapsDirName = "maps"

// FindDir returns the first existing directory among the candidates,
// resolved against the working directory, or "".
func FindDir(candidates ...string) string {
	for _, c := range candidates {
		path := c
		if !filepath.IsAbs(path) {
			if wd, err := os.Getwd(); err == nil {
				path = filepath.Join(wd, c)
			}
		}
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			glog.V(1).Infof("paths.FindDir(%q)=%s", c, path)
			return path
		}
	}
	return ""
}

// AssetRoots returns every conventional asset directory that exists.
func AssetRoots() []string {
	var out []string
	for _, name := range AssetRootNames {
		if dir := FindDir(name); dir != "" {
			out = append(out, dir)
		}
	}
	return out
}

// MapsDir returns the conventional maps directory, resolved against the
// working directory. The directory need not exist yet; saving creates it.
func MapsDir() string {
	if dir := FindDir(MapsDirName); dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, MapsDirName)
	}
	return MapsDirName
}
