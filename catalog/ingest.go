package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"github.com/tradelegends/mapedit/classify"
	"github.com/tradelegends/mapedit/raster"
	"github.com/tradelegends/mapedit/tileset"
)

// KnownAsset is a pre-declared high-priority asset entry: a file to
// ingest, or a directory to ingest recursively. An entry may carry a
// category hint that overrides path-keyword classification for every
// file it covers.
type KnownAsset struct {
	Path     string
	Category classify.Category
}

// DefaultSheetIndicators are the path substrings (matched
// case-insensitively) that force sheet treatment regardless of the
// image's dimensions.
func DefaultSheetIndicators() []string {
	return []string{"tilesets", "tileset", "tiles", "walls", "market_stalls"}
}

// defaultPerDirLimit caps how many images a keyword-classified directory
// contributes during a root scan.
const defaultPerDirLimit = 5

// Scanner configures one ingestion pass. The zero value scans nothing;
// fill in Roots and/or Known and call Scan.
type Scanner struct {
	// Roots are directories walked for keyword-classified assets. A
	// missing root is skipped silently.
	Roots []string

	// Known entries are processed first and unconditionally. Directory
	// entries additionally mask the same subtree from the root walk, so
	// their files are not registered twice.
	Known []KnownAsset

	// Rules override classify.DefaultRules when non-nil.
	Rules []classify.Rule

	// SheetIndicators override DefaultSheetIndicators when non-nil.
	SheetIndicators []string

	// PerDirLimit overrides defaultPerDirLimit when positive.
	PerDirLimit int

	// TileSize overrides the canonical TileSize when positive.
	TileSize int
}

func (s *Scanner) rules() []classify.Rule {
	if s.Rules != nil {
		return s.Rules
	}
	return classify.DefaultRules()
}

func (s *Scanner) indicators() []string {
	if s.SheetIndicators != nil {
		return s.SheetIndicators
	}
	return DefaultSheetIndicators()
}

func (s *Scanner) perDirLimit() int {
	if s.PerDirLimit > 0 {
		return s.PerDirLimit
	}
	return defaultPerDirLimit
}

func (s *Scanner) tileSize() int {
	if s.TileSize > 0 {
		return s.TileSize
	}
	return TileSize
}

// Scan walks the configured entries and returns the resulting catalog.
// Per-asset failures are logged and skipped; the pass itself never
// fails, it produces a best-effort catalog.
func (s *Scanner) Scan() *Catalog {
	c := New()

	var covered []string
	found := 0

	for _, known := range s.Known {
		fi, err := os.Stat(known.Path)
		if err != nil {
			glog.V(1).Infof("known asset %q not present: %v", known.Path, err)
			continue
		}
		if fi.IsDir() {
			covered = append(covered, filepath.Clean(known.Path))
			filepath.WalkDir(known.Path, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					glog.Warningf("walking known asset dir %q: %v", path, err)
					return nil
				}
				if d.IsDir() || !raster.IsImagePath(path) {
					return nil
				}
				s.processFile(c, path, known.Category)
				found++
				return nil
			})
			continue
		}
		if raster.IsImagePath(known.Path) {
			s.processFile(c, known.Path, known.Category)
			found++
		}
	}

	for _, root := range s.Roots {
		if _, err := os.Stat(root); err != nil {
			glog.V(1).Infof("scan root %q not present", root)
			continue
		}
		glog.Infof("scanning %s", root)

		perDir := map[string]int{}
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				glog.Warningf("walking %q: %v", path, err)
				return nil
			}
			if d.IsDir() {
				if underAny(path, covered) {
					return fs.SkipDir
				}
				return nil
			}
			if !raster.IsImagePath(path) {
				return nil
			}
			dir := filepath.Dir(path)
			category, ok := classify.MatchRules(s.rules(), dir)
			if !ok {
				// Directories without a category keyword are left to
				// explicit known-asset entries.
				return nil
			}
			if perDir[dir] >= s.perDirLimit() {
				return nil
			}
			perDir[dir]++
			s.processFile(c, path, category)
			found++
			return nil
		})
	}

	glog.Infof("ingested %d assets: %d tile types in %d groups", found, c.Len(), len(c.groups))
	return c
}

// processFile classifies, optionally slices, normalizes and registers a
// single asset file. hint, when set, wins over keyword classification.
func (s *Scanner) processFile(c *Catalog, path string, hint classify.Category) {
	img, err := raster.DecodeFile(path)
	if err != nil {
		glog.Errorf("skipping asset: %v", err)
		return
	}

	category := hint
	if category == "" {
		category = classify.ClassifyRules(s.rules(), path, classify.Terrain)
	}

	stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	base := BaseGroupName(stem)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	ts := s.tileSize()

	glog.V(1).Infof("processing %s (%dx%d) as %s", path, w, h, category)

	if s.isSheetPath(path) || (w > 64 && h > 64) {
		for i, sub := range tileset.Slice(img, ts) {
			sb := sub.Bounds()
			tex := sub
			if sb.Dx() != ts || sb.Dy() != ts {
				tex = normalize(sub, ts)
			}
			key := fmt.Sprintf("%s_%d", stem, i+1)
			c.register(&TileType{
				Key:        key,
				Category:   category,
				Texture:    tex,
				SourcePath: path,
				Group:      base,
				Sliced:     true,
				SheetIndex: i,
				OriginalW:  sb.Dx(),
				OriginalH:  sb.Dy(),
			})
			c.addToGroup(base, category, key, tex)
		}
		return
	}

	// Single sprites are resampled unconditionally so every texture in
	// the catalog went through the same path.
	tex := normalize(img, ts)
	key := c.matchKnownName(category, stem)
	if key == "" {
		key = strings.Split(stem, "_")[0]
	}
	c.register(&TileType{
		Key:        key,
		Category:   category,
		Texture:    tex,
		SourcePath: path,
		Group:      base,
		OriginalW:  w,
		OriginalH:  h,
	})
	c.addToGroup(base, category, key, tex)
}

// isSheetPath reports whether the path carries one of the sheet
// indicator substrings.
func (s *Scanner) isSheetPath(path string) bool {
	p := strings.ToLower(path)
	for _, ind := range s.indicators() {
		if strings.Contains(p, ind) {
			return true
		}
	}
	return false
}

// underAny reports whether path is dir itself or below any of dirs.
func underAny(path string, dirs []string) bool {
	path = filepath.Clean(path)
	for _, dir := range dirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
