package mapdoc

// This file implements the persisted JSON form of a document. One JSON
// object per map; layer cells are keyed by the composite string "x,y".

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

type jsonDocument struct {
	Name     string                           `json:"name"`
	Width    int                              `json:"width"`
	Height   int                              `json:"height"`
	TileSize int                              `json:"tile_size"`
	Layers   map[string]map[string]*Placement `json:"layers"`
}

// cellKey is the composite string form of a coordinate used on disk.
func cellKey(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// parseCellKey parses the "x,y" composite key.
func parseCellKey(key string) (x, y int, err error) {
	xs, ys, ok := strings.Cut(key, ",")
	if !ok {
		return 0, 0, errors.Errorf("cell key %q: want \"x,y\"", key)
	}
	if x, err = strconv.Atoi(xs); err != nil {
		return 0, 0, errors.Wrapf(err, "cell key %q", key)
	}
	if y, err = strconv.Atoi(ys); err != nil {
		return 0, 0, errors.Wrapf(err, "cell key %q", key)
	}
	return x, y, nil
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	jd := jsonDocument{
		Name:     d.Name,
		Width:    d.Width,
		Height:   d.Height,
		TileSize: d.TileSize,
		Layers:   map[string]map[string]*Placement{},
	}
	for _, layer := range Layers() {
		cells := map[string]*Placement{}
		for _, p := range d.layers[layer] {
			cells[cellKey(p.X, p.Y)] = p
		}
		jd.Layers[layer] = cells
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&jd); err != nil {
		return errors.Wrap(err, "encoding map document")
	}
	return nil
}

// Decode reads a persisted document. Individual malformed placement
// records (an unparsable cell key, a key disagreeing with the embedded
// coordinates, an out-of-bounds cell or an empty type) are logged and
// skipped; the rest of the document still loads.
func Decode(r io.Reader) (*Document, error) {
	var jd jsonDocument
	if err := json.NewDecoder(r).Decode(&jd); err != nil {
		return nil, errors.Wrap(err, "decoding map document")
	}
	if jd.Width <= 0 || jd.Height <= 0 {
		return nil, errors.Errorf("map document has invalid size %dx%d", jd.Width, jd.Height)
	}
	if jd.TileSize <= 0 {
		return nil, errors.Errorf("map document has invalid tile size %d", jd.TileSize)
	}

	d := New(jd.Width, jd.Height)
	d.TileSize = jd.TileSize
	if jd.Name != "" {
		d.Name = jd.Name
	}

	for layer, cells := range jd.Layers {
		if !ValidLayer(layer) {
			glog.Warningf("map %q: dropping unknown layer %q with %d cells", d.Name, layer, len(cells))
			continue
		}
		for key, p := range cells {
			if p == nil {
				glog.Warningf("map %q: layer %s cell %s is null; skipping", d.Name, layer, key)
				continue
			}
			x, y, err := parseCellKey(key)
			if err != nil {
				glog.Warningf("map %q: layer %s: %v; skipping record", d.Name, layer, err)
				continue
			}
			if x != p.X || y != p.Y {
				glog.Warningf("map %q: layer %s cell %s embeds (%d,%d); skipping record", d.Name, layer, key, p.X, p.Y)
				continue
			}
			if !d.inBounds(x, y) {
				glog.Warningf("map %q: layer %s cell %s outside %dx%d; skipping record", d.Name, layer, key, d.Width, d.Height)
				continue
			}
			if p.Type == "" {
				glog.Warningf("map %q: layer %s cell %s has no type; skipping record", d.Name, layer, key)
				continue
			}
			p.Layer = layer
			d.layers[layer][posFromCoord(x, y)] = p
		}
	}
	return d, nil
}

// FileName derives the on-disk name for a map: lower-cased, spaces
// replaced by underscores, with a .json extension.
func FileName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_") + ".json"
}

// Save writes the document under its conventional file name in dir,
// creating dir if needed, and returns the path written.
func (d *Document) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating maps directory %q", dir)
	}
	path := filepath.Join(dir, FileName(d.Name))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "creating map file %q", path)
	}
	defer f.Close()

	if err := d.Encode(f); err != nil {
		return "", err
	}
	glog.Infof("saved map %q (%d placements) to %s", d.Name, d.Len(), path)
	return path, nil
}

// Load reads the document stored at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening map file %q", path)
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading map file %q", path)
	}
	glog.Infof("loaded map %q (%d placements) from %s", d.Name, d.Len(), path)
	return d, nil
}

// ListMaps returns the paths of candidate map documents (any .json file)
// in dir, sorted by name. A missing directory yields an empty list.
func ListMaps(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "listing maps directory %q", dir)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}
