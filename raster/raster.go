// Package raster loads raster image files into memory.
//
// It is the leaf of the asset ingestion pipeline: a decode failure here
// is reported to the caller and has no side effects, so the scanner can
// skip the file and move on.
package raster

import (
	"image"
	"io"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
)

// IsImagePath reports whether path has a file extension the asset
// scanner accepts.
func IsImagePath(path string) bool {
	p := strings.ToLower(path)
	return strings.HasSuffix(p, ".png") ||
		strings.HasSuffix(p, ".jpg") ||
		strings.HasSuffix(p, ".jpeg")
}

// Decode reads a single image from r.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding image")
	}
	return img, nil
}

// DecodeFile opens and decodes the image file at path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening image file %q", path)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding image file %q", path)
	}
	return img, nil
}
