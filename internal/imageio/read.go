// Package imageio decodes input images and encodes atlas pages.
package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/schwarzlichtbezirk/tga"
	_ "github.com/woozymasta/png"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Formats lists the supported input extensions.
var Formats = []string{"png", "tga", "tiff", "bmp"}

// Supported reports whether ext names a readable input format.
func Supported(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, f := range Formats {
		if ext == f {
			return true
		}
	}
	return false
}

// Read loads an image from a supported file format.
func Read(path string) (image.Image, error) {
	ext := filepath.Ext(path)
	if !Supported(ext) {
		return nil, fmt.Errorf("unsupported input format: %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ReadRGBA loads an image and normalizes it to a tight RGBA buffer with a
// zero origin.
func ReadRGBA(path string) (*image.RGBA, error) {
	img, err := Read(path)
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image to *image.RGBA anchored at the origin. Images
// already in that shape pass through unchanged.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
