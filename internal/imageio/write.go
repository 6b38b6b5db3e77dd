package imageio

import (
	"image"
	"image/png"
	"os"
)

// WritePNG saves an image as PNG.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return png.Encode(f, img)
}
