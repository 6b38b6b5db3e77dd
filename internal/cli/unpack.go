package cli

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/atlas-packer/internal/imageio"
	"github.com/woozymasta/atlas-packer/internal/sidecar"
)

// CmdUnpack extracts images from an atlas/sidecar pair.
type CmdUnpack struct {
	Args struct {
		Sidecar string `positional-arg-name:"sidecar" description:"Path to the atlas .json description" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	OutputDir string `short:"O" long:"output-dir" description:"Output directory (default: current dir)"`
	Overwrite bool   `short:"f" long:"force" description:"Overwrite existing files"`
}

// Execute runs the unpack command.
func (c *CmdUnpack) Execute(args []string) error {
	return runUnpack(c)
}

func runUnpack(opts *CmdUnpack) error {
	doc, err := sidecar.ReadFile(opts.Args.Sidecar)
	if err != nil {
		return fmt.Errorf("read sidecar: %w", err)
	}

	baseDir := filepath.Dir(opts.Args.Sidecar)
	pages := make([]*image.RGBA, len(doc.Pages))
	for i, p := range doc.Pages {
		img, err := imageio.ReadRGBA(filepath.Join(baseDir, p.File))
		if err != nil {
			return fmt.Errorf("read page %q: %w", p.File, err)
		}
		b := img.Bounds()
		if b.Dx() != p.Width || b.Dy() != p.Height {
			return fmt.Errorf("page %q is %dx%d, sidecar says %dx%d",
				p.File, b.Dx(), b.Dy(), p.Width, p.Height)
		}
		pages[i] = img
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	for _, t := range doc.Textures {
		sub := crop(pages[t.Page], t.X, t.Y, t.W, t.H)
		if t.Rotated {
			sub = rotate90CCW(sub)
		}

		outPath := filepath.Join(outDir, sanitizeName(t.Name)+".png")
		if !opts.Overwrite {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("output file %q exists (use --force)", outPath)
			}
		}

		if err := imageio.WritePNG(outPath, sub); err != nil {
			return fmt.Errorf("write %q: %w", outPath, err)
		}
	}

	fmt.Printf("Unpacked %d images into %s\n", len(doc.Textures), outDir)
	return nil
}

// crop copies the rectangle at (x, y) out of src. The sidecar is validated
// on read, so the rectangle is known to be inside the page.
func crop(src *image.RGBA, x, y, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)

	return dst
}

// rotate90CCW undoes the packer's clockwise rotation: pixel (x, y) of the
// stored image came from (y, w-1-x) of the original.
func rotate90CCW(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			so := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			do := dst.PixOffset(y, w-1-x)
			copy(dst.Pix[do:do+4], src.Pix[so:so+4])
		}
	}

	return dst
}

// sanitizeName keeps sidecar names usable as file names.
func sanitizeName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, string(filepath.Separator), "_")
	s = strings.ReplaceAll(s, "..", ".")
	if s == "" {
		return "texture"
	}

	return s
}
