// Command testdata-generator writes a directory of sample sprites for
// exercising pack and query by hand.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Options struct {
	Args struct {
		OutputDir string `positional-arg-name:"output" description:"Output directory for generated PNG files" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	MinSize    int `short:"m" long:"min-size" description:"Minimum sprite side" default:"16"`
	MaxSize    int `short:"M" long:"max-size" description:"Maximum sprite side" default:"256"`
	Count      int `short:"c" long:"count" description:"Number of sprites to generate" default:"10"`
	MaxRatio   int `short:"r" long:"max-ratio" description:"Maximum side ratio (1=squares only)" default:"4"`
	Duplicates int `short:"d" long:"duplicates" description:"Extra byte-identical copies of the first sprite" default:"0"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "testdata-generator"
	parser.Usage = "[OPTIONS] <output>"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(&opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *Options) error {
	if opts.MinSize <= 0 || opts.MaxSize < opts.MinSize {
		return fmt.Errorf("invalid size range %d..%d", opts.MinSize, opts.MaxSize)
	}
	if opts.Count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	if opts.MaxRatio < 1 {
		return fmt.Errorf("max-ratio must be >= 1")
	}

	if err := os.MkdirAll(opts.Args.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	//nolint:gosec // Non-crypto randomness is fine for test data.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var first *image.RGBA
	for i := 0; i < opts.Count; i++ {
		width, height := generateSize(rng, opts)
		img := generateSprite(width, height, i, rng)
		if first == nil {
			first = img
		}

		name := fmt.Sprintf("sprite_%03d_%dx%d.png", i, width, height)
		if err := writePNG(filepath.Join(opts.Args.OutputDir, name), img); err != nil {
			return fmt.Errorf("failed to write sprite %d: %w", i, err)
		}
	}

	// Duplicates exercise the packer's dedup path.
	for i := 0; i < opts.Duplicates; i++ {
		name := fmt.Sprintf("sprite_dup_%03d.png", i)
		if err := writePNG(filepath.Join(opts.Args.OutputDir, name), first); err != nil {
			return fmt.Errorf("failed to write duplicate %d: %w", i, err)
		}
	}

	fmt.Printf("Generated %d sprites in %s\n", opts.Count+opts.Duplicates, opts.Args.OutputDir)
	return nil
}

// generateSize picks sprite dimensions within the size and ratio limits.
func generateSize(rng *rand.Rand, opts *Options) (width, height int) {
	span := opts.MaxSize - opts.MinSize + 1
	width = opts.MinSize + rng.Intn(span)
	height = opts.MinSize + rng.Intn(span)

	for max(width, height) > min(width, height)*opts.MaxRatio {
		if width > height {
			width = (width + height) / 2
		} else {
			height = (width + height) / 2
		}
	}

	return width, height
}

// generateSprite fills a sprite with a random background, border, diagonal
// and an index label so placements are easy to tell apart in the atlas.
func generateSprite(width, height, index int, rng *rand.Rand) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	bg := color.RGBA{R: randByte(rng), G: randByte(rng), B: randByte(rng), A: 255}
	fg := color.RGBA{R: randByte(rng), G: randByte(rng), B: randByte(rng), A: 255}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	for y := 0; y < height; y++ {
		img.SetRGBA(0, y, fg)
		img.SetRGBA(width-1, y, fg)
	}
	for x := 0; x < width; x++ {
		img.SetRGBA(x, 0, fg)
		img.SetRGBA(x, height-1, fg)
	}
	drawDiagonal(img, fg)

	labelSize := float64(min(width, height)) * 0.5
	drawCenteredLabel(img, fmt.Sprintf("%d", index+1), labelSize, color.RGBA{A: 128})

	return img
}

func drawDiagonal(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	x0, y0 := b.Min.X, b.Min.Y
	x1, y1 := b.Max.X-1, b.Max.Y-1

	dx, dy := x1-x0, y1-y0
	e := dx - dy
	for {
		img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0++
		}
		if e2 < dx {
			e += dx
			y0++
		}
	}
}

func drawCenteredLabel(img *image.RGBA, label string, size float64, c color.RGBA) {
	if size < 6 {
		return
	}
	tt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return
	}
	defer func() { _ = face.Close() }()

	bounds, _ := font.BoundString(face, label)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	b := img.Bounds()
	x := b.Min.X + (b.Dx()-textW)/2 - bounds.Min.X.Ceil()
	y := b.Min.Y + (b.Dy()-textH)/2 - bounds.Min.Y.Ceil()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(label)
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return png.Encode(file, img)
}

func randByte(rng *rand.Rand) uint8 {
	//nolint:gosec // Intn(256) is always within uint8.
	return uint8(rng.Intn(256))
}
