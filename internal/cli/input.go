package cli

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/woozymasta/atlas-packer/internal/imageio"
	"github.com/woozymasta/atlas-packer/internal/packer"
	"golang.org/x/image/draw"
)

// InputFlags defines input discovery and preprocessing options shared by
// pack and query.
type InputFlags struct {
	InFormats    []string `short:"i" long:"in-format" description:"Allowed input formats: png,tga,tiff,bmp (repeatable). Default: all" yaml:"in_format"`
	MaxInputSide int      `short:"D" long:"max-input-side" description:"Downscale inputs so the longest side is at most N pixels (0=off)" default:"0" yaml:"max_input_side"`
}

// inputFile pairs a texture with its source path.
type inputFile struct {
	path    string
	texture packer.Texture
}

// loadInputs reads every allowed image in dir, sorted by filename, decoded
// to tight RGBA and optionally downscaled. Duplicate basenames are an error:
// the sidecar keys textures by name.
func loadInputs(dir string, opts *InputFlags) ([]inputFile, error) {
	allowed := normalizeFormats(opts.InFormats)

	files, err := readImageFiles(dir, allowed)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input images found in %q", dir)
	}

	inputs := make([]inputFile, 0, len(files))
	seen := make(map[string]string, len(files))

	for _, file := range files {
		img, err := imageio.ReadRGBA(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read image %q: %w", file, err)
		}

		img, w, h := downscaleIfNeeded(img, opts.MaxInputSide)

		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("duplicate image name %q (paths: %q and %q)", name, prev, file)
		}
		seen[name] = file

		inputs = append(inputs, inputFile{
			path: file,
			texture: packer.Texture{
				Name:   name,
				Width:  w,
				Height: h,
				Image:  img,
			},
		})
	}

	return inputs, nil
}

// textures extracts the packer inputs from loaded files.
func textures(inputs []inputFile) []packer.Texture {
	out := make([]packer.Texture, len(inputs))
	for i := range inputs {
		out[i] = inputs[i].texture
	}
	return out
}

// readImageFiles reads the image files from the directory.
func readImageFiles(dir string, allowed map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name()), "."))
		if allowed[ext] {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(out)
	return out, nil
}

// normalizeFormats normalizes the input format filter; empty means all
// supported formats.
func normalizeFormats(in []string) map[string]bool {
	m := make(map[string]bool)
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		s = strings.TrimPrefix(s, ".")
		if s != "" && imageio.Supported(s) {
			m[s] = true
		}
	}

	if len(m) == 0 {
		for _, f := range imageio.Formats {
			m[f] = true
		}
	}

	return m
}

// downscaleIfNeeded downscales the image so its longest side is at most
// maxSide, stepping in halves to keep CatmullRom stable.
func downscaleIfNeeded(img *image.RGBA, maxSide int) (*image.RGBA, int, int) {
	b := img.Bounds()
	width := b.Dx()
	height := b.Dy()

	if maxSide <= 0 || (width <= maxSide && height <= maxSide) {
		return img, width, height
	}

	longSide := width
	if height > width {
		longSide = height
	}
	scale := float64(maxSide) / float64(longSide)

	newWidth := max(1, int(math.Round(float64(width)*scale)))
	newHeight := max(1, int(math.Round(float64(height)*scale)))

	scaled := img
	curW, curH := width, height
	for curW > newWidth*2 || curH > newHeight*2 {
		stepW := max(newWidth, curW/2)
		stepH := max(newHeight, curH/2)
		scaled = scaleImage(scaled, stepW, stepH)
		curW, curH = stepW, stepH
	}

	if curW != newWidth || curH != newHeight {
		scaled = scaleImage(scaled, newWidth, newHeight)
	}

	return scaled, newWidth, newHeight
}

// scaleImage scales the image using the CatmullRom kernel.
func scaleImage(src *image.RGBA, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	return dst
}
