package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/atlas-packer/internal/imageio"
	"github.com/woozymasta/atlas-packer/internal/packer"
	"github.com/woozymasta/atlas-packer/internal/sidecar"
)

// PackingFlags defines atlas packing parameters shared by pack and query.
type PackingFlags struct {
	Sort    string `short:"s" long:"sort" description:"Pre-sort order" default:"long" choice:"long" choice:"short" yaml:"sort"`
	Rule    string `short:"r" long:"rule" description:"Placement rule" default:"area" choice:"short" choice:"long" choice:"area" choice:"distance" yaml:"rule"`
	Spacing int    `short:"g" long:"spacing" description:"Transparent gutter between placed textures" default:"0" yaml:"spacing"`
	PageW   int    `short:"W" long:"page-width" description:"Fixed page width (0 = auto-size a single page)" default:"0" yaml:"page_width"`
	PageH   int    `short:"H" long:"page-height" description:"Fixed page height (0 = auto-size a single page)" default:"0" yaml:"page_height"`
	Po2     bool   `short:"2" long:"po2" description:"Constrain page sides to powers of two" yaml:"po2"`
	Rotate  bool   `short:"R" long:"rotate" description:"Allow 90-degree rotation for better packing" yaml:"rotate"`
	NoDedup bool   `long:"no-dedup" description:"Place byte-identical images separately" yaml:"no_dedup"`
}

// options converts the flags to packer options.
func (f *PackingFlags) options() packer.Options {
	return packer.Options{
		Sort:       parseSort(f.Sort),
		Rule:       parseRule(f.Rule),
		Spacing:    f.Spacing,
		PageW:      f.PageW,
		PageH:      f.PageH,
		PowerOfTwo: f.Po2,
		Rotate:     f.Rotate,
		NoDedup:    f.NoDedup,
	}
}

// CmdPack packs images into atlas pages and a sidecar description.
type CmdPack struct {
	Name  string `short:"n" long:"name" description:"Output stem (default: input directory name)" yaml:"name"`
	Force bool   `short:"f" long:"force" description:"Overwrite existing output files" yaml:"force"`
	Skip  bool   `short:"u" long:"skip-unchanged" description:"Skip writing when inputs and options are unchanged" yaml:"skip_unchanged"`

	Packing PackingFlags `group:"Packing" yaml:"packing"`
	Input   InputFlags   `group:"Input" yaml:"input"`

	Args struct {
		Input  string `positional-arg-name:"input" description:"Input directory with images" required:"yes" yaml:"input_dir"`
		Output string `positional-arg-name:"output" description:"Output directory (default: input directory)" yaml:"output_dir"`
	} `positional-args:"yes" required:"yes" yaml:"args"`
}

// Execute runs the pack command.
func (c *CmdPack) Execute(args []string) error {
	return runPack(c)
}

// runPack runs the pack command.
func runPack(opts *CmdPack) error {
	outputDir := opts.Args.Output
	if outputDir == "" {
		outputDir = opts.Args.Input
	}

	name := opts.Name
	if name == "" {
		absInput, err := filepath.Abs(opts.Args.Input)
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %w", err)
		}
		name = filepath.Base(absInput)
	}

	sidecarPath := filepath.Join(outputDir, name+".json")

	inputs, err := loadInputs(opts.Args.Input, &opts.Input)
	if err != nil {
		return err
	}

	cachePath := filepath.Join(outputDir, name+".inputhash")
	var inputsHash uint64
	if opts.Skip {
		inputsHash = computeInputsHash(inputs, &opts.Packing)
		if shouldSkipPack(cachePath, sidecarPath, inputsHash) {
			fmt.Printf("Inputs unchanged; skipping write for %s\n", sidecarPath)
			return nil
		}
	}

	if !opts.Force {
		if _, err := os.Stat(sidecarPath); err == nil {
			return fmt.Errorf("output file %q already exists (use --force)", sidecarPath)
		}
	}

	result, err := packer.Pack(textures(inputs), opts.Packing.options())
	if err != nil {
		return fmt.Errorf("failed to pack images: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pages := packer.Render(textures(inputs), result)
	doc := describe(inputs, result, name)

	for i, page := range pages {
		path := filepath.Join(outputDir, doc.Pages[i].File)
		if err := imageio.WritePNG(path, page); err != nil {
			return fmt.Errorf("failed to write page %q: %w", path, err)
		}
	}

	if err := sidecar.WriteFile(sidecarPath, doc); err != nil {
		return fmt.Errorf("failed to write sidecar: %w", err)
	}

	if opts.Skip && inputsHash != 0 {
		if err := writeCacheHash(cachePath, inputsHash); err != nil {
			return err
		}
	}

	fmt.Printf("Packed %d images from %s into %d page(s), efficiency %.2f%%\n",
		len(inputs), opts.Args.Input, len(result.Pages), result.Efficiency*100)
	fmt.Printf("Outputs: %s\n", sidecarPath)

	return nil
}

// describe builds the sidecar document: one entry per original input name,
// dedup members sharing their group's placement.
func describe(inputs []inputFile, result *packer.Result, stem string) *sidecar.Atlas {
	doc := &sidecar.Atlas{
		Pages:    make([]sidecar.Page, len(result.Pages)),
		Textures: make([]sidecar.Texture, 0, len(inputs)),
	}

	for i, p := range result.Pages {
		doc.Pages[i] = sidecar.Page{
			File:   pageFileName(stem, i),
			Width:  p.Width,
			Height: p.Height,
		}
	}

	for _, p := range result.Placements {
		for _, member := range result.Groups[p.Group].Members {
			doc.Textures = append(doc.Textures, sidecar.Texture{
				Name:    inputs[member].texture.Name,
				Page:    p.Page,
				X:       p.Rect.X,
				Y:       p.Rect.Y,
				W:       p.Rect.W,
				H:       p.Rect.H,
				Rotated: p.Rotated,
			})
		}
	}

	return doc
}

// pageFileName names page files: stem.png, stem.1.png, stem.2.png, ...
func pageFileName(stem string, index int) string {
	if index == 0 {
		return stem + ".png"
	}
	return fmt.Sprintf("%s.%d.png", stem, index)
}

// parseSort parses the sort key flag.
func parseSort(s string) packer.SortKey {
	if strings.ToLower(strings.TrimSpace(s)) == "short" {
		return packer.SortShortSide
	}
	return packer.SortLongSide
}

// parseRule parses the placement rule flag.
func parseRule(s string) packer.Rule {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long":
		return packer.BestLongSideFit
	case "area":
		return packer.BestAreaFit
	case "distance":
		return packer.BottomLeftDistance
	default:
		return packer.BestShortSideFit
	}
}
