package cli

import (
	"fmt"
	"strings"

	"github.com/woozymasta/atlas-packer/internal/packer"
)

// CmdQuery packs the same inputs under every variant and prints a ranked
// efficiency report.
type CmdQuery struct {
	Packing PackingFlags `group:"Packing" yaml:"packing"`
	Input   InputFlags   `group:"Input" yaml:"input"`

	Args struct {
		Input string `positional-arg-name:"input" description:"Input directory with images" required:"yes" yaml:"input_dir"`
	} `positional-args:"yes" required:"yes" yaml:"args"`
}

// Execute runs the query command.
func (c *CmdQuery) Execute(args []string) error {
	return runQuery(c)
}

// runQuery runs the query command.
func runQuery(opts *CmdQuery) error {
	inputs, err := loadInputs(opts.Args.Input, &opts.Input)
	if err != nil {
		return err
	}

	results, err := packer.Query(textures(inputs), opts.Packing.options())
	if err != nil {
		return fmt.Errorf("all variants failed: %w", err)
	}

	fmt.Print(formatQueryReport(results, opts.Args.Input))
	return nil
}

// formatQueryReport renders the ranked table plus recommended invocations
// for the best variant and the best rotation-free variant.
func formatQueryReport(results []packer.VariantResult, inputDir string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-4s %-6s %-9s %-7s %-6s %-12s %s\n",
		"Rank", "Sort", "Rule", "Rotate", "Pages", "Size", "Efficiency")

	rank := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&b, "%-4s %-6s %-9s %-7s failed: %v\n",
				"-", r.Variant.Sort, r.Variant.Rule, yesNo(r.Variant.Rotate), r.Err)
			continue
		}

		rank++
		fmt.Fprintf(&b, "%-4d %-6s %-9s %-7s %-6d %-12s %.2f%%\n",
			rank, r.Variant.Sort, r.Variant.Rule, yesNo(r.Variant.Rotate),
			len(r.Pages), pageSize(r.Pages), r.Efficiency*100)
	}

	if best := firstMatch(results, func(r packer.VariantResult) bool { return r.Err == nil }); best != nil {
		fmt.Fprintf(&b, "\nRecommended:\n  atlas-packer pack %s %s\n", inputDir, invocation(best.Variant))
	}
	if best := firstMatch(results, func(r packer.VariantResult) bool {
		return r.Err == nil && !r.Variant.Rotate
	}); best != nil {
		fmt.Fprintf(&b, "Best without rotation:\n  atlas-packer pack %s %s\n", inputDir, invocation(best.Variant))
	}

	return b.String()
}

// firstMatch returns the first result satisfying pred, or nil.
func firstMatch(results []packer.VariantResult, pred func(packer.VariantResult) bool) *packer.VariantResult {
	for i := range results {
		if pred(results[i]) {
			return &results[i]
		}
	}
	return nil
}

// invocation renders the pack flags that reproduce a variant.
func invocation(v packer.Variant) string {
	s := fmt.Sprintf("-s %s -r %s", v.Sort, v.Rule)
	if v.Rotate {
		s += " -R"
	}
	return s
}

// pageSize renders the page dimensions of a result.
func pageSize(pages []packer.Page) string {
	if len(pages) == 0 {
		return "-"
	}
	return fmt.Sprintf("%dx%d", pages[0].Width, pages[0].Height)
}

// yesNo renders a boolean flag for the table.
func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
