package packer

import (
	"runtime"
	"sort"
	"sync"
)

// Variant is one sort/rule/rotation combination tried by Query.
type Variant struct {
	Sort   SortKey
	Rule   Rule
	Rotate bool
}

// VariantResult is the outcome of packing one variant.
type VariantResult struct {
	Err        error
	Pages      []Page
	Variant    Variant
	Efficiency float64
}

// variants enumerates the query product: both sort keys, the area and
// distance rules, rotation off and on.
func variants() []Variant {
	out := make([]Variant, 0, 8)
	for _, key := range []SortKey{SortLongSide, SortShortSide} {
		for _, rule := range []Rule{BestAreaFit, BottomLeftDistance} {
			for _, rotate := range []bool{false, true} {
				out = append(out, Variant{Sort: key, Rule: rule, Rotate: rotate})
			}
		}
	}
	return out
}

// Query packs the same inputs under all eight variants and returns them
// ranked by efficiency, failed variants last. Variants are independent pure
// runs, so they execute on a bounded worker pool; equal efficiencies keep
// enumeration order, which keeps the report byte-stable. An error is
// returned only when every variant fails.
func Query(textures []Texture, opts Options) ([]VariantResult, error) {
	vs := variants()
	results := make([]VariantResult, len(vs))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(vs) {
		workers = len(vs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				v := vs[i]
				o := opts
				o.Sort, o.Rule, o.Rotate = v.Sort, v.Rule, v.Rotate

				res, err := Pack(textures, o)
				if err != nil {
					results[i] = VariantResult{Variant: v, Err: err}
					continue
				}
				results[i] = VariantResult{
					Variant:    v,
					Pages:      res.Pages,
					Efficiency: res.Efficiency,
				}
			}
		}()
	}
	for i := range vs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}
	if failed == len(results) {
		return nil, results[0].Err
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		return a.Efficiency > b.Efficiency
	})

	return results, nil
}
