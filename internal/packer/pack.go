// Package packer places rectangular textures onto atlas pages with the
// MaxRects heuristic: a working set of maximal free rectangles, a scored
// greedy placement loop, and drivers for fixed multi-page and auto-sized
// single-page output.
package packer

import "fmt"

// Pack deduplicates textures and places every group onto atlas pages. With a
// fixed page size it opens as many pages as needed; otherwise it searches
// for the smallest single page that holds everything.
func Pack(textures []Texture, opts Options) (*Result, error) {
	if err := validate(textures, opts); err != nil {
		return nil, err
	}

	groups := groupTextures(textures, opts.NoDedup)

	items := make([]item, 0, len(groups))
	for gi, g := range groups {
		rep := g.Members[0]
		items = append(items, item{
			name:  textures[rep].Name,
			group: gi,
			w:     textures[rep].Width,
			h:     textures[rep].Height,
		})
	}
	sortItems(items, opts.Sort)

	var (
		pages      []Page
		placements []Placement
		err        error
	)
	if opts.PageW > 0 {
		pages, placements, err = packFixed(items, opts)
	} else {
		pages, placements, err = packAuto(items, opts)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		Pages:      pages,
		Groups:     groups,
		Placements: placements,
	}
	res.Efficiency = efficiency(textures, pages)

	return res, nil
}

// validate rejects degenerate inputs and page configurations up front.
func validate(textures []Texture, opts Options) error {
	if len(textures) == 0 {
		return ErrEmptyInput
	}
	for i := range textures {
		t := &textures[i]
		if t.Width <= 0 || t.Height <= 0 {
			return &InvalidInputError{Name: t.Name, Width: t.Width, Height: t.Height}
		}
	}

	if opts.Spacing < 0 {
		return fmt.Errorf("spacing must be >= 0, got %d", opts.Spacing)
	}

	fixed := opts.PageW != 0 || opts.PageH != 0
	if fixed {
		if opts.PageW <= 0 || opts.PageH <= 0 {
			return &InvalidPageSizeError{Width: opts.PageW, Height: opts.PageH, PowerOfTwo: opts.PowerOfTwo}
		}
		if opts.PowerOfTwo && (!isPowerOfTwo(opts.PageW) || !isPowerOfTwo(opts.PageH)) {
			return &InvalidPageSizeError{Width: opts.PageW, Height: opts.PageH, PowerOfTwo: true}
		}
	}

	return nil
}

// packPage greedily places items onto one pageW x pageH page and returns the
// placements plus the items that did not fit. The store is opened with a
// trailing margin of one gutter on each axis, so spacing is only required
// between textures, not against the far page edges.
func packPage(items []item, pageW, pageH int, opts Options) ([]Placement, []item) {
	s := opts.Spacing
	store := newFreeList(pageW+s, pageH+s)

	placed := make([]Placement, 0, len(items))
	var rest []item

	for _, it := range items {
		r, rotated, err := store.findBest(it.w+s, it.h+s, opts.Rotate, opts.Rule)
		if err != nil {
			rest = append(rest, it)
			continue
		}
		store.commit(r)

		placed = append(placed, Placement{
			Group:   it.group,
			Rect:    Rect{X: r.X, Y: r.Y, W: r.W - s, H: r.H - s},
			Rotated: rotated,
		})
	}

	return placed, rest
}

// canFit reports whether every item packs into one page whose inflated size
// is vw x vh. Used as the feasibility predicate by the auto-size search.
func canFit(items []item, vw, vh int, opts Options) bool {
	s := opts.Spacing
	store := newFreeList(vw, vh)

	for _, it := range items {
		r, _, err := store.findBest(it.w+s, it.h+s, opts.Rotate, opts.Rule)
		if err != nil {
			return false
		}
		store.commit(r)
	}

	return true
}

// efficiency is total input pixel area, duplicates counted, over total page
// area. Dedup can push it past 1.0.
func efficiency(textures []Texture, pages []Page) float64 {
	inputArea := 0
	for i := range textures {
		inputArea += textures[i].Width * textures[i].Height
	}
	pageArea := 0
	for _, p := range pages {
		pageArea += p.Width * p.Height
	}
	if pageArea == 0 {
		return 0
	}
	return float64(inputArea) / float64(pageArea)
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
