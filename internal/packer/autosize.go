package packer

import (
	"fmt"
	"math"
)

// packAuto finds the smallest single page that fits every item and packs it.
// The search works on inflated sizes: candidate widths sweep up from the
// widest item, the minimal feasible height is binary-searched per width, and
// candidates compete on inflated area with ties broken toward squareness.
func packAuto(items []item, opts Options) ([]Page, []Placement, error) {
	s := opts.Spacing

	loW, loH, area := bounds(items, s, opts.Rotate)

	var vw, vh int
	if opts.PowerOfTwo {
		vw, vh = searchPo2(items, loW, loH, area, opts)
	} else {
		vw, vh = search(items, loW, loH, area, opts)
	}

	pageW, pageH := vw-s, vh-s
	placed, rest := packPage(items, pageW, pageH, opts)
	if len(rest) > 0 {
		// canFit accepted this size with the same greedy loop.
		return nil, nil, fmt.Errorf("auto-size: %dx%d page rejected %d items", pageW, pageH, len(rest))
	}

	return []Page{{Width: pageW, Height: pageH}}, placed, nil
}

// bounds returns the minimal inflated page width and height any single item
// demands, and the total inflated area.
func bounds(items []item, s int, rotate bool) (loW, loH, area int) {
	for _, it := range items {
		iw, ih := it.w+s, it.h+s
		area += iw * ih

		if rotate && ih < iw {
			iw, ih = ih, iw
		}
		if iw > loW {
			loW = iw
		}
		lim := ih
		if rotate {
			lim = iw
		}
		if lim > loH {
			loH = lim
		}
	}
	return loW, loH, area
}

// search sweeps inflated widths and returns the best inflated page size.
func search(items []item, loW, loH, area int, opts Options) (int, int) {
	// Seed with a feasible square at or above the area lower bound, so the
	// sweep has a finite horizon from the first iteration.
	side := int(math.Ceil(math.Sqrt(float64(area))))
	if side < loW {
		side = loW
	}
	if side < loH {
		side = loH
	}
	for !canFit(items, side, side, opts) {
		side *= 2
	}

	bestW, bestH := side, side
	bestArea := side * side

	for vw := loW; vw*loH <= bestArea; vw++ {
		minH := ceilDiv(area, vw)
		if minH < loH {
			minH = loH
		}
		if vw*minH > bestArea {
			continue
		}

		vh, ok := minHeight(items, vw, minH, opts)
		if !ok {
			continue
		}

		a := vw * vh
		if a < bestArea || (a == bestArea && squarer(vw, vh, bestW, bestH)) {
			bestW, bestH, bestArea = vw, vh, a
		}
	}

	return bestW, bestH
}

// minHeight finds the smallest feasible inflated height >= lo for width vw.
func minHeight(items []item, vw, lo int, opts Options) (int, bool) {
	hi := lo
	for !canFit(items, vw, hi, opts) {
		hi *= 2
	}
	if hi == lo {
		return lo, true
	}

	for lo < hi {
		mid := lo + (hi-lo)/2
		if canFit(items, vw, mid, opts) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return hi, true
}

// searchPo2 runs the same sweep over page sides constrained to powers of
// two. Sides are real page dimensions here; comparison stays on inflated
// area so spacing is costed consistently with the free search.
func searchPo2(items []item, loW, loH, area int, opts Options) (int, int) {
	s := opts.Spacing

	w0 := nextPowerOfTwo(loW - s)
	h0 := nextPowerOfTwo(loH - s)

	bestW, bestH := 0, 0
	bestArea := math.MaxInt

	for w := w0; ; w <<= 1 {
		if bestArea != math.MaxInt && (w+s)*(h0+s) > bestArea {
			break
		}

		h := h0
		for !canFit(items, w+s, h+s, opts) {
			h <<= 1
		}

		a := (w + s) * (h + s)
		if a < bestArea || (a == bestArea && squarer(w, h, bestW, bestH)) {
			bestW, bestH, bestArea = w, h, a
		}
	}

	return bestW + s, bestH + s
}

// squarer reports whether w x h is closer to square than bw x bh.
func squarer(w, h, bw, bh int) bool {
	d, bd := w-h, bw-bh
	if d < 0 {
		d = -d
	}
	if bd < 0 {
		bd = -bd
	}
	return d < bd
}

// ceilDiv rounds the quotient up.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// nextPowerOfTwo finds the next power of two.
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
