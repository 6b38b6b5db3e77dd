package packer

import "sort"

// item is one unit of placement work: the representative of a dedup group.
type item struct {
	name  string // representative name, for error reporting
	group int
	w, h  int // texture size, gutter excluded
}

// sortItems orders items descending for placement. Long-side sort compares
// the longest side first, short-side sort the shortest; both fall through to
// the other side, then width, then height. Stable, so equal sizes keep input
// order.
func sortItems(items []item, key SortKey) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		amin, amax := a.w, a.h
		if amin > amax {
			amin, amax = amax, amin
		}
		bmin, bmax := b.w, b.h
		if bmin > bmax {
			bmin, bmax = bmax, bmin
		}

		p1, p2 := amax, bmax
		s1, s2 := amin, bmin
		if key == SortShortSide {
			p1, p2 = amin, bmin
			s1, s2 = amax, bmax
		}

		if p1 != p2 {
			return p1 > p2
		}
		if s1 != s2 {
			return s1 > s2
		}
		if a.w != b.w {
			return a.w > b.w
		}
		return a.h > b.h
	})
}
