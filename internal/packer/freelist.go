package packer

// freeList is the MaxRects working set: maximal free rectangles whose union
// covers every unoccupied pixel of the page. Members overlap each other
// freely; none is contained in another, none overlaps a placed rectangle.
type freeList struct {
	rects []Rect
}

// newFreeList returns a store covering a blank w x h page.
func newFreeList(w, h int) *freeList {
	f := &freeList{rects: make([]Rect, 0, 128)}
	f.rects = append(f.rects, Rect{W: w, H: h})
	return f
}

// candidate is one scored placement position.
type candidate struct {
	rect     Rect
	pri, sec int
	rotated  bool
}

// better reports whether a beats b: lower score, then smaller (y, x),
// then non-rotated.
func (a candidate) better(b candidate) bool {
	if a.pri != b.pri {
		return a.pri < b.pri
	}
	if a.sec != b.sec {
		return a.sec < b.sec
	}
	if a.rect.Y != b.rect.Y {
		return a.rect.Y < b.rect.Y
	}
	if a.rect.X != b.rect.X {
		return a.rect.X < b.rect.X
	}
	return !a.rotated && b.rotated
}

// findBest returns the best-scoring position for a w x h rectangle under
// rule, trying both orientations when rotation is allowed. Returns errNoFit
// when no free rectangle can hold either orientation.
func (f *freeList) findBest(w, h int, rotate bool, rule Rule) (Rect, bool, error) {
	var best candidate
	found := false

	for _, fr := range f.rects {
		if fr.W >= w && fr.H >= h {
			pri, sec := rule.score(fr, w, h)
			c := candidate{rect: Rect{X: fr.X, Y: fr.Y, W: w, H: h}, pri: pri, sec: sec}
			if !found || c.better(best) {
				best, found = c, true
			}
		}

		if rotate && w != h && fr.W >= h && fr.H >= w {
			pri, sec := rule.score(fr, h, w)
			c := candidate{rect: Rect{X: fr.X, Y: fr.Y, W: h, H: w}, pri: pri, sec: sec, rotated: true}
			if !found || c.better(best) {
				best, found = c, true
			}
		}
	}

	if !found {
		return Rect{}, false, errNoFit
	}
	return best.rect, best.rotated, nil
}

// commit carves placed out of every overlapping free rectangle and prunes
// the set back to maximal members.
func (f *freeList) commit(placed Rect) {
	for i := 0; i < len(f.rects); {
		fr := f.rects[i]
		if !overlaps(fr, placed) {
			i++
			continue
		}
		f.rects = removeAt(f.rects, i)
		f.rects = append(f.rects, subtract(fr, placed)...)
	}

	f.prune()
}

// prune drops members contained in another member.
func (f *freeList) prune() {
	for i := 0; i < len(f.rects); i++ {
		a := f.rects[i]
		for j := i + 1; j < len(f.rects); j++ {
			b := f.rects[j]
			if contains(b, a) {
				f.rects = removeAt(f.rects, i)
				i--
				break
			}
			if contains(a, b) {
				f.rects = removeAt(f.rects, j)
				j--
			}
		}
	}
}

// removeAt removes an item at a given index.
func removeAt[T any](s []T, i int) []T {
	copy(s[i:], s[i+1:])
	return s[:len(s)-1]
}
