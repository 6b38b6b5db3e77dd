package packer

import (
	"errors"
	"image"
	"reflect"
	"testing"
)

// solid returns a w x h image filled with a color derived from seed.
func solid(w, h int, seed uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = seed
		img.Pix[i+1] = seed ^ 0x5a
		img.Pix[i+2] = ^seed
		img.Pix[i+3] = 255
	}
	return img
}

// pattern returns a w x h image where every pixel depends on its position,
// so rotations and misplaced blits are detectable.
func pattern(w, h int, seed uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := img.PixOffset(x, y)
			img.Pix[o] = uint8(x) + seed
			img.Pix[o+1] = uint8(y) ^ seed
			img.Pix[o+2] = uint8(x*31 + y*17)
			img.Pix[o+3] = 255
		}
	}
	return img
}

func tex(name string, w, h int, seed uint8) Texture {
	return Texture{Name: name, Width: w, Height: h, Image: pattern(w, h, seed)}
}

// checkPlacements verifies the pack-level invariants: in-bounds, no overlap,
// and, when spacing > 0, every same-page pair at least spacing apart on one
// axis.
func checkPlacements(t *testing.T, res *Result, spacing int) {
	t.Helper()

	for _, p := range res.Placements {
		page := res.Pages[p.Page]
		r := p.Rect
		if r.X < 0 || r.Y < 0 || r.Right() > page.Width || r.Bottom() > page.Height {
			t.Fatalf("placement %+v outside page %dx%d", p, page.Width, page.Height)
		}
	}

	for i := 0; i < len(res.Placements); i++ {
		for j := i + 1; j < len(res.Placements); j++ {
			a, b := res.Placements[i], res.Placements[j]
			if a.Page != b.Page {
				continue
			}
			if overlaps(a.Rect, b.Rect) {
				t.Fatalf("placements overlap: %+v and %+v", a, b)
			}

			gapX := b.Rect.X - a.Rect.Right()
			if x := a.Rect.X - b.Rect.Right(); x > gapX {
				gapX = x
			}
			gapY := b.Rect.Y - a.Rect.Bottom()
			if y := a.Rect.Y - b.Rect.Bottom(); y > gapY {
				gapY = y
			}

			// Every pair must be separated by a full gutter on at least one
			// axis; anything closer lets samples bleed diagonally too.
			if spacing > 0 && gapX < spacing && gapY < spacing {
				t.Fatalf("placements %+v and %+v closer than spacing %d (gaps %d,%d)",
					a, b, spacing, gapX, gapY)
			}
		}
	}
}

func TestPackValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		textures []Texture
		opts     Options
		wantKind any
	}{
		{
			name:     "empty-input",
			textures: nil,
			wantKind: ErrEmptyInput,
		},
		{
			name:     "zero-width",
			textures: []Texture{{Name: "bad", Width: 0, Height: 4}},
			wantKind: &InvalidInputError{},
		},
		{
			name:     "negative-page",
			textures: []Texture{tex("a", 4, 4, 1)},
			opts:     Options{PageW: -1, PageH: 32},
			wantKind: &InvalidPageSizeError{},
		},
		{
			name:     "half-fixed-page",
			textures: []Texture{tex("a", 4, 4, 1)},
			opts:     Options{PageW: 32},
			wantKind: &InvalidPageSizeError{},
		},
		{
			name:     "po2-page-not-po2",
			textures: []Texture{tex("a", 4, 4, 1)},
			opts:     Options{PageW: 48, PageH: 64, PowerOfTwo: true},
			wantKind: &InvalidPageSizeError{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Pack(tc.textures, tc.opts)
			if err == nil {
				t.Fatal("expected error")
			}

			switch want := tc.wantKind.(type) {
			case error:
				if target, ok := want.(*InvalidInputError); ok {
					if !errors.As(err, &target) {
						t.Fatalf("error %v, want InvalidInputError", err)
					}
					return
				}
				if target, ok := want.(*InvalidPageSizeError); ok {
					if !errors.As(err, &target) {
						t.Fatalf("error %v, want InvalidPageSizeError", err)
					}
					return
				}
				if !errors.Is(err, want) {
					t.Fatalf("error %v, want %v", err, want)
				}
			}
		})
	}
}

func TestPackTwoSquaresAutoSize(t *testing.T) {
	t.Parallel()

	res, err := Pack([]Texture{
		tex("A", 10, 10, 1),
		tex("B", 10, 10, 2),
	}, Options{Sort: SortLongSide, Rule: BestAreaFit})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	if len(res.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(res.Pages))
	}
	p := res.Pages[0]
	ok := (p.Width == 10 && p.Height == 20) || (p.Width == 20 && p.Height == 10)
	if !ok {
		t.Fatalf("page = %dx%d, want 10x20 or 20x10", p.Width, p.Height)
	}
	if res.Efficiency != 1.0 {
		t.Fatalf("efficiency = %v, want 1.0", res.Efficiency)
	}

	checkPlacements(t, res, 0)
}

func TestPackPlacementsFollowSortedOrder(t *testing.T) {
	t.Parallel()

	res, err := Pack([]Texture{
		tex("small", 4, 4, 1),
		tex("big", 16, 16, 2),
		tex("mid", 8, 8, 3),
	}, Options{Sort: SortLongSide, Rule: BestShortSideFit, PageW: 64, PageH: 64})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	// Long-side descending: big, mid, small.
	wantGroups := []string{"big", "mid", "small"}
	if len(res.Placements) != 3 {
		t.Fatalf("placements = %d, want 3", len(res.Placements))
	}
	for i, p := range res.Placements {
		rep := res.Groups[p.Group].Members[0]
		names := []string{"small", "big", "mid"}
		if names[rep] != wantGroups[i] {
			t.Fatalf("placement %d is %q, want %q", i, names[rep], wantGroups[i])
		}
	}
}

func TestPackSpacingHonored(t *testing.T) {
	t.Parallel()

	textures := []Texture{
		tex("a", 7, 5, 1),
		tex("b", 5, 9, 2),
		tex("c", 6, 6, 3),
		tex("d", 3, 3, 4),
	}

	for _, spacing := range []int{1, 2, 5} {
		res, err := Pack(textures, Options{
			Sort: SortLongSide, Rule: BestShortSideFit,
			PageW: 40, PageH: 40, Spacing: spacing,
		})
		if err != nil {
			t.Fatalf("Pack(spacing=%d): %v", spacing, err)
		}
		checkPlacements(t, res, spacing)
	}
}

func TestPackDeterminism(t *testing.T) {
	t.Parallel()

	textures := []Texture{
		tex("a", 12, 7, 1),
		tex("b", 7, 12, 2),
		tex("c", 9, 9, 3),
		tex("d", 5, 14, 4),
		tex("e", 14, 5, 5),
	}
	opts := Options{Sort: SortShortSide, Rule: BestAreaFit, Rotate: true, Spacing: 1}

	first, err := Pack(textures, opts)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	second, err := Pack(textures, opts)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two identical runs disagree:\n%+v\n%+v", first, second)
	}
}
