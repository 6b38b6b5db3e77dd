package packer

import (
	"bytes"
	"image"
	"testing"
)

// cropPage copies the rectangle at (x, y) out of a page.
func cropPage(page *image.RGBA, x, y, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for row := 0; row < h; row++ {
		so := page.PixOffset(x, y+row)
		do := dst.PixOffset(0, row)
		copy(dst.Pix[do:do+4*w], page.Pix[so:so+4*w])
	}
	return dst
}

// unrotate undoes the clockwise blit rotation.
func unrotate(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			so := src.PixOffset(x, y)
			do := dst.PixOffset(y, w-1-x)
			copy(dst.Pix[do:do+4], src.Pix[so:so+4])
		}
	}
	return dst
}

func TestRenderRoundTrip(t *testing.T) {
	t.Parallel()

	textures := []Texture{
		tex("a", 13, 7, 1),
		tex("b", 7, 13, 2),
		tex("c", 9, 9, 3),
		tex("d", 30, 10, 4),
	}
	opts := Options{Sort: SortLongSide, Rule: BestAreaFit, Rotate: true, Spacing: 2}

	res, err := Pack(textures, opts)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	pages := Render(textures, res)

	for _, p := range res.Placements {
		for _, member := range res.Groups[p.Group].Members {
			want := textures[member].Image

			got := cropPage(pages[p.Page], p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H)
			if p.Rotated {
				got = unrotate(got)
			}

			if !bytes.Equal(got.Pix, want.Pix) {
				t.Fatalf("crop of %q does not reproduce its pixels", textures[member].Name)
			}
		}
	}
}

func TestRenderGuttersTransparent(t *testing.T) {
	t.Parallel()

	textures := []Texture{
		tex("a", 4, 4, 1),
		tex("b", 4, 4, 2),
		tex("c", 4, 4, 3),
		tex("d", 4, 4, 4),
	}
	res, err := Pack(textures, Options{
		Sort: SortLongSide, Rule: BestAreaFit, Spacing: 1, NoDedup: true,
	})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	page := Render(textures, res)[0]
	inside := func(x, y int) bool {
		for _, p := range res.Placements {
			r := p.Rect
			if x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom() {
				return true
			}
		}
		return false
	}

	b := page.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if inside(x, y) {
				continue
			}
			o := page.PixOffset(x, y)
			if page.Pix[o] != 0 || page.Pix[o+1] != 0 || page.Pix[o+2] != 0 || page.Pix[o+3] != 0 {
				t.Fatalf("gutter pixel (%d,%d) not transparent", x, y)
			}
		}
	}
}

func TestRotate90(t *testing.T) {
	t.Parallel()

	src := pattern(3, 2, 0)
	dst := rotate90(src)

	b := dst.Bounds()
	if b.Dx() != 2 || b.Dy() != 3 {
		t.Fatalf("rotated bounds = %v, want 2x3", b)
	}

	// (x, y) lands at (h-1-y, x).
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			so := src.PixOffset(x, y)
			do := dst.PixOffset(1-y, x)
			if !bytes.Equal(src.Pix[so:so+4], dst.Pix[do:do+4]) {
				t.Fatalf("pixel (%d,%d) misplaced by rotation", x, y)
			}
		}
	}
}
