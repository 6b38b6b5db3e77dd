package packer

import (
	"image"
	"image/draw"
)

// Render composes the page bitmaps for a pack result. Pages start fully
// transparent; each group's representative is blitted at its placement,
// rotated 90 degrees clockwise when the placement says so. Gutters stay
// transparent.
func Render(textures []Texture, res *Result) []*image.RGBA {
	pages := make([]*image.RGBA, len(res.Pages))
	for i, p := range res.Pages {
		pages[i] = image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	}

	for _, p := range res.Placements {
		rep := res.Groups[p.Group].Members[0]
		src := textures[rep].Image
		if src == nil {
			continue
		}
		if p.Rotated {
			src = rotate90(src)
		}

		dst := pages[p.Page]
		r := image.Rect(p.Rect.X, p.Rect.Y, p.Rect.X+p.Rect.W, p.Rect.Y+p.Rect.H)
		draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
	}

	return pages
}

// rotate90 turns src 90 degrees clockwise: pixel (x, y) lands at
// (h-1-y, x).
func rotate90(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			so := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			do := dst.PixOffset(h-1-y, x)
			copy(dst.Pix[do:do+4], src.Pix[so:so+4])
		}
	}

	return dst
}
