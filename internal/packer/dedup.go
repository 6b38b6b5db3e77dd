package packer

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// groupTextures collapses byte-identical textures into groups. Hash buckets
// narrow the candidates; equality is always confirmed by a full pixel
// compare, so hash collisions cannot merge distinct images. With noDedup the
// result is the identity partition.
func groupTextures(textures []Texture, noDedup bool) []Group {
	groups := make([]Group, 0, len(textures))

	if noDedup {
		for i := range textures {
			groups = append(groups, Group{Members: []int{i}})
		}
		return groups
	}

	buckets := make(map[uint64][]int, len(textures))
	order := make([]uint64, 0, len(textures))
	for i := range textures {
		sum := hashTexture(&textures[i])
		if _, ok := buckets[sum]; !ok {
			order = append(order, sum)
		}
		buckets[sum] = append(buckets[sum], i)
	}

	for _, sum := range order {
		var local []int // groups spawned by this bucket
		for _, idx := range buckets[sum] {
			placed := false
			for _, gi := range local {
				rep := groups[gi].Members[0]
				if samePixels(&textures[rep], &textures[idx]) {
					groups[gi].Members = append(groups[gi].Members, idx)
					placed = true
					break
				}
			}
			if !placed {
				local = append(local, len(groups))
				groups = append(groups, Group{Members: []int{idx}})
			}
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Members[0] < groups[j].Members[0]
	})

	return groups
}

// hashTexture hashes dimensions and pixel rows. Rows are fed individually so
// padding between strides never leaks into the sum.
func hashTexture(t *Texture) uint64 {
	h := xxhash.New()

	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(t.Width))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(t.Height))
	_, _ = h.Write(dims[:])

	if t.Image != nil {
		for y := 0; y < t.Height; y++ {
			_, _ = h.Write(rowBytes(t, y))
		}
	}

	return h.Sum64()
}

// samePixels reports whether two textures have identical size and payload.
func samePixels(a, b *Texture) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	if a.Image == nil || b.Image == nil {
		return a.Image == b.Image
	}

	for y := 0; y < a.Height; y++ {
		if !bytes.Equal(rowBytes(a, y), rowBytes(b, y)) {
			return false
		}
	}
	return true
}

// rowBytes returns one row of RGBA bytes, stride excluded.
func rowBytes(t *Texture, y int) []byte {
	img := t.Image
	off := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
	return img.Pix[off : off+4*t.Width]
}
