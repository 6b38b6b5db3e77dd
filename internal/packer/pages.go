package packer

// packFixed opens pageW x pageH pages until every item is placed. An item
// that cannot fit even an empty page fails the whole run, otherwise each
// fresh page is guaranteed to make progress.
func packFixed(items []item, opts Options) ([]Page, []Placement, error) {
	pageW, pageH := opts.PageW, opts.PageH

	for _, it := range items {
		fits := it.w <= pageW && it.h <= pageH
		if !fits && opts.Rotate {
			fits = it.h <= pageW && it.w <= pageH
		}
		if !fits {
			return nil, nil, &PageTooSmallError{
				Name: it.name, Width: it.w, Height: it.h,
				PageW: pageW, PageH: pageH,
			}
		}
	}

	var (
		pages      []Page
		placements []Placement
	)

	rest := items
	for len(rest) > 0 {
		placed, unplaced := packPage(rest, pageW, pageH, opts)

		page := len(pages)
		for _, p := range placed {
			p.Page = page
			placements = append(placements, p)
		}

		pages = append(pages, Page{Width: pageW, Height: pageH})
		rest = unplaced
	}

	return pages, placements, nil
}
