package sidecar

import (
	"bytes"
	"strings"
	"testing"
)

func sample() *Atlas {
	return &Atlas{
		Pages: []Page{
			{File: "ui.png", Width: 64, Height: 32},
			{File: "ui.1.png", Width: 64, Height: 32},
		},
		Textures: []Texture{
			{Name: "cursor", Page: 1, X: 0, Y: 0, W: 16, H: 16},
			{Name: "button", Page: 0, X: 0, Y: 0, W: 32, H: 16},
			{Name: "icon", Page: 0, X: 32, Y: 0, W: 16, H: 32, Rotated: true},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, sample()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(got.Pages) != 2 || len(got.Textures) != 3 {
		t.Fatalf("round trip lost entries: %+v", got)
	}
	if got.Pages[1].File != "ui.1.png" {
		t.Fatalf("page 1 file = %q", got.Pages[1].File)
	}

	for _, tx := range got.Textures {
		if tx.Name == "icon" {
			if !tx.Rotated || tx.W != 16 || tx.H != 32 {
				t.Fatalf("icon entry = %+v", tx)
			}
		}
	}
}

func TestWriteSortsByName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, sample()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	button := strings.Index(out, `"button"`)
	cursor := strings.Index(out, `"cursor"`)
	icon := strings.Index(out, `"icon"`)
	if button < 0 || cursor < 0 || icon < 0 {
		t.Fatalf("missing entries in output:\n%s", out)
	}
	if !(button < cursor && cursor < icon) {
		t.Fatalf("entries not sorted by name:\n%s", out)
	}
}

func TestWriteDeterministic(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	if err := Write(&a, sample()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(&b, sample()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("two writes of the same atlas differ")
	}
}

func TestReadRejectsBadDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "page-out-of-range",
			doc:  `{"pages":[{"file":"a.png","width":16,"height":16}],"textures":[{"name":"x","page":1,"x":0,"y":0,"w":4,"h":4}]}`,
		},
		{
			name: "rect-outside-page",
			doc:  `{"pages":[{"file":"a.png","width":16,"height":16}],"textures":[{"name":"x","page":0,"x":10,"y":0,"w":8,"h":4}]}`,
		},
		{
			name: "empty-rect",
			doc:  `{"pages":[{"file":"a.png","width":16,"height":16}],"textures":[{"name":"x","page":0,"x":0,"y":0,"w":0,"h":4}]}`,
		},
		{
			name: "invalid-page-size",
			doc:  `{"pages":[{"file":"a.png","width":0,"height":16}],"textures":[]}`,
		},
		{
			name: "not-json",
			doc:  `pages:`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Read(strings.NewReader(tc.doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
