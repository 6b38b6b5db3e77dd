// Package sidecar reads and writes the atlas description that accompanies
// the page bitmaps: page sizes and files, plus one placement entry per
// original input name.
package sidecar

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Atlas is the root of the sidecar document.
type Atlas struct {
	Pages    []Page    `json:"pages"`
	Textures []Texture `json:"textures"`
}

// Page describes one output bitmap.
type Page struct {
	File   string `json:"file"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Texture maps an input name to its placed rectangle. Duplicate inputs share
// the whole tuple. W and H are the stored (possibly rotated) size.
type Texture struct {
	Name    string `json:"name"`
	Page    int    `json:"page"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	Rotated bool   `json:"rotated"`
}

// Write emits the document with two-space indentation. Texture entries are
// sorted by name first, so identical atlases serialize byte-identically.
func Write(w io.Writer, a *Atlas) error {
	sort.SliceStable(a.Textures, func(i, j int) bool {
		return a.Textures[i].Name < a.Textures[j].Name
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// WriteFile writes the document to path.
func WriteFile(path string, a *Atlas) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return Write(f, a)
}

// Read parses a sidecar document.
func Read(r io.Reader) (*Atlas, error) {
	var a Atlas
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// ReadFile parses the sidecar document at path.
func ReadFile(path string) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// validate rejects documents whose entries point outside their pages.
func (a *Atlas) validate() error {
	for i, p := range a.Pages {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("page %d: invalid size %dx%d", i, p.Width, p.Height)
		}
	}

	for _, t := range a.Textures {
		if t.Page < 0 || t.Page >= len(a.Pages) {
			return fmt.Errorf("texture %q: page %d out of range", t.Name, t.Page)
		}
		p := a.Pages[t.Page]
		if t.W <= 0 || t.H <= 0 || t.X < 0 || t.Y < 0 || t.X+t.W > p.Width || t.Y+t.H > p.Height {
			return fmt.Errorf("texture %q: rect (%d,%d %dx%d) outside page %dx%d",
				t.Name, t.X, t.Y, t.W, t.H, p.Width, p.Height)
		}
	}

	return nil
}
