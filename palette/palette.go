package palette

import (
	"cmp"
	"image"
	"image/color"
	"slices"
)

// Palette is a set of unique colours kept sorted by hex value.
type Palette []RGB

// New returns the sorted, de-duplicated palette of cols.
func New(cols ...RGB) Palette {
	p := make(Palette, 0, len(cols))
	seen := make(map[RGB]struct{}, len(cols))
	for _, c := range cols {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		p = append(p, c)
	}
	p.Sort()
	return p
}

func (p Palette) Sort() {
	slices.SortFunc(p, func(a, b RGB) int {
		return cmp.Compare(a.Packed(), b.Packed())
	})
}

func (p Palette) Contains(c RGB) bool {
	_, found := slices.BinarySearchFunc(p, c, func(a, b RGB) int {
		return cmp.Compare(a.Packed(), b.Packed())
	})
	return found
}

func (p Palette) Strings() []string {
	res := make([]string, len(p))
	for i, c := range p {
		res[i] = c.Hex()
	}
	return res
}

// ColorPalette converts p for use with the image packages.
func (p Palette) ColorPalette() color.Palette {
	res := make(color.Palette, len(p))
	for i, c := range p {
		res[i] = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}
	return res
}

// FromColorPalette keeps the opaque entries of pal.
func FromColorPalette(pal color.Palette) Palette {
	cols := make([]RGB, 0, len(pal))
	for _, c := range pal {
		if _, _, _, a := c.RGBA(); a == 0 {
			continue
		}
		cols = append(cols, FromColor(c))
	}
	return New(cols...)
}

// Swatch draws p as a horizontal strip of tile×tile squares.
func Swatch(p Palette, tile int) *image.NRGBA {
	if tile <= 0 {
		tile = 16
	}

	img := image.NewNRGBA(image.Rect(0, 0, max(1, len(p))*tile, tile))
	for i, c := range p {
		col := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
		x0 := i * tile
		for y := range tile {
			for x := x0; x < x0+tile; x++ {
				img.SetNRGBA(x, y, col)
			}
		}
	}
	return img
}
