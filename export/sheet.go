// Package export writes finished sprites as sheets, SVG, JSON and palette
// files.
package export

import (
	"image"
	"image/color"

	"spritegen/grid"
	"spritegen/palette"
	"spritegen/sprite"

	"golang.org/x/image/draw"
)

// Empty columns between two views on a sheet.
const sheetGap = 1

var viewNames = [4]string{"front", "back", "left", "right"}

func views(r *sprite.Result) [4]grid.Grid {
	return [4]grid.Grid{r.Views.Front, r.Views.Back, r.Views.Left, r.Views.Right}
}

// sheetCells returns the size of the sheet of r in cells.
func sheetCells(r *sprite.Result) (w, h int) {
	for i, v := range views(r) {
		if i > 0 {
			w += sheetGap
		}
		w += v.Width()
		h = max(h, v.Height())
	}
	return w, h
}

// SheetImage lays the four views of r out left to right (front, back, left,
// right) with every cell drawn as a scale×scale block. Transparent cells stay
// transparent.
func SheetImage(r *sprite.Result, scale int) *image.NRGBA {
	scale = max(1, scale)
	w, h := sheetCells(r)

	cells := image.NewNRGBA(image.Rect(0, 0, w, h))
	x0 := 0
	for _, v := range views(r) {
		for y := range v.Height() {
			for x := range v.Width() {
				if c := v.At(x, y); c.Opaque {
					cells.SetNRGBA(x0+x, y, color.NRGBA{R: c.Color.R, G: c.Color.G, B: c.Color.B, A: 0xFF})
				}
			}
		}
		x0 += v.Width() + sheetGap
	}

	if scale == 1 {
		return cells
	}

	dest := image.NewNRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dest, dest.Bounds(), cells, cells.Bounds(), draw.Src, nil)
	return dest
}

// Paletted maps img onto p, with index 0 reserved for transparency. It returns
// nil when p does not fit an 8 bit palette.
func Paletted(img image.Image, p palette.Palette) *image.Paletted {
	if len(p) > 255 {
		return nil
	}

	pal := append(color.Palette{color.Transparent}, p.ColorPalette()...)
	dr := image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy())
	dest := image.NewPaletted(dr, pal)
	draw.Draw(dest, dr, img, img.Bounds().Min, draw.Src)
	return dest
}
