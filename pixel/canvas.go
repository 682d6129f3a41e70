// Package pixel holds the full resolution stages of the sprite pipeline. They
// work in place on an *image.NRGBA working canvas owned by one conversion.
package pixel

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Letterbox draws img centered into a new transparent width×height canvas,
// scaled by nearest neighbour to fit while keeping the srcW:srcH aspect ratio.
func Letterbox(img image.Image, width, height, srcW, srcH int) *image.NRGBA {
	dest := image.NewNRGBA(image.Rect(0, 0, width, height))

	sb := img.Bounds()
	if srcW <= 0 || srcH <= 0 {
		srcW, srcH = sb.Dx(), sb.Dy()
	}
	if srcW <= 0 || srcH <= 0 {
		return dest
	}

	scale := min(float64(width)/float64(srcW), float64(height)/float64(srcH))
	drawW := int(math.Round(float64(srcW) * scale))
	drawH := int(math.Round(float64(srcH) * scale))
	// Odd margins are floored to whole pixels.
	x0 := (width - drawW) / 2
	y0 := (height - drawH) / 2

	draw.NearestNeighbor.Scale(dest, image.Rect(x0, y0, x0+drawW, y0+drawH), img, sb, draw.Over, nil)
	return dest
}

// ContrastFactor is the usual 259(C+255)/(255(259-C)) contrast curve factor.
func ContrastFactor(c float64) float64 {
	return (259 * (c + 255)) / (255 * (259 - c))
}

// Contrast stretches the R, G and B channels of buf around mid grey. Alpha is
// left alone.
func Contrast(buf *image.NRGBA, c float64) {
	f := ContrastFactor(c)
	var lut [256]uint8
	for i := range lut {
		lut[i] = clamp(f*(float64(i)-128) + 128)
	}

	b := buf.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := buf.Pix[buf.PixOffset(b.Min.X, y):buf.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			row[i] = lut[row[i]]
			row[i+1] = lut[row[i+1]]
			row[i+2] = lut[row[i+2]]
		}
	}
}

func clamp(v float64) uint8 {
	v = math.RoundToEven(v)
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v)
}
