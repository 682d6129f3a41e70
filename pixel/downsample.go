package pixel

import (
	"image"
	"math"

	"spritegen/grid"
	"spritegen/palette"
)

// SampleOptions tunes Downsample.
type SampleOptions struct {
	OpaqueAlpha      uint8   // pixels below count as transparent
	TransparentShare float64 // cells with a larger transparent share stay transparent
	EdgeWeight       float64 // weight of pixels on a cell's outer ring
	TopBias          float64 // extra weight for the top band of the content
	TopBand          float64 // height of that band as a share of the content
}

var DefaultSampleOptions = SampleOptions{
	OpaqueAlpha:      128,
	TransparentShare: 0.6,
	EdgeWeight:       2.5,
	TopBias:          1.75,
	TopBand:          0.25,
}

type bucket struct {
	col    palette.RGB
	weight float64
}

// Downsample reduces the content rectangle of buf to a w×h grid. Each cell
// takes the heaviest colour of its source block, where pixels on the block
// outline and in the top band of the content weigh more so silhouettes, hats
// and ears survive the reduction.
func Downsample(buf *image.NRGBA, content image.Rectangle, w, h int, opt SampleOptions) grid.Grid {
	out := grid.New(w, h)
	cw, ch := content.Dx(), content.Dy()
	if cw == 0 || ch == 0 {
		return out
	}

	cellW := float64(cw) / float64(w)
	cellH := float64(ch) / float64(h)

	var hist []bucket
	index := make(map[palette.RGB]int)

	for ty := range h {
		y0 := int(math.Floor(float64(ty) * cellH))
		y1 := int(math.Floor(float64(ty+1) * cellH))

		for tx := range w {
			x0 := int(math.Floor(float64(tx) * cellW))
			x1 := int(math.Floor(float64(tx+1) * cellW))

			hist = hist[:0]
			clear(index)
			var transparent, total int

			for sy := y0; sy < y1; sy++ {
				for sx := x0; sx < x1; sx++ {
					if sx >= cw || sy >= ch {
						continue
					}

					i := buf.PixOffset(content.Min.X+sx, content.Min.Y+sy)
					total++
					if buf.Pix[i+3] < opt.OpaqueAlpha {
						transparent++
						continue
					}

					weight := 1.0
					if sx == x0 || sx == x1-1 || sy == y0 || sy == y1-1 {
						weight = opt.EdgeWeight
					}
					if float64(sy)/float64(ch) < opt.TopBand {
						weight *= opt.TopBias
					}

					col := palette.RGB{R: buf.Pix[i], G: buf.Pix[i+1], B: buf.Pix[i+2]}
					k, ok := index[col]
					if !ok {
						k = len(hist)
						index[col] = k
						hist = append(hist, bucket{col: col})
					}
					hist[k].weight += weight
				}
			}

			if float64(transparent) > float64(total)*opt.TransparentShare {
				continue
			}

			best := -1
			for k := range hist {
				if best < 0 || hist[k].weight > hist[best].weight {
					best = k
				}
			}
			if best >= 0 {
				out.Set(tx, ty, grid.Paint(hist[best].col))
			}
		}
	}
	return out
}
