package grid

import "math"

// AnchorGround extends every column whose lowest opaque cell sits above the
// last row down to it, so tall sprites stand on the bottom edge.
func AnchorGround(g Grid) Grid {
	out := g.Clone()
	last := g.h - 1
	for x := range g.w {
		for y := last; y >= 0; y-- {
			c := g.At(x, y)
			if !c.Opaque {
				continue
			}
			if y < last {
				out.Set(x, last, c)
			}
			break
		}
	}
	return out
}

// Mirror flips g horizontally.
func Mirror(g Grid) Grid {
	out := New(g.w, g.h)
	for y := range g.h {
		for x := range g.w {
			out.Set(x, y, g.At(g.w-1-x, y))
		}
	}
	return out
}

// ResampleColumns maps every row of g onto width cells by nearest neighbour.
func ResampleColumns(g Grid, width int) Grid {
	out := New(width, g.h)
	step := float64(g.w) / float64(width)
	for x := range width {
		src := int(math.Floor(float64(x) * step))
		for y := range g.h {
			out.Set(x, y, g.At(src, y))
		}
	}
	return out
}
