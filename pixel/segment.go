package pixel

import "image"

// RemoveBackground clears the alpha of every pixel reachable from the four
// corners through 4-connected steps. A step is taken into a pixel that is
// already transparent (alpha < alpha) or whose colour lies within tolerance
// of the pixel it is entered from, so smooth background gradients are
// followed. Corners are always cleared. RGB values are kept.
func RemoveBackground(buf *image.NRGBA, tolerance float64, alpha uint8) {
	b := buf.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	tolSq := tolerance * tolerance
	visited := make([]bool, w*h)
	stack := []image.Point{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[p.Y*w+p.X] {
			continue
		}
		visited[p.Y*w+p.X] = true

		i := buf.PixOffset(b.Min.X+p.X, b.Min.Y+p.Y)
		r, g, bl := buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2]
		buf.Pix[i+3] = 0

		for _, n := range [4]image.Point{{p.X + 1, p.Y}, {p.X - 1, p.Y}, {p.X, p.Y + 1}, {p.X, p.Y - 1}} {
			if n.X < 0 || n.Y < 0 || n.X >= w || n.Y >= h || visited[n.Y*w+n.X] {
				continue
			}

			j := buf.PixOffset(b.Min.X+n.X, b.Min.Y+n.Y)
			if buf.Pix[j+3] < alpha {
				stack = append(stack, n)
				continue
			}

			dr := float64(r) - float64(buf.Pix[j])
			dg := float64(g) - float64(buf.Pix[j+1])
			db := float64(bl) - float64(buf.Pix[j+2])
			if dr*dr+dg*dg+db*db < tolSq {
				stack = append(stack, n)
			}
		}
	}
}

// ContentBounds returns the smallest rectangle holding every pixel with alpha
// above alpha, or the whole canvas when there is none.
func ContentBounds(buf *image.NRGBA, alpha uint8) image.Rectangle {
	b := buf.Bounds()
	res := image.Rectangle{}
	found := false

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if buf.Pix[buf.PixOffset(x, y)+3] <= alpha {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if !found {
				res, found = px, true
			} else {
				res = res.Union(px)
			}
		}
	}

	if !found {
		return b
	}
	return res
}
