package grid

// FeatureRule decides which cells are small enclosed markings (eyes, buttons,
// logos) that cleanup must not erase.
type FeatureRule struct {
	MinOpaque int // opaque neighbours needed out of 8
	MaxSame   int // opaque neighbours allowed to share the cell colour
}

var DefaultFeatureRule = FeatureRule{MinOpaque: 6, MaxSame: 2}

// IsInteriorFeature reports whether the opaque cell at (x, y) is fully
// surrounded by the grid and mostly by colours other than its own.
func (r FeatureRule) IsInteriorFeature(g Grid, x, y int) bool {
	c := g.At(x, y)
	if !c.Opaque {
		return false
	}

	var opaque, same int
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.In(nx, ny) {
				return false
			}
			n := g.At(nx, ny)
			if !n.Opaque {
				continue
			}
			opaque++
			if n.Color == c.Color {
				same++
			}
		}
	}

	return opaque >= r.MinOpaque && same <= r.MaxSame
}

// IsInteriorFeature applies DefaultFeatureRule.
func IsInteriorFeature(g Grid, x, y int) bool {
	return DefaultFeatureRule.IsInteriorFeature(g, x, y)
}

// isEdge reports whether (x, y) touches the grid border or a transparent cell.
func isEdge(g Grid, x, y int) bool {
	for _, d := range orthogonal {
		nx, ny := x+d[0], y+d[1]
		if !g.In(nx, ny) || !g.At(nx, ny).Opaque {
			return true
		}
	}
	return false
}

// left, right, up, down
var orthogonal = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
