package grid

// Inflate heals one cell gaps in the silhouette, then thickens interior
// features into their transparent neighbours. Both passes judge cells on g,
// so cells filled by healing never count as features. g is not modified.
func (r FeatureRule) Inflate(g Grid) Grid {
	healed := g.Clone()
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			if g.At(x, y).Opaque {
				continue
			}

			var first Cell
			count := 0
			for _, d := range orthogonal {
				n := g.At(x+d[0], y+d[1])
				if !n.Opaque {
					continue
				}
				if count == 0 {
					first = n
				}
				count++
			}
			if count >= 2 {
				healed.Set(x, y, first)
			}
		}
	}

	out := healed.Clone()
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			if !r.IsInteriorFeature(g, x, y) {
				continue
			}
			c := g.At(x, y)
			for _, d := range orthogonal {
				nx, ny := x+d[0], y+d[1]
				if out.In(nx, ny) && !out.At(nx, ny).Opaque {
					out.Set(nx, ny, c)
				}
			}
		}
	}
	return out
}

// Inflate applies DefaultFeatureRule.
func Inflate(g Grid) Grid {
	return DefaultFeatureRule.Inflate(g)
}
