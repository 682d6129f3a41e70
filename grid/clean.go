package grid

// CleanIslands clears isolated cells on the silhouette edge. Interior
// features and one cell wide straight runs are kept. g is not modified.
func (r FeatureRule) CleanIslands(g Grid) Grid {
	out := g.Clone()
	for y := range g.h {
		for x := range g.w {
			c := g.At(x, y)
			if !c.Opaque {
				continue
			}

			left, right := g.At(x-1, y), g.At(x+1, y)
			up, down := g.At(x, y-1), g.At(x, y+1)

			if r.IsInteriorFeature(g, x, y) {
				continue
			}
			if up == c && down == c {
				continue
			}
			if left == c && right == c {
				continue
			}

			neighbours := 0
			for _, n := range [4]Cell{left, right, up, down} {
				if n.Opaque {
					neighbours++
				}
			}
			if neighbours == 0 && isEdge(g, x, y) {
				out.Set(x, y, Transparent)
			}
		}
	}
	return out
}

// CleanIslands applies DefaultFeatureRule.
func CleanIslands(g Grid) Grid {
	return DefaultFeatureRule.CleanIslands(g)
}
