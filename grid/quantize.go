package grid

import (
	"math"

	"spritegen/palette"
)

// QuantizeOptions configures Quantize.
type QuantizeOptions struct {
	MaxColors int
	// HueGuard is the largest hue angle difference (radians) two colours may
	// have and still be merged.
	HueGuard float64
	// StrictHue stops merging when only hue-incompatible pairs remain, which
	// can leave more than MaxColors colours. Otherwise the guard is lifted
	// for those merges.
	StrictHue bool
	Metric    palette.Metric
	Features  FeatureRule
}

var DefaultQuantizeOptions = QuantizeOptions{
	MaxColors: 6,
	HueGuard:  1.2,
	Metric:    palette.MetricRGB,
	Features:  DefaultFeatureRule,
}

// QuantizeStats reports what Quantize did.
type QuantizeStats struct {
	Colors  int // distinct colours before merging
	Merges  int
	Relaxed int // merges done with the hue guard lifted
}

const (
	spanWeight    = 1000
	featureWeight = 2000
)

type colorTally struct {
	col      palette.RGB
	count    int
	features int
	columns  map[int]struct{}
}

func (t *colorTally) score() int {
	return len(t.columns)*spanWeight + t.features*featureWeight + t.count
}

// Quantize merges the closest colour pairs until at most MaxColors remain.
// When two colours merge, the one with the wider column span, more interior
// feature cells and more cells survives. Feature counts come from g and are
// not carried over by merges. g is not modified.
func Quantize(g Grid, opt QuantizeOptions) (Grid, palette.Palette, QuantizeStats) {
	tallies := tally(g, opt.Features)
	stats := QuantizeStats{Colors: len(tallies)}
	out := g.Clone()

	if opt.MaxColors < 1 {
		opt.MaxColors = 1
	}

	for len(tallies) > opt.MaxColors {
		i, j := closestPair(tallies, opt.Metric, opt.HueGuard)
		if i < 0 {
			if opt.StrictHue {
				break
			}
			i, j = closestPair(tallies, opt.Metric, math.Inf(1))
			stats.Relaxed++
		}

		survivor, victim := tallies[i], tallies[j]
		if victim.score() > survivor.score() {
			survivor, victim = victim, survivor
		}

		survivor.count += victim.count
		for col := range victim.columns {
			survivor.columns[col] = struct{}{}
		}
		for k, c := range out.cells {
			if c.Opaque && c.Color == victim.col {
				out.cells[k] = Paint(survivor.col)
			}
		}

		if victim == tallies[i] {
			j = i
		}
		tallies = append(tallies[:j], tallies[j+1:]...)
		stats.Merges++
	}

	cols := make([]palette.RGB, len(tallies))
	for k, t := range tallies {
		cols[k] = t.col
	}
	return out, palette.New(cols...), stats
}

// tally collects per colour statistics in order of first appearance.
func tally(g Grid, rule FeatureRule) []*colorTally {
	var res []*colorTally
	index := make(map[palette.RGB]*colorTally)
	for y := range g.h {
		for x := range g.w {
			c := g.At(x, y)
			if !c.Opaque {
				continue
			}

			t, ok := index[c.Color]
			if !ok {
				t = &colorTally{col: c.Color, columns: make(map[int]struct{})}
				index[c.Color] = t
				res = append(res, t)
			}
			t.count++
			t.columns[x] = struct{}{}
			if rule.IsInteriorFeature(g, x, y) {
				t.features++
			}
		}
	}
	return res
}

// closestPair returns the indexes of the nearest pair whose hue distance does
// not exceed guard, or -1, -1.
func closestPair(tallies []*colorTally, m palette.Metric, guard float64) (int, int) {
	bi, bj := -1, -1
	best := math.Inf(1)
	for i := range tallies {
		for j := i + 1; j < len(tallies); j++ {
			a, b := tallies[i].col, tallies[j].col
			if palette.HueDistance(a, b) > guard {
				continue
			}
			if d := m.Distance(a, b); d < best {
				best, bi, bj = d, i, j
			}
		}
	}
	return bi, bj
}
