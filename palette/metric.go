package palette

import (
	"fmt"
	"math"
)

// Metric measures how far apart two colours are. Only the ordering of
// distances matters to its users.
type Metric int

const (
	MetricRGB Metric = iota
	MetricOKLab
)

func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", "rgb":
		return MetricRGB, nil
	case "oklab":
		return MetricOKLab, nil
	default:
		return MetricRGB, fmt.Errorf("unsupported color metric: %s", s)
	}
}

func (m Metric) String() string {
	switch m {
	case MetricOKLab:
		return "oklab"
	default:
		return "rgb"
	}
}

// Distance returns the distance between a and b under m. OKLab distances are
// scaled by 255 so both metrics live in comparable ranges.
func (m Metric) Distance(a, b RGB) float64 {
	if m != MetricOKLab {
		return Distance(a, b)
	}

	l1, a1, b1 := a.colorful().OkLab()
	l2, a2, b2 := b.colorful().OkLab()
	dl, da, db := l1-l2, a1-a2, b1-b2
	return 255 * math.Sqrt(dl*dl+da*da+db*db)
}
