package sprite

import (
	"fmt"

	"spritegen/grid"
	"spritegen/palette"
	"spritegen/pixel"
)

const maxCanvas = 4096

// Options configures a conversion. The zero value is not usable, start from
// DefaultOptions.
type Options struct {
	// Size of the working canvas the source is letterboxed into.
	CanvasWidth  int
	CanvasHeight int
	// Contrast boost applied before background removal.
	Contrast float64
	// Colour distance under which neighbouring pixels are flooded as background.
	Tolerance float64
	// Pixels with alpha below it count as transparent for segmentation and bounds.
	TransparentAlpha uint8

	Sample    pixel.SampleOptions
	Features  grid.FeatureRule
	MaxColors int
	HueGuard  float64
	StrictHue bool
	Metric    palette.Metric
}

func DefaultOptions() Options {
	return Options{
		CanvasWidth:      128,
		CanvasHeight:     128,
		Contrast:         1.25,
		Tolerance:        40,
		TransparentAlpha: 50,
		Sample:           pixel.DefaultSampleOptions,
		Features:         grid.DefaultFeatureRule,
		MaxColors:        6,
		HueGuard:         1.2,
		Metric:           palette.MetricRGB,
	}
}

func (o Options) Validate() error {
	switch {
	case o.CanvasWidth <= 0 || o.CanvasHeight <= 0:
		return fmt.Errorf("%w: invalid size %dx%d", ErrCanvas, o.CanvasWidth, o.CanvasHeight)
	case o.CanvasWidth > maxCanvas || o.CanvasHeight > maxCanvas:
		return fmt.Errorf("%w: size %dx%d exceeds %dx%d", ErrCanvas, o.CanvasWidth, o.CanvasHeight, maxCanvas, maxCanvas)
	case o.MaxColors < 1:
		return fmt.Errorf("invalid max colors: %d", o.MaxColors)
	case o.Tolerance < 0:
		return fmt.Errorf("invalid tolerance: %v", o.Tolerance)
	case o.Contrast < -255 || o.Contrast >= 259:
		return fmt.Errorf("invalid contrast: %v, must be in [-255, 259)", o.Contrast)
	}
	return nil
}

func (o Options) quantize() grid.QuantizeOptions {
	return grid.QuantizeOptions{
		MaxColors: o.MaxColors,
		HueGuard:  o.HueGuard,
		StrictHue: o.StrictHue,
		Metric:    o.Metric,
		Features:  o.Features,
	}
}
