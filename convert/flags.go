package convert

import (
	"spritegen/palette"
	"spritegen/sprite"
)

// Flags exposes the pipeline knobs on the command line. Commands that run
// the pipeline embed it.
type Flags struct {
	Canvas    int     `help:"Size of the square working canvas" default:"128" group:"pipeline"`
	Tolerance float64 `help:"Colour distance under which neighbouring background pixels are flooded" default:"40" group:"pipeline"`
	Contrast  float64 `help:"Contrast boost applied before background removal" default:"1.25" group:"pipeline"`
	MaxColors int     `help:"Maximum number of sprite colours" default:"6" group:"pipeline"`
	HueGuard  float64 `help:"Largest hue difference, in radians, between colours that may merge" default:"1.2" group:"pipeline"`
	StrictHue bool    `help:"Never merge across the hue guard, even if more than max-colors colours remain" group:"pipeline"`
	Metric    string  `help:"Colour distance used to pick merges" enum:"rgb,oklab" default:"rgb" group:"pipeline"`
}

// Options maps the flags onto sprite.DefaultOptions and validates the result.
func (f Flags) Options() (sprite.Options, error) {
	metric, err := palette.ParseMetric(f.Metric)
	if err != nil {
		return sprite.Options{}, err
	}

	opt := sprite.DefaultOptions()
	opt.CanvasWidth = f.Canvas
	opt.CanvasHeight = f.Canvas
	opt.Tolerance = f.Tolerance
	opt.Contrast = f.Contrast
	opt.MaxColors = f.MaxColors
	opt.HueGuard = f.HueGuard
	opt.StrictHue = f.StrictHue
	opt.Metric = metric

	if err := opt.Validate(); err != nil {
		return sprite.Options{}, err
	}
	return opt, nil
}
