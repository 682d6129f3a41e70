package sprite

import (
	"image"
	"math"

	"spritegen/grid"
)

// Archetype is the coarse shape class of a sprite.
type Archetype string

const (
	WideObject   Archetype = "wide_object"
	TallObject   Archetype = "tall_object"
	SquareObject Archetype = "square_object"
	// Reserved for shape classifiers that look past the aspect ratio.
	Humanoid Archetype = "humanoid"
	Object   Archetype = "object"
)

// Layout is the grid geometry picked for an archetype.
type Layout struct {
	Archetype Archetype
	Width     int
	Height    int
	// SideCompression is the width of the side views relative to the front.
	SideCompression float64
}

var (
	wideLayout   = Layout{Archetype: WideObject, Width: 16, Height: 12, SideCompression: 0.35}
	tallLayout   = Layout{Archetype: TallObject, Width: 8, Height: 16, SideCompression: 0.65}
	squareLayout = Layout{Archetype: SquareObject, Width: 12, Height: 12, SideCompression: 0.5}
)

// Classify picks the layout for content of the given size.
func Classify(content image.Rectangle) Layout {
	if content.Dy() == 0 {
		return squareLayout
	}

	ratio := float64(content.Dx()) / float64(content.Dy())
	switch {
	case ratio > 1.3:
		return wideLayout
	case ratio < 0.75:
		return tallLayout
	default:
		return squareLayout
	}
}

// SideWidth is the width of the left and right views.
func (l Layout) SideWidth() int {
	return max(4, int(math.Ceil(float64(l.Width)*l.SideCompression)))
}

// Views holds the four directions of a sprite.
type Views struct {
	Front grid.Grid `json:"front"`
	Back  grid.Grid `json:"back"`
	Left  grid.Grid `json:"left"`
	Right grid.Grid `json:"right"`
}

// SynthesizeViews derives the back view by mirroring the front, and the side
// views by squeezing each row to sideWidth cells.
func SynthesizeViews(front grid.Grid, sideWidth int) Views {
	left := grid.ResampleColumns(front, sideWidth)
	return Views{
		Front: front,
		Back:  grid.Mirror(front),
		Left:  left,
		Right: grid.Mirror(left),
	}
}
