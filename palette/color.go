package palette

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// ParseHex reads a #rgb or #rrggbb colour.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	switch len(s) {
	case 4, 7:
	default:
		return RGB{}, fmt.Errorf("invalid color %q, should be #RGB or #RRGGBB", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("could not read color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// FromColor drops the alpha channel of c, un-premultiplying it first.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// Hex returns the normalized #rrggbb form.
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) String() string {
	return c.Hex()
}

func (c RGB) RGBA() (uint32, uint32, uint32, uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}.RGBA()
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *RGB) UnmarshalText(b []byte) error {
	v, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Packed returns 0xRRGGBB; ordering by it equals ordering by hex string.
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// DistanceSq is the squared Euclidean distance over R, G and B.
func DistanceSq(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Distance is the Euclidean distance over R, G and B in 0..255 units.
func Distance(a, b RGB) float64 {
	return math.Sqrt(float64(DistanceSq(a, b)))
}

// HueAngle is atan2(g-b, r-b), a cheap hue estimate in radians.
func HueAngle(c RGB) float64 {
	return math.Atan2(float64(int(c.G)-int(c.B)), float64(int(c.R)-int(c.B)))
}

// HueDistance is the absolute difference of the two hue angles, without wraparound.
func HueDistance(a, b RGB) float64 {
	return math.Abs(HueAngle(a) - HueAngle(b))
}
