package sprite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"spritegen/grid"
	"spritegen/palette"
)

func encode(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// block returns a transparent w×h image holding a solid rectangle.
func block(w, h int, r image.Rectangle, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var blue = color.NRGBA{B: 255, A: 255}

func TestConvertTallBlock(t *testing.T) {
	data := encode(t, block(64, 128, image.Rect(16, 16, 48, 112), blue))

	res, err := Convert(context.Background(), data, 64, 128)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if res.Archetype != TallObject {
		t.Errorf("type = %q, want %q", res.Archetype, TallObject)
	}
	if res.Dimensions != (Dimensions{Width: 8, Height: 16}) {
		t.Errorf("dimensions = %+v", res.Dimensions)
	}
	if !res.Palette.Contains(palette.RGB{B: 255}) {
		t.Errorf("palette %v does not hold #0000ff", res.Palette)
	}

	front := res.Views.Front
	for x := range front.Width() {
		if !front.At(x, front.Height()-1).Opaque {
			t.Errorf("bottom row cell %d is transparent", x)
		}
	}
	if w := res.Views.Left.Width(); w != 6 {
		t.Errorf("side view width = %d, want 6", w)
	}
}

func TestConvertWideBlock(t *testing.T) {
	data := encode(t, block(128, 64, image.Rect(8, 16, 120, 48), blue))

	res, err := Convert(context.Background(), data, 0, 0)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.Archetype != WideObject {
		t.Errorf("type = %q, want %q", res.Archetype, WideObject)
	}
	if res.Dimensions != (Dimensions{Width: 16, Height: 12}) {
		t.Errorf("dimensions = %+v", res.Dimensions)
	}
}

func TestConvertPaletteMatchesGrid(t *testing.T) {
	img := block(96, 96, image.Rect(16, 16, 80, 80), blue)
	colors := []color.NRGBA{
		{R: 255, A: 255}, {G: 200, A: 255}, {R: 250, G: 220, A: 255},
		{R: 120, G: 40, B: 200, A: 255}, {R: 30, G: 30, B: 30, A: 255},
		{G: 180, B: 180, A: 255}, {R: 200, B: 90, A: 255}, {R: 90, G: 60, B: 10, A: 255},
	}
	for i, c := range colors {
		x := 16 + i*8
		for y := 16; y < 80; y++ {
			for dx := range 8 {
				img.SetNRGBA(x+dx, y, c)
			}
		}
	}

	opt := DefaultOptions()
	opt.MaxColors = 4
	conv, err := NewConverter(opt, nil)
	if err != nil {
		t.Fatal(err)
	}

	res, err := conv.Convert(context.Background(), encode(t, img), 0, 0)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if len(res.Palette) == 0 || len(res.Palette) > 4 {
		t.Errorf("palette has %d colors, want 1..4", len(res.Palette))
	}
	if got := res.Views.Front.Palette(); !equalPalettes(got, res.Palette) {
		t.Errorf("palette %v does not match grid colors %v", res.Palette, got)
	}
}

func equalPalettes(a, b palette.Palette) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestConvertViewsAreMirrored(t *testing.T) {
	img := block(64, 64, image.Rect(8, 8, 56, 56), blue)
	for y := 8; y < 56; y++ {
		for x := 8; x < 24; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	res, err := Convert(context.Background(), encode(t, img), 0, 0)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	v := res.Views
	for y := range v.Front.Height() {
		fw := v.Front.Width()
		for x := range fw {
			if v.Back.At(x, y) != v.Front.At(fw-1-x, y) {
				t.Fatalf("back[%d][%d] is not the mirror of front", y, x)
			}
		}
		lw := v.Left.Width()
		for x := range lw {
			if v.Right.At(x, y) != v.Left.At(lw-1-x, y) {
				t.Fatalf("right[%d][%d] is not the mirror of left", y, x)
			}
		}
	}
}

func TestConvertErrors(t *testing.T) {
	valid := encode(t, block(8, 8, image.Rect(2, 2, 6, 6), blue))

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	badCanvas := DefaultOptions()
	badCanvas.CanvasWidth = 0
	hugeCanvas := DefaultOptions()
	hugeCanvas.CanvasHeight = 5000

	tests := []struct {
		name string
		ctx  context.Context
		opt  Options
		data []byte
		want error
	}{
		{"not an image", context.Background(), DefaultOptions(), []byte("definitely not an image"), ErrDecode},
		{"empty payload", context.Background(), DefaultOptions(), nil, ErrDecode},
		{"zero canvas", context.Background(), badCanvas, valid, ErrCanvas},
		{"huge canvas", context.Background(), hugeCanvas, valid, ErrCanvas},
		{"canceled", canceled, DefaultOptions(), valid, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Converter{Options: tt.opt}
			res, err := c.Convert(tt.ctx, tt.data, 0, 0)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if res != nil {
				t.Error("expected no result")
			}
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}

	opt := DefaultOptions()
	opt.MaxColors = 0
	if err := opt.Validate(); err == nil {
		t.Error("MaxColors 0 should be rejected")
	}
	if _, err := NewConverter(opt, nil); err == nil {
		t.Error("NewConverter should validate options")
	}

	tests := []struct {
		contrast float64
		valid    bool
	}{
		{-255, true},
		{0, true},
		{258.9, true},
		{-255.5, false},
		{259, false},
		{300, false},
	}
	for _, tt := range tests {
		opt := DefaultOptions()
		opt.Contrast = tt.contrast
		if err := opt.Validate(); (err == nil) != tt.valid {
			t.Errorf("Validate with contrast %v: err = %v, want valid %v", tt.contrast, err, tt.valid)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		content image.Rectangle
		want    Layout
	}{
		{image.Rect(0, 0, 40, 20), wideLayout},
		{image.Rect(0, 0, 131, 100), wideLayout},
		{image.Rect(0, 0, 130, 100), squareLayout},
		{image.Rect(0, 0, 75, 100), squareLayout},
		{image.Rect(0, 0, 74, 100), tallLayout},
		{image.Rect(10, 10, 11, 11), squareLayout},
	}
	for _, tt := range tests {
		if got := Classify(tt.content); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.content, got.Archetype, tt.want.Archetype)
		}
	}
}

func TestSideWidth(t *testing.T) {
	for _, l := range []Layout{wideLayout, tallLayout, squareLayout} {
		if got := l.SideWidth(); got != 6 {
			t.Errorf("%s side width = %d, want 6", l.Archetype, got)
		}
	}

	narrow := Layout{Width: 3, SideCompression: 0.5}
	if got := narrow.SideWidth(); got != 4 {
		t.Errorf("side width should not drop below 4, got %d", got)
	}
}

func TestResultJSON(t *testing.T) {
	g := grid.New(2, 1)
	g.Set(0, 0, grid.Paint(palette.RGB{R: 0x12, G: 0x34, B: 0x56}))
	res := Result{
		Views:      SynthesizeViews(g, 4),
		Archetype:  SquareObject,
		Dimensions: Dimensions{Width: 2, Height: 1},
		Palette:    g.Palette(),
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		Matrix     map[string][][]string `json:"matrix"`
		Type       string                `json:"type"`
		Dimensions map[string]int        `json:"dimensions"`
		Palette    []string              `json:"palette"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}

	if got.Type != "square_object" {
		t.Errorf("type = %q", got.Type)
	}
	if got.Dimensions["width"] != 2 || got.Dimensions["height"] != 1 {
		t.Errorf("dimensions = %v", got.Dimensions)
	}
	if len(got.Palette) != 1 || got.Palette[0] != "#123456" {
		t.Errorf("palette = %v", got.Palette)
	}
	if row := got.Matrix["back"][0]; row[0] != "transparent" || row[1] != "#123456" {
		t.Errorf("back row = %v", row)
	}
	for _, view := range []string{"front", "back", "left", "right"} {
		if _, ok := got.Matrix[view]; !ok {
			t.Errorf("matrix is missing %q", view)
		}
	}
	if len(got.Matrix["left"][0]) != 4 {
		t.Errorf("left width = %d", len(got.Matrix["left"][0]))
	}
}

func TestConvertConcurrent(t *testing.T) {
	data := encode(t, block(64, 128, image.Rect(16, 16, 48, 112), blue))
	conv, err := NewConverter(DefaultOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}

	want, err := conv.Convert(context.Background(), data, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			got, err := conv.Convert(context.Background(), data, 0, 0)
			if err != nil {
				t.Error(err)
				return
			}
			if !got.Views.Front.Equal(want.Views.Front) {
				t.Error("concurrent conversion produced a different grid")
			}
		})
	}
	wg.Wait()
}

func TestStatus(t *testing.T) {
	tests := []struct {
		s    Status
		name string
		done bool
	}{
		{Idle, "idle", false},
		{Processing, "processing", false},
		{Complete, "complete", true},
		{Error, "error", true},
	}
	for _, tt := range tests {
		if tt.s.String() != tt.name || tt.s.Done() != tt.done {
			t.Errorf("%d: got %q/%v", tt.s, tt.s.String(), tt.s.Done())
		}
	}
}
