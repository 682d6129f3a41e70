// Package sprite turns an arbitrary raster image into a small four direction
// pixel art sprite.
package sprite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"spritegen/grid"
	"spritegen/pixel"
)

var (
	ErrDecode = errors.New("could not decode image")
	ErrCanvas = errors.New("invalid canvas")
)

// Converter runs the pipeline with a fixed set of options. It holds no
// per-conversion state and is safe for concurrent use.
type Converter struct {
	Options Options
	Logger  *slog.Logger
}

func NewConverter(opt Options, logger *slog.Logger) (*Converter, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{Options: opt, Logger: logger}, nil
}

// Convert runs data through the pipeline with DefaultOptions.
func Convert(ctx context.Context, data []byte, origW, origH int) (*Result, error) {
	c := Converter{Options: DefaultOptions(), Logger: slog.Default()}
	return c.Convert(ctx, data, origW, origH)
}

// Convert decodes data and builds the sprite. origW and origH give the aspect
// ratio the image is laid out with on the working canvas; values <= 0 use the
// decoded size.
func (c *Converter) Convert(ctx context.Context, data []byte, origW, origH int) (*Result, error) {
	if err := c.Options.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	logger := c.logger().With("format", format)

	buf, content := c.segment(img, origW, origH, logger)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return c.build(buf, content, logger), nil
}

// FromImage runs an already decoded image through the pipeline.
func (c *Converter) FromImage(ctx context.Context, img image.Image) (*Result, error) {
	if err := c.Options.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := c.logger()
	buf, content := c.segment(img, 0, 0, logger)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.build(buf, content, logger), nil
}

// Segment runs only the full resolution stages on img. It returns the
// background-free working canvas, its content bounds and the layout the
// pipeline would pick, without building the grids.
func (c *Converter) Segment(img image.Image) (*image.NRGBA, image.Rectangle, Layout, error) {
	if err := c.Options.Validate(); err != nil {
		return nil, image.Rectangle{}, Layout{}, err
	}
	buf, content := c.segment(img, 0, 0, c.logger())
	return buf, content, Classify(content), nil
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Converter) segment(img image.Image, origW, origH int, logger *slog.Logger) (*image.NRGBA, image.Rectangle) {
	opt := c.Options

	buf := pixel.Letterbox(img, opt.CanvasWidth, opt.CanvasHeight, origW, origH)
	pixel.Contrast(buf, opt.Contrast)
	pixel.RemoveBackground(buf, opt.Tolerance, opt.TransparentAlpha)
	content := pixel.ContentBounds(buf, opt.TransparentAlpha)

	logger.Debug("segmented", "source", img.Bounds().Size(), "content", content)
	return buf, content
}

func (c *Converter) build(buf *image.NRGBA, content image.Rectangle, logger *slog.Logger) *Result {
	opt := c.Options
	layout := Classify(content)
	logger = logger.With("type", layout.Archetype)

	g := pixel.Downsample(buf, content, layout.Width, layout.Height, opt.Sample)
	g = opt.Features.Inflate(g)
	g = opt.Features.CleanIslands(g)

	g, _, stats := grid.Quantize(g, opt.quantize())
	if stats.Relaxed > 0 {
		logger.Debug("hue guard relaxed", "merges", stats.Relaxed)
	}
	logger.Debug("quantized", "colors", stats.Colors, "merges", stats.Merges)

	if layout.Archetype == TallObject {
		g = grid.AnchorGround(g)
	}

	return &Result{
		Views:     SynthesizeViews(g, layout.SideWidth()),
		Archetype: layout.Archetype,
		Dimensions: Dimensions{
			Width:  g.Width(),
			Height: g.Height(),
		},
		Palette: g.Palette(),
	}
}
