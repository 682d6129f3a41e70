// Package convert implements the convert command, turning batches of images
// into sprites.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"spritegen/export"
	"spritegen/parallel"
	"spritegen/sprite"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Paths  []string `arg:"" optional:"" help:"Images or folders to convert. Folders are not scanned recursively." default:"."`
	Dest   string   `help:"Destination folder for sprites. Relative to the folder of each image if not absolute." default:"sprites"`
	Sheet  string   `help:"Also write a sprite sheet in this format" enum:"none,png,gif,bmp,tiff" default:"none" group:"output"`
	Scale  int      `help:"Sheet pixels per sprite cell" default:"8" group:"output"`
	SVG    bool     `help:"Also write an SVG sprite sheet" group:"output"`
	Pal    bool     `help:"Also write the sprite palette as a RIFF PAL file" group:"output"`
	Swatch bool     `help:"Also write a PNG swatch of the sprite palette" group:"output"`

	Pipeline Flags `embed:""`

	Options sprite.Options `kong:"-"`
	Jobs    []*Job         `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Scale < 1 {
		return fmt.Errorf("invalid sheet scale: %d", c.Scale)
	}

	opt, err := c.Pipeline.Options()
	if err != nil {
		return err
	}
	c.Options = opt

	if c.Jobs, err = Scan(c.Paths, c.Dest); err != nil {
		return err
	}
	if len(c.Jobs) == 0 {
		return fmt.Errorf("no images found")
	}
	return nil
}

func (c *CLICmd) Formats() export.Formats {
	f := export.Formats{
		Scale:   c.Scale,
		SVG:     c.SVG,
		Palette: c.Pal,
		Swatch:  c.Swatch,
	}
	if c.Sheet != "none" {
		f.Sheet = c.Sheet
	}
	return f
}

func (c *CLICmd) Run(ctx context.Context, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	conv, err := sprite.NewConverter(c.Options, slog.Default())
	if err != nil {
		return err
	}
	formats := c.Formats()

	for _, job := range c.Jobs {
		worker(func(job *Job) func() {
			return func() {
				convertJob(ctx, conv, job, formats)
			}
		}(job))
	}

	wait(true)

	var converted, errors, skipped int
	for _, job := range c.Jobs {
		switch job.Status {
		case sprite.Complete:
			converted++
		case sprite.Error:
			errors++
		default:
			skipped++
		}
	}
	slog.Info("stats", "converted", converted, "errors", errors, "skipped", skipped,
		"total", len(c.Jobs))

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted after %d of %d files: %w", converted+errors, len(c.Jobs), err)
	}
	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func convertJob(ctx context.Context, conv *sprite.Converter, job *Job, formats export.Formats) {
	logger := slog.Default().With("file", job.Source)
	job.Status = sprite.Processing

	data, err := os.ReadFile(job.Source)
	if err != nil {
		job.fail(err)
		logger.Error("could not read image", "error", err)
		return
	}

	res, err := conv.Convert(ctx, data, 0, 0)
	if err != nil {
		job.fail(err)
		logger.Error("could not convert image", "error", err)
		return
	}

	if err := os.MkdirAll(job.Dest, 0o755); err != nil {
		job.fail(err)
		logger.Error("could not create destination folder", "dir", job.Dest, "error", err)
		return
	}

	if err := export.Save(job.Dest, job.Name(), res, formats); err != nil {
		job.fail(err)
		logger.Error("could not save sprite", "dir", job.Dest, "error", err)
		return
	}

	job.Status = sprite.Complete
	logger.Info("converted", "type", res.Archetype,
		"width", res.Dimensions.Width, "height", res.Dimensions.Height, "colors", len(res.Palette))
}
