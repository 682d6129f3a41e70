// Package classify sorts images by the sprite archetype the pipeline assigns
// them.
package classify

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"spritegen/convert"
	"spritegen/palette"
	"spritegen/parallel"
	"spritegen/sprite"

	"github.com/alecthomas/kong"
	"github.com/cenkalti/dominantcolor"
)

type OpParams struct {
	Scan   string `help:"Source folder to scan" default:"."`
	Wide   string `help:"Destination folder for wide images" default:"wide_object"`
	Tall   string `help:"Destination folder for tall images" default:"tall_object"`
	Square string `help:"Destination folder for square images" default:"square_object"`
}

type ListParams struct {
	Scan   string `help:"Source folder to scan" default:"."`
	Colors int    `help:"Number of dominant colours to list" default:"3"`
}

type CLICmd struct {
	Cp struct {
		OpParams
	} `cmd:"" help:"Copy images to their archetype folders"`
	Mv struct {
		OpParams
	} `cmd:"" help:"Move images to their archetype folders"`
	Ls struct {
		ListParams
	} `cmd:"" help:"List images with their archetype, content bounds and dominant colours"`

	Pipeline convert.Flags `embed:""`

	Options sprite.Options `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	opt, err := c.Pipeline.Options()
	if err != nil {
		return err
	}
	c.Options = opt

	switch kctx.Selected().Name {
	case "cp":
		return c.Cp.OpParams.resolve()
	case "mv":
		return c.Mv.OpParams.resolve()
	case "ls":
		if c.Ls.Colors < 1 {
			return fmt.Errorf("invalid number of colours: %d", c.Ls.Colors)
		}
		c.Ls.Scan, err = scanDir(c.Ls.Scan)
		return err
	}
	return nil
}

func scanDir(path string) (string, error) {
	dir, err := filepath.Abs(path)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(dir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return "", fmt.Errorf("invalid scan path %q: %w", path, err)
	}
	return dir, nil
}

func (p *OpParams) resolve() error {
	dir, err := scanDir(p.Scan)
	if err != nil {
		return err
	}
	p.Scan = dir

	for _, dest := range []*string{&p.Wide, &p.Tall, &p.Square} {
		if !filepath.IsAbs(*dest) {
			*dest = filepath.Join(dir, *dest)
		}
	}
	return nil
}

// folder returns the destination folder for an archetype.
func (p *OpParams) folder(a sprite.Archetype) string {
	switch a {
	case sprite.WideObject:
		return p.Wide
	case sprite.TallObject:
		return p.Tall
	default:
		return p.Square
	}
}

func (c *CLICmd) Run(ctx context.Context, kctx *kong.Context, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	conv, err := sprite.NewConverter(c.Options, slog.Default())
	if err != nil {
		return err
	}

	switch subCmd := kctx.Selected().Name; subCmd {
	case "cp":
		return c.Cp.OpParams.sort(ctx, conv, copyFile, worker, wait)
	case "mv":
		return c.Mv.OpParams.sort(ctx, conv, moveFile, worker, wait)
	case "ls":
		return c.Ls.ListParams.list(ctx, conv, kctx.Stdout, worker, wait)
	default:
		return fmt.Errorf("unsupported operation: %s", subCmd)
	}
}

func (p *OpParams) sort(ctx context.Context, conv *sprite.Converter, op fileOp, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	for _, dir := range []string{p.Wide, p.Tall, p.Square} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create destination folder %q: %w", dir, err)
		}
	}

	files, err := convert.ListImages(p.Scan)
	if err != nil {
		return err
	}

	var wideCount, tallCount, squareCount, errCount atomic.Uint64
	counters := map[sprite.Archetype]*atomic.Uint64{
		sprite.WideObject:   &wideCount,
		sprite.TallObject:   &tallCount,
		sprite.SquareObject: &squareCount,
	}

	for _, file := range files {
		worker(func(name string) func() {
			return func() {
				logger := slog.Default().With("file", name)

				layout, err := classifyFile(ctx, conv, name)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not classify image", "error", err)
					return
				}

				dest := filepath.Join(p.folder(layout.Archetype), filepath.Base(name))
				if err := op(name, dest); err != nil {
					errCount.Add(1)
					logger.Error("could not operate image", "to", dest, "error", err)
					return
				}
				counters[layout.Archetype].Add(1)
			}
		}(file))
	}

	wait(true)

	wide, tall, square, errors := wideCount.Load(), tallCount.Load(), squareCount.Load(), errCount.Load()
	slog.Info("stats", "wide", wide, "tall", tall, "square", square, "errors", errors,
		"total", wide+tall+square+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return ctx.Err()
}

func decodeFile(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sprite.ErrDecode, err)
	}
	return img, nil
}

func classifyFile(ctx context.Context, conv *sprite.Converter, name string) (sprite.Layout, error) {
	if err := ctx.Err(); err != nil {
		return sprite.Layout{}, err
	}
	img, err := decodeFile(name)
	if err != nil {
		return sprite.Layout{}, err
	}
	_, _, layout, err := conv.Segment(img)
	return layout, err
}

// Entry is one line of the ls output.
type Entry struct {
	Name      string
	Archetype sprite.Archetype
	Content   image.Rectangle
	Colors    []dominantcolor.Color
	Err       error
}

func (e Entry) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s\terror\t%v", e.Name, e.Err)
	}

	cols := make([]string, len(e.Colors))
	for i, c := range e.Colors {
		cols[i] = fmt.Sprintf("%s:%.2f", palette.FromColor(c.RGBA).Hex(), c.Weight)
	}
	return fmt.Sprintf("%s\t%s\t%dx%d+%d+%d\t%s", e.Name, e.Archetype,
		e.Content.Dx(), e.Content.Dy(), e.Content.Min.X, e.Content.Min.Y, strings.Join(cols, " "))
}

// Inspect classifies one image and finds the dominant colours of its content
// once the background has been removed.
func Inspect(conv *sprite.Converter, name string, colors int) Entry {
	e := Entry{Name: filepath.Base(name)}

	img, err := decodeFile(name)
	if err != nil {
		e.Err = err
		return e
	}

	buf, content, layout, err := conv.Segment(img)
	if err != nil {
		e.Err = err
		return e
	}

	e.Archetype = layout.Archetype
	e.Content = content
	e.Colors = dominantcolor.FindWeight(buf.SubImage(content), colors)
	return e
}

func (p *ListParams) list(ctx context.Context, conv *sprite.Converter, out io.Writer, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	files, err := convert.ListImages(p.Scan)
	if err != nil {
		return err
	}

	entries := make([]Entry, len(files))
	for i, file := range files {
		worker(func(i int, name string) func() {
			return func() {
				entries[i] = Inspect(conv, name, p.Colors)
			}
		}(i, file))
	}

	wait(true)

	var errCount int
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if e.Err != nil {
			errCount++
			slog.Error("could not inspect image", "file", e.Name, "error", e.Err)
		}
		if _, err := fmt.Fprintln(out, e); err != nil {
			return fmt.Errorf("could not write listing: %w", err)
		}
	}

	if errCount > 0 {
		return fmt.Errorf("error processing %d files", errCount)
	}
	return ctx.Err()
}
