package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"spritegen/convert"
	"spritegen/export"
	"spritegen/sprite"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	File string `arg:"" help:"Image to convert, or a sprite JSON file written by convert"`

	Pipeline convert.Flags `embed:""`

	Options sprite.Options `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	info, err := os.Stat(c.File)
	if err == nil && !info.Mode().IsRegular() {
		err = fmt.Errorf("not a regular file")
	}
	if err != nil {
		return fmt.Errorf("invalid file %q: %w", c.File, err)
	}

	c.Options, err = c.Pipeline.Options()
	return err
}

// Load converts the image at path, or reads it back when it is a sprite JSON.
func Load(ctx context.Context, path string, opt sprite.Options) (*sprite.Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open sprite %q: %w", path, err)
		}
		defer f.Close()
		return export.ReadJSON(f)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read image %q: %w", path, err)
	}

	conv, err := sprite.NewConverter(opt, slog.Default().With("file", path))
	if err != nil {
		return nil, err
	}
	return conv.Convert(ctx, data, 0, 0)
}

func (c *CLICmd) Run(ctx context.Context) error {
	res, err := Load(ctx, c.File, c.Options)
	if err != nil {
		return err
	}
	return Run(res, filepath.Base(c.File))
}
