package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"spritegen/sprite"
)

// Formats selects the files Save writes next to the JSON result.
type Formats struct {
	Sheet   string // sheet format, empty for none
	Scale   int    // sheet and SVG pixels per cell
	SVG     bool
	Palette bool
	Swatch  bool
}

// Save writes <name>.json and every selected format into dir. Each file is
// written to a temporary file first and renamed into place once complete.
func Save(dir, name string, r *sprite.Result, f Formats) error {
	type output struct {
		ext   string
		write func(io.Writer) error
	}

	outs := []output{{".json", func(w io.Writer) error { return WriteJSON(w, r) }}}
	if f.Sheet != "" {
		outs = append(outs, output{"." + f.Sheet, func(w io.Writer) error { return WriteSheet(w, r, f.Scale, f.Sheet) }})
	}
	if f.SVG {
		outs = append(outs, output{".svg", func(w io.Writer) error { return WriteSVG(w, r, f.Scale) }})
	}
	if f.Palette {
		outs = append(outs, output{".pal", func(w io.Writer) error { return WritePalette(w, r) }})
	}
	if f.Swatch {
		outs = append(outs, output{".swatch.png", func(w io.Writer) error { return WriteSwatch(w, r, 16) }})
	}

	for _, out := range outs {
		if err := save(dir, name+out.ext, out.write); err != nil {
			return err
		}
	}
	return nil
}

func save(destDir, destName string, write func(io.Writer) error) (err error) {
	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil {
			err = errors.Join(err, fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr))
		}
		if defErr := outFile.Close(); defErr != nil {
			err = errors.Join(err, fmt.Errorf("could not close temporary destination %q: %w", destName, defErr))
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			os.Remove(outFile.Name())
		}
	}()

	bw := bufio.NewWriter(outFile)
	if err = write(bw); err != nil {
		return fmt.Errorf("could not write destination %q: %w", destName, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("could not write destination %q: %w", destName, err)
	}

	canRename = true
	return nil
}
