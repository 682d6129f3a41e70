package export

import (
	"fmt"
	"io"

	"spritegen/sprite"

	svg "github.com/ajstarks/svgo"
)

// errWriter keeps the first write error, svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG draws the sheet of r as one rect per opaque cell, grouped by view.
func WriteSVG(w io.Writer, r *sprite.Result, scale int) error {
	scale = max(1, scale)
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	cw, ch := sheetCells(r)
	canvas.Start(cw*scale, ch*scale, `shape-rendering="crispEdges"`)
	canvas.Title(string(r.Archetype))

	x0 := 0
	for i, v := range views(r) {
		canvas.Gid(viewNames[i])
		for y := range v.Height() {
			for x := range v.Width() {
				c := v.At(x, y)
				if !c.Opaque {
					continue
				}
				canvas.Rect((x0+x)*scale, y*scale, scale, scale, "fill:"+c.Color.Hex())
			}
		}
		canvas.Gend()
		x0 += v.Width() + sheetGap
	}
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("could not write SVG: %w", ew.err)
	}
	return nil
}
