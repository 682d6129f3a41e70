// Package grid holds the low resolution colour grids a sprite is made of and
// the stages that clean them up.
package grid

import (
	"encoding/json"
	"fmt"

	"spritegen/palette"
)

const transparentText = "transparent"

// Cell is either transparent or an opaque colour.
type Cell struct {
	Color  palette.RGB
	Opaque bool
}

// Transparent is the empty cell.
var Transparent = Cell{}

// Paint returns an opaque cell of colour c.
func Paint(c palette.RGB) Cell {
	return Cell{Color: c, Opaque: true}
}

func (c Cell) String() string {
	if !c.Opaque {
		return transparentText
	}
	return c.Color.Hex()
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(b []byte) error {
	if string(b) == transparentText {
		*c = Transparent
		return nil
	}

	col, err := palette.ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = Paint(col)
	return nil
}

// Grid is a fixed size, row-major matrix of cells.
type Grid struct {
	w, h  int
	cells []Cell
}

// New returns a transparent w×h grid.
func New(w, h int) Grid {
	return Grid{w: w, h: h, cells: make([]Cell, w*h)}
}

// FromRows builds a grid from equally long rows.
func FromRows(rows [][]Cell) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, nil
	}

	g := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.w {
			return Grid{}, fmt.Errorf("row %d has %d cells, expected %d", y, len(row), g.w)
		}
		copy(g.cells[y*g.w:], row)
	}
	return g, nil
}

func (g Grid) Width() int  { return g.w }
func (g Grid) Height() int { return g.h }

func (g Grid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

// At returns the cell at (x, y); out of range positions read as transparent.
func (g Grid) At(x, y int) Cell {
	if !g.In(x, y) {
		return Transparent
	}
	return g.cells[y*g.w+x]
}

func (g Grid) Set(x, y int, c Cell) {
	g.cells[y*g.w+x] = c
}

// Clone returns a grid that shares no storage with g.
func (g Grid) Clone() Grid {
	c := Grid{w: g.w, h: g.h, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

func (g Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.h)
	for y := range g.h {
		rows[y] = append([]Cell(nil), g.cells[y*g.w:(y+1)*g.w]...)
	}
	return rows
}

func (g Grid) Equal(o Grid) bool {
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Palette returns exactly the distinct opaque colours present in g, sorted.
func (g Grid) Palette() palette.Palette {
	var cols []palette.RGB
	seen := make(map[palette.RGB]struct{})
	for _, c := range g.cells {
		if !c.Opaque {
			continue
		}
		if _, ok := seen[c.Color]; ok {
			continue
		}
		seen[c.Color] = struct{}{}
		cols = append(cols, c.Color)
	}
	return palette.New(cols...)
}

func (g Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

func (g *Grid) UnmarshalJSON(b []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}

	v, err := FromRows(rows)
	if err != nil {
		return err
	}
	*g = v
	return nil
}
