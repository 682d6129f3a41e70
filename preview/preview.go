// Package preview shows sprites in a terminal.
package preview

import (
	"fmt"

	"spritegen/grid"
	"spritegen/sprite"

	"github.com/gdamore/tcell/v2"
)

// Upper half block: foreground paints the upper cell, background the lower.
const halfBlock = '▀'

// Columns between two views.
const viewGap = 2

var labels = [4]string{"front", "back", "left", "right"}

func cellColor(c grid.Cell) tcell.Color {
	if !c.Opaque {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.Color.R), int32(c.Color.G), int32(c.Color.B))
}

// drawView paints g with its top left corner at x, y using two grid rows per
// terminal row.
func drawView(s tcell.Screen, g grid.Grid, x, y int) {
	for row := 0; row < g.Height(); row += 2 {
		for col := range g.Width() {
			upper, lower := g.At(col, row), g.At(col, row+1)
			if !upper.Opaque && !lower.Opaque {
				s.SetContent(x+col, y+row/2, ' ', nil, tcell.StyleDefault)
				continue
			}

			style := tcell.StyleDefault.Foreground(cellColor(upper)).Background(cellColor(lower))
			s.SetContent(x+col, y+row/2, halfBlock, nil, style)
		}
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// Draw paints the four views of r side by side starting at x, y, each with
// its label underneath. It returns the size of the painted area.
func Draw(s tcell.Screen, r *sprite.Result, x, y int) (w, h int) {
	views := [4]grid.Grid{r.Views.Front, r.Views.Back, r.Views.Left, r.Views.Right}

	rows := 0
	for _, v := range views {
		rows = max(rows, (v.Height()+1)/2)
	}

	col := x
	for i, v := range views {
		drawView(s, v, col, y)
		drawText(s, col, y+rows, labels[i], tcell.StyleDefault.Dim(true))
		col += max(v.Width(), len(labels[i])) + viewGap
	}

	return col - viewGap - x, rows + 1
}

func drawFrame(s tcell.Screen, r *sprite.Result, title string) {
	s.Clear()
	drawText(s, 1, 0, title, tcell.StyleDefault.Bold(true))
	_, h := Draw(s, r, 1, 2)
	drawText(s, 1, 2+h+1, "press any key to exit", tcell.StyleDefault.Dim(true))
	s.Show()
}

func header(r *sprite.Result, name string) string {
	return fmt.Sprintf("%s  %s %dx%d  %d colours", name, r.Archetype,
		r.Dimensions.Width, r.Dimensions.Height, len(r.Palette))
}

// Show draws r on s and blocks until a key is pressed. The screen must be
// initialized, it is not finalized.
func Show(s tcell.Screen, r *sprite.Result, name string) {
	title := header(r, name)
	drawFrame(s, r, title)

	for {
		switch s.PollEvent().(type) {
		case *tcell.EventResize:
			s.Sync()
			drawFrame(s, r, title)
		case *tcell.EventKey:
			return
		case nil:
			return
		}
	}
}

// Run opens the terminal, shows r until a key is pressed and restores the
// terminal.
func Run(r *sprite.Result, name string) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("could not open terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("could not initialize terminal: %w", err)
	}
	defer s.Fini()

	Show(s, r, name)
	return nil
}
