package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/riverlight/internal/field"
	"github.com/samdwyer/riverlight/internal/legend"
)

// cellWidth is the number of screen columns per grid cell.
const cellWidth = 2

// View selects what the renderer draws on top of the terrain.
type View struct {
	Cursor   field.Coord
	Overlays bool     // Draw mirrors and rotators over the terrain
	Status   []string // Lines printed below the grid
}

// Renderer handles drawing fields to the screen.
type Renderer struct {
	screen *Screen
	legend *legend.Registry
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, registry *legend.Registry) *Renderer {
	return &Renderer{screen: screen, legend: registry}
}

// Render draws the field, the cursor and the status lines. Grid row x is
// screen row x; grid column y starts at screen column y*cellWidth.
func (r *Renderer) Render(f *field.Field, view View) {
	r.screen.Clear()

	rows := f.Rows()
	for x, row := range rows {
		for y, label := range row {
			r.drawGlyph(field.Coord{X: x, Y: y}, r.legend.ForLabel(label))
		}
	}

	if view.Overlays {
		stacked := make(map[field.Coord]int)
		for _, m := range f.Mirrors() {
			r.drawGlyph(m.At, r.legend.ForMirror(m.Orientation))
			stacked[m.At]++
		}
		for _, rot := range f.Rotators() {
			r.drawGlyph(rot.At, r.legend.ForRotator(rot.Spin))
			stacked[rot.At]++
		}
		// More than one overlay on a cell is flagged in its spare column
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		for at, n := range stacked {
			if n > 1 {
				r.screen.SetContent(at.Y*cellWidth+1, at.X, '*', style)
			}
		}
	}

	// Draw cursor on top
	if view.Cursor.In(f.Size()) {
		ch, style := r.screen.Content(view.Cursor.Y*cellWidth, view.Cursor.X)
		r.screen.SetContent(view.Cursor.Y*cellWidth, view.Cursor.X, ch, style.Reverse(true).Bold(true))
	}

	for i, line := range view.Status {
		r.RenderMessage(line, len(rows)+1+i)
	}

	r.screen.Show()
}

// drawGlyph draws one definition at a grid coordinate.
func (r *Renderer) drawGlyph(at field.Coord, def *legend.GlyphDef) {
	ch := '?'
	style := tcell.StyleDefault
	if def != nil {
		ch = def.GlyphRune()
		style = style.Foreground(def.TCellColor())
	}
	r.screen.SetContent(at.Y*cellWidth, at.X, ch, style)
}

// RenderMessage displays a message at the given screen row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
