package legend

import "github.com/gdamore/tcell/v2"

// GlyphDef describes how one cell or overlay kind is drawn.
type GlyphDef struct {
	ID    string `json:"id"`    // Label or overlay code (e.g., "R", "VH")
	Name  string `json:"name"`  // Display name (e.g., "River")
	Glyph string `json:"glyph"` // Single character for rendering (e.g., "~")
	Color string `json:"color"` // Hex color code (e.g., "#2E86DE")
}

// GlyphRune returns the glyph as a rune for rendering.
func (g *GlyphDef) GlyphRune() rune {
	if len(g.Glyph) == 0 {
		return '?'
	}
	return []rune(g.Glyph)[0]
}

// TCellColor returns the color as a tcell.Color.
func (g *GlyphDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(g.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// File represents the structure of legend.json.
type File struct {
	Cells    []GlyphDef `json:"cells"`
	Overlays []GlyphDef `json:"overlays"`
}

// LoadFile loads the embedded legend.json.
func LoadFile() (File, error) {
	return Load[File]("legend.json")
}
