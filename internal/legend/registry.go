package legend

import (
	"errors"
	"fmt"

	"github.com/samdwyer/riverlight/internal/field"
)

// SourceID is the cell entry used for the water source.
const SourceID = "source"

// riverID is the cell entry shared by every river tag.
const riverID = "R"

// Registry indexes glyph definitions by ID.
type Registry struct {
	cells    map[string]*GlyphDef
	overlays map[string]*GlyphDef
}

// NewRegistry creates a registry from a loaded legend file.
func NewRegistry(file File) *Registry {
	r := &Registry{
		cells:    make(map[string]*GlyphDef, len(file.Cells)),
		overlays: make(map[string]*GlyphDef, len(file.Overlays)),
	}
	for i := range file.Cells {
		r.cells[file.Cells[i].ID] = &file.Cells[i]
	}
	for i := range file.Overlays {
		r.overlays[file.Overlays[i].ID] = &file.Overlays[i]
	}
	return r
}

// LoadRegistry loads the embedded legend and checks that every label the
// generator emits has an entry.
func LoadRegistry() (*Registry, error) {
	file, err := LoadFile()
	if err != nil {
		return nil, err
	}
	if len(file.Cells) == 0 {
		return nil, errors.New("no cells loaded from legend.json")
	}

	r := NewRegistry(file)
	for _, id := range []string{
		string(field.LabelSafe), riverID, SourceID, string(field.LabelCrocodile),
		string(field.LabelStart), string(field.LabelHazard), string(field.LabelTreasure),
	} {
		if r.cells[id] == nil {
			return nil, fmt.Errorf("legend.json: missing cell %q", id)
		}
	}
	for _, o := range []fmt.Stringer{field.Vertical, field.Horizontal, field.Both, field.Clockwise, field.CounterClockwise} {
		if r.overlays[o.String()] == nil {
			return nil, fmt.Errorf("legend.json: missing overlay %q", o)
		}
	}
	return r, nil
}

// Cell returns the cell definition with the given ID, or nil if not found.
func (r *Registry) Cell(id string) *GlyphDef {
	return r.cells[id]
}

// Overlay returns the overlay definition with the given ID, or nil if not found.
func (r *Registry) Overlay(id string) *GlyphDef {
	return r.overlays[id]
}

// ForLabel returns the definition used to draw a terrain label. All river
// tags share one entry; a source-marked cell uses the source entry.
func (r *Registry) ForLabel(l field.Label) *GlyphDef {
	switch {
	case l.IsSource():
		return r.cells[SourceID]
	case l.IsRiver():
		return r.cells[riverID]
	default:
		return r.cells[string(l)]
	}
}

// ForMirror returns the definition for a mirror orientation.
func (r *Registry) ForMirror(o field.Orientation) *GlyphDef {
	return r.overlays[o.String()]
}

// ForRotator returns the definition for a rotator spin.
func (r *Registry) ForRotator(s field.Spin) *GlyphDef {
	return r.overlays[s.String()]
}

// Count returns the number of cell and overlay definitions.
func (r *Registry) Count() int {
	return len(r.cells) + len(r.overlays)
}
