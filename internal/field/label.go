// Package field provides puzzle field generation: a terrain grid with a carved
// river, special cells and independent mirror/rotator overlays.
package field

import "strings"

// Label is the terrain marker of a single grid cell.
type Label string

const (
	// LabelSafe is untouched, traversable terrain.
	LabelSafe Label = "S"
	// LabelCrocodile marks the crocodile next to the river origin.
	LabelCrocodile Label = "C"
	// LabelStart marks the start cell.
	LabelStart Label = "A"
	// LabelHazard marks the hazard cell.
	LabelHazard Label = "H"
	// LabelTreasure marks the treasure cell.
	LabelTreasure Label = "T"

	riverPrefix  = "R"
	sourceSuffix = "S"
)

// River tags recorded while carving. They are positional annotations of the
// direction table, not compass directions.
const (
	TagOrigin = "M"
	tagTable  = "LURD"
)

// RiverLabel returns the river label carrying the given step tag.
func RiverLabel(tag string) Label {
	return Label(riverPrefix + tag)
}

// IsRiver returns true for river cells, including the marked source.
func (l Label) IsRiver() bool {
	return strings.HasPrefix(string(l), riverPrefix)
}

// IsSource returns true if the label carries the water source suffix.
func (l Label) IsSource() bool {
	return l.IsRiver() && len(l) == 3 && strings.HasSuffix(string(l), sourceSuffix)
}

// Tag returns the step tag of a river label, or "" for other labels.
func (l Label) Tag() string {
	if !l.IsRiver() || len(l) < 2 {
		return ""
	}
	return string(l[1])
}

// Base returns the label without a source suffix.
func (l Label) Base() Label {
	if l.IsSource() {
		return l[:2]
	}
	return l
}

// Valid reports whether the label has one of the shapes the generator emits.
func (l Label) Valid() bool {
	if l.IsRiver() {
		if len(l) != 2 && !l.IsSource() {
			return false
		}
		tag := l.Tag()
		return tag == TagOrigin || (len(tag) == 1 && strings.Contains(tagTable, tag))
	}
	switch l {
	case LabelSafe, LabelCrocodile, LabelStart, LabelHazard, LabelTreasure:
		return true
	}
	return false
}

// withSource appends the source suffix without discarding the existing label.
func (l Label) withSource() Label {
	return l + sourceSuffix
}
