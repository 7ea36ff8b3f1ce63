package level

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/riverlight/internal/field"
)

// Stats summarises a field for display.
type Stats struct {
	RiverCells  int
	RiverTarget int
	Truncated   bool // River stopped before reaching RiverTarget

	MirrorCells  int // Distinct cells holding at least one mirror
	RotatorCells int // Distinct cells holding at least one rotator
	SharedCells  int // Cells holding both a mirror and a rotator
}

// Analyze computes Stats for f.
func Analyze(f *field.Field) Stats {
	mirrors := mapset.New[field.Coord]()
	for _, m := range f.Mirrors() {
		mirrors.Put(m.At)
	}
	rotators := mapset.New[field.Coord]()
	for _, r := range f.Rotators() {
		rotators.Put(r.At)
	}

	shared := 0
	rotators.Each(func(c field.Coord) {
		if mirrors.Has(c) {
			shared++
		}
	})

	return Stats{
		RiverCells:   f.RiverPlaced(),
		RiverTarget:  f.RiverTarget(),
		Truncated:    f.RiverPlaced() < f.RiverTarget(),
		MirrorCells:  mirrors.Size(),
		RotatorCells: rotators.Size(),
		SharedCells:  shared,
	}
}
