package field

import "fmt"

// Coord addresses a grid cell. X selects the row, Y the column.
type Coord struct {
	X, Y int
}

// Add returns the coordinate shifted by the given step.
func (c Coord) Add(step Coord) Coord {
	return Coord{X: c.X + step.X, Y: c.Y + step.Y}
}

// In returns true if the coordinate lies inside a size x size grid.
func (c Coord) In(size int) bool {
	return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// directions is the fixed step table. The carve tag of entry i is tagTable[i].
var directions = [4]Coord{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Orientation is the reflecting axis of a mirror.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
	Both
)

var orientations = [...]Orientation{Vertical, Horizontal, Both}

// String returns the short mirror code.
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "V"
	case Horizontal:
		return "H"
	case Both:
		return "VH"
	default:
		return "?"
	}
}

// Spin is the turning direction of a rotator.
type Spin int

const (
	Clockwise Spin = iota
	CounterClockwise
)

var spins = [...]Spin{Clockwise, CounterClockwise}

// String returns the short rotator code.
func (s Spin) String() string {
	switch s {
	case Clockwise:
		return "CW"
	case CounterClockwise:
		return "CCW"
	default:
		return "?"
	}
}

// Mirror is an overlay obstacle. Several mirrors may share a cell.
type Mirror struct {
	At          Coord
	Orientation Orientation
}

func (m Mirror) String() string {
	return fmt.Sprintf("(%d, %d, %s)", m.At.X, m.At.Y, m.Orientation)
}

// Rotator is an overlay obstacle that turns a beam.
type Rotator struct {
	At   Coord
	Spin Spin
}

func (r Rotator) String() string {
	return fmt.Sprintf("(%d, %d, %s)", r.At.X, r.At.Y, r.Spin)
}

// Wall separates two orthogonally adjacent cells.
// Reserved: the generator never emits walls.
type Wall struct {
	A, B Coord
}
