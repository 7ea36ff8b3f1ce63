package field

// Field is a generated puzzle level. It is never modified after Generate
// returns it; accessors hand out copies.
type Field struct {
	size      int
	mirrors   []Mirror
	rotators  []Rotator
	source    Coord
	mouth     Coord
	crocodile Coord
	walls     []Wall
	cells     [][]Label // indexed [x][y]

	riverTarget int
	riverPlaced int
}

// newField creates a field with every cell set to LabelSafe.
func newField(size int) *Field {
	cells := make([][]Label, size)
	for x := range cells {
		cells[x] = make([]Label, size)
		for y := range cells[x] {
			cells[x][y] = LabelSafe
		}
	}

	return &Field{
		size:     size,
		mirrors:  make([]Mirror, 0),
		rotators: make([]Rotator, 0),
		walls:    make([]Wall, 0),
		cells:    cells,
	}
}

// Size returns the edge length of the square grid.
func (f *Field) Size() int {
	return f.size
}

// Mirrors returns the mirror overlay in placement order.
func (f *Field) Mirrors() []Mirror {
	return append([]Mirror(nil), f.mirrors...)
}

// Rotators returns the rotator overlay in placement order.
func (f *Field) Rotators() []Rotator {
	return append([]Rotator(nil), f.rotators...)
}

// Source returns the water source: the last cell carved into the river.
func (f *Field) Source() Coord {
	return f.source
}

// Mouth returns the river mouth: the cell where carving began.
func (f *Field) Mouth() Coord {
	return f.mouth
}

// Crocodile returns the crocodile's cell.
func (f *Field) Crocodile() Coord {
	return f.crocodile
}

// Walls returns the reserved wall list. It is always empty.
func (f *Field) Walls() []Wall {
	return append([]Wall(nil), f.walls...)
}

// Cell returns the label at c, or "" if c is outside the grid.
func (f *Field) Cell(c Coord) Label {
	if !c.In(f.size) {
		return ""
	}
	return f.cells[c.X][c.Y]
}

// Rows returns a copy of the grid, indexed [x][y].
func (f *Field) Rows() [][]Label {
	rows := make([][]Label, f.size)
	for x := range f.cells {
		rows[x] = append([]Label(nil), f.cells[x]...)
	}
	return rows
}

// RiverTarget returns the river length drawn before carving.
func (f *Field) RiverTarget() int {
	return f.riverTarget
}

// RiverPlaced returns the number of cells actually carved. It is below
// RiverTarget when the walk ran out of free neighbours.
func (f *Field) RiverPlaced() int {
	return f.riverPlaced
}

// Find returns every coordinate whose label satisfies match, in row order.
func (f *Field) Find(match func(Label) bool) []Coord {
	var found []Coord
	for x := range f.cells {
		for y, l := range f.cells[x] {
			if match(l) {
				found = append(found, Coord{X: x, Y: y})
			}
		}
	}
	return found
}

func (f *Field) at(c Coord) Label {
	return f.cells[c.X][c.Y]
}

func (f *Field) set(c Coord, l Label) {
	f.cells[c.X][c.Y] = l
}

func (f *Field) hasSafeCell() bool {
	for x := range f.cells {
		for _, l := range f.cells[x] {
			if l == LabelSafe {
				return true
			}
		}
	}
	return false
}
