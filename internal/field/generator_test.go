package field

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
)

func generateSeeded(t *testing.T, p Params, seed int64) *Field {
	t.Helper()
	f, err := Generate(context.Background(), p, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	require.NotNil(t, f)
	return f
}

func countLabel(f *Field, l Label) int {
	return len(f.Find(func(got Label) bool { return got == l }))
}

// checkInvariants asserts the structural properties every generated field has.
func checkInvariants(t *testing.T, f *Field, p Params) {
	t.Helper()

	rows := f.Rows()
	require.Len(t, rows, p.Size)
	for x, row := range rows {
		require.Len(t, row, p.Size, "row %d", x)
		for y, l := range row {
			assert.True(t, l.Valid(), "label %q at (%d,%d)", l, x, y)
		}
	}

	markers := mapset.New[Coord]()
	for _, l := range []Label{LabelStart, LabelHazard, LabelTreasure, LabelCrocodile} {
		found := f.Find(func(got Label) bool { return got == l })
		require.Len(t, found, 1, "label %q", l)
		markers.Put(found[0])
	}
	assert.Equal(t, 4, markers.Size(), "special cells must be pairwise distinct")
	assert.Equal(t, LabelCrocodile, f.Cell(f.Crocodile()))

	assert.Len(t, f.Mirrors(), p.Mirrors)
	assert.Len(t, f.Rotators(), p.Rotators)
	for _, m := range f.Mirrors() {
		assert.True(t, m.At.In(p.Size), "mirror %v out of bounds", m)
	}
	for _, r := range f.Rotators() {
		assert.True(t, r.At.In(p.Size), "rotator %v out of bounds", r)
	}

	lo, hi := RiverBounds(p.Size)
	assert.GreaterOrEqual(t, f.RiverTarget(), lo)
	assert.LessOrEqual(t, f.RiverTarget(), hi)
	assert.GreaterOrEqual(t, f.RiverPlaced(), 1)
	assert.LessOrEqual(t, f.RiverPlaced(), f.RiverTarget())
	assert.Len(t, f.Find(Label.IsRiver), f.RiverPlaced())

	sources := f.Find(Label.IsSource)
	require.Len(t, sources, 1)
	assert.Equal(t, f.Source(), sources[0])
	assert.True(t, f.Cell(f.Mouth()).IsRiver(), "mouth %v is %q", f.Mouth(), f.Cell(f.Mouth()))
	assert.Equal(t, 1, abs(f.Mouth().X-f.Crocodile().X)+abs(f.Mouth().Y-f.Crocodile().Y),
		"crocodile must be adjacent to the mouth")

	assert.Empty(t, f.Walls())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestGenerateInvariants(t *testing.T) {
	params := []Params{
		{Size: 4},
		{Size: 4, Mirrors: 16},
		{Size: 4, Mirrors: 8, Rotators: 8},
		{Size: 5, Mirrors: 3, Rotators: 2},
		{Size: 7, Mirrors: 10, Rotators: 10, ExcludeMirrorCells: true},
		{Size: 12, Mirrors: 20, Rotators: 5},
		{Size: 20, Mirrors: 0, Rotators: 40},
	}

	for _, p := range params {
		for seed := int64(1); seed <= 50; seed++ {
			f := generateSeeded(t, p, seed)
			checkInvariants(t, f, p)
		}
	}
}

func TestGenerateReproducibility(t *testing.T) {
	p := Params{Size: 5, Mirrors: 3, Rotators: 2}
	seed := int64(12345)

	f1 := generateSeeded(t, p, seed)
	f2 := generateSeeded(t, p, seed)

	assert.Equal(t, f1.Rows(), f2.Rows())
	assert.Equal(t, f1.Mirrors(), f2.Mirrors())
	assert.Equal(t, f1.Rotators(), f2.Rotators())
	assert.Equal(t, f1.Source(), f2.Source())
	assert.Equal(t, f1.Mouth(), f2.Mouth())
	assert.Equal(t, f1.Crocodile(), f2.Crocodile())
	assert.Equal(t, f1.RiverTarget(), f2.RiverTarget())
	assert.Equal(t, f1.RiverPlaced(), f2.RiverPlaced())
}

func TestGenerateDifferentSeeds(t *testing.T) {
	p := Params{Size: 8, Mirrors: 6, Rotators: 4}

	f1 := generateSeeded(t, p, 12345)
	f2 := generateSeeded(t, p, 54321)

	// Different seeds should give different layouts (identical is vanishingly unlikely)
	assert.NotEqual(t, f1.Rows(), f2.Rows())
}

func TestGenerateMinimalField(t *testing.T) {
	p := Params{Size: 4}
	for seed := int64(0); seed < 200; seed++ {
		f := generateSeeded(t, p, seed)
		assert.Empty(t, f.Mirrors())
		assert.Empty(t, f.Rotators())
		assert.NotEmpty(t, f.Find(Label.IsRiver))
		for _, l := range []Label{LabelStart, LabelHazard, LabelTreasure, LabelCrocodile} {
			assert.Equal(t, 1, countLabel(f, l), "seed %d label %q", seed, l)
		}
	}
}

func TestGenerateObstacleBoundary(t *testing.T) {
	// mirrors+rotators == size*size is still valid
	f := generateSeeded(t, Params{Size: 4, Mirrors: 16}, 7)
	assert.Len(t, f.Mirrors(), 16)

	f = generateSeeded(t, Params{Size: 4, Mirrors: 15, Rotators: 1, ExcludeMirrorCells: true}, 7)
	assert.Len(t, f.Rotators(), 1)
}

func TestGenerateInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"size 3", Params{Size: 3}},
		{"size 3 with obstacles", Params{Size: 3, Mirrors: 1, Rotators: 1}},
		{"size 0", Params{}},
		{"negative size", Params{Size: -4}},
		{"too many obstacles", Params{Size: 4, Mirrors: 10, Rotators: 7}},
		{"too many mirrors", Params{Size: 5, Mirrors: 26}},
		{"negative mirrors", Params{Size: 5, Mirrors: -1}},
		{"negative rotators", Params{Size: 5, Rotators: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &countingRand{Rand: rand.New(rand.NewSource(1))}
			f, err := Generate(context.Background(), tt.p, rng)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration), "got %v", err)
			assert.Nil(t, f)
			assert.Zero(t, rng.draws, "no random draws before validation")
		})
	}
}

func TestGenerateDrawCount(t *testing.T) {
	rng := &countingRand{Rand: rand.New(rand.NewSource(1))}
	_, err := Generate(context.Background(), Params{Size: 5, Mirrors: 3, Rotators: 2}, rng)
	require.NoError(t, err)
	// 3 mirrors x 3 draws, 2 rotators x 3 draws, origin, length, crocodile
	assert.GreaterOrEqual(t, rng.draws, 3*3+2*3+2+1+1)
}

// TestGenerateRotatorsIgnoreMirrors checks that, without exclusion, rotator
// placement consumes exactly three draws each regardless of mirror cells.
func TestGenerateRotatorsIgnoreMirrors(t *testing.T) {
	p := Params{Size: 4, Mirrors: 15, Rotators: 1}
	seq := &scriptedRand{
		// 15 mirrors at (0,0); rotator drawn onto (0,0); spin CCW
		values: append(repeat([]int{0, 0, 0}, 15), 0, 0, 1),
		rest:   rand.New(rand.NewSource(3)),
	}
	f, err := Generate(context.Background(), p, seq)
	require.NoError(t, err)

	rotators := f.Rotators()
	require.Len(t, rotators, 1)
	assert.Equal(t, Rotator{At: Coord{0, 0}, Spin: CounterClockwise}, rotators[0])
}

func TestGenerateRotatorsExcludeMirrors(t *testing.T) {
	p := Params{Size: 4, Mirrors: 15, Rotators: 1, ExcludeMirrorCells: true}
	seq := &scriptedRand{
		// 15 mirrors at (0,0); rotator drawn onto (0,0), then (2,3); spin CW
		values: append(repeat([]int{0, 0, 0}, 15), 0, 0, 2, 3, 0),
		rest:   rand.New(rand.NewSource(3)),
	}
	f, err := Generate(context.Background(), p, seq)
	require.NoError(t, err)

	rotators := f.Rotators()
	require.Len(t, rotators, 1)
	assert.Equal(t, Rotator{At: Coord{2, 3}, Spin: Clockwise}, rotators[0])
}

func TestGenerateExcludeMirrorCellsProperty(t *testing.T) {
	p := Params{Size: 6, Mirrors: 20, Rotators: 10, ExcludeMirrorCells: true}
	for seed := int64(0); seed < 50; seed++ {
		f := generateSeeded(t, p, seed)
		mirrorCells := mapset.New[Coord]()
		for _, m := range f.Mirrors() {
			mirrorCells.Put(m.At)
		}
		for _, r := range f.Rotators() {
			assert.False(t, mirrorCells.Has(r.At), "seed %d rotator %v on a mirror", seed, r)
		}
	}
}

// TestGenerateScriptedRiver drives the whole algorithm with a fixed draw
// sequence and checks the exact resulting grid.
func TestGenerateScriptedRiver(t *testing.T) {
	seq := &scriptedRand{values: []int{
		0, 0, // origin (0,0)
		0,    // length = 5 + 0
		3, 0, // crocodile: (-1,0) out of bounds, then (0,+1) -> (0,1)
		1,    // step from (0,0): (1,0) -> (1,0), tag U
		0,    // step from (1,0): (0,+1) -> (1,1), tag L
		1,    // step from (1,1): (1,0) -> (2,1), tag U
		0,    // step from (2,1): (0,+1) -> (2,2), tag L
		0,    // step after the last carve: (2,3), tag L; the walk stops here
		2, 3, // A is placed on the head (2,3) without drawing; H draws (2,3) again, then
		3, 3, // (3,3)
		3, 0, // T draws (3,0)
	}}
	f, err := Generate(context.Background(), Params{Size: 4}, seq)
	require.NoError(t, err)

	want := [][]Label{
		{"RM", "C", "S", "S"},
		{"RU", "RL", "S", "S"},
		{"S", "RU", "RLS", "A"},
		{"T", "S", "S", "H"},
	}
	assert.Equal(t, want, f.Rows())
	assert.Equal(t, Coord{0, 0}, f.Mouth())
	assert.Equal(t, Coord{2, 2}, f.Source())
	assert.Equal(t, Coord{0, 1}, f.Crocodile())
	assert.Equal(t, 5, f.RiverTarget())
	assert.Equal(t, 5, f.RiverPlaced())
	assert.Equal(t, 0, seq.remaining(), "every scripted draw consumed")
}

// TestGenerateStepBudgetExhausted traps the walk in a corner and checks it
// stops short instead of failing.
func TestGenerateStepBudgetExhausted(t *testing.T) {
	values := []int{
		0, 1, // origin (0,1)
		5,    // length = 5 + 5 = 10
		2,    // crocodile: (0,-1) -> (0,0)
		3,    // step from (0,1): (-1,0) out of bounds
	}
	// 50 more useless draws exhaust the budget
	values = append(values, repeat([]int{3}, stepBudget)...)
	// markers: the head (0,1) is river, so A, H, T all draw
	values = append(values, 3, 3, 3, 2, 2, 2)
	seq := &scriptedRand{values: values}

	f, err := Generate(context.Background(), Params{Size: 4}, seq)
	require.NoError(t, err)

	assert.Equal(t, 10, f.RiverTarget())
	assert.Equal(t, 1, f.RiverPlaced())
	assert.Equal(t, Label("RMS"), f.Cell(Coord{0, 1}))
	assert.Equal(t, f.Mouth(), f.Source())
	assert.Equal(t, LabelStart, f.Cell(Coord{3, 3}))
	assert.Equal(t, LabelHazard, f.Cell(Coord{3, 2}))
	assert.Equal(t, LabelTreasure, f.Cell(Coord{2, 2}))
	assert.Equal(t, 0, seq.remaining())
}

func TestPlaceMarkersExhausted(t *testing.T) {
	g := &generator{p: Params{Size: 4}, rng: rand.New(rand.NewSource(1)), f: newField(4)}
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			g.f.set(Coord{x, y}, RiverLabel(TagOrigin))
		}
	}
	g.f.set(Coord{1, 1}, LabelSafe)
	g.f.set(Coord{2, 2}, LabelSafe)

	err := g.placeMarkers(Coord{0, 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlacementExhausted)
	assert.Equal(t, 1, countLabel(g.f, LabelStart))
	assert.Equal(t, 1, countLabel(g.f, LabelHazard))
	assert.Zero(t, countLabel(g.f, LabelTreasure))
}

func TestFieldAccessorsReturnCopies(t *testing.T) {
	f := generateSeeded(t, Params{Size: 5, Mirrors: 3, Rotators: 2}, 99)

	rows := f.Rows()
	rows[0][0] = "X"
	assert.NotEqual(t, Label("X"), f.Cell(Coord{0, 0}))

	mirrors := f.Mirrors()
	mirrors[0].Orientation = Both + 1
	assert.NotEqual(t, Both+1, f.Mirrors()[0].Orientation)

	assert.Equal(t, Label(""), f.Cell(Coord{-1, 0}))
	assert.Equal(t, Label(""), f.Cell(Coord{0, 5}))
}

func TestRiverBounds(t *testing.T) {
	tests := []struct {
		size   int
		lo, hi int
	}{
		{4, 5, 10},
		{5, 8, 16},
		{6, 12, 24},
		{10, 33, 66},
	}
	for _, tt := range tests {
		lo, hi := RiverBounds(tt.size)
		assert.Equal(t, tt.lo, lo, "size %d", tt.size)
		assert.Equal(t, tt.hi, hi, "size %d", tt.size)
	}
}

// countingRand counts draws made through it.
type countingRand struct {
	*rand.Rand
	draws int
}

func (c *countingRand) Intn(n int) int {
	c.draws++
	return c.Rand.Intn(n)
}

// scriptedRand replays fixed values, then falls back to rest if set.
type scriptedRand struct {
	values []int
	next   int
	rest   *rand.Rand
}

func (s *scriptedRand) Intn(n int) int {
	if s.next < len(s.values) {
		v := s.values[s.next]
		s.next++
		if v >= n {
			panic("scripted value out of range")
		}
		return v
	}
	if s.rest == nil {
		panic("scripted values exhausted")
	}
	return s.rest.Intn(n)
}

func (s *scriptedRand) remaining() int {
	return len(s.values) - s.next
}

func repeat(block []int, n int) []int {
	out := make([]int, 0, len(block)*n)
	for i := 0; i < n; i++ {
		out = append(out, block...)
	}
	return out
}
