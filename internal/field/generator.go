package field

import (
	"context"
	"fmt"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/riverlight/internal/telemetry"
)

const (
	// MinSize is the smallest accepted grid edge.
	MinSize = 4

	// stepBudget caps redraws when searching for the next carve step.
	stepBudget = 50
)

// Rand is the random source threaded through generation.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Params describes the field to generate.
type Params struct {
	Size     int
	Mirrors  int
	Rotators int

	// ExcludeMirrorCells redraws rotator coordinates that coincide with a
	// mirror. Off by default: rotators are then placed without looking at
	// mirrors at all.
	ExcludeMirrorCells bool
}

// Validate checks the parameters without drawing any random numbers.
func (p Params) Validate() error {
	if p.Size < MinSize {
		return fmt.Errorf("%w: size %d is below %d", ErrInvalidConfiguration, p.Size, MinSize)
	}
	if p.Mirrors < 0 || p.Rotators < 0 {
		return fmt.Errorf("%w: negative obstacle count (mirrors=%d, rotators=%d)",
			ErrInvalidConfiguration, p.Mirrors, p.Rotators)
	}
	if p.Mirrors+p.Rotators > p.Size*p.Size {
		return fmt.Errorf("%w: %d mirrors and %d rotators exceed %d cells",
			ErrInvalidConfiguration, p.Mirrors, p.Rotators, p.Size*p.Size)
	}
	return nil
}

// RiverBounds returns the inclusive range the river length is drawn from.
func RiverBounds(size int) (lo, hi int) {
	return size * size / 3, 2 * size * size / 3
}

// generator holds the in-progress state of one Generate call.
type generator struct {
	p   Params
	rng Rand
	f   *Field
}

// Generate builds a field. Identical params and an identically seeded rng
// yield an identical field.
func Generate(ctx context.Context, p Params, rng Rand) (*Field, error) {
	tracer := telemetry.Tracer("field")
	_, span := tracer.Start(ctx, "field.generate")
	defer span.End()

	span.SetAttributes(
		attribute.Int("field.size", p.Size),
		attribute.Int("field.mirrors", p.Mirrors),
		attribute.Int("field.rotators", p.Rotators),
		attribute.Bool("field.exclude_mirror_cells", p.ExcludeMirrorCells),
	)

	if err := p.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid configuration")
		return nil, err
	}

	startTime := time.Now()

	g := &generator{p: p, rng: rng, f: newField(p.Size)}
	g.placeMirrors()
	g.placeRotators()
	origin, lastCarved, head := g.carveRiver()
	if err := g.placeMarkers(head); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "placement exhausted")
		return nil, err
	}
	g.finalize(origin, lastCarved)

	span.SetAttributes(
		attribute.Int("river.target", g.f.riverTarget),
		attribute.Int("river.placed", g.f.riverPlaced),
		attribute.Bool("river.truncated", g.f.riverPlaced < g.f.riverTarget),
		attribute.Int64("field.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return g.f, nil
}

// randomCoord draws x then y.
func (g *generator) randomCoord() Coord {
	x := g.rng.Intn(g.p.Size)
	y := g.rng.Intn(g.p.Size)
	return Coord{X: x, Y: y}
}

// placeMirrors appends mirrors with no collision constraint.
func (g *generator) placeMirrors() {
	for i := 0; i < g.p.Mirrors; i++ {
		at := g.randomCoord()
		o := orientations[g.rng.Intn(len(orientations))]
		g.f.mirrors = append(g.f.mirrors, Mirror{At: at, Orientation: o})
	}
}

// placeRotators appends rotators. Without ExcludeMirrorCells the coordinate
// is drawn once and may land on a mirror.
func (g *generator) placeRotators() {
	occupied := mapset.New[Coord]()
	if g.p.ExcludeMirrorCells {
		for _, m := range g.f.mirrors {
			occupied.Put(m.At)
		}
	}

	for i := 0; i < g.p.Rotators; i++ {
		at := g.randomCoord()
		for occupied.Has(at) {
			at = g.randomCoord()
		}
		s := spins[g.rng.Intn(len(spins))]
		g.f.rotators = append(g.f.rotators, Rotator{At: at, Spin: s})
	}
}

// carveRiver places the crocodile and walks the river. It returns the
// origin, the last cell it carved and the final walk head. The head is an
// uncarved cell when the walk stopped at its target length.
func (g *generator) carveRiver() (origin, lastCarved, head Coord) {
	size := g.p.Size
	origin = g.randomCoord()

	lo, hi := RiverBounds(size)
	length := lo + g.rng.Intn(hi-lo+1)
	g.f.riverTarget = length

	step := directions[g.rng.Intn(len(directions))]
	for !origin.Add(step).In(size) {
		step = directions[g.rng.Intn(len(directions))]
	}
	g.f.crocodile = origin.Add(step)
	g.f.set(g.f.crocodile, LabelCrocodile)

	pos := origin
	tag := TagOrigin
	placed := 0
	for placed < length {
		if g.f.at(pos) == LabelSafe {
			g.f.set(pos, RiverLabel(tag))
			lastCarved = pos
			placed++
		}

		i := g.rng.Intn(len(directions))
		budget := stepBudget
		for !g.canCarve(pos.Add(directions[i])) && budget > 0 {
			i = g.rng.Intn(len(directions))
			budget--
		}
		// An exhausted budget ends the walk even if the final redraw was usable.
		if budget == 0 {
			break
		}

		pos = pos.Add(directions[i])
		tag = tagTable[i : i+1]
	}
	g.f.riverPlaced = placed

	return origin, lastCarved, pos
}

func (g *generator) canCarve(c Coord) bool {
	return c.In(g.p.Size) && g.f.at(c) == LabelSafe
}

// placeMarkers labels the start, hazard and treasure cells. The search for
// each begins at pos and redraws until it hits untouched terrain.
func (g *generator) placeMarkers(pos Coord) error {
	for _, marker := range [...]Label{LabelStart, LabelHazard, LabelTreasure} {
		if !g.f.hasSafeCell() {
			return fmt.Errorf("%w: cannot place %q", ErrPlacementExhausted, marker)
		}
		for g.f.at(pos) != LabelSafe {
			pos = g.randomCoord()
		}
		g.f.set(pos, marker)
	}
	return nil
}

// finalize swaps the river ends into mouth and source and flags the source
// cell, keeping its river tag.
func (g *generator) finalize(origin, lastCarved Coord) {
	g.f.mouth = origin
	g.f.source = lastCarved
	g.f.set(lastCarved, g.f.at(lastCarved).withSource())
}
