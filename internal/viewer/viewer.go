package viewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/riverlight/internal/field"
	"github.com/samdwyer/riverlight/internal/legend"
	"github.com/samdwyer/riverlight/internal/level"
	"github.com/samdwyer/riverlight/internal/telemetry"
	"github.com/samdwyer/riverlight/internal/ui"
)

const helpLine = "arrows move  tab overlays  r regenerate  q quit"

// Viewer holds the interactive viewer state.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	legend   *legend.Registry
	cfg      level.Config
	level    *level.Level
	cursor   field.Coord
	state    State
	message  string
	running  bool
	log      logrus.FieldLogger
}

// New creates a viewer on the terminal.
func New(cfg level.Config, log logrus.FieldLogger) (*Viewer, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	v, err := NewWithScreen(screen, cfg, log)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return v, nil
}

// NewWithScreen creates a viewer drawing to an existing screen.
func NewWithScreen(screen *ui.Screen, cfg level.Config, log logrus.FieldLogger) (*Viewer, error) {
	registry, err := legend.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load legend: %w", err)
	}

	return &Viewer{
		screen:   screen,
		renderer: ui.NewRenderer(screen, registry),
		legend:   registry,
		cfg:      cfg,
		state:    StateTerrain,
		running:  true,
		log:      log,
	}, nil
}

// Run builds the first level and executes the input loop until the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	defer v.screen.Close()

	if err := v.init(ctx); err != nil {
		return err
	}

	for v.running {
		v.render()
		v.handleInput(ctx)
	}
	return nil
}

// init builds the first level (traced).
func (v *Viewer) init(ctx context.Context) error {
	tracer := telemetry.Tracer("viewer")
	ctx, span := tracer.Start(ctx, "viewer.init")
	defer span.End()

	l, err := level.Build(ctx, v.cfg, v.log)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to build level: %w", err)
	}
	v.setLevel(l)

	span.SetAttributes(
		attribute.String("level.id", l.ID.String()),
		attribute.Int64("level.seed", l.Seed),
	)
	return nil
}

func (v *Viewer) setLevel(l *level.Level) {
	v.level = l
	v.cursor = l.Field.Mouth()
	v.message = ""
}

// render draws the current level.
func (v *Viewer) render() {
	v.renderer.Render(v.level.Field, ui.View{
		Cursor:   v.cursor,
		Overlays: v.state == StateOverlay,
		Status:   v.statusLines(),
	})
}

// handleInput processes a single input event.
func (v *Viewer) handleInput(ctx context.Context) {
	ev := v.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		v.screen.Sync()
	case nil:
		// Screen finalized
		v.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (v *Viewer) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false

	case tcell.KeyUp:
		v.moveCursor(-1, 0)
	case tcell.KeyDown:
		v.moveCursor(1, 0)
	case tcell.KeyLeft:
		v.moveCursor(0, -1)
	case tcell.KeyRight:
		v.moveCursor(0, 1)
	case tcell.KeyTab:
		v.state = v.state.next()

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case 'r', 'R':
			v.regenerate(ctx)
		}
	}
}

// moveCursor moves the cursor by the given row and column delta, staying on
// the grid.
func (v *Viewer) moveCursor(dx, dy int) {
	next := v.cursor.Add(field.Coord{X: dx, Y: dy})
	if next.In(v.level.Field.Size()) {
		v.cursor = next
	}
}

// regenerate replaces the level with the one from the following seed. On
// failure the current level stays and the error is shown.
func (v *Viewer) regenerate(ctx context.Context) {
	cfg := v.cfg
	cfg.Seed = v.level.Seed + 1

	l, err := level.Build(ctx, cfg, v.log)
	if err != nil {
		v.log.WithError(err).WithField("seed", cfg.Seed).Error("Regeneration failed")
		v.message = "regeneration failed: " + err.Error()
		return
	}
	v.setLevel(l)
}

// statusLines describes the cursor cell and the level.
func (v *Viewer) statusLines() []string {
	f := v.level.Field
	label := f.Cell(v.cursor)

	cell := fmt.Sprintf("%s %-3s", v.cursor, label)
	if def := v.legend.ForLabel(label); def != nil {
		cell += " " + def.Name
	}
	for _, m := range f.Mirrors() {
		if m.At == v.cursor {
			cell += " | " + v.legend.ForMirror(m.Orientation).Name
		}
	}
	for _, r := range f.Rotators() {
		if r.At == v.cursor {
			cell += " | " + v.legend.ForRotator(r.Spin).Name
		}
	}

	stats := level.Analyze(f)
	summary := fmt.Sprintf("seed %d  river %d/%d  view %s  level %s",
		v.level.Seed, stats.RiverCells, stats.RiverTarget, v.state,
		strings.SplitN(v.level.ID.String(), "-", 2)[0])

	lines := []string{cell, summary, helpLine}
	if v.message != "" {
		lines = append(lines, v.message)
	}
	return lines
}
