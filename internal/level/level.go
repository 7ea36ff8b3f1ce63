// Package level builds identified, reproducible levels on top of the field
// generator.
package level

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/riverlight/internal/field"
	"github.com/samdwyer/riverlight/internal/telemetry"
)

// generate is swapped out in tests.
var generate = field.Generate

// Level is a generated field plus what is needed to identify and replay it.
type Level struct {
	ID       uuid.UUID
	Seed     int64 // Seed that produced Field
	Attempts int   // Generation attempts it took
	Field    *field.Field
}

// Build generates a level. Attempt n uses seed cfg.Seed+n-1, so a level can
// be regenerated from its Seed alone. Invalid configurations fail at once;
// placement failures are retried up to cfg.MaxAttempts times.
func Build(ctx context.Context, cfg Config, log logrus.FieldLogger) (*Level, error) {
	tracer := telemetry.Tracer("level")
	ctx, span := tracer.Start(ctx, "level.build")
	defer span.End()

	baseSeed := cfg.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	params := cfg.Params()

	attempts := 0
	seed := baseSeed
	operation := func() (*field.Field, error) {
		seed = baseSeed + int64(attempts)
		attempts++

		f, err := generate(ctx, params, rand.New(rand.NewSource(seed)))
		if errors.Is(err, field.ErrInvalidConfiguration) {
			return nil, backoff.Permanent(err)
		}
		return f, err
	}

	f, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(cfg.maxAttempts()),
		backoff.WithNotify(func(err error, _ time.Duration) {
			log.WithFields(logrus.Fields{
				"seed":    seed,
				"attempt": attempts,
			}).WithError(err).Warn("Field generation failed, retrying with next seed")
		}),
	)

	span.SetAttributes(
		attribute.Int64("level.seed", seed),
		attribute.Int("level.attempts", attempts),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "level build failed")
		return nil, err
	}

	level := &Level{
		ID:       uuid.New(),
		Seed:     seed,
		Attempts: attempts,
		Field:    f,
	}
	span.SetAttributes(attribute.String("level.id", level.ID.String()))

	log.WithFields(logrus.Fields{
		"level_id": level.ID,
		"seed":     seed,
		"size":     params.Size,
		"river":    f.RiverPlaced(),
	}).Debug("Level built")

	return level, nil
}
