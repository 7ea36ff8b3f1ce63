package level

import (
	"fmt"
	"strconv"

	"github.com/samdwyer/riverlight/internal/field"
)

// Environment variables read by FromEnv.
const (
	EnvSeed     = "RIVERLIGHT_SEED"
	EnvSize     = "RIVERLIGHT_SIZE"
	EnvMirrors  = "RIVERLIGHT_MIRRORS"
	EnvRotators = "RIVERLIGHT_ROTATORS"
)

// Config holds level generation options.
type Config struct {
	// Seed for random number generation. Used for reproducible fields.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	Size     int
	Mirrors  int
	Rotators int

	// ExcludeMirrorCells keeps rotators off mirror cells.
	ExcludeMirrorCells bool

	// MaxAttempts bounds how often generation is retried with a fresh seed
	// after a placement failure. 0 means a single attempt.
	MaxAttempts uint
}

// DefaultConfig returns the demonstration setup: a 5x5 field with three
// mirrors and two rotators.
func DefaultConfig() Config {
	return Config{
		Size:        5,
		Mirrors:     3,
		Rotators:    2,
		MaxAttempts: 3,
	}
}

// Params converts the config into generator parameters.
func (c Config) Params() field.Params {
	return field.Params{
		Size:               c.Size,
		Mirrors:            c.Mirrors,
		Rotators:           c.Rotators,
		ExcludeMirrorCells: c.ExcludeMirrorCells,
	}
}

func (c Config) maxAttempts() uint {
	if c.MaxAttempts == 0 {
		return 1
	}
	return c.MaxAttempts
}

// FromEnv overrides fields of c with any RIVERLIGHT_* variables that getenv
// reports as set. Typically getenv is os.Getenv.
func FromEnv(c Config, getenv func(string) string) (Config, error) {
	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("invalid %s %q: %w", EnvSeed, v, err)
		}
		c.Seed = seed
	}

	for _, setting := range []struct {
		name string
		dst  *int
	}{
		{EnvSize, &c.Size},
		{EnvMirrors, &c.Mirrors},
		{EnvRotators, &c.Rotators},
	} {
		v := getenv(setting.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("invalid %s %q: %w", setting.name, v, err)
		}
		*setting.dst = n
	}

	return c, nil
}
