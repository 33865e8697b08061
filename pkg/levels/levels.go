// Package levels implements the ordered table of zoom tiers a viewer snaps
// between.
package levels

import (
	"errors"
	"fmt"
	"math"
)

// Global bounds every level value must fall within.
const (
	MinValue = 0.1
	MaxValue = 10.0
)

// ErrConfig is matched by every *ConfigError via errors.Is.
var ErrConfig = errors.New("invalid scale level configuration")

// ConfigError describes a malformed scale level table.
type ConfigError struct {
	Index  int // offending level, or -1 when the table as a whole is wrong
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Index < 0 {
		return "scale levels: " + e.Reason
	}
	return fmt.Sprintf("scale level %d: %s", e.Index, e.Reason)
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Table is an ordered, strictly increasing sequence of scale factors.
// The zero value is not usable; construct with New or Default.
type Table struct {
	values []float64
}

// Default returns the table [1, 4].
func Default() *Table {
	return &Table{values: []float64{1, 4}}
}

// New validates values and returns a table holding a copy of them.
func New(values ...float64) (*Table, error) {
	if err := Validate(values); err != nil {
		return nil, err
	}
	return &Table{values: append([]float64(nil), values...)}, nil
}

// Validate checks values without building a table.
func Validate(values []float64) error {
	if len(values) < 2 {
		return &ConfigError{Index: -1, Reason: "at least two levels are required"}
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < MinValue || v > MaxValue {
			return &ConfigError{Index: i, Reason: fmt.Sprintf("value %g must be between %g and %g", v, MinValue, MaxValue)}
		}
		if i > 0 && v <= values[i-1] {
			return &ConfigError{Index: i, Reason: fmt.Sprintf("value %g must be bigger than level %d value %g", v, i-1, values[i-1])}
		}
	}
	return nil
}

// Set replaces the table contents. On error the table is left untouched.
func (t *Table) Set(values ...float64) error {
	if err := Validate(values); err != nil {
		return err
	}
	t.values = append([]float64(nil), values...)
	return nil
}

// Len returns the number of levels.
func (t *Table) Len() int { return len(t.values) }

// Min returns the first level.
func (t *Table) Min() float64 { return t.values[0] }

// Max returns the last level.
func (t *Table) Max() float64 { return t.values[len(t.values)-1] }

// At returns level i.
func (t *Table) At(i int) float64 { return t.values[i] }

// Values returns a copy of the levels.
func (t *Table) Values() []float64 {
	return append([]float64(nil), t.values...)
}

// LevelFor returns the index of the greatest level <= s, the last index when
// s is at or above every level, and -1 when s is below the first level.
func (t *Table) LevelFor(s float64) int {
	for i, v := range t.values {
		if s >= v {
			continue
		}
		return i - 1
	}
	return len(t.values) - 1
}
