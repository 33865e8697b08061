package engine

import (
	"fmt"
	"strings"
)

// FitMode decides how the base matrix places content in the viewport and
// how undersized content is aligned by the bounds clamp.
type FitMode int

const (
	FitCenter FitMode = iota
	Center
	CenterCrop
	CenterInside
	FitStart
	FitEnd
	FitXY
)

var fitModeNames = [...]string{
	FitCenter:    "fit_center",
	Center:       "center",
	CenterCrop:   "center_crop",
	CenterInside: "center_inside",
	FitStart:     "fit_start",
	FitEnd:       "fit_end",
	FitXY:        "fit_xy",
}

func (m FitMode) String() string {
	if m < 0 || int(m) >= len(fitModeNames) {
		return fmt.Sprintf("FitMode(%d)", int(m))
	}
	return fitModeNames[m]
}

// AspectPreserving reports whether rotation is supported in this mode.
func (m FitMode) AspectPreserving() bool {
	return m == FitCenter || m == CenterInside
}

// ParseFitMode parses names like "fit_center", "FIT_CENTER" or "fit-center".
func ParseFitMode(s string) (FitMode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range fitModeNames {
		if name == key {
			return FitMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown fit mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m FitMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *FitMode) UnmarshalText(text []byte) error {
	v, err := ParseFitMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Rotation is one of the four quarter-turn orientations, or RotationUnset.
type Rotation int

const (
	// RotationUnset means no content size is known yet, or the user matrix
	// was rotated freely to an angle the quarter-turn state cannot describe.
	RotationUnset Rotation = -1
	Degree0       Rotation = 0
	Degree90      Rotation = 90
	Degree180     Rotation = 180
	Degree270     Rotation = 270
)

// Valid reports whether r is a quarter turn.
func (r Rotation) Valid() bool {
	switch r {
	case Degree0, Degree90, Degree180, Degree270:
		return true
	}
	return false
}

func (r Rotation) String() string {
	if r == RotationUnset {
		return "unset"
	}
	return fmt.Sprintf("%d°", int(r))
}

// EdgePolicy selects how drags at content edges are handed to an enclosing
// scrollable parent.
type EdgePolicy int

const (
	// EdgeParentInterceptUntilNextDown withholds interception from the
	// parent for the rest of the gesture once content pans in the drag
	// direction. It is the default.
	EdgeParentInterceptUntilNextDown EdgePolicy = iota
	// EdgeParentIntercept lets the parent reclaim the gesture whenever the
	// content is already at the edge it is being dragged towards.
	EdgeParentIntercept
)

func (p EdgePolicy) String() string {
	switch p {
	case EdgeParentInterceptUntilNextDown:
		return "until_next_down"
	case EdgeParentIntercept:
		return "intercept"
	}
	return fmt.Sprintf("EdgePolicy(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p EdgePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *EdgePolicy) UnmarshalText(text []byte) error {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(text))), "-", "_") {
	case "until_next_down", "parent_intercept_until_next_down":
		*p = EdgeParentInterceptUntilNextDown
	case "intercept", "parent_intercept":
		*p = EdgeParentIntercept
	default:
		return fmt.Errorf("unknown edge policy %q", text)
	}
	return nil
}
