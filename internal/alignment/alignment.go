// Package alignment provides the two-axis alignment model and its numeric
// backbone: each alignment is a point on a 3×3 grid, and compatibility
// between two agents is derived from Euclidean distance on that grid.
package alignment

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// LawAxis positions an agent on the lawful–chaotic axis.
type LawAxis string

const (
	Lawful     LawAxis = "lawful"
	LawNeutral LawAxis = "neutral"
	Chaotic    LawAxis = "chaotic"
)

// MoralAxis positions an agent on the good–evil axis.
type MoralAxis string

const (
	Good         MoralAxis = "good"
	MoralNeutral MoralAxis = "neutral"
	Evil         MoralAxis = "evil"
)

// ErrInvalidAlignment indicates an unknown alignment label or axis value.
var ErrInvalidAlignment = errors.New("invalid alignment")

// Alignment is an agent's position on both axes. Immutable for the lifetime
// of a simulation run; external game events may swap it, this package never
// mutates it.
type Alignment struct {
	Law   LawAxis   `json:"law_axis"`
	Moral MoralAxis `json:"moral_axis"`
}

// maxDistance is the grid diagonal: Lawful Good vs Chaotic Evil.
var maxDistance = math.Sqrt(8.0)

// lawCoord maps the law axis to a grid coordinate. Lawful = +1, Chaotic = -1.
func lawCoord(l LawAxis) (int, error) {
	switch l {
	case Lawful:
		return 1, nil
	case LawNeutral:
		return 0, nil
	case Chaotic:
		return -1, nil
	default:
		return 0, fmt.Errorf("%w: law axis %q", ErrInvalidAlignment, l)
	}
}

// moralCoord maps the moral axis to a grid coordinate. Good = +1, Evil = -1.
func moralCoord(m MoralAxis) (int, error) {
	switch m {
	case Good:
		return 1, nil
	case MoralNeutral:
		return 0, nil
	case Evil:
		return -1, nil
	default:
		return 0, fmt.Errorf("%w: moral axis %q", ErrInvalidAlignment, m)
	}
}

// Axes returns the (law, moral) grid coordinates, each in {-1, 0, +1}.
func (a Alignment) Axes() (law, moral int, err error) {
	law, err = lawCoord(a.Law)
	if err != nil {
		return 0, 0, err
	}
	moral, err = moralCoord(a.Moral)
	if err != nil {
		return 0, 0, err
	}
	return law, moral, nil
}

// Validate reports whether both axes carry known values.
func (a Alignment) Validate() error {
	_, _, err := a.Axes()
	return err
}

// Label renders the canonical human-readable form, e.g. "Lawful Good".
// The doubly-neutral alignment is "True Neutral" by convention.
func (a Alignment) Label() string {
	if a.Law == LawNeutral && a.Moral == MoralNeutral {
		return "True Neutral"
	}
	return title(string(a.Law)) + " " + title(string(a.Moral))
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Parse converts a human-readable label ("Lawful Good", "true neutral")
// into an Alignment. Returns ErrInvalidAlignment for unknown labels.
func Parse(label string) (Alignment, error) {
	canon := strings.ToLower(strings.Join(strings.Fields(label), " "))
	switch canon {
	case "true neutral", "neutral neutral", "neutral":
		return Alignment{Law: LawNeutral, Moral: MoralNeutral}, nil
	}

	parts := strings.SplitN(canon, " ", 2)
	if len(parts) != 2 {
		return Alignment{}, fmt.Errorf("%w: label %q", ErrInvalidAlignment, label)
	}

	a := Alignment{Law: LawAxis(parts[0]), Moral: MoralAxis(parts[1])}
	if err := a.Validate(); err != nil {
		return Alignment{}, fmt.Errorf("%w: label %q", ErrInvalidAlignment, label)
	}
	return a, nil
}

// Distance is the Euclidean distance between two alignments on the grid.
// Maximum is sqrt(8) ≈ 2.828 (opposite corners).
func Distance(a, b Alignment) (float64, error) {
	ax, ay, err := a.Axes()
	if err != nil {
		return 0, err
	}
	bx, by, err := b.Axes()
	if err != nil {
		return 0, err
	}
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return math.Sqrt(dx*dx + dy*dy), nil
}

// Compatibility converts grid distance into a score in [0, 1]:
// 1.0 for identical alignments, ~0.0 for opposite corners.
func Compatibility(a, b Alignment) (float64, error) {
	d, err := Distance(a, b)
	if err != nil {
		return 0, err
	}
	frac := d / maxDistance
	if frac > 1.0 {
		frac = 1.0
	}
	return 1.0 - frac, nil
}
