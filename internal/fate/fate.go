// Package fate implements Titania's Grace: the per-agent fortune state
// integrated from trust deltas, and the destiny roll that consumes it.
package fate

import (
	"github.com/talgya/fateloom/internal/alignment"
	"github.com/talgya/fateloom/internal/trust"
)

// State is one agent's fate trajectory. Grace and MentalStrain are the
// integrated signals; BounceBack chases a target derived from both;
// WeirdMode is derived on every update, never set directly.
type State struct {
	Grace        float64 `json:"grace"`         // [0, 1] how favored you are
	BounceBack   float64 `json:"bounce_back"`   // [0, 1] recovery rate
	MentalStrain float64 `json:"mental_strain"` // [0, 1] stress / weirdness load
	WeirdMode    bool    `json:"weird_mode"`
}

// baseline holds the alignment-derived starting values.
type baseline struct {
	grace      float64
	bounceBack float64
	strain     float64
}

// baselines index by (law, moral) grid coordinates offset to [0,2].
// Good alignments start more graced; chaotic ones recover faster but run
// more strained.
var baselines = map[[2]int]baseline{
	{1, 1}:   {0.60, 0.60, 0.10}, // Lawful Good
	{0, 1}:   {0.58, 0.55, 0.12}, // Neutral Good
	{-1, 1}:  {0.55, 0.70, 0.15}, // Chaotic Good
	{1, 0}:   {0.52, 0.55, 0.15}, // Lawful Neutral
	{0, 0}:   {0.50, 0.50, 0.15}, // True Neutral
	{-1, 0}:  {0.50, 0.70, 0.20}, // Chaotic Neutral
	{1, -1}:  {0.45, 0.50, 0.20}, // Lawful Evil
	{0, -1}:  {0.40, 0.45, 0.25}, // Neutral Evil
	{-1, -1}: {0.35, 0.60, 0.30}, // Chaotic Evil
}

// Init derives the starting fate state from an agent's alignment.
// Unknown alignments return alignment.ErrInvalidAlignment.
func Init(a alignment.Alignment) (State, error) {
	law, moral, err := a.Axes()
	if err != nil {
		return State{}, err
	}
	b := baselines[[2]int{law, moral}]
	return State{
		Grace:        b.grace,
		BounceBack:   b.bounceBack,
		MentalStrain: b.strain,
		WeirdMode:    false,
	}, nil
}

// ApplyTrustDeltas integrates one round's trust deltas into the fate state.
//
//   - grace drifts softly toward the 0.5 neutral baseline, then takes the
//     round's delta
//   - awe bleeds off a little strain, boredom adds some
//   - bounce_back chases its target with a 10% first-order lag, so it moves
//     gradually even after a sudden grace/strain swing
//   - weird_mode triggers on high strain, or on the awe+strain combination
//     (a starstruck and rattled agent tips over even below the pure-strain
//     threshold)
//
// The receiver is unchanged; the new state is returned.
func (f State) ApplyTrustDeltas(d trust.Deltas, awe, boredom float64) State {
	g := f.Grace
	s := f.MentalStrain
	b := f.BounceBack

	g += 0.02 * (0.5 - g)
	g += d.DeltaGrace
	s += d.DeltaMentalStrain

	s -= 0.03 * awe
	s += 0.03 * boredom

	g = trust.Clamp(g, 0.0, 1.0)
	s = trust.Clamp(s, 0.0, 1.0)

	target := 0.3 + 0.7*g - 0.5*s
	b += 0.1 * (target - b)
	b = trust.Clamp(b, 0.0, 1.0)

	return State{
		Grace:        g,
		BounceBack:   b,
		MentalStrain: s,
		WeirdMode:    s > 0.7 || (awe+s) > 1.2,
	}
}
