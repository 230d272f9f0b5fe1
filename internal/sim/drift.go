package sim

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Drift generates smooth, deterministic per-round awe/boredom nudges from
// layered simplex noise, standing in for the ambient world events (rumors,
// spectacle, tedium) that color an encounter beyond the round outcome
// itself. Two independent noise layers per side keep awe and boredom
// uncorrelated.
type Drift struct {
	awe     opensimplex.Noise
	boredom opensimplex.Noise
}

// driftScale bounds a single round's nudge; drift should tint the dynamics,
// never drive them.
const driftScale = 0.04

// driftStep is the noise-space distance between consecutive rounds, chosen
// small enough that adjacent rounds stay correlated.
const driftStep = 0.15

// NewDrift creates a drift source. The same seed always produces the same
// per-round sequence.
func NewDrift(seed int64) *Drift {
	return &Drift{
		awe:     opensimplex.NewNormalized(seed),
		boredom: opensimplex.NewNormalized(seed + 1),
	}
}

// At returns the (aweBoost, boredomBoost) pair for one side of a round.
// side disambiguates the two agents so they don't share a mood.
func (d *Drift) At(round, side int) (aweBoost, boredomBoost float64) {
	x := float64(round) * driftStep
	y := float64(side)
	aweBoost = (d.awe.Eval2(x, y) - 0.5) * driftScale
	boredomBoost = (d.boredom.Eval2(x, y) - 0.5) * driftScale
	return aweBoost, boredomBoost
}
