// Package emotion tracks an agent's per-round emotional response: valence,
// strain, resentment, and a hysteresis-gated weird mode.
package emotion

import (
	"math"

	"github.com/talgya/fateloom/internal/trust"
)

// State is one agent's emotional state.
type State struct {
	Valence    float64 `json:"valence"`    // [-1, +1] sad/angry -> happy/joyful
	Strain     float64 `json:"strain"`     // [0, 1] mental fatigue / weirdness load
	Resentment float64 `json:"resentment"` // [0, 1] grudge-holding
	Cooldown   int     `json:"cooldown"`   // rounds until normal behavior resumes
	WeirdMode  bool    `json:"weird_mode"`
}

// Weird-mode hysteresis thresholds. The on and off conditions deliberately
// overlap nowhere: between them the flag holds its previous value.
const (
	weirdOnValence  = 0.95
	weirdOnStrain   = 0.70
	weirdOffStrain  = 0.30
	weirdOffValence = 0.70
)

// ApplyImpact updates the state from one round's emotional payoff.
//
// payoffEmotion is the scaled game payoff, roughly [-1, +1]. betrayal is true
// when this agent cooperated and the counterpart defected. counterpartTrust
// is this agent's post-update affinity toward the counterpart; distrust
// (negative affinity) deepens the strain spike of a betrayal.
//
// The receiver is unchanged; the new state is returned.
func (e State) ApplyImpact(payoffEmotion float64, betrayal bool, counterpartTrust float64) State {
	next := e

	next.Valence += 0.4 * payoffEmotion
	if betrayal {
		// Betrayal is a direct emotional sting.
		next.Valence -= 0.3
	}
	next.Valence = trust.Clamp(next.Valence, -1.0, 1.0)

	if betrayal {
		// Strain spikes, worse if we already distrusted them.
		distrust := math.Max(0, -counterpartTrust)
		next.Strain += 0.2 + 0.1*distrust
	} else {
		// Good or neutral rounds bleed strain off gradually.
		next.Strain *= 0.9
	}
	next.Strain = trust.Clamp(next.Strain, 0.0, 1.0)

	if betrayal {
		next.Resentment = next.Resentment*0.8 + 0.25
	} else {
		next.Resentment *= 0.9
	}
	next.Resentment = trust.Clamp(next.Resentment, 0.0, 1.0)

	// Hysteresis: strong emotion flips weird mode on, it only releases once
	// both strain and valence have settled. In between it holds.
	if math.Abs(next.Valence) > weirdOnValence || next.Strain > weirdOnStrain {
		next.WeirdMode = true
	} else if next.Strain < weirdOffStrain && math.Abs(next.Valence) < weirdOffValence {
		next.WeirdMode = false
	}

	// Cooldown: a betrayal or a strained round keeps the agent rattled for
	// at least two rounds; otherwise it ticks down toward normal.
	if betrayal || next.Strain > 0.5 {
		if next.Cooldown < 2 {
			next.Cooldown = 2
		}
	} else if next.Cooldown > 0 {
		next.Cooldown--
	}

	return next
}
