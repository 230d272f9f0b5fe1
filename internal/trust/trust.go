// Package trust implements the directed trust-edge state machine. Each
// TrustLink is owned by the truster and keyed by the trustee; it evolves one
// round outcome at a time and emits the deltas the fate engine integrates.
package trust

import (
	"errors"
	"fmt"
)

// Outcome describes one round's two actions from the owning agent's
// perspective.
type Outcome string

const (
	// OutcomeNone marks a link with no interaction history yet.
	OutcomeNone Outcome = ""
	// OutcomeCC: we both cooperated.
	OutcomeCC Outcome = "CC"
	// OutcomeCD: I cooperated, they defected — I was betrayed.
	OutcomeCD Outcome = "CD"
	// OutcomeDC: I defected, they cooperated — I exploited them.
	OutcomeDC Outcome = "DC"
	// OutcomeDD: we both defected.
	OutcomeDD Outcome = "DD"
)

// ErrInvalidOutcome indicates an outcome code outside {CC, CD, DC, DD}.
var ErrInvalidOutcome = errors.New("invalid outcome code")

// Tunable constants for the per-round trust dynamics. The relative ordering
// is load-bearing: a betrayal (CD) must move affinity faster than any reward.
const (
	// BaseStep is how much a single cooperative round can shift affinity.
	BaseStep = 0.15
	// GuiltStep is the small affinity hit for exploiting a cooperator.
	GuiltStep = 0.05
	// CynicismStep is the affinity hit for mutual defection.
	CynicismStep = 0.10
	// DefaultBounce is the default per-round decay rate toward neutral.
	DefaultBounce = 0.10

	// aweNudge / boredomNudge are the small CC-round complacence shifts.
	aweNudge     = 0.02
	boredomNudge = 0.03
)

// TrustLink is one directed trust edge. Created lazily on first interaction
// with a counterpart; never deleted, only decayed.
type TrustLink struct {
	Affinity   float64 `json:"affinity"`    // [-1, +1] how much I trust/like you
	GossipBias float64 `json:"gossip_bias"` // [-1, +1] rumor/third-party skew
	Awe        float64 `json:"awe"`         // [0, 1] how starstruck I am
	Boredom    float64 `json:"boredom"`     // [0, 1] how complacent I am

	LastOutcome Outcome `json:"last_outcome"`

	BetrayalCount     int `json:"betrayal_count"`
	CooperationStreak int `json:"cooperation_streak"`
}

// NewLink seeds a trust edge from alignment compatibility: comp 0.5 maps to
// neutral affinity, above to positive, below to negative.
func NewLink(compat float64) TrustLink {
	return TrustLink{Affinity: CompatibilityToAffinity(compat)}
}

// CompatibilityToAffinity maps compatibility [0,1] to affinity [-1,+1].
func CompatibilityToAffinity(compat float64) float64 {
	return Clamp(2.0*compat-1.0, -1.0, 1.0)
}

// Deltas are the raw per-round movements, returned so callers can feed the
// fate engine without recomputation. DeltaAffinity is the outcome delta
// before time decay.
type Deltas struct {
	DeltaAffinity     float64 `json:"delta_affinity"`
	DeltaBetrayal     int     `json:"delta_betrayal"`
	DeltaStreak       int     `json:"delta_streak"`
	DeltaGrace        float64 `json:"delta_grace"`
	DeltaMentalStrain float64 `json:"delta_mental_strain"`
}

// UpdateOpts carries the optional per-round inputs: short-term emotional
// boosts from the encounter, external gossip adjustment, and the decay rate.
// Bounce of 0 disables time decay.
type UpdateOpts struct {
	AweBoost     float64
	BoredomBoost float64
	GossipDelta  float64
	Bounce       float64
}

// outcomeEffects computes (deltaAffinity, deltaBetrayal, deltaStreak) for a
// single round outcome, scaled by alignment compatibility for rewards.
func outcomeEffects(outcome Outcome, compat float64) (float64, int, int, error) {
	switch outcome {
	case OutcomeCC:
		// Trust reinforcement, stronger between compatible alignments.
		return BaseStep * (0.5 + 0.5*compat), 0, 1, nil
	case OutcomeCD:
		// They stabbed me in the back; drop affinity hard.
		return -2.0 * BaseStep, 1, 0, nil
	case OutcomeDC:
		// I exploited them; small guilt hit, no betrayal recorded.
		return -GuiltStep, 0, 0, nil
	case OutcomeDD:
		// Mutual defection; cynicism rises.
		return -CynicismStep, 0, 0, nil
	default:
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}
}

// Update applies one round outcome to the link and returns the updated link
// plus the raw deltas. The receiver is unchanged; on ErrInvalidOutcome no
// state moves at all.
//
// Order of operations: outcome deltas, gossip, awe/boredom boosts, then time
// decay of affinity toward neutral (faster when bored), then re-clamping.
func (l TrustLink) Update(outcome Outcome, compat float64, opts UpdateOpts) (TrustLink, Deltas, error) {
	dAff, dBetray, dStreak, err := outcomeEffects(outcome, compat)
	if err != nil {
		return l, Deltas{}, err
	}

	next := l
	next.Affinity += dAff
	next.BetrayalCount += dBetray
	if outcome == OutcomeCC {
		next.CooperationStreak += dStreak
		next.Awe += aweNudge
		next.Boredom -= boredomNudge
	} else {
		// Any non-perfect round resets the streak.
		next.CooperationStreak = 0
	}
	if outcome == OutcomeDD {
		next.Boredom += boredomNudge
	}

	next.GossipBias = Clamp(next.GossipBias+opts.GossipDelta, -1.0, 1.0)
	next.Awe = Clamp(next.Awe+opts.AweBoost, 0.0, 1.0)
	next.Boredom = Clamp(next.Boredom+opts.BoredomBoost, 0.0, 1.0)

	// Time decay: affinity drifts toward 0, and boredom speeds up "meh".
	if opts.Bounce > 0 {
		decay := opts.Bounce * (0.5 + 0.5*next.Boredom)
		next.Affinity -= decay * next.Affinity
	}

	next.Affinity = Clamp(next.Affinity, -1.0, 1.0)
	next.LastOutcome = outcome

	// Fate coupling: betrayal loads mental strain and burns grace, a
	// cooperation streak does the reverse at a gentler rate.
	d := Deltas{
		DeltaAffinity:     dAff,
		DeltaBetrayal:     dBetray,
		DeltaStreak:       dStreak,
		DeltaGrace:        0.05*float64(dStreak) - 0.05*float64(dBetray),
		DeltaMentalStrain: 0.1*float64(dBetray) - 0.02*float64(dStreak),
	}
	return next, d, nil
}
