// Package sim orchestrates interaction rounds between two agents: action
// choice, prisoner's-dilemma payoff, and the trust → emotion → fate update
// chain, plus multi-round series with scripted betrayals.
package sim

import (
	"fmt"

	"github.com/talgya/fateloom/internal/agents"
	"github.com/talgya/fateloom/internal/alignment"
	"github.com/talgya/fateloom/internal/emotion"
	"github.com/talgya/fateloom/internal/entropy"
	"github.com/talgya/fateloom/internal/fate"
	"github.com/talgya/fateloom/internal/trust"
)

// Action is one side's move in a round.
type Action string

const (
	Cooperate Action = "C"
	Defect    Action = "D"
)

// RoundOptions carries optional per-round inputs: forced actions for
// scripted scenarios, and per-side trust-update extras (gossip, drift
// boosts). Zero Bounce values get trust.DefaultBounce.
type RoundOptions struct {
	ForcedA *Action
	ForcedB *Action
	TrustA  trust.UpdateOpts
	TrustB  trust.UpdateOpts
}

// RoundSummary is the immutable log record of one round: actions, payoffs,
// and both agents' post-round snapshots. Append-only; never mutated after
// creation.
type RoundSummary struct {
	Round int    `json:"round"`
	AID   string `json:"a_id"`
	BID   string `json:"b_id"`

	ActionA Action `json:"action_a"`
	ActionB Action `json:"action_b"`

	PayoffARaw     float64 `json:"payoff_a_raw"`
	PayoffBRaw     float64 `json:"payoff_b_raw"`
	PayoffAEmotion float64 `json:"payoff_a_emotion"`
	PayoffBEmotion float64 `json:"payoff_b_emotion"`

	BetrayalA         bool `json:"betrayal_a"`
	BetrayalB         bool `json:"betrayal_b"`
	BetrayalInjectedB bool `json:"betrayal_injected_b,omitempty"`

	SharedInterest float64 `json:"shared_interest"`

	OutcomeA trust.Outcome `json:"outcome_a"`
	OutcomeB trust.Outcome `json:"outcome_b"`

	TrustAAfter float64 `json:"trust_a_after"`
	TrustBAfter float64 `json:"trust_b_after"`

	StreakA        int `json:"streak_a"`
	StreakB        int `json:"streak_b"`
	BetrayalCountA int `json:"betrayal_count_a"`
	BetrayalCountB int `json:"betrayal_count_b"`

	EmotionA emotion.State `json:"emotion_a"`
	EmotionB emotion.State `json:"emotion_b"`
	FateA    fate.State    `json:"fate_a"`
	FateB    fate.State    `json:"fate_b"`
}

// Payoff is the classic prisoner's-dilemma matrix:
// CC=(2,2), CD=(-1,3), DC=(3,-1), DD=(0,0).
func Payoff(a, b Action) (float64, float64) {
	switch {
	case a == Cooperate && b == Cooperate:
		return 2.0, 2.0
	case a == Cooperate && b == Defect:
		return -1.0, 3.0
	case a == Defect && b == Cooperate:
		return 3.0, -1.0
	default:
		return 0.0, 0.0
	}
}

// emotionScale maps a raw payoff to its emotional weight.
const emotionScale = 0.25

// outcomeFor derives the trust outcome code from one side's perspective.
func outcomeFor(mine, theirs Action) trust.Outcome {
	switch {
	case mine == Cooperate && theirs == Cooperate:
		return trust.OutcomeCC
	case mine == Cooperate && theirs == Defect:
		return trust.OutcomeCD
	case mine == Defect && theirs == Cooperate:
		return trust.OutcomeDC
	default:
		return trust.OutcomeDD
	}
}

// SharedInterest is the Jaccard similarity of two agents' tag sets, 0 when
// either has no tags.
func SharedInterest(a, b *agents.Agent) float64 {
	if len(a.Tags) == 0 || len(b.Tags) == 0 {
		return 0.0
	}
	set := make(map[string]bool, len(a.Tags))
	for _, t := range a.Tags {
		set[t] = true
	}
	inter := 0
	union := len(set)
	for _, t := range b.Tags {
		if set[t] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// baseAction derives the strategy-baseline move, before any probability
// push. Probabilistic strategies draw from src.
func baseAction(me, other *agents.Agent, src entropy.Source) Action {
	t := me.TrustToward(other.ID)

	switch me.Strategy {
	case agents.StrategyCooperator:
		return Cooperate
	case agents.StrategyCheater:
		return Defect
	case agents.StrategyCopycat, agents.StrategyDetective:
		if t >= -0.2 {
			return Cooperate
		}
		return Defect
	case agents.StrategyCopykitten:
		if t > -0.4 {
			return Cooperate
		}
		return Defect
	case agents.StrategyGrudger:
		if t >= 0.0 {
			return Cooperate
		}
		return Defect
	case agents.StrategySimpleton:
		if src.Float64() < 0.6 {
			return Cooperate
		}
		return Defect
	case agents.StrategyRandom:
		if src.Float64() < 0.5 {
			return Cooperate
		}
		return Defect
	default:
		return Cooperate
	}
}

// alignBias nudges cooperation probability from the moral axes and shared
// interests: good-good pairs lean in, good-evil pairs lean out.
func alignBias(a, b *agents.Agent, sharedInterest float64) float64 {
	bias := 0.0

	am, bm := a.Alignment.Moral, b.Alignment.Moral
	if am == alignment.Good && bm == alignment.Good {
		bias += 0.1
	} else if (am == alignment.Good && bm == alignment.Evil) ||
		(am == alignment.Evil && bm == alignment.Good) {
		bias -= 0.1
	}

	bias += 0.2 * sharedInterest

	return trust.Clamp(bias, -0.3, 0.3)
}

// relationshipBias nudges cooperation from named bonds: allies and lovers
// push toward C, active rivalries push toward D.
func relationshipBias(me, other *agents.Agent) float64 {
	rel := me.RelationshipWith(other.ID)
	bias := 0.0

	switch rel.Tier {
	case agents.TierAlly, agents.TierPermanentFollower, agents.TierLoveInterest:
		if rel.Affinity > 0 {
			bias += 0.2 * rel.Affinity
		}
	case agents.TierRival:
		if rel.Affinity < 0 {
			bias -= 0.2 * -rel.Affinity
		}
	}
	if rel.Romantic && rel.Affinity > 0.5 {
		bias += 0.1
	}

	return trust.Clamp(bias, -0.5, 0.5)
}

// decideAction combines the strategy baseline with a cooperation probability
// built from trust, alignment, and relationship. A strong push either way
// overrides the strategy; the middle band defers to it. The unconditional
// strategies (cooperator, cheater) are exempt from the push — their whole
// identity is ignoring circumstance.
func decideAction(me, other *agents.Agent, sharedInterest float64, src entropy.Source) Action {
	base := baseAction(me, other, src)
	if me.Strategy == agents.StrategyCooperator || me.Strategy == agents.StrategyCheater {
		return base
	}

	t := me.TrustToward(other.ID)
	pCoop := 0.5 * (t + 1.0)
	pCoop += alignBias(me, other, sharedInterest)
	pCoop += relationshipBias(me, other)
	pCoop = trust.Clamp(pCoop, 0.0, 1.0)

	if pCoop >= 0.7 {
		return Cooperate
	}
	if pCoop <= 0.3 {
		return Defect
	}
	return base
}

// RunRound performs one interaction round and returns the summary plus the
// updated agents. The inputs are not mutated: updates are computed on
// clones, so validation failure leaves both agents untouched and a summary
// always reflects a fully applied round.
//
// Update order per side is trust, then emotion, then fate — the emotion
// update scales betrayal strain by the post-update trust value.
func RunRound(a, b *agents.Agent, opts RoundOptions, src entropy.Source) (RoundSummary, *agents.Agent, *agents.Agent, error) {
	if err := a.Validate(); err != nil {
		return RoundSummary{}, nil, nil, fmt.Errorf("agent a: %w", err)
	}
	if err := b.Validate(); err != nil {
		return RoundSummary{}, nil, nil, fmt.Errorf("agent b: %w", err)
	}

	compat, err := alignment.Compatibility(a.Alignment, b.Alignment)
	if err != nil {
		return RoundSummary{}, nil, nil, err
	}

	shared := SharedInterest(a, b)

	actionA := Cooperate
	if opts.ForcedA != nil {
		actionA = *opts.ForcedA
	} else {
		actionA = decideAction(a, b, shared, src)
	}
	actionB := Cooperate
	if opts.ForcedB != nil {
		actionB = *opts.ForcedB
	} else {
		actionB = decideAction(b, a, shared, src)
	}

	payoffA, payoffB := Payoff(actionA, actionB)
	emotionA := emotionScale * payoffA
	emotionB := emotionScale * payoffB

	betrayalA := actionA == Cooperate && actionB == Defect
	betrayalB := actionB == Cooperate && actionA == Defect

	outcomeA := outcomeFor(actionA, actionB)
	outcomeB := outcomeFor(actionB, actionA)

	nextA := a.Clone()
	nextB := b.Clone()

	optsA := opts.TrustA
	if optsA.Bounce == 0 {
		optsA.Bounce = trust.DefaultBounce
	}
	optsB := opts.TrustB
	if optsB.Bounce == 0 {
		optsB.Bounce = trust.DefaultBounce
	}

	linkA, deltasA, err := nextA.LinkTo(b.ID, compat).Update(outcomeA, compat, optsA)
	if err != nil {
		return RoundSummary{}, nil, nil, err
	}
	linkB, deltasB, err := nextB.LinkTo(a.ID, compat).Update(outcomeB, compat, optsB)
	if err != nil {
		return RoundSummary{}, nil, nil, err
	}

	nextA.SetLink(b.ID, linkA)
	nextB.SetLink(a.ID, linkB)

	nextA.Emotion = nextA.Emotion.ApplyImpact(emotionA, betrayalA, linkA.Affinity)
	nextB.Emotion = nextB.Emotion.ApplyImpact(emotionB, betrayalB, linkB.Affinity)

	nextA.Fate = nextA.Fate.ApplyTrustDeltas(deltasA, linkA.Awe, linkA.Boredom)
	nextB.Fate = nextB.Fate.ApplyTrustDeltas(deltasB, linkB.Awe, linkB.Boredom)

	summary := RoundSummary{
		AID:            a.ID,
		BID:            b.ID,
		ActionA:        actionA,
		ActionB:        actionB,
		PayoffARaw:     payoffA,
		PayoffBRaw:     payoffB,
		PayoffAEmotion: emotionA,
		PayoffBEmotion: emotionB,
		BetrayalA:      betrayalA,
		BetrayalB:      betrayalB,
		SharedInterest: shared,
		OutcomeA:       outcomeA,
		OutcomeB:       outcomeB,
		TrustAAfter:    linkA.Affinity,
		TrustBAfter:    linkB.Affinity,
		StreakA:        linkA.CooperationStreak,
		StreakB:        linkB.CooperationStreak,
		BetrayalCountA: linkA.BetrayalCount,
		BetrayalCountB: linkB.BetrayalCount,
		EmotionA:       nextA.Emotion,
		EmotionB:       nextB.Emotion,
		FateA:          nextA.Fate,
		FateB:          nextB.Fate,
	}

	return summary, nextA, nextB, nil
}
