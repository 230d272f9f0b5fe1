package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDecay isolates the outcome deltas from time decay.
var noDecay = UpdateOpts{}

func TestBetrayalAsymmetry(t *testing.T) {
	// For the same compatibility, a CD round must move affinity further
	// than a CC round, even at perfect compatibility.
	link := TrustLink{}

	_, ccDeltas, err := link.Update(OutcomeCC, 1.0, noDecay)
	require.NoError(t, err)
	_, cdDeltas, err := link.Update(OutcomeCD, 1.0, noDecay)
	require.NoError(t, err)

	assert.InDelta(t, 0.15, ccDeltas.DeltaAffinity, 1e-9)
	assert.InDelta(t, -0.30, cdDeltas.DeltaAffinity, 1e-9)
	assert.Greater(t, -cdDeltas.DeltaAffinity, ccDeltas.DeltaAffinity)
}

func TestOutcomeEffects(t *testing.T) {
	link := TrustLink{Affinity: 0.5, CooperationStreak: 2}

	next, d, err := link.Update(OutcomeCC, 0.5, noDecay)
	require.NoError(t, err)
	assert.Equal(t, 3, next.CooperationStreak)
	assert.Equal(t, 0, next.BetrayalCount)
	assert.InDelta(t, 0.15*0.75, d.DeltaAffinity, 1e-9)
	assert.Equal(t, OutcomeCC, next.LastOutcome)
	// CC nudges awe up and boredom down (already at floor).
	assert.InDelta(t, 0.02, next.Awe, 1e-9)
	assert.Equal(t, 0.0, next.Boredom)

	next, d, err = link.Update(OutcomeCD, 0.5, noDecay)
	require.NoError(t, err)
	assert.Equal(t, 0, next.CooperationStreak, "betrayal resets the streak")
	assert.Equal(t, 1, next.BetrayalCount)
	assert.InDelta(t, -0.30, d.DeltaAffinity, 1e-9)

	next, d, err = link.Update(OutcomeDC, 0.5, noDecay)
	require.NoError(t, err)
	assert.Equal(t, 0, next.CooperationStreak)
	assert.Equal(t, 0, next.BetrayalCount, "exploiting them is not a betrayal of me")
	assert.InDelta(t, -0.05, d.DeltaAffinity, 1e-9)

	next, _, err = link.Update(OutcomeDD, 0.5, noDecay)
	require.NoError(t, err)
	assert.Equal(t, 0, next.CooperationStreak)
	assert.Greater(t, next.Boredom, link.Boredom, "mutual cynicism is boring")
}

func TestFateDeltaMapping(t *testing.T) {
	link := TrustLink{}

	_, d, err := link.Update(OutcomeCC, 1.0, noDecay)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, d.DeltaGrace, 1e-9)
	assert.InDelta(t, -0.02, d.DeltaMentalStrain, 1e-9)

	_, d, err = link.Update(OutcomeCD, 1.0, noDecay)
	require.NoError(t, err)
	assert.InDelta(t, -0.05, d.DeltaGrace, 1e-9)
	assert.InDelta(t, 0.10, d.DeltaMentalStrain, 1e-9)
}

func TestInvalidOutcome(t *testing.T) {
	link := TrustLink{Affinity: 0.4, CooperationStreak: 3}

	next, d, err := link.Update("XX", 0.5, noDecay)
	assert.ErrorIs(t, err, ErrInvalidOutcome)
	assert.Equal(t, link, next, "no state moves on an invalid outcome")
	assert.Equal(t, Deltas{}, d)

	_, _, err = link.Update(OutcomeNone, 0.5, noDecay)
	assert.ErrorIs(t, err, ErrInvalidOutcome)
}

func TestTimeDecay(t *testing.T) {
	link := TrustLink{Affinity: 0.8}

	// With no boredom, decay pulls affinity toward 0 at half the bounce.
	next, _, err := link.Update(OutcomeDD, 0.5, UpdateOpts{Bounce: 0.1})
	require.NoError(t, err)
	preDecay := 0.8 - CynicismStep
	// DD adds a boredom nudge before decay is computed.
	factor := 1.0 - 0.1*(0.5+0.5*0.03)
	assert.InDelta(t, preDecay*factor, next.Affinity, 1e-9)

	// Higher boredom forgets faster.
	bored := TrustLink{Affinity: 0.8, Boredom: 1.0}
	calm := TrustLink{Affinity: 0.8, Boredom: 0.0}
	nextBored, _, err := bored.Update(OutcomeCD, 0.5, UpdateOpts{Bounce: 0.1})
	require.NoError(t, err)
	nextCalm, _, err := calm.Update(OutcomeCD, 0.5, UpdateOpts{Bounce: 0.1})
	require.NoError(t, err)
	assert.Less(t, nextBored.Affinity, nextCalm.Affinity,
		"positive affinity decays toward zero faster when bored")
}

func TestGossipAndBoosts(t *testing.T) {
	link := TrustLink{}
	next, _, err := link.Update(OutcomeCC, 0.5, UpdateOpts{
		AweBoost:     0.3,
		BoredomBoost: 0.2,
		GossipDelta:  -0.4,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.32, next.Awe, 1e-9)     // 0.02 CC nudge + 0.3 boost
	assert.InDelta(t, 0.17, next.Boredom, 1e-9) // -0.03 CC nudge + 0.2 boost
	assert.InDelta(t, -0.4, next.GossipBias, 1e-9)
}

func TestBoundednessUnderLongSequences(t *testing.T) {
	outcomes := []Outcome{OutcomeCC, OutcomeCD, OutcomeDD, OutcomeCC, OutcomeDC, OutcomeCD}
	link := NewLink(0.2)
	opts := UpdateOpts{AweBoost: 0.05, BoredomBoost: 0.02, GossipDelta: 0.1, Bounce: 0.1}

	for i := 0; i < 500; i++ {
		var err error
		link, _, err = link.Update(outcomes[i%len(outcomes)], 0.7, opts)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, link.Affinity, -1.0)
		assert.LessOrEqual(t, link.Affinity, 1.0)
		assert.GreaterOrEqual(t, link.GossipBias, -1.0)
		assert.LessOrEqual(t, link.GossipBias, 1.0)
		assert.GreaterOrEqual(t, link.Awe, 0.0)
		assert.LessOrEqual(t, link.Awe, 1.0)
		assert.GreaterOrEqual(t, link.Boredom, 0.0)
		assert.LessOrEqual(t, link.Boredom, 1.0)
		assert.GreaterOrEqual(t, link.BetrayalCount, 0)
		assert.GreaterOrEqual(t, link.CooperationStreak, 0)
	}
}

func TestNewLinkFromCompatibility(t *testing.T) {
	assert.InDelta(t, 0.0, NewLink(0.5).Affinity, 1e-9)
	assert.InDelta(t, 1.0, NewLink(1.0).Affinity, 1e-9)
	assert.InDelta(t, -1.0, NewLink(0.0).Affinity, 1e-9)
}
