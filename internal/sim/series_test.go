package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSeriesDeterminism(t *testing.T) {
	a, b := spawnPair(t)

	cfg := SeriesConfig{Rounds: 30, Seed: 42, Drift: true}
	first, err := RunSeries(a, b, cfg)
	require.NoError(t, err)
	second, err := RunSeries(a, b, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Rounds, second.Rounds, "same seed, same round log")
	assert.Equal(t, first.FinalA, second.FinalA)
	assert.Equal(t, first.FinalB, second.FinalB)
}

func TestRunSeriesBetrayalInjection(t *testing.T) {
	a, b := spawnPair(t)

	res, err := RunSeries(a, b, SeriesConfig{Rounds: 6, BetrayalRoundB: 4, Seed: 7})
	require.NoError(t, err)
	require.Len(t, res.Rounds, 6)

	r4 := res.Rounds[3]
	assert.Equal(t, 4, r4.Round)
	assert.True(t, r4.BetrayalInjectedB)
	assert.Equal(t, Cooperate, r4.ActionA)
	assert.Equal(t, Defect, r4.ActionB)
	assert.True(t, r4.BetrayalA)
	assert.GreaterOrEqual(t, r4.BetrayalCountA, 1)

	for i, r := range res.Rounds {
		if i != 3 {
			assert.False(t, r.BetrayalInjectedB, "round %d", r.Round)
		}
	}
}

func TestRunSeriesThreadsState(t *testing.T) {
	a, b := spawnPair(t)
	beforeA := a.Clone()

	res, err := RunSeries(a, b, SeriesConfig{Rounds: 10, Seed: 11})
	require.NoError(t, err)

	// Inputs stay pristine; finals carry the accumulated link state.
	assert.Equal(t, beforeA, a)
	require.Contains(t, res.FinalA.Trust, b.ID)
	assert.Equal(t, res.Rounds[9].TrustAAfter, res.FinalA.Trust[b.ID].Affinity)

	// Round numbers are sequential from one.
	for i, r := range res.Rounds {
		assert.Equal(t, i+1, r.Round)
	}
}

func TestRunSeriesRejectsZeroRounds(t *testing.T) {
	a, b := spawnPair(t)
	_, err := RunSeries(a, b, SeriesConfig{Rounds: 0, Seed: 1})
	assert.Error(t, err)
}

func TestDriftStaysSmall(t *testing.T) {
	d := NewDrift(3)
	for round := 1; round <= 200; round++ {
		for side := 0; side < 2; side++ {
			awe, boredom := d.At(round, side)
			assert.LessOrEqual(t, awe, driftScale/2)
			assert.GreaterOrEqual(t, awe, -driftScale/2)
			assert.LessOrEqual(t, boredom, driftScale/2)
			assert.GreaterOrEqual(t, boredom, -driftScale/2)
		}
	}
}

func TestSummarize(t *testing.T) {
	a, b := spawnPair(t)
	res, err := RunSeries(a, b, SeriesConfig{Rounds: 12, BetrayalRoundB: 5, Seed: 9})
	require.NoError(t, err)

	stats, err := Summarize(res.Rounds)
	require.NoError(t, err)

	assert.Equal(t, a.ID, stats.AID)
	assert.Equal(t, b.ID, stats.BID)
	assert.Equal(t, 12, stats.Rounds)
	assert.Equal(t, 1, stats.Betrayals.InjectedB)
	assert.GreaterOrEqual(t, stats.Betrayals.A, 1)

	assert.Equal(t, res.Rounds[0].TrustAAfter, stats.TrustA.Start)
	assert.Equal(t, res.Rounds[11].TrustAAfter, stats.TrustA.End)
	assert.LessOrEqual(t, stats.TrustA.Min, stats.TrustA.Max)
	assert.GreaterOrEqual(t, stats.TrustA.Avg, stats.TrustA.Min)
	assert.LessOrEqual(t, stats.TrustA.Avg, stats.TrustA.Max)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestSeriesStateStaysBounded(t *testing.T) {
	a, b := spawnPair(t)
	res, err := RunSeries(a, b, SeriesConfig{Rounds: 300, BetrayalRoundB: 50, Seed: 13, Drift: true})
	require.NoError(t, err)

	for _, r := range res.Rounds {
		assert.GreaterOrEqual(t, r.TrustAAfter, -1.0, "round %d", r.Round)
		assert.LessOrEqual(t, r.TrustAAfter, 1.0, "round %d", r.Round)
		assert.GreaterOrEqual(t, r.EmotionA.Valence, -1.0, "round %d", r.Round)
		assert.LessOrEqual(t, r.EmotionA.Valence, 1.0, "round %d", r.Round)
		assert.GreaterOrEqual(t, r.EmotionA.Strain, 0.0, "round %d", r.Round)
		assert.LessOrEqual(t, r.EmotionA.Strain, 1.0, "round %d", r.Round)
		assert.GreaterOrEqual(t, r.FateA.Grace, 0.0, "round %d", r.Round)
		assert.LessOrEqual(t, r.FateA.Grace, 1.0, "round %d", r.Round)
		assert.GreaterOrEqual(t, r.FateA.MentalStrain, 0.0, "round %d", r.Round)
		assert.LessOrEqual(t, r.FateA.MentalStrain, 1.0, "round %d", r.Round)
	}
}
