package sim

import "errors"

// ErrEmptySeries indicates a stats request over zero rounds.
var ErrEmptySeries = errors.New("empty series")

// Trajectory summarizes one scalar signal across a series.
type Trajectory struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}

// BetrayalCounts tallies betrayals per side, including the scripted ones.
type BetrayalCounts struct {
	A         int `json:"a"`
	B         int `json:"b"`
	InjectedB int `json:"b_injected_scripted"`
}

// SeriesStats is the compact rollup of a series round log.
type SeriesStats struct {
	AID       string         `json:"a_id"`
	BID       string         `json:"b_id"`
	Rounds    int            `json:"rounds"`
	Betrayals BetrayalCounts `json:"betrayals"`
	TrustA    Trajectory     `json:"trust_a"`
	TrustB    Trajectory     `json:"trust_b"`
	ValenceA  Trajectory     `json:"valence_a"`
	ValenceB  Trajectory     `json:"valence_b"`
}

func trajectory(values []float64) Trajectory {
	t := Trajectory{Start: values[0], End: values[len(values)-1], Min: values[0], Max: values[0]}
	sum := 0.0
	for _, v := range values {
		if v < t.Min {
			t.Min = v
		}
		if v > t.Max {
			t.Max = v
		}
		sum += v
	}
	t.Avg = sum / float64(len(values))
	return t
}

// Summarize rolls a round log up into per-side betrayal counts and
// trust/valence trajectories.
func Summarize(rounds []RoundSummary) (SeriesStats, error) {
	if len(rounds) == 0 {
		return SeriesStats{}, ErrEmptySeries
	}

	stats := SeriesStats{
		AID:    rounds[0].AID,
		BID:    rounds[0].BID,
		Rounds: len(rounds),
	}

	trustA := make([]float64, len(rounds))
	trustB := make([]float64, len(rounds))
	valA := make([]float64, len(rounds))
	valB := make([]float64, len(rounds))

	for i, r := range rounds {
		if r.BetrayalA {
			stats.Betrayals.A++
		}
		if r.BetrayalB {
			stats.Betrayals.B++
		}
		if r.BetrayalInjectedB {
			stats.Betrayals.InjectedB++
		}
		trustA[i] = r.TrustAAfter
		trustB[i] = r.TrustBAfter
		valA[i] = r.EmotionA.Valence
		valB[i] = r.EmotionB.Valence
	}

	stats.TrustA = trajectory(trustA)
	stats.TrustB = trajectory(trustB)
	stats.ValenceA = trajectory(valA)
	stats.ValenceB = trajectory(valB)
	return stats, nil
}
