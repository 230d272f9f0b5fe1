package sim

import (
	"fmt"
	"log/slog"

	"github.com/talgya/fateloom/internal/agents"
	"github.com/talgya/fateloom/internal/entropy"
)

// SeriesConfig drives a multi-round series between one agent pair.
type SeriesConfig struct {
	// Rounds is the number of rounds to run.
	Rounds int
	// BetrayalRoundB, if > 0, scripts a hard betrayal on that round: A is
	// forced to cooperate while B defects.
	BetrayalRoundB int
	// Seed drives all randomness (action tie-breaks and drift). Zero means
	// non-deterministic.
	Seed int64
	// Drift enables the ambient awe/boredom noise channel.
	Drift bool
}

// SeriesResult bundles the round log with the final agent snapshots.
type SeriesResult struct {
	Rounds []RoundSummary `json:"rounds"`
	FinalA *agents.Agent  `json:"final_a"`
	FinalB *agents.Agent  `json:"final_b"`
}

// RunSeries runs cfg.Rounds interaction rounds, threading the evolving agent
// state through each one and appending every summary to the round log. The
// input agents are not mutated.
func RunSeries(a, b *agents.Agent, cfg SeriesConfig) (SeriesResult, error) {
	if cfg.Rounds <= 0 {
		return SeriesResult{}, fmt.Errorf("series: rounds must be positive, got %d", cfg.Rounds)
	}

	var src entropy.Source
	if cfg.Seed != 0 {
		src = entropy.Seeded(cfg.Seed)
	} else {
		src = entropy.Crypto()
	}

	var drift *Drift
	if cfg.Drift {
		drift = NewDrift(cfg.Seed)
	}

	curA, curB := a, b
	log := make([]RoundSummary, 0, cfg.Rounds)

	for i := 1; i <= cfg.Rounds; i++ {
		var opts RoundOptions

		injected := cfg.BetrayalRoundB == i
		if injected {
			// Narrative beat: A keeps faith, B stabs them in the back.
			c, d := Cooperate, Defect
			opts.ForcedA = &c
			opts.ForcedB = &d
		}

		if drift != nil {
			opts.TrustA.AweBoost, opts.TrustA.BoredomBoost = drift.At(i, 0)
			opts.TrustB.AweBoost, opts.TrustB.BoredomBoost = drift.At(i, 1)
		}

		summary, nextA, nextB, err := RunRound(curA, curB, opts, src)
		if err != nil {
			return SeriesResult{}, fmt.Errorf("series round %d: %w", i, err)
		}
		summary.Round = i
		summary.BetrayalInjectedB = injected

		if injected {
			slog.Debug("scripted betrayal injected",
				"round", i,
				"betrayer", curB.Name,
				"victim", curA.Name,
			)
		}

		log = append(log, summary)
		curA, curB = nextA, nextB
	}

	return SeriesResult{Rounds: log, FinalA: curA, FinalB: curB}, nil
}
