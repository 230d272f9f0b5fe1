package fate

import (
	"math"

	"github.com/talgya/fateloom/internal/entropy"
)

// RollType names the advantage mode a destiny roll ended up using.
type RollType string

const (
	RollNormal       RollType = "normal"
	RollAdvantage    RollType = "advantage"
	RollDisadvantage RollType = "disadvantage"
)

// DefaultDC is the difficulty class used when the caller passes none.
const DefaultDC = 12

// RollOptions configures a destiny roll. A zero DC means DefaultDC.
// Advantage and Disadvantage are requests; weird mode overrides both.
type RollOptions struct {
	DC           int
	Advantage    bool
	Disadvantage bool
}

// RollResult is the full breakdown of one destiny roll, flat and
// JSON-loggable.
type RollResult struct {
	BaseRoll      int      `json:"base_roll"`
	GraceMod      int      `json:"grace_mod"`
	StrainPenalty int      `json:"strain_penalty"`
	Total         int      `json:"total"`
	DC            int      `json:"dc"`
	Success       bool     `json:"success"`
	RollType      RollType `json:"roll_type"`
}

// RollDestiny performs a d20-style roll biased by the fate snapshot:
//
//   - grace maps to a modifier in roughly [-2, +2]
//   - mental strain maps to a penalty in [0, 2]
//   - weird mode forces advantage or disadvantage from the sign of
//     grace - strain, overriding whatever the caller asked for: the
//     character's inner state takes precedence over circumstance
//
// Pure function over the snapshot; the fate state is not mutated. With a
// seeded source the result is fully deterministic.
func RollDestiny(f State, opts RollOptions, src entropy.Source) RollResult {
	dc := opts.DC
	if dc == 0 {
		dc = DefaultDC
	}

	rollType := RollNormal
	switch {
	case f.WeirdMode:
		if f.Grace-f.MentalStrain >= 0 {
			rollType = RollAdvantage
		} else {
			rollType = RollDisadvantage
		}
	case opts.Advantage && !opts.Disadvantage:
		rollType = RollAdvantage
	case opts.Disadvantage && !opts.Advantage:
		rollType = RollDisadvantage
	}

	var base int
	switch rollType {
	case RollNormal:
		base = entropy.RollD20(src)
	default:
		r1 := entropy.RollD20(src)
		r2 := entropy.RollD20(src)
		if rollType == RollAdvantage {
			base = max(r1, r2)
		} else {
			base = min(r1, r2)
		}
	}

	graceMod := int(math.Round((f.Grace - 0.5) * 4.0))
	strainPenalty := int(math.Round(f.MentalStrain * 2.0))
	total := base + graceMod - strainPenalty

	return RollResult{
		BaseRoll:      base,
		GraceMod:      graceMod,
		StrainPenalty: strainPenalty,
		Total:         total,
		DC:            dc,
		Success:       total >= dc,
		RollType:      rollType,
	}
}
