package agents

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/fateloom/internal/alignment"
	"github.com/talgya/fateloom/internal/fate"
)

// New builds a validated agent. An empty id gets a generated UUID; an empty
// strategy falls back to the alignment's default. Fate state is initialized
// from the alignment baselines.
func New(id, name string, align alignment.Alignment, strat Strategy, tags ...string) (*Agent, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if strat == "" {
		strat = DefaultStrategyFor(align)
	}

	fs, err := fate.Init(align)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", name, err)
	}

	a := &Agent{
		ID:        id,
		Name:      name,
		Kind:      "human",
		Tags:      tags,
		Alignment: align,
		Strategy:  strat,
		Fate:      fs,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Preset names a ready-made agent for scenario setup.
type Preset string

const (
	PresetPaladin  Preset = "paladin"  // Lawful Good copykitten
	PresetPuck     Preset = "puck"     // Chaotic Neutral random trickster
	PresetWarlock  Preset = "warlock"  // Neutral Evil cheater
	PresetVillager Preset = "villager" // True Neutral random commoner
)

// Spawn builds one of the preset agents. Presets carry overlapping tags so
// shared-interest scoring has something to chew on out of the box.
func Spawn(p Preset) (*Agent, error) {
	switch p {
	case PresetPaladin:
		return New("paladin", "Paladin",
			alignment.Alignment{Law: alignment.Lawful, Moral: alignment.Good},
			StrategyCopykitten, "oath", "honor", "court")
	case PresetPuck:
		return New("puck", "Puck",
			alignment.Alignment{Law: alignment.Chaotic, Moral: alignment.MoralNeutral},
			StrategyRandom, "trickster", "forest", "court")
	case PresetWarlock:
		return New("warlock", "Warlock",
			alignment.Alignment{Law: alignment.LawNeutral, Moral: alignment.Evil},
			StrategyCheater, "pact", "shadow")
	case PresetVillager:
		return New("", "Villager",
			alignment.Alignment{Law: alignment.LawNeutral, Moral: alignment.MoralNeutral},
			StrategyRandom, "market", "field")
	default:
		return nil, fmt.Errorf("%w: unknown preset %q", ErrMalformedAgent, p)
	}
}
