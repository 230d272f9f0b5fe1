// Package agents provides the agent data model: identity, alignment,
// strategy, relationships, the per-counterpart trust ledger, and the emotion
// and fate states the simulation updates each round.
package agents

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/talgya/fateloom/internal/alignment"
	"github.com/talgya/fateloom/internal/emotion"
	"github.com/talgya/fateloom/internal/fate"
	"github.com/talgya/fateloom/internal/trust"
)

// Strategy names an iterated-game decision rule.
type Strategy string

const (
	StrategyCooperator Strategy = "cooperator" // always cooperate
	StrategyCheater    Strategy = "cheater"    // always defect
	StrategyCopycat    Strategy = "copycat"    // cooperate unless trust < -0.2
	StrategyCopykitten Strategy = "copykitten" // forgiving copycat: defect only below -0.4
	StrategyGrudger    Strategy = "grudger"    // defect at any negative trust
	StrategyDetective  Strategy = "detective"  // probing variant; decides like copycat
	StrategySimpleton  Strategy = "simpleton"  // random with a cooperation tilt
	StrategyRandom     Strategy = "random"     // coin flip
)

// knownStrategies is the validation set for Agent.Strategy.
var knownStrategies = map[Strategy]bool{
	StrategyCooperator: true,
	StrategyCheater:    true,
	StrategyCopycat:    true,
	StrategyCopykitten: true,
	StrategyGrudger:    true,
	StrategyDetective:  true,
	StrategySimpleton:  true,
	StrategyRandom:     true,
}

// RelationshipTier classifies a social bond with one specific counterpart.
type RelationshipTier string

const (
	TierStranger          RelationshipTier = "stranger"
	TierAcquaintance      RelationshipTier = "acquaintance"
	TierAlly              RelationshipTier = "ally"
	TierPermanentFollower RelationshipTier = "permanent_follower"
	TierLoveInterest      RelationshipTier = "love_interest"
	TierRival             RelationshipTier = "rival"
)

// Relationship is a named social bond toward another agent, distinct from
// the trust ledger: tiers and romance bias action choice, the ledger tracks
// round-by-round trust.
type Relationship struct {
	Tier     RelationshipTier `json:"tier"`
	Affinity float64          `json:"affinity"` // [-1, +1] hate -> love
	Romantic bool             `json:"romantic"`
}

// ErrMalformedAgent indicates an agent snapshot missing required fields or
// carrying unknown enum values. Raised before any state mutation.
var ErrMalformedAgent = errors.New("malformed agent state")

// Agent is the complete per-agent simulation state. All cross-agent state is
// keyed by counterpart id and owned by this agent; two agents never share
// mutable state.
type Agent struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Kind string   `json:"kind,omitempty"`
	Tags []string `json:"tags,omitempty"`

	Alignment alignment.Alignment `json:"alignment"`
	Strategy  Strategy            `json:"strategy"`

	// Trust ledger: counterpart id -> directed trust edge. Links are
	// created lazily on first interaction and never deleted.
	Trust map[string]trust.TrustLink `json:"trust,omitempty"`

	Relationships map[string]Relationship `json:"relationships,omitempty"`

	Emotion emotion.State `json:"emotion"`
	Fate    fate.State    `json:"fate"`
}

// Validate checks the required fields. The returned error wraps
// ErrMalformedAgent so callers can match the taxonomy with errors.Is.
func (a *Agent) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: nil agent", ErrMalformedAgent)
	}
	if a.ID == "" {
		return fmt.Errorf("%w: missing id", ErrMalformedAgent)
	}
	if a.Name == "" {
		return fmt.Errorf("%w: agent %s missing name", ErrMalformedAgent, a.ID)
	}
	if !knownStrategies[a.Strategy] {
		return fmt.Errorf("%w: agent %s has unknown strategy %q", ErrMalformedAgent, a.ID, a.Strategy)
	}
	if err := a.Alignment.Validate(); err != nil {
		return fmt.Errorf("%w: agent %s: %v", ErrMalformedAgent, a.ID, err)
	}
	return nil
}

// TrustToward returns this agent's affinity toward the counterpart, or 0 for
// a stranger with no ledger entry yet.
func (a *Agent) TrustToward(otherID string) float64 {
	if link, ok := a.Trust[otherID]; ok {
		return link.Affinity
	}
	return 0.0
}

// LinkTo returns the trust edge toward the counterpart, creating it from
// alignment compatibility on first use.
func (a *Agent) LinkTo(otherID string, compat float64) trust.TrustLink {
	if link, ok := a.Trust[otherID]; ok {
		return link
	}
	return trust.NewLink(compat)
}

// SetLink stores an updated trust edge, allocating the ledger on first use.
func (a *Agent) SetLink(otherID string, link trust.TrustLink) {
	if a.Trust == nil {
		a.Trust = make(map[string]trust.TrustLink, 1)
	}
	a.Trust[otherID] = link
}

// RelationshipWith returns the bond toward the counterpart, defaulting to a
// neutral stranger.
func (a *Agent) RelationshipWith(otherID string) Relationship {
	if r, ok := a.Relationships[otherID]; ok {
		return r
	}
	return Relationship{Tier: TierStranger}
}

// SetRelationship records a bond toward the counterpart.
func (a *Agent) SetRelationship(otherID string, r Relationship) {
	if a.Relationships == nil {
		a.Relationships = make(map[string]Relationship, 1)
	}
	r.Affinity = trust.Clamp(r.Affinity, -1.0, 1.0)
	a.Relationships[otherID] = r
}

// Clone returns a deep copy. Rounds mutate copies and assign them back only
// on success, so a failed round cannot leave an agent half-updated.
func (a *Agent) Clone() *Agent {
	next := *a
	next.Tags = append([]string(nil), a.Tags...)
	if a.Trust != nil {
		next.Trust = make(map[string]trust.TrustLink, len(a.Trust))
		for k, v := range a.Trust {
			next.Trust[k] = v
		}
	}
	if a.Relationships != nil {
		next.Relationships = make(map[string]Relationship, len(a.Relationships))
		for k, v := range a.Relationships {
			next.Relationships[k] = v
		}
	}
	return &next
}

// MarshalJSON round-trips the full agent snapshot.
func (a *Agent) MarshalJSON() ([]byte, error) {
	type plain Agent
	return json.Marshal((*plain)(a))
}

// FromJSON decodes and validates an agent snapshot.
func FromJSON(data []byte) (*Agent, error) {
	var a Agent
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAgent, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// DefaultStrategyFor suggests an iterated-game strategy from alignment:
// good alignments trust, evil ones cheat, lawful ones hold grudges.
func DefaultStrategyFor(a alignment.Alignment) Strategy {
	switch {
	case a.Moral == alignment.Good && a.Law == alignment.Lawful:
		return StrategyCopykitten
	case a.Moral == alignment.Good && a.Law == alignment.Chaotic:
		return StrategySimpleton
	case a.Moral == alignment.Good:
		return StrategyCooperator
	case a.Moral == alignment.Evil && a.Law == alignment.Lawful:
		return StrategyDetective
	case a.Moral == alignment.Evil:
		return StrategyCheater
	case a.Law == alignment.Lawful:
		return StrategyGrudger
	default:
		return StrategyRandom
	}
}
