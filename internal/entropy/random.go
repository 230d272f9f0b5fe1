// Package entropy provides the injectable randomness used by strategy
// tie-breaks and destiny rolls. Simulations pass a seeded Source for
// reproducible runs; callers that don't care get a crypto/rand fallback.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
)

// Source yields uniform draws in [0, 1). It is the single randomness
// abstraction of the core: substitute a deterministic sequence in tests.
type Source interface {
	Float64() float64
}

// seeded wraps math/rand for deterministic, repeatable draws.
type seeded struct {
	rng *mathrand.Rand
}

// Seeded returns a deterministic Source: the same seed always yields the
// same draw sequence.
func Seeded(seed int64) Source {
	return &seeded{rng: mathrand.New(mathrand.NewSource(seed))}
}

func (s *seeded) Float64() float64 {
	return s.rng.Float64()
}

// cryptoSource draws from crypto/rand. Not reproducible; used when no seed
// is supplied.
type cryptoSource struct{}

// Crypto returns a non-deterministic Source backed by crypto/rand.
func Crypto() Source {
	return cryptoSource{}
}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Should never happen; 0.5 is a safe neutral draw.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// RollDie maps one uniform draw to a die face in [1, sides].
func RollDie(src Source, sides int) int {
	f := src.Float64()
	face := 1 + int(f*float64(sides))
	if face > sides {
		// Guards the f == 0.999... edge after float truncation.
		face = sides
	}
	return face
}

// RollD20 rolls a single twenty-sided die.
func RollD20(src Source) int {
	return RollDie(src, 20)
}
