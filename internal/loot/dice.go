// Package loot implements the random encounter engine: the d20 category
// table, the item drawer, magic rarity resolution and the daily loss/find
// cycle.
package loot

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is the randomness provider for every roll the engine makes.
// *rand.Rand satisfies it.
type Source interface {
	// Intn returns a non-negative random int in [0, n). n must be > 0.
	Intn(n int) int
}

// NewSource returns a deterministic source for seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Roll returns a die result in [1, sides].
func Roll(src Source, sides int) int {
	if sides <= 0 {
		panic(fmt.Sprintf("loot: die must have positive sides, got %d", sides))
	}
	return src.Intn(sides) + 1
}

// D20 rolls a twenty-sided die.
func D20(src Source) int { return Roll(src, 20) }

// D100 rolls percentile dice.
func D100(src Source) int { return Roll(src, 100) }
