// Package rng builds the random sources used for shuffling.
package rng

import (
	"math/rand"
	"time"
)

// New returns a rand.Rand seeded with seed. A zero seed picks one from the clock.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(Resolve(seed)))
}

// Resolve returns seed, or a clock-derived seed when seed is zero.
func Resolve(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
