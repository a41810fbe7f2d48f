// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

import "math"

// RandomSource produces uniformly distributed values in [0,1).
// It is owned by the caller and only borrowed during synthesis, so a
// deterministic source gives reproducible output. *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// ConstSource always returns the same value. A value of 0.5 maps to
// silent white noise, which is handy in tests.
type ConstSource float64

// Float64 returns the constant
func (cs ConstSource) Float64() float64 {
	return float64(cs)
}

const (
	// MultFactor is the multiplier of the MultSource recurrence
	MultFactor = 377.0

	// MultInitialSeed is the seed used after Reset
	MultInitialSeed = 0.7892347
)

// MultSource is a small deterministic generator that keeps the fractional
// part of seed * MultFactor. It is cheap and fully reproducible but
// has no statistical guarantees.
type MultSource struct {
	Seed float64
}

// Init resets the seed
func (ms *MultSource) Init() {
	ms.Reset()
}

// Reset sets the seed back to MultInitialSeed
func (ms *MultSource) Reset() {
	ms.Seed = MultInitialSeed
}

// Float64 advances the recurrence and returns the new seed
func (ms *MultSource) Float64() float64 {
	if ms.Seed <= 0 || ms.Seed >= 1 {
		ms.Reset()
	}
	product := ms.Seed * MultFactor
	ms.Seed = product - math.Floor(product)
	return ms.Seed
}

// WhiteNoise draws one value from rnd and maps it from [0,1) to [-1,1)
func WhiteNoise(rnd RandomSource) float64 {
	return 2*rnd.Float64() - 1
}
