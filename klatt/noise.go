// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

import (
	"math"
)

const (
	// NoiseRefCoef and NoiseRefRate describe the classic noise shaping filter,
	// a one pole low-pass with b = 0.75 at a 10 kHz sample rate
	NoiseRefCoef = 0.75
	NoiseRefRate = 10000.0

	// NoiseRefFreq is the frequency at which the reference gain is matched
	NoiseRefFreq = 1000.0
)

// NoiseSource produces low-pass shaped noise for aspiration and frication.
// Each branch uses its own NoiseSource so the signals stay uncorrelated even
// though they share one RandomSource.
type NoiseSource struct {
	Filter Lowpass `desc:"spectral shaping filter"`
}

// NoiseFilterFreq returns the frequency at which the shaping filter matches the
// reference filter: NoiseRefFreq, or a quarter of the sample rate when that is lower
func NoiseFilterFreq(sampleRate float64) float64 {
	return math.Min(NoiseRefFreq, sampleRate/4)
}

// Init configures the shaping filter for the sample rate so it matches the
// reference filter at NoiseFilterFreq, with the level scaled for output in -1..1
func (ns *NoiseSource) Init(sampleRate float64) {
	ns.Filter.Init()
	f := NoiseFilterFreq(sampleRate)
	w := 2 * math.Pi * f / NoiseRefRate
	g := (1 - NoiseRefCoef) / math.Sqrt(1-2*NoiseRefCoef*math.Cos(w)+NoiseRefCoef*NoiseRefCoef)
	extraGain := 2.5 * math.Pow(sampleRate/NoiseRefRate, 0.33)
	ns.Filter.Set(f, g, extraGain, sampleRate)
}

// Reset clears the filter memory
func (ns *NoiseSource) Reset() {
	ns.Filter.Reset()
}

// GetSample draws one value from rnd and returns it shaped by the filter
func (ns *NoiseSource) GetSample(rnd RandomSource) float64 {
	return ns.Filter.Filter(WhiteNoise(rnd))
}
