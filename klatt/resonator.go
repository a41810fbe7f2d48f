// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

import (
	"math"
)

// ResonatorKind selects the recursive resonator or its FIR inverse
type ResonatorKind int32

//go:generate stringer -type=ResonatorKind

const (
	// Resonant is the two pole IIR formant filter
	Resonant ResonatorKind = iota

	// AntiResonant is the inverse (two zero FIR) filter, used for the nasal zero
	AntiResonant

	ResonatorKindN
)

// FilterMode is the operating mode of a filter section
type FilterMode int32

//go:generate stringer -type=FilterMode

const (
	// Active filters with the current coefficients
	Active FilterMode = iota

	// Passthrough returns the input unchanged
	Passthrough

	// Muted always returns 0
	Muted

	FilterModeN
)

// Coefs are the three coefficients of a resonator section
type Coefs struct {
	A float64
	B float64
	C float64
}

// ResonatorCoefs computes the two pole coefficients for the given center frequency,
// bandwidth and sample rate, scaled for the given gain at DC.
// It also returns the pole radius r, which is needed for peak gain adjustment.
//
//	r = exp(-pi * bw / sr)
//	c = -r^2
//	b = 2 * r * cos(2 * pi * f / sr)
//	a = (1 - b - c) * dcGain
func ResonatorCoefs(freq, bw, sampleRate, dcGain float64) (Coefs, float64) {
	r := math.Exp(-math.Pi * bw / sampleRate)
	w := 2 * math.Pi * freq / sampleRate
	var cf Coefs
	cf.C = -(r * r)
	cf.B = 2 * r * math.Cos(w)
	cf.A = (1 - cf.B - cf.C) * dcGain
	return cf, r
}

// Resonator is a second order filter section.
// The Resonant kind computes y[n] = a*x[n] + b*y[n-1] + c*y[n-2],
// the AntiResonant kind computes y[n] = a*x[n] + b*x[n-1] + c*x[n-2] with
// coefficients that make it the exact inverse of a resonator with the same
// frequency and bandwidth.
type Resonator struct {
	Kind  ResonatorKind `desc:"resonant (IIR) or anti-resonant (FIR)"`
	Mode  FilterMode    `desc:"active, passthrough or muted"`
	Coefs Coefs         `desc:"current filter coefficients"`
	R     float64       `desc:"pole radius, exp(-pi * bw / sr)"`
	S0    float64       `desc:"previous sample: output for resonant, input for anti-resonant"`
	S1    float64       `desc:"second previous sample"`
}

// Init sets the kind and puts the section in passthrough mode with cleared memory
func (rs *Resonator) Init(kind ResonatorKind) {
	rs.Kind = kind
	rs.Coefs = Coefs{}
	rs.R = 0
	rs.SetPassthrough()
}

// Reset zeroes the filter memory
func (rs *Resonator) Reset() {
	rs.S0 = 0
	rs.S1 = 0
}

// SetPassthrough switches the section to identity and clears memory
func (rs *Resonator) SetPassthrough() {
	rs.Mode = Passthrough
	rs.Reset()
}

// SetMute switches the section to always output 0 and clears memory
func (rs *Resonator) SetMute() {
	rs.Mode = Muted
	rs.Reset()
}

// Configure recomputes the coefficients from center frequency and bandwidth without
// touching the filter memory. Frequencies or bandwidths that are not positive and
// finite, or frequencies at or above the Nyquist frequency, switch the section to
// passthrough. Returns false in that case.
func (rs *Resonator) Configure(freq, bw, sampleRate float64) bool {
	if !finite(freq, bw, sampleRate) || freq <= 0 || bw <= 0 || sampleRate <= 0 || freq >= sampleRate/2 {
		if rs.Mode != Passthrough {
			rs.SetPassthrough()
		}
		return false
	}
	cf, r := ResonatorCoefs(freq, bw, sampleRate, 1)
	rs.R = r
	if rs.Kind == AntiResonant {
		// a0 = 1 - b0 - c0 = |1 - r*e^jw|^2 is positive for r < 1
		rs.Coefs = Coefs{A: 1 / cf.A, B: -cf.B / cf.A, C: -cf.C / cf.A}
	} else {
		rs.Coefs = cf
	}
	rs.activate()
	return true
}

// SetLowpass configures a resonant section at 0 Hz, which makes it a second order
// low-pass filter with the given bandwidth and unity gain at DC.
func (rs *Resonator) SetLowpass(bw, sampleRate float64) bool {
	if !finite(bw, sampleRate) || bw <= 0 || sampleRate <= 0 {
		if rs.Mode != Passthrough {
			rs.SetPassthrough()
		}
		return false
	}
	rs.Kind = Resonant
	rs.Coefs, rs.R = ResonatorCoefs(0, bw, sampleRate, 1)
	rs.activate()
	return true
}

// SetPeakGain rescales coefficient a so the gain at the resonance frequency is
// peakGain. Non-positive gains mute the section.
func (rs *Resonator) SetPeakGain(peakGain float64) {
	if rs.Mode != Active {
		return
	}
	if peakGain <= 0 || !finite(peakGain) {
		rs.SetMute()
		return
	}
	rs.Coefs.A = peakGain * (1 - rs.R)
}

// SetImpulseGain sets coefficient a directly, i.e., the first output sample for a unit impulse
func (rs *Resonator) SetImpulseGain(a float64) {
	rs.Coefs.A = a
}

// activate switches to active mode, clearing memory when coming out of passthrough or mute
func (rs *Resonator) activate() {
	if rs.Mode != Active {
		rs.Reset()
	}
	rs.Mode = Active
}

// Filter processes one input sample
func (rs *Resonator) Filter(x float64) float64 {
	switch rs.Mode {
	case Passthrough:
		return x
	case Muted:
		return 0
	}
	cf := &rs.Coefs
	if rs.Kind == AntiResonant {
		y := cf.A*x + cf.B*rs.S0 + cf.C*rs.S1
		rs.S1 = rs.S0
		rs.S0 = x
		return y
	}
	y := cf.A*x + cf.B*rs.S0 + cf.C*rs.S1
	rs.S1 = rs.S0
	rs.S0 = y
	return y
}

// Transfer returns the z-domain transfer function of the section
// with the current coefficients.
func (rs *Resonator) Transfer() Fraction {
	switch rs.Mode {
	case Passthrough:
		return Identity()
	case Muted:
		return Zero()
	}
	cf := rs.Coefs
	if rs.Kind == AntiResonant {
		return Fraction{Num: Poly{cf.A, cf.B, cf.C}, Den: Poly{1}}
	}
	return Fraction{Num: Poly{cf.A}, Den: Poly{1, -cf.B, -cf.C}}
}
