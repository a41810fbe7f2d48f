// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

import (
	"math"
)

// Lowpass is a first order recursive low-pass filter, y[n] = a*x[n] + b*y[n-1].
// It is specified by the gain it has at one frequency:
//
//	w = 2 * pi * f / sr
//	q = (1 - g^2 * cos(w)) / (1 - g^2)
//	b = q - sqrt(q^2 - 1)
//	a = (1 - b) * extraGain
//
// which gives a gain of g*extraGain at f and extraGain at DC.
type Lowpass struct {
	Mode FilterMode `desc:"active, passthrough or muted"`
	A    float64    `desc:"input coefficient"`
	B    float64    `desc:"feedback coefficient"`
	Y    float64    `desc:"previous output"`
}

// Init puts the filter in passthrough mode
func (lp *Lowpass) Init() {
	lp.A = 0
	lp.B = 0
	lp.SetPassthrough()
}

// Reset sets Y to 0
func (lp *Lowpass) Reset() {
	lp.Y = 0
}

// SetPassthrough switches to identity and clears memory
func (lp *Lowpass) SetPassthrough() {
	lp.Mode = Passthrough
	lp.Y = 0
}

// SetMute switches to always output 0 and clears memory
func (lp *Lowpass) SetMute() {
	lp.Mode = Muted
	lp.Y = 0
}

// Set places gain g (0 < g < 1) at frequency f, with extraGain as the DC gain.
// Parameters outside the valid range switch the filter to passthrough; returns false in that case.
func (lp *Lowpass) Set(f, g, extraGain, sampleRate float64) bool {
	if !finite(f, g, extraGain, sampleRate) || sampleRate <= 0 || f <= 0 || f >= sampleRate/2 || g <= 0 || g >= 1 {
		if lp.Mode != Passthrough {
			lp.SetPassthrough()
		}
		return false
	}
	w := 2 * math.Pi * f / sampleRate
	g2 := g * g
	q := (1 - g2*math.Cos(w)) / (1 - g2)
	lp.B = q - math.Sqrt(q*q-1)
	lp.A = (1 - lp.B) * extraGain
	if lp.Mode != Active {
		lp.Y = 0
	}
	lp.Mode = Active
	return true
}

// Filter processes one sample
func (lp *Lowpass) Filter(x float64) float64 {
	switch lp.Mode {
	case Passthrough:
		return x
	case Muted:
		return 0
	}
	y := lp.A*x + lp.B*lp.Y
	lp.Y = y
	return y
}

// Transfer returns the z-domain transfer function of the filter
func (lp *Lowpass) Transfer() Fraction {
	switch lp.Mode {
	case Passthrough:
		return Identity()
	case Muted:
		return Zero()
	}
	return Fraction{Num: Poly{lp.A}, Den: Poly{1, -lp.B}}
}

// Differencer is a first difference (one zero high-pass) filter, y[n] = x[n] - x[n-1].
// Its gain at w = 2*pi*f/sr is sqrt(2 - 2*cos(w)).
type Differencer struct {
	X float64 `desc:"previous input"`
}

// Reset sets X to 0
func (df *Differencer) Reset() {
	df.X = 0
}

// Filter processes one sample
func (df *Differencer) Filter(x float64) float64 {
	y := x - df.X
	df.X = x
	return y
}

// Gain returns the magnitude response at frequency f
func (df *Differencer) Gain(f, sampleRate float64) float64 {
	w := 2 * math.Pi * f / sampleRate
	return math.Sqrt(2 - 2*math.Cos(w))
}

// Transfer returns the z-domain transfer function, 1 - z^-1
func (df *Differencer) Transfer() Fraction {
	return Fraction{Num: Poly{1, -1}, Den: Poly{1}}
}
