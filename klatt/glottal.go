// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

import (
	"math"
)

// TiltFreq is the frequency at which TiltDb attenuation is specified
const TiltFreq = 3000.0

// Flutter returns f0 modulated by the flutter oscillator at time t (seconds):
//
//	f0 * (1 + (sin(12.7*w*t) + sin(7.1*w*t) + sin(4.7*w*t)) * level / 50), w = 2*pi
func Flutter(f0, level, t float64) float64 {
	if level <= 0 {
		return f0
	}
	w := 2 * math.Pi * t
	a := math.Sin(12.7*w) + math.Sin(7.1*w) + math.Sin(4.7*w)
	return f0 * (1 + a*level/50)
}

// NaturalPulse is the KLGLOTT88 glottal flow derivative at fraction tau (0..1)
// of the open phase. It rises from 0, turns negative at tau = 2/3 and its
// integral over the open phase is 0.
func NaturalPulse(tau float64) float64 {
	return 5.0 / 6.0 * tau * (2 - 3*tau)
}

// GlottalSource generates the voicing excitation. Each period is OPEN for
// Open samples and CLOSED for the rest; the period length is re-derived from
// the (fluttered) F0 at the start of every period and the phase is fractional,
// so periods need not be a whole number of samples.
type GlottalSource struct {
	Type          GlottalSourceType `desc:"voicing waveform"`
	SampleRate    float64           `desc:"sample rate in Hz"`
	FlutterOffset float64           `desc:"seconds added to the flutter oscillator time"`
	F0            float64           `inactive:"+" desc:"fluttered F0 of the current period, 0 when unvoiced"`
	Period        float64           `inactive:"+" desc:"length of the current period in samples"`
	Open          float64           `inactive:"+" desc:"length of the open phase in samples"`
	Phase         float64           `inactive:"+" desc:"samples since the start of the current period"`
	Pos           int               `inactive:"+" desc:"whole samples since the start of the current period"`
	Started       bool              `inactive:"+" desc:"a first period has been started"`
	IsOpen        bool              `inactive:"+" desc:"the last sample was in the open phase"`
	SecondHalf    bool              `inactive:"+" desc:"the last sample was in the second half of the period, where noise modulation applies"`
	Pulse         Resonator         `view:"-" desc:"low-pass shaping the impulsive source"`
	Tilt          Lowpass           `view:"-" desc:"spectral tilt filter"`
}

// Init sets the waveform type, sample rate and flutter offset and resets all state
func (gs *GlottalSource) Init(typ GlottalSourceType, sampleRate, flutterOffset float64) {
	gs.Type = typ
	gs.SampleRate = sampleRate
	gs.FlutterOffset = flutterOffset
	gs.Reset()
}

// Reset returns to the state before the first period
func (gs *GlottalSource) Reset() {
	gs.F0 = 0
	gs.Period = 0
	gs.Open = 0
	gs.Phase = 0
	gs.Pos = 0
	gs.Started = false
	gs.IsOpen = false
	gs.SecondHalf = false
	gs.Pulse.Init(Resonant)
	gs.Tilt.Init()
}

// StartPeriod begins a new period using the F0 and open phase ratio of fp,
// with flutter evaluated at absolute sample position absPos
func (gs *GlottalSource) StartPeriod(fp *FrameParams, absPos int) {
	gs.Pos = 0
	gs.Started = true
	t := float64(absPos)/gs.SampleRate + gs.FlutterOffset
	gs.F0 = Flutter(fp.F0, fp.FlutterLevel, t)
	if gs.F0 <= 0 {
		gs.F0 = 0
		gs.Period = 1
		gs.Open = 0
	} else {
		gs.Period = gs.SampleRate / gs.F0
		gs.Open = gs.Period * fp.OpenPhaseRatio
	}
	if gs.Type == Impulsive {
		if gs.Open > 0 {
			gs.Pulse.SetLowpass(gs.SampleRate/gs.Open, gs.SampleRate)
			gs.Pulse.SetImpulseGain(1)
		} else {
			gs.Pulse.SetMute()
		}
	}
}

// SetTilt configures the tilt filter for an attenuation of tiltDb at TiltFreq,
// or at a quarter of the sample rate when that is lower
func (gs *GlottalSource) SetTilt(tiltDb float64) {
	if tiltDb <= 0 {
		if gs.Tilt.Mode != Passthrough {
			gs.Tilt.SetPassthrough()
		}
		return
	}
	gs.Tilt.Set(math.Min(TiltFreq, gs.SampleRate/4), DbToLin(-tiltDb), 1, gs.SampleRate)
}

// Step returns the next voicing sample, after spectral tilt and with
// breathiness noise added during the open phase. absPos is the absolute
// sample position, used for flutter.
func (gs *GlottalSource) Step(fp *FrameParams, absPos int, rnd RandomSource) float64 {
	if !gs.Started {
		gs.Phase = 0
		gs.StartPeriod(fp, absPos)
	} else if gs.Phase >= gs.Period {
		gs.Phase -= gs.Period
		gs.StartPeriod(fp, absPos)
	}
	gs.IsOpen = gs.Phase < gs.Open
	gs.SecondHalf = gs.Phase >= gs.Period/2

	var v float64
	switch gs.Type {
	case Impulsive:
		v = gs.impulsive()
	case Natural:
		v = gs.natural()
	case Noise:
		v = WhiteNoise(rnd)
	}

	gs.SetTilt(fp.TiltDb)
	v = gs.Tilt.Filter(v)
	if gs.IsOpen {
		v += WhiteNoise(rnd) * fp.Breathiness
	}

	gs.Phase++
	gs.Pos++
	return v
}

// impulsive feeds a +1, -1 doublet at the start of the period through the pulse low-pass
func (gs *GlottalSource) impulsive() float64 {
	var x float64
	switch gs.Pos {
	case 1:
		x = 1
	case 2:
		x = -1
	}
	return gs.Pulse.Filter(x)
}

func (gs *GlottalSource) natural() float64 {
	if !gs.IsOpen {
		return 0
	}
	return NaturalPulse(gs.Phase / gs.Open)
}
