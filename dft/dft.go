// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dft

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
)

// Params holds the variables for computing the power spectrum of a window of samples
type Params struct {
	Window     bool         `def:"true" desc:"apply a Hann window to the input before the transform"`
	CompLogPow bool         `def:"true" desc:"compute the log of the power and save that to LogPower -- generaly more useful for visualization of power than raw power values"`
	LogMin     float64      `viewif:"CompLogPow" def:"-100" desc:"minimum value a log can produce -- puts a lower limit on log output"`
	LogOffSet  float64      `viewif:"CompLogPow" def:"0" desc:"add this amount when taking the log of the dft power -- e.g., 1.0 makes everything positive -- affects the relative contrast of the outputs"`
	PrevSmooth float64      `def:"0" desc:"how much of the previous step's power value to include in this one -- smooths out the power spectrum which can be artificially bumpy due to discrete window samples"`
	CurSmooth  float64      `inactive:"+" desc:" how much of current power to include"`
	Fft        []complex128 `inactive:"+" desc:" discrete fourier transform (fft) output complex representation, winSamples/2+1 values"`
	Power      []float64    `inactive:"+" desc:"power spectrum, winSamples/2+1 values"`
	LogPower   []float64    `inactive:"+" desc:"log of the power spectrum"`

	fft *fourier.FFT
	buf []float64
}

// Defaults sets the default parameters
func (dft *Params) Defaults() {
	dft.Window = true
	dft.CompLogPow = true
	dft.LogMin = -100
	dft.LogOffSet = 0
	dft.PrevSmooth = 0
}

// Initialize allocates the transform for windows of winSamples samples
func (dft *Params) Initialize(winSamples int) {
	dft.CurSmooth = 1.0 - dft.PrevSmooth
	dft.fft = fourier.NewFFT(winSamples)
	dft.buf = make([]float64, winSamples)
	dft.Fft = make([]complex128, winSamples/2+1)
	dft.Power = make([]float64, winSamples/2+1)
	dft.LogPower = make([]float64, winSamples/2+1)
}

// WinSamples returns the window length set by Initialize
func (dft *Params) WinSamples() int {
	return len(dft.buf)
}

// Filter computes the power spectrum of windowIn, which must have WinSamples values.
// Unless firstStep is set, the previous power is blended in by PrevSmooth.
func (dft *Params) Filter(windowIn []float64, firstStep bool) {
	copy(dft.buf, windowIn)
	if dft.Window {
		window.Hann(dft.buf)
	}
	dft.Fft = dft.fft.Coefficients(dft.Fft, dft.buf)
	dft.power(firstStep)
}

// power computes Power and LogPower from Fft
func (dft *Params) power(firstStep bool) {
	// Mag() is absolute value   SqMag is square of it - r*r + i*i
	for k, c := range dft.Fft {
		rl := real(c)
		im := imag(c)
		powr := rl*rl + im*im
		if !firstStep {
			powr = dft.PrevSmooth*dft.Power[k] + dft.CurSmooth*powr
		}
		dft.Power[k] = powr

		if dft.CompLogPow {
			powr += dft.LogOffSet
			if powr == 0 {
				dft.LogPower[k] = dft.LogMin
			} else {
				dft.LogPower[k] = math.Max(math.Log(powr), dft.LogMin)
			}
		}
	}
}

// BinFreq returns the frequency in Hz of power bin k
func (dft *Params) BinFreq(k int, sampleRate float64) float64 {
	return dft.fft.Freq(k) * sampleRate
}

// PeakBin returns the bin with the most power, ignoring DC
func (dft *Params) PeakBin() int {
	if len(dft.Power) < 2 {
		return 0
	}
	return floats.MaxIdx(dft.Power[1:]) + 1
}

// DominantFreq returns the frequency in Hz with the most power in samples,
// using a single Hann windowed transform over all of them
func DominantFreq(samples []float64, sampleRate float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	var dft Params
	dft.Defaults()
	dft.CompLogPow = false
	dft.Initialize(len(samples))
	dft.Filter(samples, true)
	return dft.BinFreq(dft.PeakBin(), sampleRate)
}
