// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Generator produces the output samples of one synthesis run. Samples are
// pulled with Next or Fill; the sequence is finite and cannot be restarted --
// make a new Generator with the same parameters and random source state instead.
type Generator struct {
	Main       MainParams     `desc:"fixed parameters of the run"`
	SampleRate float64        `desc:"sample rate as float"`
	NSamples   int            `desc:"total number of samples, round(Duration * SampleRate)"`
	SampleIdx  int            `inactive:"+" desc:"index of the next sample"`
	Cur        FrameParams    `inactive:"+" desc:"interpolated parameters of the last sample"`
	Cursor     FrameCursor    `view:"-" desc:"keyframe lookup"`
	Glottal    GlottalSource  `view:"-" desc:"voicing source"`
	Cascade    CascadeBranch  `view:"-" desc:"cascade vocal tract"`
	Parallel   ParallelBranch `view:"-" desc:"parallel vocal tract"`
	OutputLP   Resonator      `view:"-" desc:"output low-pass at half the sample rate"`
	Rnd        RandomSource   `view:"-" desc:"borrowed uniform random source"`
}

// NewGenerator validates the parameters and returns a Generator positioned at
// the first sample. frames are copied. rnd is used for all noise and, when
// mp.RandomFlutter is set, to draw the flutter time offset.
func NewGenerator(mp MainParams, frames []FrameParams, rnd RandomSource) (*Generator, error) {
	if err := ValidateFrames(&mp, frames); err != nil {
		return nil, err
	}
	if rnd == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	g := &Generator{Main: mp, Rnd: rnd}
	g.SampleRate = float64(mp.SampleRate)
	g.NSamples = mp.NSamples()
	g.Cursor.Init(append([]FrameParams(nil), frames...))

	offset := mp.FlutterOffset
	if mp.RandomFlutter {
		offset = math.Floor(rnd.Float64() * 1001)
	}
	g.Glottal.Init(mp.GlottalSource, g.SampleRate, offset)
	g.Cascade.Init(g.SampleRate)
	g.Parallel.Init(g.SampleRate)
	g.OutputLP.Init(Resonant)
	g.OutputLP.SetLowpass(g.SampleRate/2, g.SampleRate)
	return g, nil
}

// Len returns the total number of samples
func (g *Generator) Len() int {
	return g.NSamples
}

// Remaining returns the number of samples not yet produced
func (g *Generator) Remaining() int {
	return g.NSamples - g.SampleIdx
}

// Next returns the next sample, and false once all samples have been produced
func (g *Generator) Next() (float64, bool) {
	if g.SampleIdx >= g.NSamples {
		return 0, false
	}
	fp := &g.Cur
	g.Cursor.At(float64(g.SampleIdx)/g.SampleRate, fp)

	voice := g.Glottal.Step(fp, g.SampleIdx, g.Rnd)
	mod := g.Glottal.SecondHalf

	var out float64
	if fp.CascadeEnabled {
		out += g.Cascade.Filter(fp, voice, mod, g.Rnd, g.SampleRate)
	}
	if fp.ParallelEnabled {
		out += g.Parallel.Filter(fp, voice, mod, g.Rnd, g.SampleRate)
	}
	out = g.OutputLP.Filter(out) * fp.Gain * OutputScale

	g.SampleIdx++
	return out, true
}

// Fill writes up to len(buf) samples into buf and returns the number written,
// which is less than len(buf) only at the end of the sequence
func (g *Generator) Fill(buf []float64) int {
	n := 0
	for n < len(buf) {
		v, ok := g.Next()
		if !ok {
			break
		}
		buf[n] = v
		n++
	}
	return n
}

// Generate synthesizes the whole output for mp and frames. If mp.AgcRmsLevel
// is positive the result is scaled to that RMS level.
func Generate(mp MainParams, frames []FrameParams, rnd RandomSource) ([]float64, error) {
	g, err := NewGenerator(mp, frames, rnd)
	if err != nil {
		return nil, err
	}
	buf := make([]float64, g.Len())
	g.Fill(buf)
	if mp.AgcRmsLevel > 0 {
		AdjustGain(buf, mp.AgcRmsLevel)
	}
	return buf, nil
}

// RMS returns the root mean square level of buf (0 for an empty buffer)
func RMS(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	return floats.Norm(buf, 2) / math.Sqrt(float64(len(buf)))
}

// AdjustGain scales buf in place to the target RMS level.
// A silent buffer is left unchanged.
func AdjustGain(buf []float64, targetRMS float64) {
	rms := RMS(buf)
	if rms == 0 {
		return
	}
	floats.Scale(targetRMS/rms, buf)
}
