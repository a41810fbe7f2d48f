// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlutter(t *testing.T) {
	assert.Equal(t, 120.0, Flutter(120, 0, 3.7))
	for ti := 0.0; ti < 2; ti += 0.013 {
		f := Flutter(100, 0.5, ti)
		assert.InDelta(t, 100, f, 100*3*0.5/50+1e-9)
	}
	assert.NotEqual(t, 100.0, Flutter(100, 0.5, 0.1))
}

func TestNaturalPulse(t *testing.T) {
	assert.Equal(t, 0.0, NaturalPulse(0))
	assert.InDelta(t, 0, NaturalPulse(2.0/3.0), 1e-12)
	assert.Greater(t, NaturalPulse(0.3), 0.0)
	assert.Less(t, NaturalPulse(0.9), 0.0)

	// zero net flow over the open phase
	const n = 10000
	var sum float64
	for i := 0; i < n; i++ {
		sum += NaturalPulse((float64(i) + 0.5) / n)
	}
	assert.InDelta(t, 0, sum/n, 1e-6)
}

func voicedFrame(f0 float64) FrameParams {
	var fp FrameParams
	fp.Defaults()
	fp.F0 = f0
	return fp
}

func TestGlottalPeriods(t *testing.T) {
	tests := []struct {
		f0, sr float64
	}{
		{100, 10000},
		{300, 10000},
		{247, 44100},
	}
	for _, tt := range tests {
		var gs GlottalSource
		gs.Init(Natural, tt.sr, 0)
		fp := voicedFrame(tt.f0)
		n := int(tt.sr)
		starts := 0
		open := 0
		for i := 0; i < n; i++ {
			gs.Step(&fp, i, ConstSource(0.5))
			if gs.Pos == 1 {
				starts++
			}
			if gs.IsOpen {
				open++
			}
		}
		// fractional periods do not drift: one second holds f0 periods
		assert.InDelta(t, tt.f0, float64(starts), 1, "f0 %g", tt.f0)
		assert.InDelta(t, tt.sr/tt.f0, gs.Period, 1e-9)
		assert.InDelta(t, fp.OpenPhaseRatio, float64(open)/float64(n), 0.01)
	}
}

func TestGlottalUnvoiced(t *testing.T) {
	for _, typ := range []GlottalSourceType{Impulsive, Natural} {
		var gs GlottalSource
		gs.Init(typ, 16000, 0)
		fp := voicedFrame(0)
		fp.Breathiness = 1
		for i := 0; i < 500; i++ {
			assert.Equal(t, 0.0, gs.Step(&fp, i, ConstSource(0.9)), "%v", typ)
			assert.False(t, gs.IsOpen)
		}
	}
}

func TestGlottalImpulsive(t *testing.T) {
	var gs GlottalSource
	gs.Init(Impulsive, 16000, 0)
	fp := voicedFrame(100)
	out := make([]float64, 640)
	for i := range out {
		out[i] = gs.Step(&fp, i, ConstSource(0.5))
	}
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 1.0, out[1], "impulse gain 1 gives the doublet's first sample")
	assert.Less(t, out[2], out[1])
	// each period repeats the same filtered doublet, settled from the previous one
	require.InDelta(t, 160, gs.Period, 1e-9)
	assert.InDelta(t, out[321], out[481], 1e-3)
	for _, v := range out {
		assert.False(t, math.IsNaN(v))
	}
}

func TestGlottalTiltAndBreathiness(t *testing.T) {
	var gs GlottalSource
	gs.Init(Noise, 16000, 0)
	fp := voicedFrame(100)
	fp.TiltDb = 0
	gs.Step(&fp, 0, ConstSource(0.75))
	assert.Equal(t, Passthrough, gs.Tilt.Mode)

	fp.TiltDb = 12
	gs.Step(&fp, 1, ConstSource(0.75))
	assert.Equal(t, Active, gs.Tilt.Mode)
	tf := gs.Tilt.Transfer()
	assert.InDelta(t, DbToLin(-12), tf.Response(TiltFreq, 16000), 1e-9)

	// below 12 kHz the attenuation moves down to a quarter of the rate
	var ls GlottalSource
	ls.Init(Noise, 4000, 0)
	ls.Step(&fp, 0, ConstSource(0.75))
	require.Equal(t, Active, ls.Tilt.Mode)
	assert.InDelta(t, DbToLin(-12), ls.Tilt.Transfer().Response(1000, 4000), 1e-9)

	// breathiness only in the open phase: 0.75 maps to white noise 0.5
	var bs GlottalSource
	bs.Init(Natural, 16000, 0)
	fp = voicedFrame(100)
	fp.Breathiness = 0.2
	for i := 0; i < 160; i++ {
		v := bs.Step(&fp, i, ConstSource(0.75))
		if !bs.IsOpen {
			assert.Equal(t, 0.0, v)
		} else {
			want := NaturalPulse(float64(i)/bs.Open) + 0.1
			assert.InDelta(t, want, v, 1e-9)
		}
	}
}
