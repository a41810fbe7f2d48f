// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoiseSourceConst(t *testing.T) {
	var ns NoiseSource
	ns.Init(44100)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 0.0, ns.GetSample(ConstSource(0.5)))
	}
}

func TestNoiseSourceRandom(t *testing.T) {
	var a, b NoiseSource
	a.Init(16000)
	b.Init(16000)
	ra := rand.New(rand.NewSource(3))
	rb := rand.New(rand.NewSource(3))
	buf := make([]float64, 20000)
	for i := range buf {
		buf[i] = a.GetSample(ra)
		assert.Equal(t, buf[i], b.GetSample(rb))
	}
	rms := RMS(buf)
	assert.Greater(t, rms, 0.1)
	assert.Less(t, rms, 2.0)

	var mean float64
	for _, v := range buf {
		mean += v
	}
	mean /= float64(len(buf))
	assert.InDelta(t, 0, mean, 0.1)
}

func TestMultSource(t *testing.T) {
	var ms MultSource
	ms.Init()
	first := make([]float64, 50)
	for i := range first {
		v := ms.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
		first[i] = v
	}
	ms.Reset()
	for i := range first {
		assert.Equal(t, first[i], ms.Float64())
	}
	assert.Equal(t, 0.0, WhiteNoise(ConstSource(0.5)))
	assert.Equal(t, -1.0, WhiteNoise(ConstSource(0)))
}

func TestNoiseSourceLowRate(t *testing.T) {
	for _, sr := range []float64{44100, 2000, 1500} {
		var ns NoiseSource
		ns.Init(sr)
		require.Equal(t, Active, ns.Filter.Mode, "rate %g", sr)
		extra := 2.5 * math.Pow(sr/NoiseRefRate, 0.33)
		lp := ns.Filter
		assert.InDelta(t, extra, lp.A/(1-lp.B), 1e-9, "dc gain at rate %g", sr)

		f := NoiseFilterFreq(sr)
		w := 2 * math.Pi * f / NoiseRefRate
		ref := (1 - NoiseRefCoef) / cmplx.Abs(1-complex(NoiseRefCoef, 0)*cmplx.Exp(complex(0, -w)))
		assert.InDelta(t, ref, lp.Transfer().Response(f, sr)/extra, 1e-9, "rate %g", sr)
	}
	assert.Equal(t, NoiseRefFreq, NoiseFilterFreq(16000))
	assert.Equal(t, 375.0, NoiseFilterFreq(1500))
}
