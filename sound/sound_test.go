// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveRoundTrip(t *testing.T) {
	in := []float64{0, 0.5, -0.5, 0.25, -1, 1}
	for _, bd := range []int{8, 16, 24, 32} {
		snd := NewWave(16000, bd)
		require.NoError(t, snd.SetSamples(in))
		assert.Equal(t, 6, snd.NumFrames())

		fn := filepath.Join(t.TempDir(), "rt.wav")
		require.NoError(t, snd.WriteWave(fn))

		var ld Wave
		require.NoError(t, ld.Load(fn))
		assert.Equal(t, 16000, ld.SampleRate())
		assert.Equal(t, 1, ld.Channels())
		assert.Equal(t, bd, ld.BitDepth())
		out := ld.Samples()
		require.Len(t, out, len(in))
		tol := math.Max(1/float64(maxInt(bd)), 1e-6)
		for i := range in {
			assert.InDelta(t, in[i], out[i], tol, "%d bit sample %d", bd, i)
		}
	}
}

func TestSetSamplesClips(t *testing.T) {
	snd := NewWave(8000, 16)
	require.NoError(t, snd.SetSamples([]float64{2, -3}))
	assert.Equal(t, []int{0x7FFF, -0x7FFF}, snd.Buf.Data)

	// 8 bit wav is unsigned around 128
	snd = NewWave(8000, 8)
	require.NoError(t, snd.SetSamples([]float64{0, 2, -3, -0.5}))
	assert.Equal(t, []int{128, 255, 1, 64}, snd.Buf.Data)
	assert.InDelta(t, -0.5, snd.Samples()[3], 1.0/127)
}

func TestSetSamplesNoBuffer(t *testing.T) {
	var snd Wave
	assert.ErrorIs(t, snd.SetSamples([]float64{0}), ErrNoData)
}

func TestWriteEmpty(t *testing.T) {
	var snd Wave
	assert.ErrorIs(t, snd.WriteWave(filepath.Join(t.TempDir(), "x.wav")), ErrNoData)
}

func TestLoadMissing(t *testing.T) {
	var snd Wave
	assert.Error(t, snd.Load(filepath.Join(t.TempDir(), "missing.wav")))
}

func TestSampleConversions(t *testing.T) {
	assert.Equal(t, 160, MSecToSamples(10, 16000))
	assert.InDelta(t, 10.0, SamplesToMSec(160, 16000), 1e-12)
	p := Pad([]float64{1, 2}, 2, 1, 0)
	assert.Equal(t, []float64{0, 0, 1, 2, 0}, p)
}
