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

func TestLowpassSet(t *testing.T) {
	tests := []struct {
		f, g, extra, sr float64
	}{
		{3000, 0.5, 1, 44100},
		{1000, 0.2, 2.5, 10000},
		{3000, DbToLin(-12), 1, 16000},
	}
	for _, tt := range tests {
		var lp Lowpass
		lp.Init()
		require.True(t, lp.Set(tt.f, tt.g, tt.extra, tt.sr))
		tf := lp.Transfer()
		assert.InDelta(t, tt.extra, tf.Response(0, tt.sr), 1e-9)
		assert.InDelta(t, tt.g*tt.extra, tf.Response(tt.f, tt.sr), 1e-9)
	}
}

func TestLowpassModes(t *testing.T) {
	var lp Lowpass
	lp.Init()
	assert.Equal(t, 0.7, lp.Filter(0.7))
	for _, bad := range [][2]float64{{0, 0.5}, {3000, 1}, {3000, 0}, {9000, 0.5}, {math.NaN(), 0.5}} {
		assert.False(t, lp.Set(bad[0], bad[1], 1, 16000), "%v", bad)
		assert.Equal(t, Passthrough, lp.Mode)
	}
	lp.SetMute()
	assert.Equal(t, 0.0, lp.Filter(1))
	assert.True(t, lp.Transfer().Num.IsZero())
}

func TestDifferencer(t *testing.T) {
	var df Differencer
	in := []float64{1, 1, 0.5, -0.5, 0}
	want := []float64{1, 0, -0.5, -1, 0.5}
	for i, x := range in {
		assert.InDelta(t, want[i], df.Filter(x), 1e-12)
	}
	for _, f := range []float64{100, 1000, 4000} {
		assert.InDelta(t, df.Gain(f, 10000), df.Transfer().Response(f, 10000), 1e-9)
	}
	assert.InDelta(t, 2, df.Gain(5000, 10000), 1e-12)
}
