// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emer/klatt/dft"
	"github.com/emer/klatt/klatt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	ps := Demo()
	ps.Main.GlottalSource = klatt.Natural
	fn := filepath.Join(t.TempDir(), "demo.json")
	require.NoError(t, ps.SaveJSON(fn))

	ld, err := OpenJSON(fn)
	require.NoError(t, err)
	assert.Equal(t, ps, ld)
}

func TestOpenJSONDefaults(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "short.json")
	js := `{"main": {"sample_rate": 16000, "duration": 0.1, "glottal_source": "noise"},
	        "frames": [{"time": 0, "f0": 100, "oral_formant_freq": [500, 1500, 2500, 3500, 4500, 5500]}]}`
	require.NoError(t, os.WriteFile(fn, []byte(js), 0644))

	ps, err := OpenJSON(fn)
	require.NoError(t, err)
	assert.Equal(t, "short", ps.Name)
	assert.Equal(t, 16000, ps.Main.SampleRate)
	assert.Equal(t, klatt.Noise, ps.Main.GlottalSource)
	assert.False(t, ps.Main.RandomFlutter)
	require.Len(t, ps.Frames, 1)
	assert.Equal(t, 100.0, ps.Frames[0].F0)
}

func TestOpenJSONInvalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"main": {"sample_rate": -1}, "frames": [{}]}`), 0644))
	_, err := OpenJSON(bad)
	assert.ErrorIs(t, err, klatt.ErrInvalidConfig)

	src := filepath.Join(dir, "src.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"main": {"glottal_source": "buzz"}}`), 0644))
	_, err = OpenJSON(src)
	assert.ErrorIs(t, err, klatt.ErrInvalidConfig)

	_, err = OpenJSON(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFramesTable(t *testing.T) {
	frames := Demo().Frames
	frames[1].ParallelEnabled = false
	dt := FramesToTable(frames)
	assert.Equal(t, 2, dt.Rows)
	assert.Equal(t, 200.0, dt.CellFloat("F0", 1))
	assert.Equal(t, 1006.0, dt.CellFloat("F2", 0))
	assert.Equal(t, 0.0, dt.CellFloat("ParallelEnabled", 1))
	assert.Equal(t, frames, TableToFrames(dt))
}

func TestFramesCSVRoundTrip(t *testing.T) {
	frames := Demo().Frames
	fn := filepath.Join(t.TempDir(), "frames.tsv")
	require.NoError(t, SaveFramesCSV(fn, frames))

	ld, err := OpenFramesCSV(fn)
	require.NoError(t, err)
	require.Len(t, ld, len(frames))
	for i := range frames {
		assert.InDelta(t, frames[i].F0, ld[i].F0, 1e-6)
		assert.InDelta(t, frames[i].Time, ld[i].Time, 1e-6)
		assert.InDeltaSlice(t, frames[i].OralFormantFreq[:], ld[i].OralFormantFreq[:], 1e-6)
		assert.InDeltaSlice(t, frames[i].OralFormantGain[:], ld[i].OralFormantGain[:], 1e-6)
		assert.Equal(t, frames[i].CascadeEnabled, ld[i].CascadeEnabled)
		assert.Equal(t, frames[i].ParallelEnabled, ld[i].ParallelEnabled)
	}

	ps, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, "frames", ps.Name)
	assert.Equal(t, 1.0, ps.Main.Duration)
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open("frames.wav")
	assert.Error(t, err)
}

func TestVowel(t *testing.T) {
	assert.Len(t, VowelNames(), len(Vowels))
	assert.Equal(t, "aa", VowelNames()[0])

	_, err := Vowel("zz", 1)
	assert.ErrorIs(t, err, ErrUnknownVowel)

	for _, nm := range VowelNames() {
		ps, err := Vowel(nm, 0.2)
		require.NoError(t, err, nm)
		require.NoError(t, ps.Validate(), nm)
		assert.Equal(t, Vowels[nm][0], ps.Frames[0].OralFormantFreq[0])
		assert.Equal(t, 3500.0, ps.Frames[0].OralFormantFreq[3])
	}
}

func TestVowelGenerate(t *testing.T) {
	ps, err := Vowel("aa", 0.25)
	require.NoError(t, err)
	out, err := ps.Generate(klatt.ConstSource(0.5))
	require.NoError(t, err)
	assert.Len(t, out, ps.Main.NSamples())
	assert.Greater(t, klatt.RMS(out), 0.0)
	f := dft.DominantFreq(out, float64(ps.Main.SampleRate))
	assert.Less(t, f, 1500.0)
}
