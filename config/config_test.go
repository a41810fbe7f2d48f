// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/emer/klatt/klatt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir keeps the config search path away from any real klatt.yaml
func inTempDir(t *testing.T) string {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 44100, cfg.Synth.SampleRate)
	assert.Equal(t, 1.0, cfg.Synth.Duration)
	assert.Equal(t, "impulsive", cfg.Synth.GlottalSource)
	assert.Equal(t, 4, cfg.Synth.Workers)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, 16, cfg.Output.BitDepth)
	assert.False(t, cfg.Play.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)

	var mp klatt.MainParams
	require.NoError(t, cfg.Synth.Main(&mp))
	assert.Equal(t, klatt.Impulsive, mp.GlottalSource)
	assert.Equal(t, 44100, mp.SampleRate)
}

func TestLoadEnvOverride(t *testing.T) {
	inTempDir(t)
	t.Setenv("KLATT_SYNTH_SAMPLE_RATE", "16000")
	t.Setenv("KLATT_SYNTH_GLOTTAL_SOURCE", "natural")
	t.Setenv("KLATT_OUTPUT_DIR", "/tmp/out")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 16000, cfg.Synth.SampleRate)
	assert.Equal(t, "/tmp/out", cfg.Output.Dir)

	var mp klatt.MainParams
	require.NoError(t, cfg.Synth.Main(&mp))
	assert.Equal(t, klatt.Natural, mp.GlottalSource)
}

func TestLoadFile(t *testing.T) {
	dir := inTempDir(t)
	fn := filepath.Join(dir, "synth.yaml")
	yml := "synth:\n  duration: 0.5\n  workers: 0\noutput:\n  bit_depth: 24\nlogging:\n  format: json\n"
	require.NoError(t, os.WriteFile(fn, []byte(yml), 0644))

	cfg, err := Load(fn)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Synth.Duration)
	assert.Equal(t, 1, cfg.Synth.Workers)
	assert.Equal(t, 24, cfg.Output.BitDepth)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 44100, cfg.Synth.SampleRate)
}

func TestLoadErrors(t *testing.T) {
	dir := inTempDir(t)
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("KLATT_OUTPUT_BIT_DEPTH", "12")
	_, err = Load("")
	assert.ErrorIs(t, err, klatt.ErrInvalidConfig)
}

func TestSynthMainInvalid(t *testing.T) {
	sc := SynthConfig{SampleRate: 16000, Duration: 1, GlottalSource: "buzz"}
	var mp klatt.MainParams
	assert.ErrorIs(t, sc.Main(&mp), klatt.ErrInvalidConfig)

	sc.GlottalSource = "noise"
	sc.SampleRate = 0
	assert.ErrorIs(t, sc.Main(&mp), klatt.ErrInvalidConfig)
}

func TestSetupLogging(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	SetupLogging(LoggingConfig{Level: "debug", Format: "json"})
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	SetupLogging(LoggingConfig{Level: "warn"})
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
}
