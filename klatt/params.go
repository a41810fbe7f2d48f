// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

import (
	"fmt"
	"math"
	"strings"
)

/////////////////////////////////////////////////////
//              MainParams

// GlottalSourceType is the waveform used for voicing
type GlottalSourceType int32

//go:generate stringer -type=GlottalSourceType

const (
	// Impulsive is a doublet pulse per period, low-pass filtered with a bandwidth set by the open phase
	Impulsive GlottalSourceType = iota

	// Natural is the KLGLOTT88 polynomial flow derivative
	Natural

	// Noise is white noise, for whispered speech
	Noise

	GlottalSourceTypeN
)

// MarshalText returns the name of the source type
func (gt GlottalSourceType) MarshalText() ([]byte, error) {
	return []byte(gt.String()), nil
}

// UnmarshalText sets the source type from its name (case insensitive)
func (gt *GlottalSourceType) UnmarshalText(text []byte) error {
	s := string(text)
	for t := Impulsive; t < GlottalSourceTypeN; t++ {
		if strings.EqualFold(t.String(), s) {
			*gt = t
			return nil
		}
	}
	return fmt.Errorf("%w: unknown glottal source type %q", ErrInvalidConfig, s)
}

// MainParams are fixed for a whole synthesis run
type MainParams struct {
	SampleRate    int               `json:"sample_rate" def:"44100" desc:"output sample rate in Hz"`
	Duration      float64           `json:"duration" desc:"total duration in seconds -- output has round(Duration * SampleRate) samples"`
	GlottalSource GlottalSourceType `json:"glottal_source" desc:"voicing source waveform"`
	FlutterOffset float64           `json:"flutter_offset" desc:"seconds added to the time of the flutter oscillator"`
	RandomFlutter bool              `json:"random_flutter" def:"true" desc:"draw FlutterOffset from the random source as a whole number of seconds in 0..1000"`
	AgcRmsLevel   float64           `json:"agc_rms_level" desc:"if > 0, Generate rescales the whole output to this RMS level (automatic gain control)"`
}

// Defaults sets the default main parameters
func (mp *MainParams) Defaults() {
	mp.SampleRate = 44100
	mp.Duration = 1
	mp.GlottalSource = Impulsive
	mp.FlutterOffset = 0
	mp.RandomFlutter = true
	mp.AgcRmsLevel = 0
}

// Validate returns a wrapped ErrInvalidConfig for parameters synthesis cannot use
func (mp *MainParams) Validate() error {
	switch {
	case mp.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfig, mp.SampleRate)
	case !finite(mp.Duration) || mp.Duration < 0:
		return fmt.Errorf("%w: duration %g must be a non-negative number", ErrInvalidConfig, mp.Duration)
	case mp.GlottalSource < 0 || mp.GlottalSource >= GlottalSourceTypeN:
		return fmt.Errorf("%w: glottal source type %d", ErrInvalidConfig, mp.GlottalSource)
	case !finite(mp.FlutterOffset):
		return fmt.Errorf("%w: flutter offset %g", ErrInvalidConfig, mp.FlutterOffset)
	case !finite(mp.AgcRmsLevel) || mp.AgcRmsLevel < 0:
		return fmt.Errorf("%w: agc rms level %g must be non-negative", ErrInvalidConfig, mp.AgcRmsLevel)
	}
	return nil
}

// NSamples returns the number of output samples, round(Duration * SampleRate)
func (mp *MainParams) NSamples() int {
	return int(math.Round(mp.Duration * float64(mp.SampleRate)))
}

/////////////////////////////////////////////////////
//              FrameParams

// FrameParams is one keyframe of acoustic parameters. All amplitudes and gains
// are linear (use DbToLin for decibel values). Scalar fields are linearly
// interpolated between keyframes; the Enabled flags are taken from the earlier keyframe.
type FrameParams struct {
	Time           float64 `json:"time" desc:"keyframe time in seconds"`
	F0             float64 `json:"f0" desc:"fundamental frequency in Hz, 0 for no voicing"`
	FlutterLevel   float64 `json:"flutter_level" desc:"F0 flutter depth, 0..1"`
	OpenPhaseRatio float64 `json:"open_phase_ratio" def:"0.7" desc:"open quotient -- fraction of the glottal period that is open"`
	Breathiness    float64 `json:"breathiness" desc:"amplitude of turbulence noise added during the open phase"`
	TiltDb         float64 `json:"tilt_db" desc:"spectral tilt, attenuation in dB at 3 kHz"`
	Gain           float64 `json:"gain" def:"1" desc:"overall output gain"`

	NasalFormantFreq float64                  `json:"nasal_formant_freq" desc:"nasal formant frequency in Hz, 0 to disable"`
	NasalFormantBw   float64                  `json:"nasal_formant_bw" desc:"nasal formant bandwidth in Hz"`
	OralFormantFreq  [MaxOralFormants]float64 `json:"oral_formant_freq" desc:"oral formant frequencies F1..F6 in Hz, 0 to disable"`
	OralFormantBw    [MaxOralFormants]float64 `json:"oral_formant_bw" desc:"oral formant bandwidths in Hz"`

	CascadeEnabled       bool    `json:"cascade_enabled" desc:"run the cascade branch"`
	AV                   float64 `json:"av" desc:"cascade voicing amplitude"`
	AH                   float64 `json:"ah" desc:"cascade aspiration amplitude"`
	AspirationMod        float64 `json:"aspiration_mod" desc:"cascade aspiration reduction in the second half of the period, 0..1"`
	NasalAntiformantFreq float64 `json:"nasal_antiformant_freq" desc:"nasal anti-formant frequency in Hz, 0 to disable"`
	NasalAntiformantBw   float64 `json:"nasal_antiformant_bw" desc:"nasal anti-formant bandwidth in Hz"`

	ParallelEnabled       bool                     `json:"parallel_enabled" desc:"run the parallel branch"`
	ParallelVoicing       float64                  `json:"parallel_voicing" desc:"parallel voicing amplitude"`
	ParallelAspiration    float64                  `json:"parallel_aspiration" desc:"parallel aspiration amplitude"`
	ParallelAspirationMod float64                  `json:"parallel_aspiration_mod" desc:"parallel aspiration reduction in the second half of the period, 0..1"`
	AF                    float64                  `json:"af" desc:"frication amplitude"`
	FricationMod          float64                  `json:"frication_mod" desc:"frication reduction in the second half of the period, 0..1"`
	BypassGain            float64                  `json:"bypass_gain" desc:"gain of the path that bypasses the parallel formants"`
	NasalFormantGain      float64                  `json:"nasal_formant_gain" desc:"peak gain of the parallel nasal formant"`
	OralFormantGain       [MaxOralFormants]float64 `json:"oral_formant_gain" desc:"peak gains of the parallel oral formants"`
}

// Defaults sets a neutral vowel with all source amplitudes at zero
func (fp *FrameParams) Defaults() {
	*fp = FrameParams{}
	fp.F0 = 120
	fp.OpenPhaseRatio = 0.7
	fp.Gain = 1
	fp.OralFormantFreq = [MaxOralFormants]float64{500, 1500, 2500, 3500, 4500, 5500}
	fp.OralFormantBw = [MaxOralFormants]float64{60, 90, 150, 200, 250, 300}
	fp.CascadeEnabled = true
	fp.ParallelEnabled = true
}

// Validate checks the ranges of all fields for the given sample rate
func (fp *FrameParams) Validate(sampleRate float64) error {
	nyq := sampleRate / 2
	nonneg := func(name string, v float64) error {
		if !finite(v) || v < 0 {
			return fmt.Errorf("%w: %s = %g must be non-negative", ErrInvalidConfig, name, v)
		}
		return nil
	}
	freq := func(name string, v float64) error {
		if err := nonneg(name, v); err != nil {
			return err
		}
		if v >= nyq {
			return fmt.Errorf("%w: %s = %g must be below the Nyquist frequency %g", ErrInvalidConfig, name, v, nyq)
		}
		return nil
	}
	unit := func(name string, v float64) error {
		if !finite(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s = %g must be in 0..1", ErrInvalidConfig, name, v)
		}
		return nil
	}
	errs := []error{
		nonneg("time", fp.Time),
		freq("f0", fp.F0),
		unit("flutter_level", fp.FlutterLevel),
		unit("open_phase_ratio", fp.OpenPhaseRatio),
		nonneg("breathiness", fp.Breathiness),
		nonneg("tilt_db", fp.TiltDb),
		nonneg("gain", fp.Gain),
		freq("nasal_formant_freq", fp.NasalFormantFreq),
		nonneg("nasal_formant_bw", fp.NasalFormantBw),
		nonneg("av", fp.AV),
		nonneg("ah", fp.AH),
		unit("aspiration_mod", fp.AspirationMod),
		freq("nasal_antiformant_freq", fp.NasalAntiformantFreq),
		nonneg("nasal_antiformant_bw", fp.NasalAntiformantBw),
		nonneg("parallel_voicing", fp.ParallelVoicing),
		nonneg("parallel_aspiration", fp.ParallelAspiration),
		unit("parallel_aspiration_mod", fp.ParallelAspirationMod),
		nonneg("af", fp.AF),
		unit("frication_mod", fp.FricationMod),
		nonneg("bypass_gain", fp.BypassGain),
		nonneg("nasal_formant_gain", fp.NasalFormantGain),
	}
	for i := 0; i < MaxOralFormants; i++ {
		errs = append(errs,
			freq(fmt.Sprintf("oral_formant_freq[%d]", i), fp.OralFormantFreq[i]),
			nonneg(fmt.Sprintf("oral_formant_bw[%d]", i), fp.OralFormantBw[i]),
			nonneg(fmt.Sprintf("oral_formant_gain[%d]", i), fp.OralFormantGain[i]))
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ValidateFrames checks the main parameters, every frame, and that there is at
// least one frame with strictly increasing times
func ValidateFrames(mp *MainParams, frames []FrameParams) error {
	if err := mp.Validate(); err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("%w: no frames", ErrInvalidConfig)
	}
	sr := float64(mp.SampleRate)
	for i := range frames {
		if err := frames[i].Validate(sr); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if i > 0 && frames[i].Time <= frames[i-1].Time {
			return fmt.Errorf("%w: frame %d time %g is not after frame %d time %g", ErrInvalidConfig, i, frames[i].Time, i-1, frames[i-1].Time)
		}
	}
	return nil
}
