// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

// CascadeBranch is the serial resonator chain used for vowels and sonorants:
// nasal anti-formant, nasal formant, then F1..F6, driven by voicing plus aspiration.
type CascadeBranch struct {
	NasalAntiformant Resonator                  `desc:"nasal zero"`
	NasalFormant     Resonator                  `desc:"nasal pole"`
	OralFormants     [MaxOralFormants]Resonator `desc:"F1..F6 in series"`
	Aspiration       NoiseSource                `desc:"aspiration noise"`
}

// Init sets up the resonators in passthrough mode and the noise filter for the sample rate
func (cb *CascadeBranch) Init(sampleRate float64) {
	cb.NasalAntiformant.Init(AntiResonant)
	cb.NasalFormant.Init(Resonant)
	for i := range cb.OralFormants {
		cb.OralFormants[i].Init(Resonant)
	}
	cb.Aspiration.Init(sampleRate)
}

// Reset clears all filter memory
func (cb *CascadeBranch) Reset() {
	cb.NasalAntiformant.Reset()
	cb.NasalFormant.Reset()
	for i := range cb.OralFormants {
		cb.OralFormants[i].Reset()
	}
	cb.Aspiration.Reset()
}

// Configure sets all resonator coefficients from fp. Formants with zero
// frequency or bandwidth pass the signal through.
func (cb *CascadeBranch) Configure(fp *FrameParams, sampleRate float64) {
	cb.NasalAntiformant.Configure(fp.NasalAntiformantFreq, fp.NasalAntiformantBw, sampleRate)
	cb.NasalFormant.Configure(fp.NasalFormantFreq, fp.NasalFormantBw, sampleRate)
	for i := range cb.OralFormants {
		cb.OralFormants[i].Configure(fp.OralFormantFreq[i], fp.OralFormantBw[i], sampleRate)
	}
}

// Filter reconfigures the chain from fp and returns the next output sample.
// mod is true in the second half of the glottal period, where AspirationMod reduces the aspiration.
func (cb *CascadeBranch) Filter(fp *FrameParams, voice float64, mod bool, rnd RandomSource, sampleRate float64) float64 {
	cb.Configure(fp, sampleRate)
	asp := cb.Aspiration.GetSample(rnd) * fp.AH
	if mod {
		asp *= 1 - fp.AspirationMod
	}
	v := voice*fp.AV + asp
	v = cb.NasalAntiformant.Filter(v)
	v = cb.NasalFormant.Filter(v)
	for i := range cb.OralFormants {
		v = cb.OralFormants[i].Filter(v)
	}
	return v
}

// Transfer returns the transfer function from voicing source to branch output
// for the current configuration, including AV
func (cb *CascadeBranch) Transfer(fp *FrameParams) (Fraction, error) {
	tf := Gain(fp.AV)
	tf = tf.Mul(cb.NasalAntiformant.Transfer())
	tf = tf.Mul(cb.NasalFormant.Transfer())
	for i := range cb.OralFormants {
		tf = tf.Mul(cb.OralFormants[i].Transfer())
	}
	return tf.Trim(), nil
}
