// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

// ParallelBranch is the bank of independently gained resonators used mostly
// for fricatives and bursts. The nasal formant and F1 are driven by the source
// (voicing plus aspiration). F2..F6 and the bypass path are driven by the first
// difference of the source plus frication noise, which keeps low frequency
// energy out of the higher formants. F2..F6 alternate in sign.
type ParallelBranch struct {
	NasalFormant Resonator                  `desc:"parallel nasal formant"`
	OralFormants [MaxOralFormants]Resonator `desc:"parallel F1..F6"`
	Diff         Differencer                `desc:"first difference of the source"`
	Aspiration   NoiseSource                `desc:"aspiration noise"`
	Frication    NoiseSource                `desc:"frication noise"`
}

// Init sets up the resonators muted and the noise filters for the sample rate
func (pb *ParallelBranch) Init(sampleRate float64) {
	pb.NasalFormant.Init(Resonant)
	pb.NasalFormant.SetMute()
	for i := range pb.OralFormants {
		pb.OralFormants[i].Init(Resonant)
		pb.OralFormants[i].SetMute()
	}
	pb.Diff.Reset()
	pb.Aspiration.Init(sampleRate)
	pb.Frication.Init(sampleRate)
}

// Reset clears all filter memory
func (pb *ParallelBranch) Reset() {
	pb.NasalFormant.Reset()
	for i := range pb.OralFormants {
		pb.OralFormants[i].Reset()
	}
	pb.Diff.Reset()
	pb.Aspiration.Reset()
	pb.Frication.Reset()
}

// configPeak configures rs for freq and bw with the given peak gain, muting it
// when any of them disables the formant
func configPeak(rs *Resonator, freq, bw, gain, sampleRate float64) {
	if gain <= 0 || !rs.Configure(freq, bw, sampleRate) {
		if rs.Mode != Muted {
			rs.SetMute()
		}
		return
	}
	rs.SetPeakGain(gain)
}

// Configure sets all resonator coefficients and peak gains from fp.
// Gains of F2..F6 are divided by the gain of the differencing filter at the
// formant frequency so that the formant peaks come out at the specified level.
func (pb *ParallelBranch) Configure(fp *FrameParams, sampleRate float64) {
	configPeak(&pb.NasalFormant, fp.NasalFormantFreq, fp.NasalFormantBw, fp.NasalFormantGain, sampleRate)
	for i := range pb.OralFormants {
		f := fp.OralFormantFreq[i]
		gain := fp.OralFormantGain[i]
		if i > 0 && f > 0 {
			if dg := pb.Diff.Gain(f, sampleRate); dg > 0 {
				gain /= dg
			}
		}
		configPeak(&pb.OralFormants[i], f, fp.OralFormantBw[i], gain, sampleRate)
	}
}

// sign is the alternating sign of parallel formant i (0 based): + for F1, - for F2, ...
func sign(i int) float64 {
	if i%2 == 0 {
		return 1
	}
	return -1
}

// Filter reconfigures the bank from fp and returns the next output sample.
// mod is true in the second half of the glottal period.
func (pb *ParallelBranch) Filter(fp *FrameParams, voice float64, mod bool, rnd RandomSource, sampleRate float64) float64 {
	pb.Configure(fp, sampleRate)
	asp := pb.Aspiration.GetSample(rnd) * fp.ParallelAspiration
	fric := pb.Frication.GetSample(rnd) * fp.AF
	if mod {
		asp *= 1 - fp.ParallelAspirationMod
		fric *= 1 - fp.FricationMod
	}
	src := voice*fp.ParallelVoicing + asp
	src2 := pb.Diff.Filter(src) + fric

	v := pb.NasalFormant.Filter(src)
	v += pb.OralFormants[0].Filter(src)
	for i := 1; i < MaxOralFormants; i++ {
		v += sign(i) * pb.OralFormants[i].Filter(src2)
	}
	v += fp.BypassGain * src2
	return v
}

// Transfer returns the transfer function from voicing source to branch output
// for the current configuration, including ParallelVoicing
func (pb *ParallelBranch) Transfer(fp *FrameParams) (Fraction, error) {
	src := Gain(fp.ParallelVoicing)
	src2 := src.Mul(pb.Diff.Transfer())
	tf, err := src.Mul(pb.NasalFormant.Transfer()).Add(Zero())
	if err != nil {
		return tf, err
	}
	for i := range pb.OralFormants {
		in := src2
		if i == 0 {
			in = src
		}
		out := in.Mul(pb.OralFormants[i].Transfer()).Mul(Gain(sign(i)))
		if tf, err = tf.Add(out); err != nil {
			return tf, err
		}
	}
	return tf.Add(src2.Mul(Gain(fp.BypassGain)))
}
