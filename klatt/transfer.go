// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

// TransferFunction returns the z-domain transfer function of the whole vocal
// tract for one frame, from glottal source to output: tilt, the enabled
// branches, the output low-pass and the output gain. Noise sources are not included.
func TransferFunction(mp MainParams, fp FrameParams) (Fraction, error) {
	if err := mp.Validate(); err != nil {
		return Fraction{}, err
	}
	sr := float64(mp.SampleRate)
	if err := fp.Validate(sr); err != nil {
		return Fraction{}, err
	}

	var gs GlottalSource
	gs.Init(mp.GlottalSource, sr, 0)
	gs.SetTilt(fp.TiltDb)
	voice := gs.Tilt.Transfer()

	branches := Zero()
	if fp.CascadeEnabled {
		var cb CascadeBranch
		cb.Init(sr)
		cb.Configure(&fp, sr)
		tf, err := cb.Transfer(&fp)
		if err != nil {
			return Fraction{}, err
		}
		if branches, err = branches.Add(tf); err != nil {
			return Fraction{}, err
		}
	}
	if fp.ParallelEnabled {
		var pb ParallelBranch
		pb.Init(sr)
		pb.Configure(&fp, sr)
		tf, err := pb.Transfer(&fp)
		if err != nil {
			return Fraction{}, err
		}
		if branches, err = branches.Add(tf); err != nil {
			return Fraction{}, err
		}
	}

	var lp Resonator
	lp.Init(Resonant)
	lp.SetLowpass(sr/2, sr)

	out := voice.Mul(branches).Mul(lp.Transfer()).Mul(Gain(fp.Gain * OutputScale))
	return out.Trim(), nil
}
