// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

func lerp(a, b, frac float64) float64 {
	return a + (b-a)*frac
}

// lerpFormant interpolates a formant frequency and bandwidth. A formant that is
// off (0 Hz or 0 bandwidth) at either end is never swept through 0 Hz: the
// values of a are held until frac reaches 1, where the values of b take over.
func lerpFormant(af, abw, bf, bbw, frac float64) (float64, float64) {
	if af <= 0 || abw <= 0 || bf <= 0 || bbw <= 0 {
		if frac >= 1 {
			return bf, bbw
		}
		return af, abw
	}
	return lerp(af, bf, frac), lerp(abw, bbw, frac)
}

// Interpolate sets out to the parameters at fraction frac (0..1) of the way
// from a to b. Boolean fields are taken from a. Formants switched on or off
// between a and b keep the state of a until b is reached.
func Interpolate(a, b *FrameParams, frac float64, out *FrameParams) {
	out.Time = lerp(a.Time, b.Time, frac)
	out.F0 = lerp(a.F0, b.F0, frac)
	out.FlutterLevel = lerp(a.FlutterLevel, b.FlutterLevel, frac)
	out.OpenPhaseRatio = lerp(a.OpenPhaseRatio, b.OpenPhaseRatio, frac)
	out.Breathiness = lerp(a.Breathiness, b.Breathiness, frac)
	out.TiltDb = lerp(a.TiltDb, b.TiltDb, frac)
	out.Gain = lerp(a.Gain, b.Gain, frac)

	out.NasalFormantFreq, out.NasalFormantBw = lerpFormant(a.NasalFormantFreq, a.NasalFormantBw, b.NasalFormantFreq, b.NasalFormantBw, frac)
	for i := 0; i < MaxOralFormants; i++ {
		out.OralFormantFreq[i], out.OralFormantBw[i] = lerpFormant(a.OralFormantFreq[i], a.OralFormantBw[i], b.OralFormantFreq[i], b.OralFormantBw[i], frac)
		out.OralFormantGain[i] = lerp(a.OralFormantGain[i], b.OralFormantGain[i], frac)
	}

	out.CascadeEnabled = a.CascadeEnabled
	out.AV = lerp(a.AV, b.AV, frac)
	out.AH = lerp(a.AH, b.AH, frac)
	out.AspirationMod = lerp(a.AspirationMod, b.AspirationMod, frac)
	out.NasalAntiformantFreq, out.NasalAntiformantBw = lerpFormant(a.NasalAntiformantFreq, a.NasalAntiformantBw, b.NasalAntiformantFreq, b.NasalAntiformantBw, frac)

	out.ParallelEnabled = a.ParallelEnabled
	out.ParallelVoicing = lerp(a.ParallelVoicing, b.ParallelVoicing, frac)
	out.ParallelAspiration = lerp(a.ParallelAspiration, b.ParallelAspiration, frac)
	out.ParallelAspirationMod = lerp(a.ParallelAspirationMod, b.ParallelAspirationMod, frac)
	out.AF = lerp(a.AF, b.AF, frac)
	out.FricationMod = lerp(a.FricationMod, b.FricationMod, frac)
	out.BypassGain = lerp(a.BypassGain, b.BypassGain, frac)
	out.NasalFormantGain = lerp(a.NasalFormantGain, b.NasalFormantGain, frac)
}

// FrameCursor finds the keyframe pair enclosing a time. Times must be
// queried in non-decreasing order, which lets the search resume where it left off.
type FrameCursor struct {
	Frames []FrameParams `desc:"keyframes in strictly increasing time order"`
	Idx    int           `desc:"index of the keyframe at or before the last queried time"`
}

// Init sets the frames and rewinds the cursor
func (fc *FrameCursor) Init(frames []FrameParams) {
	fc.Frames = frames
	fc.Idx = 0
}

// At sets out to the interpolated parameters at time t (seconds).
// Before the first keyframe the first one is held, after the last the last one is held.
func (fc *FrameCursor) At(t float64, out *FrameParams) {
	n := len(fc.Frames)
	for fc.Idx+1 < n && fc.Frames[fc.Idx+1].Time <= t {
		fc.Idx++
	}
	a := &fc.Frames[fc.Idx]
	if fc.Idx+1 >= n || t <= a.Time {
		*out = *a
		out.Time = t
		return
	}
	b := &fc.Frames[fc.Idx+1]
	Interpolate(a, b, (t-a.Time)/(b.Time-a.Time), out)
}
