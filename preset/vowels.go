// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package preset

import (
	"fmt"
	"sort"

	"github.com/emer/klatt/klatt"
)

// Formants are F1..F3 of an adult male vowel in Hz (Peterson and Barney 1952 averages)
type Formants [3]float64

// Vowels maps ARPAbet-style vowel names to their first three formants
var Vowels = map[string]Formants{
	"iy": {270, 2290, 3010},
	"ih": {390, 1990, 2550},
	"eh": {530, 1840, 2480},
	"ae": {660, 1720, 2410},
	"ah": {520, 1190, 2390},
	"aa": {730, 1090, 2440},
	"ao": {570, 840, 2410},
	"uh": {440, 1020, 2240},
	"uw": {300, 870, 2240},
	"er": {490, 1350, 1690},
}

// VowelNames returns the built-in vowel names, sorted
func VowelNames() []string {
	nms := make([]string, 0, len(Vowels))
	for nm := range Vowels {
		nms = append(nms, nm)
	}
	sort.Strings(nms)
	return nms
}

// VowelFrame returns a cascade-voiced frame with the formants of the named vowel
func VowelFrame(name string) (klatt.FrameParams, error) {
	var fp klatt.FrameParams
	fm, ok := Vowels[name]
	if !ok {
		return fp, fmt.Errorf("%w: %q", ErrUnknownVowel, name)
	}
	fp.Defaults()
	copy(fp.OralFormantFreq[:], fm[:])
	fp.FlutterLevel = 0.25
	fp.Breathiness = klatt.DbToLin(-30)
	fp.Gain = klatt.DbToLin(-10)
	fp.AV = 1
	fp.AH = klatt.DbToLin(-35)
	fp.AspirationMod = 0.5
	fp.ParallelEnabled = false
	return fp, nil
}

// Vowel returns a preset that sustains the named vowel for dur seconds at
// 44.1 kHz, with F0 falling from 130 Hz to 100 Hz.
func Vowel(name string, dur float64) (*Preset, error) {
	st, err := VowelFrame(name)
	if err != nil {
		return nil, err
	}
	st.F0 = 130
	ed := st
	ed.Time = dur
	ed.F0 = 100
	ps := &Preset{Name: name, Frames: []klatt.FrameParams{st, ed}}
	ps.Main.Defaults()
	ps.Main.Duration = dur
	ps.Main.RandomFlutter = false
	return ps, nil
}

// Demo is a one second /a/-like sound with a rising pitch glide through both
// branches, with aspiration and frication mixed in.
func Demo() *Preset {
	var fp klatt.FrameParams
	fp.Defaults()
	fp.F0 = 247
	fp.FlutterLevel = 0.25
	fp.Breathiness = klatt.DbToLin(-25)
	fp.Gain = klatt.DbToLin(-10)
	fp.OralFormantFreq = [klatt.MaxOralFormants]float64{520, 1006, 2831, 3168, 4135, 5020}
	fp.OralFormantBw = [klatt.MaxOralFormants]float64{76, 102, 72, 102, 816, 596}
	fp.AV = 1
	fp.AH = klatt.DbToLin(-25)
	fp.AspirationMod = 0.5
	fp.ParallelAspiration = klatt.DbToLin(-25)
	fp.ParallelAspirationMod = 0.5
	fp.AF = klatt.DbToLin(-30)
	fp.FricationMod = 0.5
	for i, db := range []float64{0, -8, -15, -19, -30, -35} {
		fp.OralFormantGain[i] = klatt.DbToLin(db)
	}
	end := fp
	end.Time = 1
	end.F0 = 200
	ps := &Preset{Name: "demo", Frames: []klatt.FrameParams{fp, end}}
	ps.Main.Defaults()
	ps.Main.RandomFlutter = false
	return ps
}
