// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package klatt is a Klatt cascade/parallel formant synthesizer.

A glottal source and several noise sources drive two banks of second order
resonators: a cascade branch (nasal anti-formant, nasal formant and the oral
formants F1..F6 in series) and a parallel branch (independently gained
formant resonators that are summed). Parameters are given as a sequence of
keyframes that are linearly interpolated for every output sample.

The usual entry point is Generate, or NewGenerator for pulling samples one
at a time or in blocks.
*/
package klatt

import (
	"errors"
	"math"
)

// MaxOralFormants is the number of oral formants in each branch.
const MaxOralFormants = 6

// OutputScale keeps the mixed output comfortably inside -1..1
const OutputScale = 0.95

// ErrInvalidConfig is returned, wrapped with details, for parameters that are
// rejected before synthesis starts.
var ErrInvalidConfig = errors.New("klatt: invalid configuration")

// DbToLin converts decibels to a linear amplitude.
// Values at or below -99 dB, and NaN, are treated as silence.
func DbToLin(db float64) float64 {
	if db <= -99 || math.IsNaN(db) {
		return 0
	}
	return math.Pow(10, db/20)
}

// LinToDb is the inverse of DbToLin; 0 maps to -99 dB
func LinToDb(lin float64) float64 {
	if lin <= 0 {
		return -99
	}
	return 20 * math.Log10(lin)
}

// finite reports whether none of the values is NaN or infinite
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
