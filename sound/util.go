// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

// MSecToSamples converts milliseconds to samples, in terms of sample_rate
func MSecToSamples(ms float64, rate int) int {
	return int(ms * float64(rate) / 1000)
}

// SamplesToMSec converts samples to milliseconds, in terms of sample_rate
func SamplesToMSec(samples int, rate int) float64 {
	return 1000 * float64(samples) / float64(rate)
}

// Pad returns signal with before and after samples of value added at the ends
func Pad(signal []float64, before, after int, value float64) []float64 {
	padded := make([]float64, before+len(signal)+after)
	for i := range padded {
		padded[i] = value
	}
	copy(padded[before:], signal)
	return padded
}
