// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrNoData is returned when a wave has no buffer to write or read from
var ErrNoData = errors.New("sound: no sample data")

// Wave is PCM sound data held in a go-audio integer buffer
type Wave struct {
	Buf *audio.IntBuffer `inactive:"+"`
}

// NewWave returns an empty mono wave with the given sample rate and bit depth (8, 16, 24 or 32)
func NewWave(sampleRate, bitDepth int) *Wave {
	return &Wave{Buf: &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}}
}

// Load loads the sound file and decodes it
func (snd *Wave) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		slog.Error("sound.Load: couldn't open file", "file", fn, "error", err)
		return err
	}
	defer f.Close()
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return fmt.Errorf("sound.Load: %s is not a valid wav file", fn)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("sound.Load: decoding %s: %w", fn, err)
	}
	snd.Buf = buf
	return nil
}

// WriteWave encodes the signal data and writes it to file using the sample rate and
// other values of the buf object
func (snd *Wave) WriteWave(fn string) error {
	if snd.Buf == nil || snd.Buf.Format == nil {
		return ErrNoData
	}
	out, err := os.Create(fn)
	if err != nil {
		slog.Error("sound.WriteWave: unable to create file", "file", fn, "error", err)
		return err
	}
	defer out.Close()

	PCM := 1
	e := wav.NewEncoder(out, snd.SampleRate(), snd.BitDepth(), snd.Channels(), PCM)
	if err = e.Write(snd.Buf); err != nil {
		return fmt.Errorf("sound.WriteWave: encoding failed on write: %w", err)
	}
	if err = e.Close(); err != nil {
		return fmt.Errorf("sound.WriteWave: could not close wav file encoder: %w", err)
	}
	return nil
}

// SampleRate returns the sample rate of the sound or 0 is snd is nil
func (snd *Wave) SampleRate() int {
	if snd == nil || snd.Buf == nil || snd.Buf.Format == nil {
		return 0
	}
	return snd.Buf.Format.SampleRate
}

// BitDepth returns the number of bits per sample
func (snd *Wave) BitDepth() int {
	if snd == nil || snd.Buf == nil {
		return 0
	}
	return snd.Buf.SourceBitDepth
}

// Channels returns the number of channels in the wav data or 0 is snd is nil
func (snd *Wave) Channels() int {
	if snd == nil || snd.Buf == nil || snd.Buf.Format == nil {
		return 0
	}
	return snd.Buf.Format.NumChannels
}

// NumFrames returns the number of samples per channel
func (snd *Wave) NumFrames() int {
	if snd == nil || snd.Buf == nil {
		return 0
	}
	return snd.Buf.NumFrames()
}

// maxInt is the largest sample value for a bit depth
func maxInt(bitDepth int) int {
	switch bitDepth {
	case 8:
		return 0x7F
	case 24:
		return 0x7FFFFF
	case 32:
		return 0x7FFFFFFF
	}
	return 0x7FFF
}

// offset8 is the zero level of unsigned 8 bit PCM
const offset8 = 128

// SetSamples replaces the data with mono samples, clipped to -1..1 and
// quantized to the bit depth of the wave. 8 bit data is stored unsigned,
// offset by 128, as wav requires.
func (snd *Wave) SetSamples(samples []float64) error {
	if snd == nil || snd.Buf == nil || snd.Buf.Format == nil {
		return ErrNoData
	}
	bd := snd.BitDepth()
	mx := float64(maxInt(bd))
	data := make([]int, len(samples))
	for i, s := range samples {
		v := math32.Max(-1, math32.Min(1, float32(s)))
		data[i] = int(math.Round(float64(v) * mx))
		if bd == 8 {
			data[i] += offset8
		}
	}
	snd.Buf.Data = data
	snd.Buf.Format.NumChannels = 1
	return nil
}

// Samples returns channel 0 as floating point values, normalized to -1..1
func (snd *Wave) Samples() []float64 {
	n := snd.NumFrames()
	nc := snd.Channels()
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(snd.GetFloatAtIdx(snd.Buf, i*nc))
	}
	return out
}

// GetFloatAtIdx returns the sample at idx normalized by the bit depth of buf
func (snd *Wave) GetFloatAtIdx(buf *audio.IntBuffer, idx int) float32 {
	switch buf.SourceBitDepth {
	case 8:
		return float32(buf.Data[idx]-offset8) / float32(maxInt(8))
	case 16, 24, 32:
		return float32(float64(buf.Data[idx]) / float64(maxInt(buf.SourceBitDepth)))
	}
	return 0
}
