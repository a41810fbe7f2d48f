// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/oto"
)

// PlayWav decodes the wav file fn, resampled to rate, and plays it on context
func PlayWav(context *oto.Context, fn string, rate int) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := wav.DecodeWithSampleRate(rate, f)
	if err != nil {
		return fmt.Errorf("sound.PlayWav: decoding %s: %w", fn, err)
	}
	p := context.NewPlayer()
	if _, err := io.Copy(p, s); err != nil {
		p.Close()
		return err
	}
	return p.Close()
}

// Play plays the wav file fn on the default audio device. The decoder
// always produces 16 bit stereo, so channels and bytesPerSample describe the
// device format, normally 2 and 2.
func Play(fn string, rate int, channels int, bytesPerSample int) error {
	c, err := oto.NewContext(rate, channels, bytesPerSample, 4096)
	if err != nil {
		return err
	}
	defer c.Close()
	return PlayWav(c, fn, rate)
}
