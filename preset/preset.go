// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package preset loads and saves synthesis parameter sets: whole presets as
// JSON, keyframe sequences as etable tab-separated tables, and a set of
// built-in vowels.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/emer/klatt/klatt"
)

// ErrUnknownVowel is returned by Vowel for names not in the built-in set
var ErrUnknownVowel = errors.New("preset: unknown vowel")

// Preset is a named synthesis job: run parameters plus keyframes
type Preset struct {
	Name   string              `json:"name" desc:"name of the preset, used for output file names"`
	Main   klatt.MainParams    `json:"main" desc:"parameters fixed for the whole run"`
	Frames []klatt.FrameParams `json:"frames" desc:"keyframes in increasing time order"`
}

// Validate checks the main params and all frames
func (ps *Preset) Validate() error {
	return klatt.ValidateFrames(&ps.Main, ps.Frames)
}

// Generate synthesizes the preset
func (ps *Preset) Generate(rnd klatt.RandomSource) ([]float64, error) {
	out, err := klatt.Generate(ps.Main, ps.Frames, rnd)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", ps.Name, err)
	}
	return out, nil
}

// OpenJSON opens a preset from a JSON-formatted file. Fields missing from the
// file keep their default values.
func OpenJSON(fn string) (*Preset, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	ps := &Preset{}
	ps.Main.Defaults()
	ps.Main.RandomFlutter = false
	if err := json.Unmarshal(b, ps); err != nil {
		return nil, fmt.Errorf("preset.OpenJSON: %s: %w", fn, err)
	}
	if ps.Name == "" {
		ps.Name = fileBase(fn)
	}
	if err := ps.Validate(); err != nil {
		return nil, fmt.Errorf("preset.OpenJSON: %s: %w", fn, err)
	}
	slog.Debug("loaded preset", "file", fn, "name", ps.Name, "frames", len(ps.Frames))
	return ps, nil
}

// SaveJSON saves the preset to a JSON-formatted file
func (ps *Preset) SaveJSON(fn string) error {
	b, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(fn, b, 0644); err != nil {
		slog.Error("preset.SaveJSON: write failed", "file", fn, "error", err)
		return err
	}
	return nil
}
