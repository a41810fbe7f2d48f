// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package preset

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/klatt/klatt"
	"github.com/goki/gi/gi"
)

// column maps one table column onto a frame field
type column struct {
	Name string
	Get  func(fp *klatt.FrameParams) float64
	Set  func(fp *klatt.FrameParams, v float64)
}

func scalar(name string, f func(fp *klatt.FrameParams) *float64) column {
	return column{name,
		func(fp *klatt.FrameParams) float64 { return *f(fp) },
		func(fp *klatt.FrameParams, v float64) { *f(fp) = v }}
}

func flag(name string, f func(fp *klatt.FrameParams) *bool) column {
	return column{name,
		func(fp *klatt.FrameParams) float64 {
			if *f(fp) {
				return 1
			}
			return 0
		},
		func(fp *klatt.FrameParams, v float64) { *f(fp) = v != 0 }}
}

func bank(name string, f func(fp *klatt.FrameParams) *[klatt.MaxOralFormants]float64) []column {
	cols := make([]column, klatt.MaxOralFormants)
	for i := range cols {
		i := i
		cols[i] = column{fmt.Sprintf("%s%d", name, i+1),
			func(fp *klatt.FrameParams) float64 { return f(fp)[i] },
			func(fp *klatt.FrameParams, v float64) { f(fp)[i] = v }}
	}
	return cols
}

// Columns is the fixed column layout of a frame table
var Columns = buildColumns()

func buildColumns() []column {
	cols := []column{
		scalar("Time", func(fp *klatt.FrameParams) *float64 { return &fp.Time }),
		scalar("F0", func(fp *klatt.FrameParams) *float64 { return &fp.F0 }),
		scalar("FlutterLevel", func(fp *klatt.FrameParams) *float64 { return &fp.FlutterLevel }),
		scalar("OpenPhaseRatio", func(fp *klatt.FrameParams) *float64 { return &fp.OpenPhaseRatio }),
		scalar("Breathiness", func(fp *klatt.FrameParams) *float64 { return &fp.Breathiness }),
		scalar("TiltDb", func(fp *klatt.FrameParams) *float64 { return &fp.TiltDb }),
		scalar("Gain", func(fp *klatt.FrameParams) *float64 { return &fp.Gain }),
		scalar("NasalFormantFreq", func(fp *klatt.FrameParams) *float64 { return &fp.NasalFormantFreq }),
		scalar("NasalFormantBw", func(fp *klatt.FrameParams) *float64 { return &fp.NasalFormantBw }),
	}
	cols = append(cols, bank("F", func(fp *klatt.FrameParams) *[klatt.MaxOralFormants]float64 { return &fp.OralFormantFreq })...)
	cols = append(cols, bank("B", func(fp *klatt.FrameParams) *[klatt.MaxOralFormants]float64 { return &fp.OralFormantBw })...)
	cols = append(cols,
		flag("CascadeEnabled", func(fp *klatt.FrameParams) *bool { return &fp.CascadeEnabled }),
		scalar("AV", func(fp *klatt.FrameParams) *float64 { return &fp.AV }),
		scalar("AH", func(fp *klatt.FrameParams) *float64 { return &fp.AH }),
		scalar("AspirationMod", func(fp *klatt.FrameParams) *float64 { return &fp.AspirationMod }),
		scalar("NasalAntiformantFreq", func(fp *klatt.FrameParams) *float64 { return &fp.NasalAntiformantFreq }),
		scalar("NasalAntiformantBw", func(fp *klatt.FrameParams) *float64 { return &fp.NasalAntiformantBw }),
		flag("ParallelEnabled", func(fp *klatt.FrameParams) *bool { return &fp.ParallelEnabled }),
		scalar("ParallelVoicing", func(fp *klatt.FrameParams) *float64 { return &fp.ParallelVoicing }),
		scalar("ParallelAspiration", func(fp *klatt.FrameParams) *float64 { return &fp.ParallelAspiration }),
		scalar("ParallelAspirationMod", func(fp *klatt.FrameParams) *float64 { return &fp.ParallelAspirationMod }),
		scalar("AF", func(fp *klatt.FrameParams) *float64 { return &fp.AF }),
		scalar("FricationMod", func(fp *klatt.FrameParams) *float64 { return &fp.FricationMod }),
		scalar("BypassGain", func(fp *klatt.FrameParams) *float64 { return &fp.BypassGain }),
		scalar("NasalFormantGain", func(fp *klatt.FrameParams) *float64 { return &fp.NasalFormantGain }),
	)
	cols = append(cols, bank("G", func(fp *klatt.FrameParams) *[klatt.MaxOralFormants]float64 { return &fp.OralFormantGain })...)
	return cols
}

// ConfigFramesTable configures dt with one float column per frame field
func ConfigFramesTable(dt *etable.Table, rows int) {
	dt.SetMetaData("name", "Frames")
	dt.SetMetaData("desc", "synthesis keyframes, one per row")
	dt.SetMetaData("precision", strconv.Itoa(10))
	sch := make(etable.Schema, len(Columns))
	for i, c := range Columns {
		sch[i] = etable.Column{Name: c.Name, Type: etensor.FLOAT64}
	}
	dt.SetFromSchema(sch, rows)
}

// FramesToTable returns a table holding the frames
func FramesToTable(frames []klatt.FrameParams) *etable.Table {
	dt := &etable.Table{}
	ConfigFramesTable(dt, len(frames))
	for row := range frames {
		for _, c := range Columns {
			dt.SetCellFloat(c.Name, row, c.Get(&frames[row]))
		}
	}
	return dt
}

// TableToFrames reads frames from a table. Columns absent from the table
// keep their FrameParams defaults.
func TableToFrames(dt *etable.Table) []klatt.FrameParams {
	frames := make([]klatt.FrameParams, dt.Rows)
	for row := range frames {
		fp := &frames[row]
		fp.Defaults()
		for _, c := range Columns {
			if dt.ColIdx(c.Name) < 0 {
				continue
			}
			c.Set(fp, dt.CellFloat(c.Name, row))
		}
	}
	return frames
}

// SaveFramesCSV writes the frames to a tab-separated file with headers
func SaveFramesCSV(fn string, frames []klatt.FrameParams) error {
	dt := FramesToTable(frames)
	if err := dt.SaveCSV(gi.FileName(fn), etable.Tab, etable.Headers); err != nil {
		return fmt.Errorf("preset.SaveFramesCSV: %s: %w", fn, err)
	}
	return nil
}

// OpenFramesCSV reads frames from a tab-separated file with headers
func OpenFramesCSV(fn string) ([]klatt.FrameParams, error) {
	dt := &etable.Table{}
	if err := dt.OpenCSV(gi.FileName(fn), etable.Tab); err != nil {
		return nil, fmt.Errorf("preset.OpenFramesCSV: %s: %w", fn, err)
	}
	if dt.ColIdx("Time") < 0 {
		return nil, fmt.Errorf("preset.OpenFramesCSV: %s: %w: missing Time column", fn, klatt.ErrInvalidConfig)
	}
	return TableToFrames(dt), nil
}

// Open loads a preset by file extension: .json is a whole preset, .tsv, .csv
// or .dat is a frame table synthesized with default main params and the
// duration of the last frame.
func Open(fn string) (*Preset, error) {
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".json":
		return OpenJSON(fn)
	case ".tsv", ".csv", ".dat":
		frames, err := OpenFramesCSV(fn)
		if err != nil {
			return nil, err
		}
		ps := &Preset{Name: fileBase(fn), Frames: frames}
		ps.Main.Defaults()
		ps.Main.RandomFlutter = false
		if n := len(frames); n > 0 {
			ps.Main.Duration = frames[n-1].Time
		}
		if err := ps.Validate(); err != nil {
			return nil, fmt.Errorf("preset.Open: %s: %w", fn, err)
		}
		return ps, nil
	}
	return nil, fmt.Errorf("preset.Open: %s: unsupported file type", fn)
}

func fileBase(fn string) string {
	b := filepath.Base(fn)
	return strings.TrimSuffix(b, filepath.Ext(b))
}
