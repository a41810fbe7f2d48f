// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config handles loading the synth command configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/emer/klatt/klatt"
	"github.com/spf13/viper"
)

// Config is the root configuration of the synth command
type Config struct {
	Synth   SynthConfig   `mapstructure:"synth"`
	Output  OutputConfig  `mapstructure:"output"`
	Play    PlayConfig    `mapstructure:"play"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SynthConfig overrides main params for built-in vowels and table presets
type SynthConfig struct {
	SampleRate    int     `mapstructure:"sample_rate"`
	Duration      float64 `mapstructure:"duration"`
	GlottalSource string  `mapstructure:"glottal_source"` // impulsive, natural or noise
	AgcRmsLevel   float64 `mapstructure:"agc_rms_level"`
	RandomFlutter bool    `mapstructure:"random_flutter"`
	Seed          float64 `mapstructure:"seed"` // initial MultSource seed, 0 for the default
	Workers       int     `mapstructure:"workers"`
}

// OutputConfig configures the wav files written
type OutputConfig struct {
	Dir      string  `mapstructure:"dir"`
	BitDepth int     `mapstructure:"bit_depth"`
	PadMSec  float64 `mapstructure:"pad_msec"` // silence added at both ends
}

// PlayConfig configures audio device playback
type PlayConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	Rate           int  `mapstructure:"rate"`
	Channels       int  `mapstructure:"channels"`
	BytesPerSample int  `mapstructure:"bytes_per_sample"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Main applies the synth settings to mp
func (sc *SynthConfig) Main(mp *klatt.MainParams) error {
	mp.SampleRate = sc.SampleRate
	mp.Duration = sc.Duration
	mp.AgcRmsLevel = sc.AgcRmsLevel
	mp.RandomFlutter = sc.RandomFlutter
	if err := mp.GlottalSource.UnmarshalText([]byte(sc.GlottalSource)); err != nil {
		return err
	}
	return mp.Validate()
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise ./klatt.yaml and
// ./configs/klatt.yaml are searched.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	var mp klatt.MainParams
	mp.Defaults()
	v.SetDefault("synth.sample_rate", mp.SampleRate)
	v.SetDefault("synth.duration", mp.Duration)
	v.SetDefault("synth.glottal_source", strings.ToLower(mp.GlottalSource.String()))
	v.SetDefault("synth.agc_rms_level", mp.AgcRmsLevel)
	v.SetDefault("synth.random_flutter", false)
	v.SetDefault("synth.seed", 0)
	v.SetDefault("synth.workers", 4)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.bit_depth", 16)
	v.SetDefault("output.pad_msec", 0)
	v.SetDefault("play.enabled", false)
	v.SetDefault("play.rate", 44100)
	v.SetDefault("play.channels", 2)
	v.SetDefault("play.bytes_per_sample", 2)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("klatt")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	// KLATT_SYNTH_SAMPLE_RATE, KLATT_OUTPUT_DIR, etc.
	v.SetEnvPrefix("KLATT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	switch cfg.Output.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: output bit depth %d", klatt.ErrInvalidConfig, cfg.Output.BitDepth)
	}
	if cfg.Synth.Workers < 1 {
		cfg.Synth.Workers = 1
	}
	return &cfg, nil
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
