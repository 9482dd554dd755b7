// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

// RulateConfig is the persisted CLI configuration, stored at
// ~/.rulate/rulate.yaml and created with defaults on first run.
type RulateConfig struct {
	// Engine: evaluation settings
	Engine EngineConfig `yaml:"engine"`

	// Output: rendering preferences for results and errors
	Output OutputConfig `yaml:"output"`

	// Logging: structured log destination and level
	Logging LoggingConfig `yaml:"logging"`

	// Watch: settings for the watch command
	Watch WatchConfig `yaml:"watch"`
}

type EngineConfig struct {
	// Workers is the evaluation worker count. 0 means one per CPU.
	Workers int `yaml:"workers"`
}

type OutputConfig struct {
	// Format can be "table" or "json"
	Format string `yaml:"format"`

	// Personality is the UX level (full/minimal/machine); empty defers
	// to RULATE_PERSONALITY or terminal detection
	Personality string `yaml:"personality"`
}

type LoggingConfig struct {
	// Level can be "debug", "info", "warn", or "error"
	Level string `yaml:"level"`

	// Dir enables file logging when set; supports ~ expansion
	Dir string `yaml:"dir"`
}

type WatchConfig struct {
	// DebounceMs is the quiet period after a file event before
	// re-evaluating. Editors fire bursts of writes on save.
	DebounceMs int `yaml:"debounce_ms"`
}

func DefaultConfig() RulateConfig {
	return RulateConfig{
		Engine: EngineConfig{
			Workers: 0,
		},
		Output: OutputConfig{
			Format:      "table",
			Personality: "",
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "~/.rulate/logs",
		},
		Watch: WatchConfig{
			DebounceMs: 400,
		},
	}
}
