package config

// This file implements the optional YAML config file. Fields are pointers so
// absent keys leave the current value (defaults or environment) untouched.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	ModelName    *string `yaml:"model_name"`
	ModelCommand *string `yaml:"model_command"`
	MaxDim       *int    `yaml:"max_dim"`
	OutputDir    *string `yaml:"output_dir"`
	Overwrite    *bool   `yaml:"overwrite"`
	Jobs         *int    `yaml:"jobs"`
	Timeout      *string `yaml:"timeout"` // Go duration string, e.g. "10m".
	ColorMode    *string `yaml:"color"`
	LogFile      *string `yaml:"log_file"`
}

// LoadFile overlays the YAML file at path onto cfg. Unknown keys are
// rejected so typos fail loudly instead of silently keeping defaults.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}

	if fc.ModelName != nil {
		cfg.ModelName = *fc.ModelName
	}
	if fc.ModelCommand != nil {
		cfg.ModelCommand = *fc.ModelCommand
	}
	if fc.MaxDim != nil {
		cfg.MaxDim = *fc.MaxDim
	}
	if fc.OutputDir != nil {
		cfg.OutputDir = *fc.OutputDir
	}
	if fc.Overwrite != nil {
		cfg.Overwrite = *fc.Overwrite
	}
	if fc.Jobs != nil {
		cfg.Jobs = *fc.Jobs
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return fmt.Errorf("config file %q: invalid timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	if fc.ColorMode != nil {
		cfg.ColorMode = ColorMode(*fc.ColorMode)
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	return nil
}
