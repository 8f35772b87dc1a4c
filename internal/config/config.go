// Package config holds runtime configuration: environment-sourced defaults,
// optional YAML config file, CLI flag parsing, and validation. Core packages
// never read the environment themselves; everything ambient is collected
// here once and passed down explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Environment variables consulted for defaults, mirroring the conventions of
// the scripted tooling this CLI replaced.
const (
	EnvModelName = "TEXFORGE_MODEL_NAME"
	EnvModelCmd  = "TEXFORGE_MODEL_CMD"
	EnvOutputDir = "TEXFORGE_OUTPUT_DIR"
)

// DefaultMaxDim is the safety ceiling: textures at or above this dimension
// are never upscaled.
const DefaultMaxDim = 4096

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by a YAML file ([LoadFile]), and then mutated by
// [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args; OutputDir may come from env).
	InputDir  string
	OutputDir string

	// Model settings.
	ModelName    string // Manifest label for the upscaler in use.
	ModelCommand string // Command template; empty means copy-only mode.
	MaxDim       int    // Default: 4096.

	// Behavior flags.
	Overwrite bool          // Replace outputs that already exist.
	DryRun    bool          // Record decisions without copying or executing.
	Jobs      int           // Worker count. Default: 1 (sequential).
	Timeout   time.Duration // Per-file command timeout. 0 disables.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.

	// Config file path (from --config; already applied by the time
	// ParseFlags returns).
	ConfigFile string
}

// DefaultConfig returns a Config seeded from environment variables where
// they are set and built-in defaults otherwise.
func DefaultConfig() Config {
	modelName := os.Getenv(EnvModelName)
	if modelName == "" {
		modelName = "custom-model"
	}
	return Config{
		OutputDir:    os.Getenv(EnvOutputDir),
		ModelName:    modelName,
		ModelCommand: os.Getenv(EnvModelCmd),
		MaxDim:       DefaultMaxDim,
		Jobs:         1,
		ColorMode:    ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks field ranges and enum values. When not in CheckOnly mode
// it also requires both directory paths.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.MaxDim <= 0 {
		return fmt.Errorf("max-dim must be positive (got %d)", c.MaxDim)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1 (got %d)", c.Jobs)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative (got %s)", c.Timeout)
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("need an input_dir and an output_dir")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved input directory, which would make the batch rediscover its
// own output files on re-runs. Both arguments must be absolute,
// symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
