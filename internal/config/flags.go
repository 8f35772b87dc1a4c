package config

// This file implements CLI flag parsing and help text. The optional YAML
// config file (--config) is applied between defaults and flags, so the
// precedence is: built-in defaults < environment < file < flags.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, missing positional args, unreadable config file).
func ParseFlags(cfg *Config, version string, args []string) error {
	// The config file has to be applied before flag values land in cfg,
	// otherwise file values would clobber explicit flags. Pre-scan for it.
	if path := configFileArg(args); path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return err
		}
		cfg.ConfigFile = path
	}

	fs := flag.NewFlagSet("texforge", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var util utilityFlags
	defineModelFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &util)
	defineUtilityFlags(fs, cfg, &util)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyColorOverrides(cfg, &util)

	if util.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if util.showVersion {
		fmt.Fprintln(os.Stdout, "texforge v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// utilityFlags holds flags that are applied after Parse: color overrides and
// help/version exits.
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineModelFlags registers --model-name, --model-cmd, --max-dim.
func defineModelFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ModelName, "model-name", cfg.ModelName, "Manifest label for the upscaler model")
	fs.StringVar(&cfg.ModelCommand, "model-cmd", cfg.ModelCommand,
		"Upscaler command template with {input}/{output} placeholders (empty: copy only)")
	fs.IntVar(&cfg.MaxDim, "max-dim", cfg.MaxDim, "Never upscale textures at or above this dimension")
}

// defineBehaviorFlags registers overwrite, dry-run, jobs, timeout.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.Overwrite, "overwrite", cfg.Overwrite, "Replace outputs that already exist")
	fs.BoolVar(&cfg.Overwrite, "f", cfg.Overwrite, "Same as --overwrite")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Record decisions without copying or executing")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "Process up to N files concurrently")
	fs.IntVar(&cfg.Jobs, "j", cfg.Jobs, "Same as --jobs")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-file command timeout (0 disables)")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.BoolVar(&u.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&u.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	// --config is pre-scanned and already applied; registered here so the
	// parser accepts it and it shows up in help.
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML config file")
	fs.BoolVar(&u.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&u.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&u.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&u.showHelp, "h", false, "Same as --help")
}

// applyColorOverrides resolves --color/--no-color into cfg.ColorMode.
func applyColorOverrides(cfg *Config, u *utilityFlags) {
	if u.noColor {
		cfg.ColorMode = ColorNever
	} else if u.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// configFileArg pre-scans args for --config (space or = form) and returns
// its value, or "" when absent.
func configFileArg(args []string) string {
	for i, a := range args {
		switch {
		case a == "--config" || a == "-config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-config="):
			return strings.TrimPrefix(a, "-config=")
		}
	}
	return ""
}

// parsePositionalArgs sets InputDir and OutputDir from the positional args
// when not in CheckOnly mode. OutputDir may already hold the environment or
// config-file value, in which case a single positional arg is enough.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	switch len(args) {
	case 2:
		cfg.InputDir = NormalizeDirArg(args[0])
		cfg.OutputDir = NormalizeDirArg(args[1])
		return nil
	case 1:
		if cfg.OutputDir == "" {
			return fmt.Errorf("need an output_dir (second argument or %s)", EnvOutputDir)
		}
		cfg.InputDir = NormalizeDirArg(args[0])
		cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
		return nil
	default:
		return fmt.Errorf("need input_dir and output_dir")
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "TexForge v" + version + " - batch DDS texture upscaling driver"},
		{"", ""},
		{"  texforge [OPTIONS] <input_dir> <output_dir>", ""},
		{"", ""},
		{"Model", ""},
		{"  --model-name <label>", "Manifest label for the upscaler (default: custom-model)"},
		{"  --model-cmd <template>", "Upscaler command with {input}/{output}/{scale}/{kind}/{width}/{height}"},
		{"  --max-dim <n>", "Never upscale at or above this dimension (default: 4096)"},
		{"", ""},
		{"Behavior", ""},
		{"  -f, --overwrite", "Replace outputs that already exist"},
		{"  -d, --dry-run", "Record decisions without copying or executing"},
		{"  -j, --jobs <n>", "Process up to N files concurrently (default: 1)"},
		{"  --timeout <dur>", "Per-file command timeout, e.g. 10m (default: none)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "YAML config file"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Diagnostics: upscaler tool, output writability"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
