// Command texforge is the CLI entrypoint for the TexForge texture upscaler.
//
// It parses flags, validates configuration and paths, and either runs
// system diagnostics (--check) or the batch upscale pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/halfmoat/texforge/internal/check"
	"github.com/halfmoat/texforge/internal/command"
	"github.com/halfmoat/texforge/internal/config"
	"github.com/halfmoat/texforge/internal/display"
	"github.com/halfmoat/texforge/internal/logging"
	"github.com/halfmoat/texforge/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "texforge: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "texforge: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "texforge: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// Resolve and validate paths: input must exist, output is created if
	// needed, and output must not be inside input (a run would otherwise
	// rediscover its own results).
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		log.Error("Input not found: %s", cfg.InputDir)
		return 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %s", cfg.OutputDir)
		return 1
	}
	outputAbs, err := absPath(cfg.OutputDir)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.OutputDir)
		return 1
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		log.Error("%v", err)
		log.Error("Choose an output path outside: %s", cfg.InputDir)
		return 1
	}

	log.Info("=== TexForge v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputDir)
	if cfg.DryRun {
		log.Warn("DRY RUN: decisions are recorded, no files are written")
	}
	log.Info("")

	// Fail fast if the upscaler tool is missing or the output root is
	// unwritable before touching any texture.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling. Cancel the context on SIGINT/SIGTERM so
	// the pipeline stops handing out files; in-flight files finish and
	// the manifest is written marked incomplete.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing in-flight files...")
		cancel()
	}()

	// Phase 4: Run the batch (discover, inspect, classify, execute, record).
	stats, err := pipeline.Run(ctx, &cfg, log, &command.SystemExecutor{})
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	if stats.Interrupted {
		return 1
	}
	if stats.Errors > 0 {
		return 2
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
