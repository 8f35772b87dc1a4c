// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation for the configured upscaler command and output root.
package check

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/halfmoat/texforge/internal/command"
	"github.com/halfmoat/texforge/internal/config"
)

// Sentinel errors returned by CheckDeps. Both are fatal to the run: a
// missing tool or unwritable output root would fail identically for every
// file.
var (
	ErrToolNotFound      = errors.New("upscaler command not found on PATH")
	ErrOutputNotWritable = errors.New("output directory is not writable")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: template validity, upscaler
// tool availability, and output-root writability. Informational only; it
// reports everything it can and returns false if anything failed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")
	ok := true

	if cfg.ModelCommand == "" {
		log.Warn("No model command configured (copy-only mode)")
	} else {
		tpl, err := command.ParseTemplate(cfg.ModelCommand)
		if err != nil {
			log.Error("Command template: %v", err)
			ok = false
		} else {
			log.Success("Command template OK: %s", tpl)
			if !checkTool(tpl.Tool(), log) {
				ok = false
			}
		}
	}

	if cfg.OutputDir == "" {
		log.Warn("No output directory configured; writability not checked")
	} else if err := checkWritable(cfg.OutputDir); err != nil {
		log.Error("Output root: %v", err)
		ok = false
	} else {
		log.Success("Output root writable: %s", cfg.OutputDir)
	}

	return ok
}

// checkTool verifies the tool is on PATH and logs its version when the tool
// supports a -version/--version probe.
func checkTool(tool string, log Logger) bool {
	path, err := exec.LookPath(tool)
	if err != nil {
		log.Error("Tool not found on PATH: %s", tool)
		return false
	}
	log.Success("Tool found: %s", path)

	for _, flag := range []string{"--version", "-version"} {
		out, err := exec.Command(tool, flag).Output()
		if err != nil {
			continue
		}
		line := strings.TrimSpace(string(out))
		if idx := strings.Index(line, "\n"); idx > 0 {
			line = line[:idx]
		}
		if line != "" {
			log.Info("  %s", line)
		}
		break
	}
	return true
}

// CheckDeps is the pre-pipeline validation. The output directory must exist
// by the time this runs (main creates it first).
func CheckDeps(cfg *config.Config) error {
	if cfg.ModelCommand != "" {
		tpl, err := command.ParseTemplate(cfg.ModelCommand)
		if err != nil {
			return err
		}
		if _, err := exec.LookPath(tpl.Tool()); err != nil {
			return fmt.Errorf("%w: %s", ErrToolNotFound, tpl.Tool())
		}
	}
	if err := checkWritable(cfg.OutputDir); err != nil {
		return err
	}
	return nil
}

// checkWritable creates and removes a probe file under dir.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".texforge-write-check*")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrOutputNotWritable, dir)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}
