// Package pipeline orchestrates file discovery, per-file processing, and the
// run manifest. One bad file never aborts the batch: every per-file failure
// becomes an error record and processing continues.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/halfmoat/texforge/internal/classify"
	"github.com/halfmoat/texforge/internal/command"
	"github.com/halfmoat/texforge/internal/config"
	"github.com/halfmoat/texforge/internal/dds"
	"github.com/halfmoat/texforge/internal/display"
	"github.com/halfmoat/texforge/internal/logging"
	"github.com/halfmoat/texforge/internal/manifest"
)

// Run is the top-level batch entry point. It discovers files, processes each
// one (sequentially or through a bounded worker pool), finalizes the ledger,
// and writes the manifest under the output root.
//
// The returned error covers batch-level failures only (bad template, failed
// discovery, unwritable manifest); per-file outcomes live in the stats and
// the manifest.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, exec command.Executor) (RunStats, error) {
	var tpl *command.Template
	if cfg.ModelCommand != "" {
		var err error
		tpl, err = command.ParseTemplate(cfg.ModelCommand)
		if err != nil {
			return RunStats{}, err
		}
	}

	files, err := Discover(cfg.InputDir)
	if err != nil {
		return RunStats{}, fmt.Errorf("file discovery: %w", err)
	}

	p := &runner{cfg: cfg, log: log, exec: exec, tpl: tpl, total: len(files)}
	ledger := manifest.NewLedger(manifest.RunMeta{
		ModelName:    cfg.ModelName,
		ModelCommand: cfg.ModelCommand,
		InputRoot:    cfg.InputDir,
		OutputRoot:   cfg.OutputDir,
		MaxDim:       cfg.MaxDim,
		DryRun:       cfg.DryRun,
		Overwrite:    cfg.Overwrite,
	})

	p.logBatchHeader()

	stopped := p.dispatch(ctx, files, ledger)
	if stopped {
		log.Warn("Interrupted: %d of %d files recorded", ledger.Len(), len(files))
	}

	m := ledger.Finalize(!stopped)
	manifestPath := filepath.Join(cfg.OutputDir, manifest.FileName)
	if err := manifest.WriteFile(m, manifestPath); err != nil {
		return statsFromManifest(m, len(files)), fmt.Errorf("write manifest: %w", err)
	}

	stats := statsFromManifest(m, len(files))
	stats.TotalInputBytes = p.inputBytes.Load()
	stats.TotalOutputBytes = p.outputBytes.Load()
	p.logSummary(stats, manifestPath)
	return stats, nil
}

// runner carries the per-run state shared by workers.
type runner struct {
	cfg   *config.Config
	log   *logging.Logger
	exec  command.Executor
	tpl   *command.Template // nil in copy-only mode
	total int

	current     atomic.Int64
	inputBytes  atomic.Int64
	outputBytes atomic.Int64
}

// dispatch feeds files to workers and reports whether cancellation stopped
// hand-out before every file was covered. With one job it degrades to a
// plain sequential loop. In-flight files finish and are recorded; a
// cancellation that lands after the last file was handed out does not count
// as stopping early.
func (p *runner) dispatch(ctx context.Context, files []string, ledger *manifest.Ledger) bool {
	jobs := p.cfg.Jobs
	if jobs > len(files) {
		jobs = len(files)
	}
	if jobs <= 1 {
		for _, rel := range files {
			if ctx.Err() != nil {
				return true
			}
			ledger.Record(p.processFile(ctx, rel))
		}
		return false
	}

	work := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range work {
				ledger.Record(p.processFile(ctx, rel))
			}
		}()
	}

	stopped := false
feed:
	for _, rel := range files {
		if ctx.Err() != nil {
			stopped = true
			break
		}
		select {
		case work <- rel:
		case <-ctx.Done():
			stopped = true
			break feed
		}
	}
	close(work)
	wg.Wait()
	return stopped
}

// processFile handles one texture: inspect header, classify, then copy or
// run the upscaler. It always returns a record; failures are isolated here.
func (p *runner) processFile(ctx context.Context, rel string) manifest.RunRecord {
	n := p.current.Add(1)
	p.log.Info("[%d/%d] %s", n, p.total, rel)

	src := filepath.Join(p.cfg.InputDir, filepath.FromSlash(rel))
	dst := filepath.Join(p.cfg.OutputDir, filepath.FromSlash(rel))
	rec := manifest.RunRecord{Path: rel}

	// --- Inspect header ---
	hdr, err := dds.ReadHeader(src)
	if err != nil {
		p.log.Error("  %v", err)
		rec.Kind = classify.KindUnknown
		rec.Status = manifest.StatusError
		rec.Message = err.Error()
		return rec
	}
	rec.Width, rec.Height = hdr.Width, hdr.Height

	if fi, err := os.Stat(src); err == nil {
		p.inputBytes.Add(fi.Size())
	}

	// --- Classify ---
	d := classify.Classify(filepath.Base(rel), hdr.Width, hdr.Height, p.cfg.MaxDim)

	// The classifier already enforces the ceiling for color textures, but
	// the orchestrator must never upscale past it even if the matrix is
	// wrong. Re-check here.
	if d.Action == classify.ActionUpscale && hdr.MaxDimension() >= p.cfg.MaxDim {
		d = classify.Decision{Kind: d.Kind, Action: classify.ActionCopy, Scale: 1}
	}

	rec.Kind, rec.Action, rec.Scale = d.Kind, d.Action, d.Scale
	p.log.Debug("  %s (%s)", display.FormatDecision(d), display.FormatDimensions(hdr.Width, hdr.Height))

	// --- Skip existing ---
	_, statErr := os.Stat(dst)
	dstExisted := statErr == nil
	if dstExisted && !p.cfg.Overwrite {
		p.log.Warn("  Skip (exists)")
		rec.Status = manifest.StatusSkipped
		rec.Message = "output exists; use --overwrite to reprocess"
		return rec
	}

	// --- Dry run: decisions only, no filesystem mutation ---
	if p.cfg.DryRun {
		p.log.Info("  [DRY] Would %s", display.FormatDecision(d))
		rec.Status = manifest.StatusPending
		rec.Message = p.describePlan(d, src, dst, hdr)
		return rec
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		p.log.Error("  Cannot create output directory: %v", err)
		rec.Status = manifest.StatusError
		rec.Message = fmt.Sprintf("create output directory: %v", err)
		return rec
	}

	// --- Execute the decision ---
	if d.Action == classify.ActionCopy || p.tpl == nil {
		if err := copyFile(src, dst); err != nil {
			p.log.Error("  Copy failed: %v", err)
			rec.Status = manifest.StatusError
			rec.Message = fmt.Sprintf("copy: %v", err)
			return rec
		}
		p.log.Success("  OK (%s)", display.FormatDecision(d))
		rec.Status = manifest.StatusOK
		rec.Message = "copied"
	} else {
		if msg, err := p.upscale(ctx, d, src, dst, hdr, dstExisted); err != nil {
			p.log.Error("  Upscale failed: %v", err)
			rec.Status = manifest.StatusError
			rec.Message = msg
			return rec
		}
		p.log.Success("  OK (%s)", display.FormatDecision(d))
		rec.Status = manifest.StatusOK
	}

	if fi, err := os.Stat(dst); err == nil {
		p.outputBytes.Add(fi.Size())
	}
	return rec
}

// upscale renders and runs the external command for one file. Partial output
// is removed on failure so a re-run does not skip a broken file, unless dst
// already existed before the command ran: a failed overwrite must not leave
// the user with neither old nor new output. Returns the manifest message
// alongside the error.
func (p *runner) upscale(ctx context.Context, d classify.Decision, src, dst string, hdr dds.Header, dstExisted bool) (string, error) {
	sub := command.Substitution{
		Input:  src,
		Output: dst,
		Scale:  d.Scale,
		Kind:   string(d.Kind),
		Width:  hdr.Width,
		Height: hdr.Height,
	}
	argv := p.tpl.Render(sub)

	runCtx := ctx
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	res := p.exec.Run(runCtx, argv, command.Env(sub))
	if res.Err != nil {
		if !dstExisted {
			os.Remove(dst)
		}
		var msg string
		switch {
		case ctx.Err() != nil:
			msg = "interrupted"
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			msg = fmt.Sprintf("timed out after %s", p.cfg.Timeout)
		default:
			msg = fmt.Sprintf("exit %d: %s", res.ExitCode, tail(res.Output, 20))
		}
		return msg, errors.New(msg)
	}

	// Exit 0 but no file: the tool claimed success and produced nothing.
	if _, err := os.Stat(dst); err != nil {
		msg := "command succeeded but produced no output"
		return msg, errors.New(msg)
	}
	return "", nil
}

// describePlan builds the dry-run record message: the exact command that
// would run, or "copy".
func (p *runner) describePlan(d classify.Decision, src, dst string, hdr dds.Header) string {
	if d.Action == classify.ActionCopy || p.tpl == nil {
		return "copy"
	}
	argv := p.tpl.Render(command.Substitution{
		Input: src, Output: dst, Scale: d.Scale,
		Kind: string(d.Kind), Width: hdr.Width, Height: hdr.Height,
	})
	return strings.Join(argv, " ")
}

// copyFile mirrors src to dst, preserving the source file mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}

// tail returns the last n lines of s, joined with "; " for single-line
// manifest messages.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "; ")
}

// --- Logging helpers ---

func (p *runner) logBatchHeader() {
	cfg := p.cfg
	p.log.Info("Found %d DDS files", p.total)
	p.log.Info("Model: %s", cfg.ModelName)
	if cfg.ModelCommand == "" {
		p.log.Warn("No model command: every file will be copied")
	} else {
		p.log.Info("Command: %s", cfg.ModelCommand)
	}
	p.log.Info("Max dimension: %d (at or above: copy only)", cfg.MaxDim)
	if cfg.Jobs > 1 {
		p.log.Info("Workers: %d", cfg.Jobs)
	}
	if cfg.Timeout > 0 {
		p.log.Info("Per-file timeout: %s", cfg.Timeout)
	}
	if cfg.Overwrite {
		p.log.Info("Overwrite: existing outputs will be replaced")
	}
	fmt.Println()
}

func (p *runner) logSummary(stats RunStats, manifestPath string) {
	fmt.Println()
	p.log.Info("==============================")
	p.log.Info("Done: %d ok, %d skipped, %d errors", stats.OK, stats.Skipped, stats.Errors)
	if stats.Pending > 0 {
		p.log.Info("  Pending (dry run): %d", stats.Pending)
	}
	if stats.TotalInputBytes > 0 {
		p.log.Info("  Bytes: in %s, out %s",
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes))
	}
	if stats.Interrupted {
		p.log.Warn("  Run interrupted: manifest marked incomplete")
	}
	p.log.Info("Manifest: %s", manifestPath)
}
