package command

import (
	"bytes"
	"context"
	"os"
	"os/exec"
)

// Result holds the outcome of one external tool invocation. Output is the
// combined stdout+stderr, captured for error diagnostics in the manifest.
type Result struct {
	ExitCode int
	Output   string
	Err      error
}

// Executor runs an external command. The pipeline depends on this interface
// rather than os/exec directly, so tests can verify orchestration with a
// fake executor and no real upscaler installed.
type Executor interface {
	Run(ctx context.Context, argv []string, env []string) Result
}

// SystemExecutor runs commands via os/exec. env entries are appended to the
// parent environment. Cancellation and per-file timeouts arrive through ctx.
type SystemExecutor struct{}

// Run executes argv[0] with argv[1:], capturing combined output.
func (SystemExecutor) Run(ctx context.Context, argv []string, env []string) Result {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), env...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	res := Result{Output: buf.String(), Err: err}
	if err == nil {
		return res
	}
	if ee, ok := err.(*exec.ExitError); ok {
		res.ExitCode = ee.ExitCode()
	} else {
		res.ExitCode = -1
	}
	return res
}
