// Package manifest models the run ledger: one append-only record per
// processed file plus run-level metadata, serialized to a deterministic,
// human-diffable JSON document at the end of a batch.
package manifest

import (
	"encoding/json"
	"time"

	"github.com/halfmoat/texforge/internal/classify"
)

// FileName is the manifest's location under the output root.
const FileName = "processing_manifest.json"

// Status is the per-file outcome.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
	// StatusPending marks dry-run records: the decision was made but
	// nothing was copied or executed.
	StatusPending Status = "pending"
)

// RunRecord is the outcome for a single input file. Records are append-only
// and never mutated after creation.
type RunRecord struct {
	// Path is the file's identity: its path relative to the input root,
	// in slash form.
	Path       string          `json:"path"`
	Kind       classify.Kind   `json:"kind"`
	Action     classify.Action `json:"action,omitempty"`
	Scale      int             `json:"scale,omitempty"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Status     Status          `json:"status"`
	Message    string          `json:"message,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// RunMeta is the run-level configuration captured in the manifest.
type RunMeta struct {
	ModelName    string `json:"model_name"`
	ModelCommand string `json:"model_command"`
	InputRoot    string `json:"input_root"`
	OutputRoot   string `json:"output_root"`
	MaxDim       int    `json:"max_dim"`
	DryRun       bool   `json:"dry_run"`
	Overwrite    bool   `json:"overwrite"`
}

// Totals aggregates record counts by status.
type Totals struct {
	OK      int `json:"ok"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
	Pending int `json:"pending"`
}

// Manifest is the finalized snapshot of a run. Complete is false when the
// run was interrupted before every discovered file got a record; consumers
// must not treat a partial manifest as a full one.
type Manifest struct {
	RunID      string      `json:"run_id"`
	RunMeta                // inlined: model/name/roots/flags
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Complete   bool        `json:"complete"`
	Totals     Totals      `json:"totals"`
	Records    []RunRecord `json:"records"`
}

// Encode serializes m with stable key order (struct field order) and
// two-space indentation, ending with a newline. Identical manifests encode
// to identical bytes, which CI relies on for diffing.
func Encode(m *Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
