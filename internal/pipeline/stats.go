package pipeline

import "github.com/halfmoat/texforge/internal/manifest"

// RunStats summarizes a batch run for exit-code decisions and the final log
// lines.
type RunStats struct {
	Total       int
	OK          int
	Skipped     int
	Errors      int
	Pending     int
	Interrupted bool

	TotalInputBytes  int64
	TotalOutputBytes int64
}

// statsFromManifest derives the counters from a finalized manifest.
func statsFromManifest(m *manifest.Manifest, total int) RunStats {
	return RunStats{
		Total:       total,
		OK:          m.Totals.OK,
		Skipped:     m.Totals.Skipped,
		Errors:      m.Totals.Errors,
		Pending:     m.Totals.Pending,
		Interrupted: !m.Complete,
	}
}
