package manifest

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ledger accumulates RunRecords during a batch run. Record never rejects and
// is safe for concurrent use; appending to the ledger is the single
// synchronization point when files are processed in parallel. Finalize sorts
// records by path, so manifest order is the deterministic traversal order
// regardless of scheduling.
type Ledger struct {
	mu      sync.Mutex
	meta    RunMeta
	runID   string
	started time.Time
	records []RunRecord

	now func() time.Time
}

// Option customizes a Ledger at construction. Production code uses the
// defaults; tests pin the clock and run ID to assert byte-identical output.
type Option func(*Ledger)

// WithClock replaces the ledger's time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithRunID replaces the generated run ID.
func WithRunID(id string) Option {
	return func(l *Ledger) { l.runID = id }
}

// NewLedger opens a ledger for one run, stamping the start time.
func NewLedger(meta RunMeta, opts ...Option) *Ledger {
	l := &Ledger{
		meta:  meta,
		runID: uuid.NewString(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.started = l.now().UTC()
	return l
}

// Now returns the ledger's current time in UTC, for stamping RunRecords
// from the same clock the manifest uses.
func (l *Ledger) Now() time.Time {
	return l.now().UTC()
}

// Record appends r. Records with a zero RecordedAt are stamped on entry.
func (l *Ledger) Record(r RunRecord) {
	if r.RecordedAt.IsZero() {
		r.RecordedAt = l.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
}

// Len reports how many records have been appended so far.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Finalize closes the run and returns an immutable snapshot: finish time
// stamped, totals aggregated, records sorted by path. complete should be
// false when the run was interrupted before covering every discovered file.
// The ledger must not be used after Finalize.
func (l *Ledger) Finalize(complete bool) *Manifest {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := make([]RunRecord, len(l.records))
	copy(records, l.records)
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})

	var totals Totals
	for _, r := range records {
		switch r.Status {
		case StatusOK:
			totals.OK++
		case StatusSkipped:
			totals.Skipped++
		case StatusError:
			totals.Errors++
		case StatusPending:
			totals.Pending++
		}
	}

	return &Manifest{
		RunID:      l.runID,
		RunMeta:    l.meta,
		StartedAt:  l.started,
		FinishedAt: l.now().UTC(),
		Complete:   complete,
		Totals:     totals,
		Records:    records,
	}
}
