package pipeline

// PreflightNotice records a pair that preflight flagged, for the end-of-run
// summary.
type PreflightNotice struct {
	HTMLPath string
	Issues   []string
	Skipped  bool
}

// RunStats tracks aggregate counters and byte totals across a run.
type RunStats struct {
	Total   int
	Current int
	// Processed counts pairs that reached an outcome. A pair cut short by
	// an interrupt is not included.
	Processed int
	Succeeded int
	Failed    int
	Skipped   int
	Previewed int

	Deleted      int
	DeleteFailed int

	// Byte totals over archived (or, in a dry run, previewed) pairs.
	TotalInputBytes  int64
	TotalOutputBytes int64

	Orphans     int
	Preflight   []PreflightNotice
	Interrupted bool
}

// SpaceSaved returns the aggregate byte difference between originals and
// archives. Positive means the archives are smaller.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// HasFailures reports whether any pair or deletion failed.
func (s *RunStats) HasFailures() bool {
	return s.Failed > 0 || s.DeleteFailed > 0
}
