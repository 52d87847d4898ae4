package rewrite

// Result is the tri-state outcome of one rewrite attempt at one anchor.
type Result int

const (
	// Skip: the motif is absent at this anchor or a precondition was not
	// met. Not an error.
	Skip Result = iota
	// OK: the rewrite was applied.
	OK
	// Fail: the motif is present but malformed in a way that blocks a safe
	// rewrite. Reported, not silently ignored.
	Fail
)

// String returns the outcome name.
func (r Result) String() string {
	switch r {
	case Skip:
		return "SKIP"
	case OK:
		return "OK"
	case Fail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// Summary aggregates per-anchor outcomes into a pass-level result.
type Summary struct {
	Rewritten int
	Skipped   int
	Failed    int
}

// Record tallies one anchor outcome.
func (s *Summary) Record(r Result) {
	switch r {
	case OK:
		s.Rewritten++
	case Fail:
		s.Failed++
	default:
		s.Skipped++
	}
}
