package domain

// AddOutcome classifies a bulk range-add.
type AddOutcome int

const (
	// AddFull means every episode in the requested range was newly tracked.
	AddFull AddOutcome = iota
	// AddPartial means some episodes were newly tracked, some already were.
	AddPartial
	// AddNone means every episode in the range was already tracked.
	AddNone
)

func (o AddOutcome) String() string {
	switch o {
	case AddFull:
		return "full"
	case AddPartial:
		return "partial"
	case AddNone:
		return "none"
	default:
		return "unknown"
	}
}

// AddResult is the outcome of a bulk range-add. It carries explicit counts
// so callers can tell an episode skipped because it was already tracked
// from one skipped because it was not watchable.
type AddResult struct {
	// NewlyAdded is the number of episodes inserted by this call.
	NewlyAdded int
	// AlreadyTracked is the number of requested episodes that were
	// already in the watched set.
	AlreadyTracked int
	// Unwatchable is the number of requested episodes skipped because
	// they have not aired or could not be resolved.
	Unwatchable int
}

// Requested returns the size of the requested range.
func (r AddResult) Requested() int {
	return r.NewlyAdded + r.AlreadyTracked + r.Unwatchable
}

// Outcome classifies the result by the already-tracked count: zero means
// Full, the whole range means None, anything in between means Partial.
func (r AddResult) Outcome() AddOutcome {
	switch {
	case r.AlreadyTracked == 0:
		return AddFull
	case r.AlreadyTracked == r.Requested():
		return AddNone
	default:
		return AddPartial
	}
}
