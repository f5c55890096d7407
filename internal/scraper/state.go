package scraper

// CheckState is a step of the per-paragraph cross-check.
type CheckState string

const (
	StateQuerying             CheckState = "querying"
	StateAwaitingVerification CheckState = "awaiting-verification"
	StateContentCheck         CheckState = "content-check"
	StateIndexed              CheckState = "indexed"
	StateNotIndexed           CheckState = "not-indexed"
)

// StateFunc observes cross-check state transitions. query is the fragment
// being searched.
type StateFunc func(query string, state CheckState)

// Emit calls f when it is set.
func (f StateFunc) Emit(query string, state CheckState) {
	if f != nil {
		f(query, state)
	}
}
