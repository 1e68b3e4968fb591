package htree

import "errors"

// The three error kinds htree distinguishes. Each is wrapped with
// fmt.Errorf("...: %w", ...) at the call site that detected it, following
// the teacher's own fmt.Errorf-based error reporting (fasttable.go,
// litetable.go) and the rest of the retrieval pack's stdlib-only error
// wrapping.
var (
	// ErrAllocFailed is reported when the Backend cannot satisfy an
	// allocation or resize request.
	ErrAllocFailed = errors.New("htree: backend allocation failed")

	// ErrOverflow is reported when a size computation (elemSize*count,
	// old+added, header/tail padding) would overflow.
	ErrOverflow = errors.New("htree: arithmetic overflow in size computation")

	// ErrCorrupt is reported by Check when it finds a structural
	// invariant violation.
	ErrCorrupt = errors.New("htree: structural invariant violation")
)
