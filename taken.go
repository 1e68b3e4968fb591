package htree

// TakenTracker is the external "taken pointer" collaborator: Dup consults
// it to recognize a src payload whose ownership has already been
// transferred to it, in which case it takes the zero-copy fast path of
// resizing src in place and stealing it under the new parent instead of
// copying. Expand does not consult it: a src handed to Expand is always
// copied and its taken marking, if any, is left as it was.
//
// Implementing the bookkeeping behind IsTaken/Take is left entirely to the
// caller; htree only specifies and calls through this seam. A Context
// constructed without WithTakenTracker uses noopTaken, under which no
// payload is ever considered taken and Dup always takes the copying path.
type TakenTracker interface {
	// IsTaken reports whether payload was previously marked taken and has
	// not yet been consumed.
	IsTaken(payload []byte) bool

	// Take consumes payload's taken marking; it is called once htree has
	// acted on a positive IsTaken result.
	Take(payload []byte)

	// OnAllocFailure registers fn to be invoked if an allocation that
	// would otherwise consume a taken pointer fails after the pointer was
	// already taken, so the collaborator can still release it.
	OnAllocFailure(fn func(payload []byte))
}

type noopTaken struct{}

func (noopTaken) IsTaken([]byte) bool             { return false }
func (noopTaken) Take([]byte)                     {}
func (noopTaken) OnAllocFailure(func(payload []byte)) {}
