package htree

// Backend is the pluggable low-level storage strategy a Context uses for
// payload bytes: allocate, resize, free, and error reporting.
//
// Replacing a Context's Backend while it owns live allocations that the
// previous Backend must eventually free is undefined behavior.
type Backend interface {
	// Allocate returns a freshly zeroed buffer of n bytes, or nil if it
	// cannot satisfy the request.
	Allocate(n int) []byte

	// Resize grows or shrinks buf to n bytes, preserving the first
	// min(len(buf), n) bytes, and reports whether the returned slice has a
	// different backing array than buf (a relocation). Returns (nil,
	// false) on failure, leaving buf untouched.
	Resize(buf []byte, n int) (out []byte, moved bool)

	// Free releases buf. A no-op for a GC-backed Backend, but still called
	// for parity with arena/pool-backed Backends and so Backend
	// implementations can track live byte counts the way nodePool tracks
	// live Nodes.
	Free(buf []byte)

	// Error reports an allocation failure, an arithmetic overflow, or a
	// structural corruption found by Check. The default Backend's Error
	// panics — unlike a raw process abort, an unrecovered panic still
	// unwinds deferred cleanup, and a caller may install its own hook that
	// logs and continues, at which point further behavior is undefined.
	Error(err error)
}

// goBackend is the default Backend: Go heap allocation via make([]byte, n),
// resizing by reslicing within the existing capacity or, once capacity is
// exceeded, copying into a fresh make([]byte, n) (so shrinking never
// moves), and a panicking Error hook.
type goBackend struct{}

// NewGoBackend returns the default heap-backed Backend.
func NewGoBackend() Backend { return goBackend{} }

func (goBackend) Allocate(n int) []byte {
	if n < 0 {
		return nil
	}
	return make([]byte, n)
}

func (goBackend) Resize(buf []byte, n int) ([]byte, bool) {
	if n < 0 {
		return nil, false
	}
	switch {
	case n <= cap(buf):
		// Fits within the existing backing array: reslice in place,
		// zeroing any newly exposed tail, no relocation.
		out := buf[:n]
		for i := len(buf); i < n; i++ {
			out[i] = 0
		}
		return out, false
	default:
		out := make([]byte, n)
		copy(out, buf)
		return out, true
	}
}

func (goBackend) Free([]byte) {}

func (goBackend) Error(err error) {
	panic(err)
}
