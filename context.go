package htree

import "sync"

// Context owns one allocation forest: its sentinel root, its pluggable
// Backend, its node pool, and the non-FREE notifier count that gates the
// ADD_CHILD/DEL_CHILD/MOVE/RESIZE/RENAME fire sites so notify-free trees pay
// nothing for the check.
//
// A Context is not safe for concurrent use from multiple goroutines without
// external serialization.
type Context struct {
	backend Backend
	nodes   *nodePool
	taken   TakenTracker

	sentinel *Node

	// notifierCount is the count of registered notifiers/destructors whose
	// mask is not exactly EventFree, across every node in this Context.
	notifierCount int

	initOnce sync.Once
}

// Option configures a Context at construction.
type Option func(*Context)

// WithBackend installs a custom Backend instead of the default
// Go-heap-backed one.
func WithBackend(b Backend) Option {
	return func(c *Context) { c.backend = b }
}

// WithTakenTracker installs a custom TakenTracker instead of the no-op
// default.
func WithTakenTracker(t TakenTracker) Option {
	return func(c *Context) { c.taken = t }
}

// NewContext constructs an independent Context with its own sentinel root.
// Each Context is fully isolated: no state is shared between Contexts,
// which keeps tests that need a clean allocation forest trivial to set up.
func NewContext(opts ...Option) *Context {
	c := &Context{
		backend: NewGoBackend(),
		nodes:   newNodePool(),
		taken:   noopTaken{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sentinel = &Node{ctx: c}
	c.sentinel.siblingNext = c.sentinel
	c.sentinel.siblingPrev = c.sentinel
	return c
}

// SetBackend replaces c's Backend. Behavior is undefined if live
// allocations exist that must later be freed by the previous Backend —
// callers that need to swap backends must first drain c of allocations.
func (c *Context) SetBackend(b Backend) {
	c.backend = b
}

// ensureInit performs one-time setup the first time c ever gets a child:
// wiring the TakenTracker's allocation-failure hook to the Backend's Free,
// so a failed allocation after a pointer was taken still releases it. There is no hook here for detecting leaked top-level nodes
// at process exit — Go's garbage collector, not a sentinel-walking leak
// detector, is how an idiomatic Go program observes unreachable memory.
func (c *Context) ensureInit() {
	c.initOnce.Do(func() {
		c.taken.OnAllocFailure(func(payload []byte) {
			c.backend.Free(payload)
		})
	})
}
