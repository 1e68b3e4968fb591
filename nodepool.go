package htree

import (
	"sync"
	"sync/atomic"
)

// nodePool is a type-safe wrapper around sync.Pool specialized for
// recycling *Node headers, adapted from the teacher's pool[V] (pool.go):
// same Get/Put/Stats shape, same live/total bookkeeping, generalized from
// trie nodes to allocator headers.
type nodePool struct {
	sync.Pool

	totalAllocated atomic.Int64 // total number of *Node ever allocated
	currentLive    atomic.Int64 // number of Nodes currently checked out
}

// newNodePool creates a pool that manufactures fresh *Node values on demand.
func newNodePool() *nodePool {
	p := &nodePool{}
	p.New = func() any {
		p.totalAllocated.Add(1)
		return new(Node)
	}
	return p
}

// Get retrieves a *Node from the pool, or allocates one if the pool is
// empty. If p is nil, a new Node is returned without tracking.
func (p *nodePool) Get() *Node {
	if p == nil {
		return new(Node)
	}
	p.currentLive.Add(1)
	return p.Pool.Get().(*Node)
}

// Put resets n and returns it to the pool for reuse. If p is nil, n is
// discarded.
func (p *nodePool) Put(n *Node) {
	if p == nil {
		return
	}
	p.currentLive.Add(-1)
	n.reset()
	p.Pool.Put(n)
}

// Stats returns the number of currently live (checked-out) Nodes and the
// total number ever allocated by this pool.
func (p *nodePool) Stats() (live int64, total int64) {
	if p == nil {
		return 0, 0
	}
	return p.currentLive.Load(), p.totalAllocated.Load()
}
