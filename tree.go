package htree

import "fmt"

// newProperty allocates a property record through the same Backend as
// payload bytes, not through a separate pool. A zero-size Allocate call
// stands in for "allocate one header-sized record," so a test Backend that
// fails its Nth call can force a specific property allocation (e.g. the
// CHILDREN property addChild lazily creates) to fail.
func (c *Context) newProperty() (*property, error) {
	if c.backend.Allocate(0) == nil {
		return nil, fmt.Errorf("%w: property record", ErrAllocFailed)
	}
	return &property{}, nil
}

// resolveParent maps a nil parent to the sentinel root.
func (c *Context) resolveParent(parent *Node) *Node {
	if parent == nil {
		return c.sentinel
	}
	return parent
}

// resolveRoot maps a nil traversal root to the sentinel root, so First and
// Next can treat "whole forest" and "subtree of root" uniformly.
func (c *Context) resolveRoot(root *Node) *Node {
	if root == nil {
		return c.sentinel
	}
	return root
}

// listInsertHead links child as the new head of cp's child-sibling list.
func listInsertHead(cp *property, child *Node) {
	if cp.childHead == nil {
		child.siblingNext = child
		child.siblingPrev = child
		cp.childHead = child
		return
	}
	head := cp.childHead
	tail := head.siblingPrev
	child.siblingNext = head
	child.siblingPrev = tail
	head.siblingPrev = child
	tail.siblingNext = child
	cp.childHead = child
}

// listRemove unlinks child from cp's child-sibling list and isolates it.
func listRemove(cp *property, child *Node) {
	if child.siblingNext == child {
		cp.childHead = nil
	} else {
		child.siblingPrev.siblingNext = child.siblingNext
		child.siblingNext.siblingPrev = child.siblingPrev
		if cp.childHead == child {
			cp.childHead = child.siblingNext
		}
	}
	child.siblingNext = child
	child.siblingPrev = child
}

// addChild finds or lazily creates parent's CHILDREN property and links
// child under it. On the very first child ever added anywhere in c, it also
// triggers the Context's one-time initialization.
func (c *Context) addChild(parent, child *Node) error {
	c.ensureInit()

	slot, found := findProperty(&parent.props, propChildren)
	var cp *property
	if found {
		cp = *slot
	} else {
		newCp, err := c.newProperty()
		if err != nil {
			return err
		}
		newCp.kind = propChildren
		newCp.owner = parent
		initProperty(&parent.props, newCp)
		cp = newCp
	}
	listInsertHead(cp, child)
	child.parentChildren = cp
	return nil
}

// Alloc allocates a size-byte payload under parent (or the sentinel if
// parent is nil), optionally zeroing it (goBackend.Allocate already
// zeroes; a custom Backend need not), and optionally tagging it with a
// borrowed literal label instead of a heap-copied name.
func (c *Context) Alloc(parent *Node, size int, clear bool, label string) (*Node, error) {
	p := c.resolveParent(parent)

	buf := c.backend.Allocate(size)
	if buf == nil {
		err := fmt.Errorf("%w: %d bytes", ErrAllocFailed, size)
		c.backend.Error(err)
		return nil, err
	}
	// clear is accepted for API symmetry with AllocArray/Dup; a Go Backend
	// always returns zeroed storage (there is no way to expose uninitialized
	// memory safely), so clear=false has no further effect here.
	_ = clear

	n := c.nodes.Get()
	n.ctx = c
	n.payload = buf
	n.siblingNext = n
	n.siblingPrev = n
	if label != "" {
		n.props = &property{kind: propName, literal: true, name: label}
	}

	if err := c.addChild(p, n); err != nil {
		c.backend.Free(buf)
		c.nodes.Put(n)
		return nil, err
	}

	if c.notifierCount > 0 {
		c.fire(p, EventAddChild, n)
	}
	return n, nil
}

// Free recursively destroys n's entire subtree. A nil receiver is a no-op.
// Re-entrant Free of a node already mid-teardown (e.g. from within its own
// destructor) returns immediately.
func (n *Node) Free() {
	if n == nil {
		return
	}
	c := n.ctx
	parent := n.Parent()
	if c.notifierCount > 0 && parent != nil {
		c.fire(parent, EventDelChild, n)
	}
	n.detach()
	c.delTree(n)
}

// detach unlinks n from whatever sibling list it currently belongs to.
func (n *Node) detach() {
	cp := n.parentChildren
	if cp == nil {
		return
	}
	listRemove(cp, n)
	n.parentChildren = nil
}

// delTree fires FREE on n, then recursively tears down its children
// (re-reading the child-list head after every callback, since a destructor
// or notifier may mutate the tree), then drops n's own properties and
// returns n to the pool.
func (c *Context) delTree(n *Node) {
	if n.destroying {
		return
	}
	n.destroying = true

	c.fire(n, EventFree, nil)

	for {
		cp := n.childrenProperty()
		if cp == nil || cp.childHead == nil {
			break
		}
		child := cp.childHead
		child.detach()
		c.delTree(child)
	}

	c.freeProperties(n)
	c.backend.Free(n.payload)
	c.nodes.Put(n)
}

// freeProperties releases every property on n except LENGTH (never
// heap-freed independently of the node it describes) and a literal NAME (a
// borrowed reference the caller owns, never htree's to free).
func (c *Context) freeProperties(n *Node) {
	for p := n.props; p != nil; {
		next := p.next
		if p.kind == propLength || (p.kind == propName && p.literal) {
			p = next
			continue
		}
		if p.kind == propNotifier && p.mask != EventFree {
			c.notifierCount--
		}
		c.backend.Free(nil) // paired with this property's newProperty() call
		p = next
	}
	n.props = nil
}

// Steal reparents n under newParent (or the sentinel if newParent is
// nil). If re-attaching under newParent fails, n is restored to its
// previous parent — which cannot fail, since that CHILDREN property is
// still live — and the failure is reported.
func (n *Node) Steal(newParent *Node) error {
	if n == nil {
		return nil
	}
	c := n.ctx
	newP := c.resolveParent(newParent)
	oldCp := n.parentChildren

	sameParent := oldCp != nil && oldCp.owner == newP
	if !sameParent {
		n.detach()
		if err := c.addChild(newP, n); err != nil {
			listInsertHead(oldCp, n)
			n.parentChildren = oldCp
			return err
		}
	}

	if c.notifierCount > 0 {
		c.fire(n, EventSteal, newP)
	}
	return nil
}

// First returns the first child of root, or of the sentinel if root is
// nil.
func (c *Context) First(root *Node) *Node {
	r := c.resolveRoot(root)
	return r.childrenHead()
}

// Next returns the next node in depth-first pre-order within the subtree
// rooted at root (or the sentinel if root is nil), given the previously
// visited node prev. It is restartable and non-recursive: it carries no
// state of its own between calls beyond prev itself.
func (c *Context) Next(root, prev *Node) *Node {
	r := c.resolveRoot(root)
	if prev == nil {
		return nil
	}
	if h := prev.childrenHead(); h != nil {
		return h
	}
	cur := prev
	for cur != r {
		cp := cur.parentChildren
		if cp == nil {
			return nil
		}
		nxt := cur.siblingNext
		if nxt != cp.childHead {
			return nxt
		}
		cur = cp.owner
	}
	return nil
}
