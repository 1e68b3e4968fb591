package htree

import "fmt"

// Check walks n's property list and child-sibling list verifying this
// package's structural invariants: at most one CHILDREN/NAME/LENGTH
// property, every recorded child's parentChildren points back at n's own
// CHILDREN property, the sibling list is a correctly terminated circular
// ring, and a literal NAME is never anything but the last property. Any
// violation is reported through the Context's Backend Error hook and Check
// returns false. There is no check for physical allocation bounds, since Go
// slices carry their own bounds and cannot be read or written out of range.
func (c *Context) Check(n *Node) bool {
	if n == nil {
		return true
	}
	ok := true
	seen := map[propKind]int{}
	for p := n.props; p != nil; p = p.next {
		seen[p.kind]++
		if p.kind == propName && p.literal && p.next != nil {
			c.backend.Error(fmt.Errorf("%w: literal name is not last property", ErrCorrupt))
			ok = false
		}
	}
	for kind, count := range seen {
		if kind != propNotifier && count > 1 {
			c.backend.Error(fmt.Errorf("%w: node has %d properties of kind %d, want at most 1", ErrCorrupt, count, kind))
			ok = false
		}
	}

	cp := n.childrenProperty()
	if cp != nil && cp.childHead != nil {
		head := cp.childHead
		child := head
		count := 0
		for {
			if child.parentChildren != cp {
				c.backend.Error(fmt.Errorf("%w: child's parentChildren does not match parent's CHILDREN property", ErrCorrupt))
				ok = false
			}
			if !c.Check(child) {
				ok = false
			}
			child = child.siblingNext
			count++
			if child == head {
				break
			}
			if count > 1<<20 {
				c.backend.Error(fmt.Errorf("%w: sibling ring did not close, possible corruption", ErrCorrupt))
				ok = false
				break
			}
		}
	}
	return ok
}

// String renders a short one-line summary of n for ad hoc debugging. It is
// not a stable format.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	name := n.Name()
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("Node{name=%q, bytes=%d, count=%d}", name, len(n.payload), n.Count())
}
