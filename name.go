package htree

import "fmt"

func (n *Node) nameProperty() *property {
	slot, found := findProperty(&n.props, propName)
	if !found {
		return nil
	}
	return *slot
}

// Name returns n's current name, or "" if none was ever set.
func (n *Node) Name() string {
	if np := n.nameProperty(); np != nil {
		return np.name
	}
	return ""
}

// SetName replaces n's name. A literal name is a borrowed
// reference the caller must keep alive for n's lifetime and is never
// freed by htree; a non-literal name is copied onto the heap via the
// Context's Backend and freed along with n's other properties. Replacing
// an existing heap name frees the old one first. Fires EventRename.
func (n *Node) SetName(name string, literal bool) error {
	c := n.ctx
	slot, found := findProperty(&n.props, propName)

	if found {
		old := *slot
		unlink(slot)
		if !old.literal {
			c.backend.Free(nil) // paired with the Allocate(0) that created old
		}
	}

	np, err := c.newProperty()
	if err != nil {
		return fmt.Errorf("htree: set name: %w", err)
	}
	np.kind = propName
	np.name = name
	np.literal = literal
	if literal {
		// A literal name terminates the list, so it goes at the tail.
		tail := &n.props
		for *tail != nil {
			tail = &(*tail).next
		}
		*tail = np
	} else {
		initProperty(&n.props, np)
	}

	if c.notifierCount > 0 {
		c.fire(n, EventRename, name)
	}
	return nil
}
