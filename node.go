package htree

// Node is one allocation: a header (sibling links, parent linkage,
// property list) plus a payload byte slice. The zero Node is not valid;
// Nodes are only produced by a Context's Alloc/AllocArray/Dup.
//
// A Node's identity is a stable *Node for its entire lifetime: resizing its
// payload only ever reallocates the backing array of the payload slice, the
// Node itself never moves. Sibling and parent pointers always reference the
// Node, never its payload bytes, so they stay valid across a resize without
// any repair pass.
type Node struct {
	ctx *Context

	// siblingNext/siblingPrev form a circular doubly linked list anchored
	// at the parent's CHILDREN property (parentChildren.childHead). A node
	// with no siblings points to itself.
	siblingNext *Node
	siblingPrev *Node

	// parentChildren is the parent's CHILDREN property this node is linked
	// under: a reference to the parent's child-list property, not to the
	// parent Node directly, so the Node's actual parent is
	// parentChildren.owner. nil only for the sentinel root.
	parentChildren *property

	// destroying marks this node's subtree as mid-teardown, guarding
	// against re-entrant Free calls (e.g. from within one of its own
	// destructors) recursing or double-freeing.
	destroying bool

	// props is the head of this node's own property list.
	props *property

	payload []byte
}

// Bytes returns the Node's payload. The returned slice aliases the Node's
// backing storage; it is invalidated by a subsequent Resize that relocates
// the backing array.
func (n *Node) Bytes() []byte {
	if n == nil {
		return nil
	}
	return n.payload
}

// Parent returns the recorded parent, or nil if n is parentless — which
// includes the case where n's real parent is the Context's sentinel root,
// since the sentinel is an implementation detail and never observable as a
// parent.
func (n *Node) Parent() *Node {
	if n == nil || n.parentChildren == nil {
		return nil
	}
	owner := n.parentChildren.owner
	if owner == nil || owner.isSentinel() {
		return nil
	}
	return owner
}

func (n *Node) isSentinel() bool {
	return n != nil && n.ctx != nil && n == n.ctx.sentinel
}

// childrenProperty returns n's CHILDREN property, or nil if n has never had
// a child. Once created the property persists (possibly describing an
// empty child list after the last child is removed); it is never created
// speculatively.
func (n *Node) childrenProperty() *property {
	slot, found := findProperty(&n.props, propChildren)
	if !found {
		return nil
	}
	return *slot
}

// childrenHead returns n's first child, or nil if n has none.
func (n *Node) childrenHead() *Node {
	cp := n.childrenProperty()
	if cp == nil {
		return nil
	}
	return cp.childHead
}

// reset clears a Node so it can be safely handed back to the node pool for
// reuse (mirrors the teacher's pool.go node.reset()).
func (n *Node) reset() {
	*n = Node{}
}
