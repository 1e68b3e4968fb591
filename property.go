package htree

// propKind discriminates the four kinds of property a node's property list
// may hold: the child list, the name, a notifier/destructor, and the
// tracked element count.
type propKind uint8

const (
	propChildren propKind = iota
	propName
	propNotifier
	propLength
)

// property is one node in the intrusive, singly linked property list.
// No node has two properties of the same kind except propNotifier, which
// may repeat.
//
// A propName property with literal set to true acts as the list's
// terminator: find/walk stops at the first literal it encounters, and
// nothing may follow it. It is never heap-freed independently of its
// caller-owned string (it is a borrowed reference).
type property struct {
	kind propKind
	next *property

	// propChildren
	owner     *Node // the node this CHILDREN property belongs to
	childHead *Node // head of the child-sibling list

	// propName
	name    string
	literal bool

	// propNotifier
	mask       Event
	destructor bool
	notify     NotifyFunc
	destruct   DestructFunc

	// propLength
	count int
}

// findProperty walks list starting at *head looking for the first property
// of kind, stopping at the first literal terminator it encounters (a
// literal shadows anything that would follow it, and nothing does follow
// it by construction). It returns the address of the pointer slot that
// holds the matching property (either head itself, or the &prev.next
// field), so callers can unlink in O(1), together with whether a match was
// actually found. When the walk stops at a literal before finding kind
// (only possible when kind is not propName, since the literal is itself a
// propName), the literal still occupies *slot — callers must check found rather
// than just *slot != nil, since a non-nil-but-unmatched slot otherwise
// looks identical to a real match.
func findProperty(head **property, kind propKind) (slot **property, found bool) {
	slot = head
	for *slot != nil {
		p := *slot
		if p.kind == kind {
			return slot, true
		}
		if p.kind == propName && p.literal {
			// literal terminates the chain; nothing beyond it exists.
			return slot, false
		}
		slot = &p.next
	}
	return slot, false
}

// initProperty pushes p onto the head of the list rooted at *head.
func initProperty(head **property, p *property) {
	p.next = *head
	*head = p
}

// unlink removes the property held in *slot (as returned by findProperty)
// from the list, given its predecessor's next pointer (or the list head)
// is exactly *slot.
func unlink(slot **property) *property {
	p := *slot
	if p != nil {
		*slot = p.next
		p.next = nil
	}
	return p
}
