package htree

import "fmt"

// NotifierHandle identifies a previously registered notifier or destructor
// so it can later be removed.
//
// Go func values are not comparable (other than to nil), so removal can't
// match a registration by comparing callback pointers; NotifierHandle is the
// token-based alternative — AddNotifier/AddDestructor return one, and Del*
// takes it back, the same unsubscribe shape used throughout the Go ecosystem
// (e.g. context.CancelFunc, time.AfterFunc's *Timer).
type NotifierHandle struct {
	node *Node
	prop *property
}

// AddNotifier registers a general notifier firing on any event in types.
// types must be non-zero and a subset of the known event set.
func (n *Node) AddNotifier(types Event, cb NotifyFunc) (*NotifierHandle, error) {
	return n.ctx.addNotifier(n, types, false, cb, nil)
}

// AddDestructor registers a destructor: a notifier that fires only on
// EventFree and receives just the payload.
func (n *Node) AddDestructor(cb DestructFunc) (*NotifierHandle, error) {
	return n.ctx.addNotifier(n, EventFree, true, nil, cb)
}

func (c *Context) addNotifier(n *Node, types Event, destructor bool, notify NotifyFunc, destruct DestructFunc) (*NotifierHandle, error) {
	if types == 0 || types&^allEvents != 0 {
		return nil, fmt.Errorf("htree: invalid notifier mask %v", types)
	}

	np, err := c.newProperty()
	if err != nil {
		return nil, err
	}
	np.kind = propNotifier
	np.destructor = destructor
	np.notify = notify
	np.destruct = destruct
	np.mask = 0 // the ADD_NOTIFIER fire below must not re-invoke this callback
	initProperty(&n.props, np)

	if c.notifierCount > 0 {
		c.fire(n, EventAddNotifier, types)
	}
	np.mask = types

	if types != EventFree {
		c.notifierCount++
	}
	return &NotifierHandle{node: n, prop: np}, nil
}

// DelNotifier removes a notifier previously registered with AddNotifier or
// AddDestructor, firing EventDelNotifier and adjusting the non-FREE
// notifier count symmetrically with how it was incremented. It reports
// whether a matching registration was found and removed.
func (n *Node) DelNotifier(h *NotifierHandle) bool {
	if h == nil || h.node != n {
		return false
	}
	c := n.ctx
	slot := &n.props
	for *slot != nil {
		p := *slot
		if p == h.prop {
			unlink(slot)
			if c.notifierCount > 0 {
				c.fire(n, EventDelNotifier, p.mask)
			}
			if p.mask != EventFree {
				c.notifierCount--
			}
			c.backend.Free(nil) // paired with the Allocate(0) in newProperty
			return true
		}
		if p.kind == propName && p.literal {
			break
		}
		slot = &p.next
	}
	return false
}

// DelDestructor removes a destructor previously registered with
// AddDestructor; it is DelNotifier under the destructor-specific name, since
// both go through the same removal machinery.
func (n *Node) DelDestructor(h *NotifierHandle) bool {
	return n.DelNotifier(h)
}

// fire invokes every notifier/destructor on n whose mask includes event,
// in property-list order (head first, i.e. reverse-registration order).
func (c *Context) fire(n *Node, event Event, info any) {
	for p := n.props; p != nil; p = p.next {
		if p.kind == propName && p.literal {
			break
		}
		if p.kind != propNotifier || p.mask&event == 0 {
			continue
		}
		if p.destructor {
			if event == EventFree && p.destruct != nil {
				p.destruct(n.payload)
			}
			continue
		}
		if p.notify != nil {
			p.notify(n.payload, event, info)
		}
	}
}
