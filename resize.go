package htree

import (
	"fmt"
	"math"
	"unsafe"
)

// lengthProperty returns n's LENGTH property, or nil if n was not
// allocated with count tracking.
//
// LENGTH lives as an ordinary header-side property rather than being
// physically appended to the tail of the payload allocation: a property
// record is already a cheap GC-managed value, so there is no second malloc
// call worth saving by piggybacking it on the payload's own backing array.
func (n *Node) lengthProperty() *property {
	slot, found := findProperty(&n.props, propLength)
	if !found {
		return nil
	}
	return *slot
}

// Count returns the recorded element count, or 0 if n carries no LENGTH
// property.
func (n *Node) Count() int {
	if lp := n.lengthProperty(); lp != nil {
		return lp.count
	}
	return 0
}

func mulOverflowInt(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/a != b || r < 0 {
		return 0, false
	}
	return r, true
}

func addOverflowInt(a, b int) (int, bool) {
	if b > 0 && a > math.MaxInt-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt-b {
		return 0, false
	}
	return a + b, true
}

// AllocArray allocates elemSize*count bytes under parent, failing cleanly
// on overflow without allocating. If addCount is true, a LENGTH property
// recording count is attached; on any failure after the payload was
// allocated, the whole Node is unwound via Free so parent's child list is
// left exactly as it was before the call.
func (c *Context) AllocArray(parent *Node, elemSize, count int, clear, addCount bool, label string) (*Node, error) {
	total, ok := mulOverflowInt(elemSize, count)
	if !ok {
		err := fmt.Errorf("%w: %d * %d", ErrOverflow, elemSize, count)
		c.backend.Error(err)
		return nil, err
	}

	n, err := c.Alloc(parent, total, clear, label)
	if err != nil {
		return nil, err
	}

	if addCount {
		lp, err := c.newProperty()
		if err != nil {
			n.Free()
			return nil, err
		}
		lp.kind = propLength
		lp.count = count
		initProperty(&n.props, lp)
	}
	return n, nil
}

// Resize grows or shrinks n's payload to elemSize*newCount bytes in place.
// If n carries a LENGTH property its count is updated to newCount. If the
// backend relocated the payload, EventMove fires with the old payload as
// info before EventResize fires with the new byte size.
func (n *Node) Resize(elemSize, newCount int) error {
	c := n.ctx
	newSize, ok := mulOverflowInt(elemSize, newCount)
	if !ok {
		err := fmt.Errorf("%w: %d * %d", ErrOverflow, elemSize, newCount)
		c.backend.Error(err)
		return err
	}

	out, moved := c.backend.Resize(n.payload, newSize)
	if out == nil {
		err := fmt.Errorf("%w: resize to %d bytes", ErrAllocFailed, newSize)
		c.backend.Error(err)
		return err
	}

	old := n.payload
	n.payload = out
	if lp := n.lengthProperty(); lp != nil {
		lp.count = newCount
	}

	if c.notifierCount > 0 {
		if moved {
			c.fire(n, EventMove, old)
		}
		c.fire(n, EventResize, newSize)
	}
	return nil
}

//nolint:gosec // address-range comparison only, never dereferenced or aliased for mutation
func overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	aStart := uintptr(unsafe.Pointer(&a[0]))
	aEnd := aStart + uintptr(len(a))
	bStart := uintptr(unsafe.Pointer(&b[0]))
	bEnd := bStart + uintptr(len(b))
	return aStart < bEnd && bStart < aEnd
}

// Expand grows n by addedCount elements of elemSize bytes and copies src
// into the newly added tail. src must not alias the region being grown,
// and old count + added count must not overflow.
func (n *Node) Expand(elemSize, addedCount int, src []byte) error {
	c := n.ctx
	oldCount := n.Count()
	newCount, ok := addOverflowInt(oldCount, addedCount)
	if !ok {
		err := fmt.Errorf("%w: %d + %d", ErrOverflow, oldCount, addedCount)
		c.backend.Error(err)
		return err
	}
	if overlaps(src, n.payload) {
		return fmt.Errorf("htree: expand source aliases destination")
	}

	oldSize := len(n.payload)
	if err := n.Resize(elemSize, newCount); err != nil {
		return err
	}
	copy(n.payload[oldSize:], src)
	return nil
}

// Dup creates a new array allocation under parent holding extra additional
// elements beyond a copy of src's tracked contents, copying
// min(src.Count()*elemSize, len(src.Bytes())) bytes from src. If the Context's TakenTracker reports src as a taken pointer, Dup
// takes the optimized path of resizing src in place and stealing it under
// parent instead of copying.
//
// src is a *Node rather than a raw pointer plus an explicit element count:
// Go has no way to recover a Node header from a bare payload pointer, so
// the taken-pointer fast path needs the Node handle itself, not just its
// bytes, and the element count is simply src.Count().
func (c *Context) Dup(parent, src *Node, elemSize, extra int, addCount bool, label string) (*Node, error) {
	if src == nil {
		return nil, fmt.Errorf("htree: dup of nil source")
	}

	if c.taken.IsTaken(src.Bytes()) {
		c.taken.Take(src.Bytes())
		if err := src.Resize(elemSize, src.Count()+extra); err != nil {
			return nil, err
		}
		if err := src.Steal(parent); err != nil {
			return nil, err
		}
		return src, nil
	}

	n := src.Count()
	total, ok := addOverflowInt(n, extra)
	if !ok {
		err := fmt.Errorf("%w: %d + %d", ErrOverflow, n, extra)
		c.backend.Error(err)
		return nil, err
	}

	dst, err := c.AllocArray(parent, elemSize, total, true, addCount, label)
	if err != nil {
		return nil, err
	}

	srcBytes := src.Bytes()
	copyBytes := n * elemSize
	if copyBytes > len(srcBytes) {
		copyBytes = len(srcBytes)
	}
	copy(dst.Bytes(), srcBytes[:copyBytes])
	return dst, nil
}
