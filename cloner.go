// SPDX-License-Identifier: MIT

package htree

// Cloner lets a value encoded into a Node's payload customize how DupValue
// deep-copies it, generalized from the teacher's Cloner[V], whose
// InsertPersist/Clone family of Table methods prefer a value's own Clone
// over a shallow copy when the value implements it.
type Cloner[V any] interface {
	Clone() V
}

// DupValue encodes value with encode (calling value's own Clone first when
// it implements Cloner[V], the same preference bart's persistent Table
// methods give a Cloner value over a raw copy) and allocates a new Node
// under parent holding the result.
func DupValue[V any](c *Context, parent *Node, value V, encode func(V) []byte, label string) (*Node, error) {
	if cloner, ok := any(value).(Cloner[V]); ok {
		value = cloner.Clone()
	}
	buf := encode(value)
	n, err := c.Alloc(parent, len(buf), true, label)
	if err != nil {
		return nil, err
	}
	copy(n.Bytes(), buf)
	return n, nil
}
