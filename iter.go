package htree

import "iter"

// Walk yields every node in root's subtree in depth-first pre-order,
// built on First/Next the same way the teacher's generated iterators wrap
// a cursor-style Next in an iter.Seq. Free-ing the current node from within
// the loop body does not crash, but it ends the walk there: the freed node
// is detached, so Next finds no successor for it. Mutating nodes Walk has
// not yet reached is not safe.
func (c *Context) Walk(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		r := c.resolveRoot(root)
		for n := c.First(r); n != nil; n = c.Next(r, n) {
			if !yield(n) {
				return
			}
		}
	}
}
