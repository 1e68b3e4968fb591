package htree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScenarioBasicParentChildFreeOrder is S1: free(A) fires A's destructor
// first, while B and C are still present, then tears down B and C.
func TestScenarioBasicParentChildFreeOrder(t *testing.T) {
	ctx := NewContext()
	a, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)
	require.Nil(t, a.Parent())

	b, err := ctx.Alloc(a, 0, true, "")
	require.NoError(t, err)
	c, err := ctx.Alloc(a, 0, true, "")
	require.NoError(t, err)
	require.Same(t, a, b.Parent())
	require.Same(t, a, c.Parent())

	var order []string
	_, err = a.AddDestructor(func([]byte) { order = append(order, "A") })
	require.NoError(t, err)
	_, err = b.AddDestructor(func([]byte) { order = append(order, "B") })
	require.NoError(t, err)
	_, err = c.AddDestructor(func([]byte) { order = append(order, "C") })
	require.NoError(t, err)

	a.Free()

	require.Equal(t, "A", order[0])
	require.ElementsMatch(t, []string{"A", "B", "C"}, order)
}

// TestScenarioArrayResizeNotifications is S2: resize(X, 4, 25) updates
// count, fires RESIZE with the new byte size, and fires MOVE first with the
// old payload if the backend relocated it.
func TestScenarioArrayResizeNotifications(t *testing.T) {
	ctx := NewContext()
	x, err := ctx.AllocArray(nil, 4, 10, true, true, "")
	require.NoError(t, err)
	require.Equal(t, 10, x.Count())

	var events []Event
	var resizeInfo any
	var moveSeenFirst bool
	_, err = x.AddNotifier(EventMove|EventResize, func(_ []byte, event Event, info any) {
		if event == EventMove && len(events) == 0 {
			moveSeenFirst = true
		}
		events = append(events, event)
		if event == EventResize {
			resizeInfo = info
		}
	})
	require.NoError(t, err)

	require.NoError(t, x.Resize(4, 25))
	require.Equal(t, 25, x.Count())
	require.Equal(t, 100, resizeInfo)
	if len(events) == 2 {
		require.True(t, moveSeenFirst)
	}
}

// TestScenarioStealDetachesFromOldParent is S3.
func TestScenarioStealDetachesFromOldParent(t *testing.T) {
	ctx := NewContext()
	p, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)
	q, err := ctx.Alloc(p, 0, true, "")
	require.NoError(t, err)

	var stealCount int
	_, err = q.AddNotifier(EventSteal, func([]byte, Event, any) { stealCount++ })
	require.NoError(t, err)

	require.NoError(t, q.Steal(nil))
	require.Nil(t, q.Parent())
	require.Nil(t, ctx.First(p))
	require.Equal(t, 1, stealCount)

	var qFreed bool
	_, err = q.AddDestructor(func([]byte) { qFreed = true })
	require.NoError(t, err)

	p.Free()
	require.False(t, qFreed, "freeing P must not free Q once Q was stolen away")
}

// TestScenarioLiteralNameReplacesHeapNameCleanly is S4.
func TestScenarioLiteralNameReplacesHeapNameCleanly(t *testing.T) {
	ctx := NewContext()
	n, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)

	require.NoError(t, n.SetName("alpha", false))
	require.NoError(t, n.SetName("beta", true))
	require.Equal(t, "beta", n.Name())

	np := n.nameProperty()
	require.NotNil(t, np)
	require.True(t, np.literal)
}

// TestScenarioReentrantDestructorRunsOnce is S5.
func TestScenarioReentrantDestructorRunsOnce(t *testing.T) {
	ctx := NewContext()
	m, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)

	var runs int
	_, err = m.AddDestructor(func([]byte) {
		runs++
		m.Free()
	})
	require.NoError(t, err)

	m.Free()
	require.Equal(t, 1, runs)
}

// failNthBackend wraps goBackend, returning nil from Allocate on the nth
// call (1-indexed).
type failNthBackend struct {
	Backend
	n     int
	calls int
}

func (f *failNthBackend) Allocate(size int) []byte {
	f.calls++
	if f.calls == f.n {
		return nil
	}
	return f.Backend.Allocate(size)
}

// TestScenarioAllocArrayFailureLeavesParentUnchanged is S6: on a parent
// with no children yet, alloc_array(add_count=true) makes three backend
// calls (payload, CHILDREN property, LENGTH property). Failing the 3rd
// must return an error, not leak the node, and leave the parent childless.
func TestScenarioAllocArrayFailureLeavesParentUnchanged(t *testing.T) {
	backend := &failNthBackend{Backend: NewGoBackend(), n: -1}
	ctx := NewContext(WithBackend(backend))

	parent, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)
	require.Nil(t, ctx.First(parent))

	liveBefore, _ := ctx.nodes.Stats()

	backend.calls = 0
	backend.n = 3

	_, err = ctx.AllocArray(parent, 4, 10, true, true, "")
	require.Error(t, err)

	require.Nil(t, ctx.First(parent), "parent must still have no children after the failed alloc_array")

	liveAfter, _ := ctx.nodes.Stats()
	require.Equal(t, liveBefore, liveAfter, "the failed node must not remain checked out of the pool")
}
