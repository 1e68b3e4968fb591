package htree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDestructorsFireOnFreeInReverseRegistrationOrder(t *testing.T) {
	ctx := NewContext()
	n, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)

	var order []int
	_, err = n.AddDestructor(func([]byte) { order = append(order, 1) })
	require.NoError(t, err)
	_, err = n.AddDestructor(func([]byte) { order = append(order, 2) })
	require.NoError(t, err)

	n.Free()
	require.Equal(t, []int{2, 1}, order)
}

func TestAddNotifierFiresOnAddChild(t *testing.T) {
	ctx := NewContext()
	parent, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)

	var events []Event
	_, err = parent.AddNotifier(EventAddChild|EventDelChild, func(_ []byte, event Event, _ any) {
		events = append(events, event)
	})
	require.NoError(t, err)

	child, err := ctx.Alloc(parent, 0, true, "")
	require.NoError(t, err)
	child.Free()

	require.Equal(t, []Event{EventAddChild, EventDelChild}, events)
}

func TestDelNotifierStopsFurtherFires(t *testing.T) {
	ctx := NewContext()
	n, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)

	var fired int
	handle, err := n.AddNotifier(EventRename, func(_ []byte, _ Event, _ any) {
		fired++
	})
	require.NoError(t, err)

	require.NoError(t, n.SetName("a", false))
	require.True(t, n.DelNotifier(handle))
	require.NoError(t, n.SetName("b", false))

	require.Equal(t, 1, fired)
	require.False(t, n.DelNotifier(handle))
}

func TestReentrantFreeFromOwnDestructorIsNoOp(t *testing.T) {
	ctx := NewContext()
	n, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)

	var calls int
	_, err = n.AddDestructor(func([]byte) {
		calls++
		n.Free() // re-entrant: must not recurse or double-free
	})
	require.NoError(t, err)

	n.Free()
	require.Equal(t, 1, calls)
}

func TestEventStringFormatsMask(t *testing.T) {
	require.Equal(t, "NONE", Event(0).String())
	require.Equal(t, "FREE", EventFree.String())
	require.Equal(t, "FREE|STEAL", (EventFree | EventSteal).String())
}
