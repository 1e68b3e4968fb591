package htree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetNameAndName(t *testing.T) {
	ctx := NewContext()
	n, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)

	require.Equal(t, "", n.Name())
	require.NoError(t, n.SetName("alpha", false))
	require.Equal(t, "alpha", n.Name())
}

func TestSetNameReplacesHeapNameWithLiteralWithoutLeaking(t *testing.T) {
	ctx := NewContext()
	n, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)
	require.NoError(t, n.SetName("heap-label", false))
	require.Equal(t, "heap-label", n.Name())

	require.NoError(t, n.SetName("literal-label", true))
	require.Equal(t, "literal-label", n.Name())

	// Only one NAME property should ever exist at a time.
	var nameCount int
	for p := n.props; p != nil; p = p.next {
		if p.kind == propName {
			nameCount++
		}
	}
	require.Equal(t, 1, nameCount)
}

func TestSetNameFiresRename(t *testing.T) {
	ctx := NewContext()
	n, err := ctx.Alloc(nil, 0, true, "")
	require.NoError(t, err)

	var got any
	_, err = n.AddNotifier(EventRename, func(_ []byte, _ Event, info any) {
		got = info
	})
	require.NoError(t, err)

	require.NoError(t, n.SetName("renamed", false))
	require.Equal(t, "renamed", got)
}
