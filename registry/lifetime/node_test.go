package lifetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnedGrowsInPushOrder(t *testing.T) {
	n := NewNode[string](1, nil, nil)

	n.Own("a")
	n.Own("b")
	n.Own("c")

	assert.Equal(t, 3, n.Len())
	assert.Equal(t, []string{"a", "b", "c"}, n.Owned())
}

func TestOwnedReturnsCopy(t *testing.T) {
	n := NewNode[int](1, nil, nil)
	n.Own(10)

	got := n.Owned()
	got[0] = 99

	assert.Equal(t, []int{10}, n.Owned())
}

func TestParentLink(t *testing.T) {
	root := NewNode[int](1, nil, nil)
	child := NewNode[int](2, root, nil)

	require.NotNil(t, child.Parent())
	assert.Equal(t, uint64(1), child.Parent().ID())
	assert.Nil(t, root.Parent())
}

func TestReleaseClearsAndReturnsItems(t *testing.T) {
	n := NewNode[string](7, nil, nil)
	n.Own("x")
	n.Own("y")

	items := n.Release()

	assert.Equal(t, []string{"x", "y"}, items)
	assert.Equal(t, 0, n.Len())
	assert.Nil(t, n.Release())
}

func TestReleaseCancelsReclaimHook(t *testing.T) {
	called := false
	n := NewNode[int](3, nil, func(uint64) { called = true })

	n.Release()

	// The hook is cancelled; nothing should ever call it now. We cannot
	// force a collection here, but Release must at least not invoke it
	// synchronously.
	assert.False(t, called)
}
