package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type thing struct{ n int }

func TestIsReference(t *testing.T) {
	v := &thing{}

	assert.True(t, IsReference(v))
	assert.False(t, IsReference(nil))
	assert.False(t, IsReference(thing{}))
	assert.False(t, IsReference("id"))
	assert.False(t, IsReference(42))
	assert.False(t, IsReference([]int{1}))
	assert.False(t, IsReference(map[string]int{}))

	var nilPtr *thing
	assert.False(t, IsReference(nilPtr))
}

func TestSame(t *testing.T) {
	a := &thing{n: 1}
	b := &thing{n: 1}

	assert.True(t, Same(a, a))
	assert.False(t, Same(a, b), "equal values are not the same identity")
	assert.False(t, Same(a, nil))
	assert.False(t, Same(nil, a))
	assert.False(t, Same(thing{}, thing{}))
}

func TestSameToleratesNonComparableKinds(t *testing.T) {
	// Slices cannot be compared with ==; Same must return false, not panic.
	s := []int{1, 2}
	assert.NotPanics(t, func() {
		assert.False(t, Same(s, s))
	})
}
