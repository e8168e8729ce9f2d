package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireRunsReleaseOnce(t *testing.T) {
	fired := 0
	g := New(func() { fired++ })

	assert.True(t, g.Armed())

	g.Fire()
	g.Fire()
	g.Fire()

	assert.Equal(t, 1, fired)
	assert.False(t, g.Armed())
}

func TestDismissPreventsFire(t *testing.T) {
	fired := 0
	g := New(func() { fired++ })

	g.Dismiss()
	g.Fire()

	assert.Equal(t, 0, fired)
	assert.False(t, g.Armed())
}

func TestDismissIsIdempotent(t *testing.T) {
	fired := 0
	g := New(func() { fired++ })

	g.Dismiss()
	g.Dismiss()
	g.Fire()
	g.Dismiss()

	assert.Equal(t, 0, fired)
}

func TestDismissAfterFire(t *testing.T) {
	fired := 0
	g := New(func() { fired++ })

	g.Fire()
	g.Dismiss()

	assert.Equal(t, 1, fired)
}

func TestNilGuardIsInert(t *testing.T) {
	var g *Guard

	// Must not panic.
	g.Fire()
	g.Dismiss()
	assert.False(t, g.Armed())
}
