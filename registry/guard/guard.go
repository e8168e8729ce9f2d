// Package guard provides single-use cleanup tokens bound to one map slot.
//
// A Guard carries the release action that erases its slot from the owning
// lookup table. Teardown paths fire the guard when the slot's value is
// unregistered or superseded; Dismiss disarms it permanently so that a stale
// guard can never erase a slot that has since been re-occupied.
package guard

// Guard is a single-use cleanup token.
//
// NOT thread-safe. Guards belong to the registry that created them and share
// its single-owner discipline.
type Guard struct {
	release func()
	settled bool // fired or dismissed
}

// New creates an armed guard whose release action erases one slot in the
// owning table. The release func must be non-nil.
func New(release func()) *Guard {
	return &Guard{release: release}
}

// Fire runs the release action, unless the guard was dismissed or has
// already fired. A guard fires at most once.
func (g *Guard) Fire() {
	if g == nil || g.settled {
		return
	}
	g.settled = true
	g.release()
	g.release = nil
}

// Dismiss disarms the guard permanently. Idempotent; safe to call after
// Fire, and a dismissed guard never fires.
func (g *Guard) Dismiss() {
	if g == nil {
		return
	}
	g.settled = true
	g.release = nil
}

// Armed reports whether the guard can still fire.
func (g *Guard) Armed() bool {
	return g != nil && !g.settled
}
