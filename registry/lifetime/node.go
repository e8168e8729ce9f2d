// Package lifetime implements the tree node shared by object scopes and
// transaction scopes.
//
// A node keeps an ordered list of strong references to the items pushed into
// it; that list is the only thing keeping scope-owned items resident. Parent
// links are weak so a node never extends an ancestor's lifetime, and an
// optional reclaim hook lets the owning registry run detach logic when a
// node is dropped without being removed explicitly.
package lifetime

import (
	"runtime"
	"weak"
)

// Node is one boundary in a tree of nested lifetimes. The type parameter is
// the kind of item the node keeps alive: objects for scopes, entries for
// transaction scopes.
//
// NOT thread-safe. Nodes share the single-owner discipline of the registry
// that created them.
type Node[T any] struct {
	id      uint64
	parent  weak.Pointer[Node[T]]
	owned   []T
	cleanup runtime.Cleanup
	tracked bool
}

// reclaimArg is passed to the runtime cleanup. It must not reference the
// node itself, or the cleanup would never run.
type reclaimArg struct {
	fn func(uint64)
	id uint64
}

// NewNode creates a tree node. parent may be nil for a root node. When
// reclaimed is non-nil it runs, with the node's id, after the node becomes
// unreachable without Release having been called; the hook must not hold a
// strong reference back to the node.
func NewNode[T any](id uint64, parent *Node[T], reclaimed func(id uint64)) *Node[T] {
	n := &Node[T]{id: id}
	if parent != nil {
		n.parent = weak.Make(parent)
	}
	if reclaimed != nil {
		n.cleanup = runtime.AddCleanup(n, func(a reclaimArg) { a.fn(a.id) }, reclaimArg{fn: reclaimed, id: id})
		n.tracked = true
	}
	return n
}

// ID returns the node's identity within its registry.
func (n *Node[T]) ID() uint64 { return n.id }

// Parent returns the parent node, or nil when the node is a root or the
// parent has already been reclaimed.
func (n *Node[T]) Parent() *Node[T] { return n.parent.Value() }

// Own appends item to the node's owned list, taking a strong reference. The
// list only ever grows; items leave it only when the whole node is released.
func (n *Node[T]) Own(item T) {
	n.owned = append(n.owned, item)
}

// Owned returns the owned items in push order. The result is a copy; the
// node's own list is append-only.
func (n *Node[T]) Owned() []T {
	if len(n.owned) == 0 {
		return nil
	}
	out := make([]T, len(n.owned))
	copy(out, n.owned)
	return out
}

// Len returns the number of owned items.
func (n *Node[T]) Len() int { return len(n.owned) }

// Release clears the owned list, dropping the node's strong references, and
// cancels the reclaim hook. It returns the items in push order so the
// caller can run per-item teardown. Subsequent calls return nil.
func (n *Node[T]) Release() []T {
	if n.tracked {
		n.cleanup.Stop()
		n.tracked = false
	}
	items := n.owned
	n.owned = nil
	return items
}
