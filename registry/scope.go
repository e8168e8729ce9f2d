package registry

import (
	"weak"

	"github.com/joshuapare/objkit/pkg/types"
	"github.com/joshuapare/objkit/registry/lifetime"
)

// NewScope opens a lifetime boundary. The new scope's parent is the current
// scope (if any); it becomes the current scope and joins the open-scope set.
// The registry holds the scope weakly: a scope dropped without RemoveScope
// is torn down by a runtime cleanup hook, and the objects it owned become
// leak candidates because their mappings can no longer be erased eagerly.
func (r *Registry) NewScope() *Scope {
	r.sweepReclaimed()
	r.nextNode++
	id := r.nextNode
	s := lifetime.NewNode[any](id, r.CurrentScope(), r.onNodeReclaimed)
	r.open[id] = scopeInfo{ref: weak.Make(s), parent: r.current}
	r.current = id
	return s
}

// CurrentScope returns the most recently opened, still-open scope, or nil.
func (r *Registry) CurrentScope() *Scope {
	if r.current == 0 {
		return nil
	}
	info, ok := r.open[r.current]
	if !ok {
		return nil
	}
	return info.ref.Value()
}

// DetachScope makes s stop being the current scope. If s is current, the
// current-scope pointer is reset to s's parent (or cleared when s is a
// root). Detaching a non-current scope is a no-op.
func (r *Registry) DetachScope(s *Scope) {
	r.sweepReclaimed()
	if s == nil || r.current != s.ID() {
		return
	}
	info := r.open[s.ID()]
	r.current = info.parent
}

// RemoveScope tears down s: detaches it, clears its owned-object list, and
// removes it from the open-scope set. The objects the scope kept alive are
// unregistered eagerly, so teardown is deterministic and does not wait for
// collection; immortal registrations stay mapped. When the open-scope set
// becomes empty, leak checking runs.
func (r *Registry) RemoveScope(s *Scope) {
	r.sweepReclaimed()
	if s == nil {
		return
	}
	if r.current == s.ID() {
		r.current = r.open[s.ID()].parent
	}
	for _, obj := range s.Release() {
		r.releaseOwned(obj, s.ID())
	}
	r.forgetScope(s.ID())
}

// releaseOwned unregisters an object whose residency was justified by the
// scope being removed. Objects re-registered under a different scope since,
// and immortal registrations, are left alone.
func (r *Registry) releaseOwned(obj any, scopeID uint64) {
	rec, ok := r.records[obj]
	if !ok || rec.owner != scopeID || rec.immortal {
		return
	}
	rec.guard.Fire()
	delete(r.records, obj)
	r.dropEntry(rec.id)
}

// forgetScope drops id from the open-scope set, re-parenting any children
// onto id's parent so the current-scope chain never dangles. Emptying the
// set triggers leak checking.
func (r *Registry) forgetScope(id uint64) {
	info, ok := r.open[id]
	if !ok {
		return
	}
	delete(r.open, id)
	for sid, si := range r.open {
		if si.parent == id {
			si.parent = info.parent
			r.open[sid] = si
		}
	}
	if len(r.open) == 0 {
		r.CheckLeaks()
	}
}

// onNodeReclaimed runs on the runtime's cleanup goroutine when a scope or
// transaction scope is dropped without being removed. It must not touch the
// registry's tables; it only queues the node id for the owner to sweep.
func (r *Registry) onNodeReclaimed(id uint64) {
	r.reclaimedMu.Lock()
	r.reclaimed = append(r.reclaimed, id)
	r.reclaimedMu.Unlock()
}

// sweepReclaimed finishes the teardown of nodes the runtime reclaimed. A
// reclaimed scope's owned list was unreachable by the time the hook ran, so
// its objects' mappings survive — those are exactly the leaks CheckLeaks
// reports once the set empties.
func (r *Registry) sweepReclaimed() {
	r.reclaimedMu.Lock()
	ids := r.reclaimed
	r.reclaimed = nil
	r.reclaimedMu.Unlock()

	for _, id := range ids {
		if info, ok := r.open[id]; ok {
			if r.current == id {
				r.current = info.parent
			}
			r.log.Debug().Uint64("scope", id).Msg("scope reclaimed without removal")
			r.forgetScope(id)
			continue
		}
		if _, ok := r.txns[id]; ok {
			r.forgetTxn(id)
		}
	}
}

// NewTxn opens a transaction scope, nested under the current one if any.
// Transaction scopes track entries (for rollback) rather than objects, are
// addressed through Txn rather than CurrentScope, and are never
// leak-checked.
func (r *Registry) NewTxn() *TxnScope {
	r.sweepReclaimed()
	r.nextNode++
	id := r.nextNode
	t := lifetime.NewNode[types.Entry](id, r.Txn(), r.onNodeReclaimed)
	r.txns[id] = txnInfo{ref: weak.Make(t), parent: r.txn}
	r.txn = id
	return t
}

// Txn returns the current transaction scope, or nil when none is open.
func (r *Registry) Txn() *TxnScope {
	if r.txn == 0 {
		return nil
	}
	info, ok := r.txns[r.txn]
	if !ok {
		return nil
	}
	return info.ref.Value()
}

// RemoveTxn discards a transaction scope. On commit this is all that
// happens: the recorded entries are simply dropped. On abort, pass the
// scope's Owned entries to RollbackEntries first.
func (r *Registry) RemoveTxn(t *TxnScope) {
	r.sweepReclaimed()
	if t == nil {
		return
	}
	if r.txn == t.ID() {
		r.txn = r.txns[t.ID()].parent
	}
	t.Release()
	r.forgetTxn(t.ID())
}

// forgetTxn drops id from the transaction-scope table, re-parenting children.
func (r *Registry) forgetTxn(id uint64) {
	info, ok := r.txns[id]
	if !ok {
		return
	}
	if r.txn == id {
		r.txn = info.parent
	}
	delete(r.txns, id)
	for tid, ti := range r.txns {
		if ti.parent == id {
			ti.parent = info.parent
			r.txns[tid] = ti
		}
	}
}
