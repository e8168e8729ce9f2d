// Package registry implements the live-object registry of an
// object-persistence engine: the in-memory layer that tracks, for every
// domain object currently materialized from storage, its canonical
// identifier, its serialized entry, and the lifetime scope(s) that justify
// keeping it resident.
//
// # Overview
//
// The registry owns four tables:
//   - id → object: the live object for an identifier, if any. At most one
//     live object per id at any instant.
//   - id → entry: the live entry for an identifier.
//   - object identity → registration record: per-object metadata (id, entry,
//     guard, in-storage and immortal flags, extension fields).
//   - entry identity → guard: the cleanup token that erases the entry's
//     id → entry slot when the entry is unregistered or superseded.
//
// Residency is justified by scopes. A caller opens a Scope, registers
// objects and entries, and later removes the scope; the scope's owned list
// is the only strong holder the registry contributes, so removing a scope
// deterministically unregisters the objects it kept alive. Transaction
// scopes track entry mutations instead of objects; on rollback, the
// accumulated entries are unwound in reverse through their version chains.
//
// Lifecycle:
//  1. NewScope() — open a lifetime boundary
//  2. RegisterObject / Insert / InsertEntries — populate the maps
//  3. NewTxn(), UpdateEntry — mutate entries, tracked for rollback
//  4. RemoveTxn (commit) or RollbackEntries (abort)
//  5. RemoveScope — tear down; when the last scope closes, leak checking runs
//
// # Concurrency
//
// A Registry is NOT thread-safe. All operations assume sequential,
// non-reentrant invocation from the single owner; concurrent registries
// (one per worker) must not share maps. Scopes dropped without RemoveScope
// are noticed by a runtime cleanup hook; the hook only enqueues the scope id,
// and the owner sweeps the queue on its next registry call, so teardown
// bookkeeping stays on the owning goroutine.
package registry
