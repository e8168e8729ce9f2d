package registry

import (
	"sort"

	"github.com/joshuapare/objkit/internal/identity"
	"github.com/joshuapare/objkit/pkg/types"
)

// Lookups never fail: probing for liveness is a normal, expected operation,
// so an unmatched key yields a zero value and ok=false (or a hole in the
// batch forms), never an error.

// ObjectToID returns the identifier obj is registered under.
func (r *Registry) ObjectToID(obj any) (types.ID, bool) {
	rec, ok := r.lookupRecord(obj)
	if !ok {
		return "", false
	}
	return rec.id, true
}

// ObjectsToIDs returns the identifier per object, with zero-value holes for
// unregistered objects.
func (r *Registry) ObjectsToIDs(objs []any) []types.ID {
	out := make([]types.ID, len(objs))
	for i, obj := range objs {
		out[i], _ = r.ObjectToID(obj)
	}
	return out
}

// ObjectToEntry returns the entry recorded for obj.
func (r *Registry) ObjectToEntry(obj any) (types.Entry, bool) {
	rec, ok := r.lookupRecord(obj)
	if !ok || rec.entry == nil {
		return nil, false
	}
	return rec.entry, true
}

// ObjectsToEntries returns the entry per object, with nil holes.
func (r *Registry) ObjectsToEntries(objs []any) []types.Entry {
	out := make([]types.Entry, len(objs))
	for i, obj := range objs {
		out[i], _ = r.ObjectToEntry(obj)
	}
	return out
}

// IDToObject returns the live object for id.
func (r *Registry) IDToObject(id types.ID) (any, bool) {
	obj, ok := r.objects[id]
	return obj, ok
}

// IDsToObjects returns the live object per id, with nil holes.
func (r *Registry) IDsToObjects(ids []types.ID) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = r.objects[id]
	}
	return out
}

// IDToEntry returns the live entry for id.
func (r *Registry) IDToEntry(id types.ID) (types.Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// IDsToEntries returns the live entry per id, with nil holes.
func (r *Registry) IDsToEntries(ids []types.ID) []types.Entry {
	out := make([]types.Entry, len(ids))
	for i, id := range ids {
		out[i] = r.entries[id]
	}
	return out
}

// ObjectInStorage reports whether obj has a registration record flagged
// in-storage.
func (r *Registry) ObjectInStorage(obj any) bool {
	rec, ok := r.lookupRecord(obj)
	return ok && rec.inStorage
}

// RegistrationOf returns a read-only snapshot of obj's registration record.
func (r *Registry) RegistrationOf(obj any) (types.Registration, bool) {
	rec, ok := r.lookupRecord(obj)
	if !ok {
		return types.Registration{}, false
	}
	snap := types.Registration{
		ID:        rec.id,
		Entry:     rec.entry,
		InStorage: rec.inStorage,
		Immortal:  rec.immortal,
	}
	if len(rec.extra) > 0 {
		snap.Extra = make(map[string]any, len(rec.extra))
		for k, v := range rec.extra {
			snap.Extra[k] = v
		}
	}
	return snap, true
}

// lookupRecord guards the identity-keyed table against non-reference values,
// which would panic as map keys.
func (r *Registry) lookupRecord(obj any) (*record, bool) {
	if !identity.IsReference(obj) {
		return nil, false
	}
	rec, ok := r.records[obj]
	return rec, ok
}

// LiveIDs returns the identifiers currently mapped to an object, sorted.
func (r *Registry) LiveIDs() []types.ID {
	return sortedIDs(r.objects)
}

// LiveObjects returns the currently mapped objects, in id order.
func (r *Registry) LiveObjects() []any {
	ids := r.LiveIDs()
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.objects[id])
	}
	return out
}

// LoadedIDs returns the identifiers currently mapped to an entry, sorted.
func (r *Registry) LoadedIDs() []types.ID {
	return sortedIDs(r.entries)
}

// LiveEntries returns the currently mapped entries, in id order.
func (r *Registry) LiveEntries() []types.Entry {
	ids := r.LoadedIDs()
	out := make([]types.Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.entries[id])
	}
	return out
}

// Stats reports registry table sizes.
type Stats struct {
	LiveObjects int // ids mapped to an object
	LiveEntries int // ids mapped to an entry
	Records     int // registration records
	OpenScopes  int // scopes opened and not yet removed
	OpenTxns    int // transaction scopes opened and not yet removed
}

// Stats returns current table sizes.
func (r *Registry) Stats() Stats {
	return Stats{
		LiveObjects: len(r.objects),
		LiveEntries: len(r.entries),
		Records:     len(r.records),
		OpenScopes:  len(r.open),
		OpenTxns:    len(r.txns),
	}
}

func sortedIDs[V any](m map[types.ID]V) []types.ID {
	ids := make([]types.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
