package registry

import (
	"github.com/joshuapare/objkit/internal/identity"
	"github.com/joshuapare/objkit/pkg/types"
)

// Remove unregisters a mixed list of raw ids and object references.
//
// For an object, its registration record is deleted along with the
// id → object and id → entry mappings recorded there. For a raw id, the
// object mapped under it (and that object's record) and the entry mapping
// are deleted. Items that are not registered are ignored; removal is safe to
// repeat.
func (r *Registry) Remove(items ...any) {
	r.sweepReclaimed()
	for _, item := range items {
		switch v := item.(type) {
		case types.ID:
			r.unregisterID(v)
		case string:
			r.unregisterID(types.ID(v))
		default:
			if !identity.IsReference(v) {
				continue
			}
			rec, ok := r.records[v]
			if !ok {
				continue
			}
			id := rec.id
			rec.guard.Fire()
			delete(r.records, v)
			r.dropEntry(id)
		}
	}
}
