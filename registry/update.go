package registry

import (
	"github.com/joshuapare/objkit/pkg/types"
	"github.com/joshuapare/objkit/registry/guard"
)

// Update pairs an object with its freshly mutated entry for UpdateEntries.
type Update struct {
	Object any
	Entry  types.Entry
}

// UpdateEntry records a mutation of obj's entry.
//
// With no open scope this is a tolerated silent no-op, not an error — some
// upstream code paths bypass scoping, and the original engine deliberately
// kept the asymmetry with the registering operations. Otherwise the entry is
// re-registered under its id; if the id was not already mapped to an object,
// obj is mapped now and pushed onto the current scope. Extension fields are
// merged into the registration record, and when a transaction scope is open
// the new entry is pushed onto it for potential rollback.
func (r *Registry) UpdateEntry(obj any, e types.Entry, extra ...types.Field) error {
	r.sweepReclaimed()
	scope := r.CurrentScope()
	if scope == nil {
		return nil
	}
	if err := checkObject(obj); err != nil {
		return err
	}

	id := e.EntryID()
	r.registerEntry(id, e)

	rec := r.records[obj]
	if _, mapped := r.objects[id]; !mapped {
		if rec == nil {
			rec = &record{id: id}
			r.records[obj] = rec
		}
		rec.owner = scope.ID()
		rec.guard = guard.New(func() { delete(r.objects, id) })
		r.objects[id] = obj
		scope.Own(obj)
	} else if rec == nil {
		rec = &record{id: id}
		r.records[obj] = rec
	}

	rec.entry = e
	rec.apply(extra)

	if t := r.Txn(); t != nil {
		t.Own(e)
	}
	return nil
}

// UpdateEntries applies UpdateEntry to each pair, marking every record
// in-storage. Used after a successful commit.
func (r *Registry) UpdateEntries(updates []Update) error {
	for _, u := range updates {
		if err := r.UpdateEntry(u.Object, u.Entry, types.InStorage()); err != nil {
			return err
		}
	}
	return nil
}
