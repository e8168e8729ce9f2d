package registry

import "github.com/joshuapare/objkit/pkg/types"

// RollbackEntries rewinds the entry mutations accumulated during a rolled
// back transaction.
//
// Entries are processed in reverse of the order they were recorded: later
// mutations may have superseded earlier ones for the same id, and unwinding
// forward would apply stale overwrites. For each entry, the id's mapping is
// rewound to the entry's previous version; an entry with no previous version
// was newly created within the transaction, so its id is fully unregistered
// from both the object and entry tables.
func (r *Registry) RollbackEntries(entries []types.Entry) {
	r.sweepReclaimed()
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		id := e.EntryID()

		prev := e.Previous()
		if prev == nil {
			r.unregisterID(id)
			r.log.Debug().Str("id", string(id)).Msg("rollback unregistered new id")
			continue
		}

		r.registerEntry(id, prev)
		if obj, ok := r.objects[id]; ok {
			if rec, ok := r.records[obj]; ok {
				rec.entry = prev
			}
		}
	}
}
