package registry

import (
	"fmt"

	"github.com/joshuapare/objkit/pkg/types"
)

// Insert is the bulk registration entry point. It accepts flat pairs of
// (id-or-entry, object): the first element of each pair is either a raw
// types.ID (or string) or a types.Entry, and the second is the object to
// register under it.
//
// Entry-keyed pairs go through RegisterObjectAndEntry and their records are
// marked in-storage; id-keyed pairs go through RegisterObject. Fails with
// ErrInvalidArgument on an odd-length list, a non-reference object, or an
// entry passed in object position.
func (r *Registry) Insert(pairs ...any) error {
	if len(pairs)%2 != 0 {
		return fmt.Errorf("registry: insert: odd pair list (%d items): %w", len(pairs), types.ErrInvalidArgument)
	}
	for i := 0; i < len(pairs); i += 2 {
		obj := pairs[i+1]
		if err := checkObject(obj); err != nil {
			return err
		}
		switch key := pairs[i].(type) {
		case types.Entry:
			if err := r.RegisterObjectAndEntry(key.EntryID(), obj, key, types.InStorage()); err != nil {
				return err
			}
		case types.ID:
			if err := r.RegisterObject(key, obj); err != nil {
				return err
			}
		case string:
			if err := r.RegisterObject(types.ID(key), obj); err != nil {
				return err
			}
		default:
			return fmt.Errorf("registry: insert: pair key must be an id or an entry, got %T: %w", key, types.ErrInvalidArgument)
		}
	}
	return nil
}

// InsertEntries registers entries that have no corresponding object yet (the
// prefetch path). Ids already holding an entry are skipped. Guards are
// established eagerly so that a later RegisterObject for the same id can
// attach the entry without re-deriving it.
func (r *Registry) InsertEntries(entries []types.Entry) error {
	r.sweepReclaimed()
	if r.CurrentScope() == nil {
		return fmt.Errorf("registry: insert entries: %w", types.ErrNoOpenScope)
	}
	for _, e := range entries {
		id := e.EntryID()
		if _, ok := r.entries[id]; ok {
			continue
		}
		r.registerEntry(id, e)
	}
	return nil
}
