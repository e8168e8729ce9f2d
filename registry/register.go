package registry

import (
	"fmt"

	"github.com/joshuapare/objkit/internal/identity"
	"github.com/joshuapare/objkit/pkg/types"
	"github.com/joshuapare/objkit/registry/guard"
)

// checkObject validates that obj can be registered: a live pointer-backed
// value that is not itself an entry.
func checkObject(obj any) error {
	if _, ok := obj.(types.Entry); ok {
		return fmt.Errorf("registry: entry passed where an object was expected: %w", types.ErrInvalidArgument)
	}
	if !identity.IsReference(obj) {
		return fmt.Errorf("registry: object must be a non-nil reference value: %w", types.ErrInvalidArgument)
	}
	return nil
}

// RegisterObject registers obj as the live object for id.
//
// Requires an open scope; the current scope's owned list takes the strong
// reference that keeps obj resident beyond this call. Fails with
// ErrAlreadyRegistered when obj already has a registration record or id is
// occupied by a different object. A registration record is created, and an
// armed guard will erase the id → object slot when obj is unregistered.
//
// If an entry is already mapped under id (for example by a prefetch through
// InsertEntries), the new record attaches it.
func (r *Registry) RegisterObject(id types.ID, obj any, extra ...types.Field) error {
	r.sweepReclaimed()
	scope := r.CurrentScope()
	if scope == nil {
		return fmt.Errorf("registry: register object %q: %w", id, types.ErrNoOpenScope)
	}
	if err := checkObject(obj); err != nil {
		return err
	}
	if _, ok := r.records[obj]; ok {
		return fmt.Errorf("registry: object already registered under %q: %w", id, types.ErrAlreadyRegistered)
	}
	if _, ok := r.objects[id]; ok {
		return fmt.Errorf("registry: id %q occupied by another object: %w", id, types.ErrAlreadyRegistered)
	}

	rec := &record{
		id:    id,
		owner: scope.ID(),
		guard: guard.New(func() { delete(r.objects, id) }),
	}
	rec.apply(extra)
	if e, ok := r.entries[id]; ok {
		rec.entry = e
	}

	r.objects[id] = obj
	scope.Own(obj)
	r.records[obj] = rec
	return nil
}

// RegisterEntry registers e as the live entry for id, unconditionally
// replacing any existing entry. The superseded entry's guard is dismissed so
// its later unregistration cannot erase the new mapping.
//
// Requires an open scope, like every registering operation.
func (r *Registry) RegisterEntry(id types.ID, e types.Entry) error {
	r.sweepReclaimed()
	if r.CurrentScope() == nil {
		return fmt.Errorf("registry: register entry %q: %w", id, types.ErrNoOpenScope)
	}
	r.registerEntry(id, e)
	return nil
}

// RegisterObjectAndEntry composes RegisterEntry and RegisterObject, in that
// order, so the object's registration record can reference the entry.
//
// Cycle break: when the entry's payload is the very object being registered
// (a pass-through wrapper with no independent backing value), the entry is
// asked to downgrade its payload reference to a non-owning one immediately
// after registration; otherwise object and entry would hold mutually strong
// references and neither could ever be reclaimed.
func (r *Registry) RegisterObjectAndEntry(id types.ID, obj any, e types.Entry, extra ...types.Field) error {
	if err := r.RegisterEntry(id, e); err != nil {
		return err
	}
	if err := r.RegisterObject(id, obj, extra...); err != nil {
		return err
	}
	if identity.Same(e.Payload(), obj) {
		if d, ok := e.(types.PayloadDowngrader); ok {
			d.DowngradePayload()
		}
	}
	return nil
}
