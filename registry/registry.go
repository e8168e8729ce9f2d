package registry

import (
	"sync"
	"weak"

	"github.com/rs/zerolog"

	"github.com/joshuapare/objkit/pkg/types"
	"github.com/joshuapare/objkit/registry/guard"
	"github.com/joshuapare/objkit/registry/lifetime"
)

// Scope is a lifetime boundary for objects. Its owned list holds the strong
// references that keep registered objects resident.
type Scope = lifetime.Node[any]

// TxnScope is a lifetime boundary for entry mutations pending possible
// rollback.
type TxnScope = lifetime.Node[types.Entry]

// Options configures a Registry.
type Options struct {
	// ClearLeaks wipes the whole registry before leaked objects are
	// reported. Default: leave leaked objects resident.
	ClearLeaks bool

	// LeakTracker receives leaked objects when the last scope closes.
	// Default: nil, leaks produce no signal.
	LeakTracker types.LeakTracker

	// Logger for diagnostics. Default: nil, all output discarded.
	Logger *zerolog.Logger
}

// record is the per-object registration metadata. Owned exclusively by the
// registry and keyed by object identity in Registry.records.
type record struct {
	id        types.ID
	entry     types.Entry  // nil when the object has no entry yet
	guard     *guard.Guard // erases the id → object slot
	inStorage bool
	immortal  bool
	owner     uint64 // id of the owning scope, 0 when none
	extra     map[string]any
}

// apply merges extension fields into the record. The immortal and
// in-storage keys are recognized; everything else is stored verbatim.
func (rec *record) apply(fields []types.Field) {
	for _, f := range fields {
		switch f.Key {
		case types.FieldImmortal:
			if b, ok := f.Value.(bool); ok {
				rec.immortal = b
			}
		case types.FieldInStorage:
			if b, ok := f.Value.(bool); ok {
				rec.inStorage = b
			}
		default:
			if rec.extra == nil {
				rec.extra = make(map[string]any)
			}
			rec.extra[f.Key] = f.Value
		}
	}
}

// scopeInfo is the registry's non-owning view of an open scope.
type scopeInfo struct {
	ref    weak.Pointer[Scope]
	parent uint64
}

// txnInfo is the registry's non-owning view of an open transaction scope.
type txnInfo struct {
	ref    weak.Pointer[TxnScope]
	parent uint64
}

// Registry is the live-object registry.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Registry struct {
	objects     map[types.ID]any
	entries     map[types.ID]types.Entry
	records     map[any]*record
	entryGuards map[types.Entry]*guard.Guard

	open     map[uint64]scopeInfo // known, still-open scopes
	current  uint64               // id of the current scope, 0 when none
	txns     map[uint64]txnInfo
	txn      uint64 // id of the current transaction scope, 0 when none
	nextNode uint64

	clearLeaks bool
	tracker    types.LeakTracker
	checking   bool // re-entrancy guard for CheckLeaks
	log        zerolog.Logger

	// Scope ids enqueued by the runtime cleanup hook; drained on the owning
	// goroutine by sweepReclaimed. The mutex covers only this queue.
	reclaimedMu sync.Mutex
	reclaimed   []uint64
}

// New creates an empty registry.
func New(opts Options) *Registry {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Registry{
		objects:     make(map[types.ID]any),
		entries:     make(map[types.ID]types.Entry),
		records:     make(map[any]*record),
		entryGuards: make(map[types.Entry]*guard.Guard),
		open:        make(map[uint64]scopeInfo),
		txns:        make(map[uint64]txnInfo),
		clearLeaks:  opts.ClearLeaks,
		tracker:     opts.LeakTracker,
		log:         log,
	}
}

// Clear unconditionally dismisses every guard still attached to a
// registration record or entry mapping, empties all four tables, clears the
// current-scope and transaction-scope pointers, and forgets every open
// scope. Used both for leak remediation and for forced resets between
// logical sessions.
func (r *Registry) Clear() {
	for _, rec := range r.records {
		rec.guard.Dismiss()
	}
	for _, g := range r.entryGuards {
		g.Dismiss()
	}
	r.objects = make(map[types.ID]any)
	r.entries = make(map[types.ID]types.Entry)
	r.records = make(map[any]*record)
	r.entryGuards = make(map[types.Entry]*guard.Guard)
	r.open = make(map[uint64]scopeInfo)
	r.txns = make(map[uint64]txnInfo)
	r.current = 0
	r.txn = 0
	r.log.Debug().Msg("registry cleared")
}

// armEntryGuard installs a fresh guard for the id → entry slot occupied by e.
func (r *Registry) armEntryGuard(id types.ID, e types.Entry) {
	g := guard.New(func() {
		delete(r.entries, id)
		delete(r.entryGuards, e)
	})
	r.entryGuards[e] = g
}

// registerEntry unconditionally replaces the entry mapped under id. The old
// entry's guard is dismissed first so that unregistering the stale value can
// never erase the new mapping.
func (r *Registry) registerEntry(id types.ID, e types.Entry) {
	if old, ok := r.entries[id]; ok {
		if g, ok := r.entryGuards[old]; ok {
			g.Dismiss()
			delete(r.entryGuards, old)
		}
	}
	r.entries[id] = e
	r.armEntryGuard(id, e)
}

// dropEntry fires the guard of the entry currently mapped under id, erasing
// the id → entry slot.
func (r *Registry) dropEntry(id types.ID) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	if g, ok := r.entryGuards[e]; ok {
		g.Fire()
		return
	}
	delete(r.entries, id)
}

// unregisterID erases everything mapped under id: the object mapping (via
// the record's guard), the registration record, and the entry mapping.
func (r *Registry) unregisterID(id types.ID) {
	if obj, ok := r.objects[id]; ok {
		if rec, ok := r.records[obj]; ok {
			rec.guard.Fire()
			delete(r.records, obj)
		} else {
			delete(r.objects, id)
		}
	}
	r.dropEntry(id)
}
