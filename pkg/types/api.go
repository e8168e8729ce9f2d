package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNoOpenScope       ErrKind = iota // mutating registration with no current scope
	ErrKindAlreadyRegistered                // object or identifier collision
	ErrKindInvalidArgument                  // non-reference object, Entry where an object was expected, malformed pairs
	ErrKindState                            // invalid operation for current registry state
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target carries the same kind, so wrapped errors still
// match the sentinels below under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels commonly returned by the registry.
var (
	// ErrNoOpenScope indicates a mutating registration was attempted with no
	// current scope. Fatal to the caller; never recovered internally.
	ErrNoOpenScope = &Error{Kind: ErrKindNoOpenScope, Msg: "no open scope"}
	// ErrAlreadyRegistered indicates an object already has a registration
	// record, or the identifier is occupied by a different live object.
	ErrAlreadyRegistered = &Error{Kind: ErrKindAlreadyRegistered, Msg: "already registered"}
	// ErrInvalidArgument indicates a non-reference object, an Entry passed
	// where an object was expected, or a malformed pair list.
	ErrInvalidArgument = &Error{Kind: ErrKindInvalidArgument, Msg: "invalid argument"}
)

// -----------------------------------------------------------------------------
// Core Identifiers & Capabilities
// -----------------------------------------------------------------------------

// ID is the canonical identifier of a persisted record. The registry treats
// it as opaque; generation is a collaborator concern.
type ID string

// Entry is the capability an externally-produced persisted record must
// expose. The registry never constructs entries and never interprets their
// payload, except to detect the pass-through case (see PayloadDowngrader).
//
// Entries must be pointer-backed values: the registry keys internal tables by
// entry identity.
type Entry interface {
	// EntryID returns the identifier of the record.
	EntryID() ID

	// Previous returns the entry that existed before the last mutation, or
	// nil when this entry was newly created. Previous links form a
	// singly-linked version chain consumed during rollback.
	Previous() Entry

	// Payload returns the opaque backing value of the record.
	Payload() any
}

// PayloadDowngrader is an optional Entry capability. When an entry's payload
// is the very object being registered under the entry's id (a pass-through
// wrapper with no independent backing value), the registry asks the entry to
// downgrade its internal payload reference to a non-owning one. Without the
// downgrade, object and entry hold mutually strong references and neither is
// ever reclaimed.
type PayloadDowngrader interface {
	DowngradePayload()
}

// LeakTracker receives the objects still resident after the last scope
// closed. Configured by the owning persistence-engine instance.
type LeakTracker interface {
	TrackLeaks(objects []any)
}

// LeakTrackerFunc adapts a plain callback to the LeakTracker capability.
type LeakTrackerFunc func(objects []any)

// TrackLeaks calls f.
func (f LeakTrackerFunc) TrackLeaks(objects []any) { f(objects) }

// -----------------------------------------------------------------------------
// Registration metadata
// -----------------------------------------------------------------------------

// Known Field keys recognized by the registry.
const (
	// FieldImmortal marks a registration exempt from leak classification.
	FieldImmortal = "immortal"
	// FieldInStorage marks a registration whose entry has been persisted.
	FieldInStorage = "in_storage"
)

// Field is an extension attribute attached to a registration record. Keys
// not listed above are stored verbatim and returned in Registration.Extra.
type Field struct {
	Key   string
	Value any
}

// Immortal returns the field marking a registration immortal.
func Immortal() Field { return Field{Key: FieldImmortal, Value: true} }

// InStorage returns the field marking a registration as persisted.
func InStorage() Field { return Field{Key: FieldInStorage, Value: true} }

// Registration is a read-only snapshot of a registration record, exposed for
// diagnostics. The registry owns the live record exclusively.
type Registration struct {
	ID        ID
	Entry     Entry // nil when the object was registered without one
	InStorage bool
	Immortal  bool
	Extra     map[string]any // nil when no extension fields were set
}
