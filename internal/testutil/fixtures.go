// Package testutil provides the fixtures shared by registry tests: fake
// entries with version chains, plain domain objects, and identifier minting.
package testutil

import (
	"github.com/google/uuid"

	"github.com/joshuapare/objkit/pkg/types"
)

// Widget is a plain domain object. Only its identity matters to the
// registry; the fields exist so tests can tell instances apart in failures.
type Widget struct {
	Name string
}

// Record is a fake persisted entry with an optional previous-version link.
type Record struct {
	ID   types.ID
	Prev types.Entry
	Data any

	// Downgraded records whether the registry asked for the pass-through
	// payload downgrade.
	Downgraded bool
}

var _ types.Entry = (*Record)(nil)
var _ types.PayloadDowngrader = (*Record)(nil)

func (r *Record) EntryID() types.ID     { return r.ID }
func (r *Record) Previous() types.Entry { return r.Prev }
func (r *Record) Payload() any          { return r.Data }

func (r *Record) DowngradePayload() { r.Downgraded = true }

// NewID mints a fresh opaque identifier. Generation belongs to a
// collaborator in production; uuid stands in for it here.
func NewID() types.ID {
	return types.ID(uuid.NewString())
}

// NewRecord creates an entry with no previous version.
func NewRecord(id types.ID) *Record {
	return &Record{ID: id, Data: "payload-" + string(id)}
}

// Mutate creates the next version of prev, linking back to it.
func Mutate(prev *Record) *Record {
	return &Record{ID: prev.ID, Prev: prev, Data: "mutated"}
}
