package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/objkit/internal/testutil"
	"github.com/joshuapare/objkit/pkg/types"
)

func TestUpdateEntryWithoutScopeIsSilentNoOp(t *testing.T) {
	r := New(Options{})

	w := &testutil.Widget{}
	e := testutil.NewRecord("a")

	// Deliberate asymmetry with the registering operations: no error, and
	// nothing is mutated.
	require.NoError(t, r.UpdateEntry(w, e))
	_, ok := r.IDToEntry("a")
	assert.False(t, ok)
	_, ok = r.ObjectToID(w)
	assert.False(t, ok)
}

func TestUpdateEntryMapsUnmappedObject(t *testing.T) {
	r := New(Options{})
	s := r.NewScope()
	defer r.RemoveScope(s)

	w := &testutil.Widget{}
	e := testutil.NewRecord("a")
	require.NoError(t, r.UpdateEntry(w, e, types.Field{Key: "dirty", Value: true}))

	got, ok := r.IDToObject("a")
	require.True(t, ok)
	assert.Same(t, w, got)

	gotEntry, ok := r.ObjectToEntry(w)
	require.True(t, ok)
	assert.Same(t, e, gotEntry)

	snap, ok := r.RegistrationOf(w)
	require.True(t, ok)
	assert.Equal(t, true, snap.Extra["dirty"])

	// The object was pushed onto the current scope.
	assert.Equal(t, 1, s.Len())
}

func TestUpdateEntryPushesOntoOpenTxn(t *testing.T) {
	r := New(Options{})
	s := r.NewScope()
	defer r.RemoveScope(s)

	w := &testutil.Widget{}
	require.NoError(t, r.RegisterObjectAndEntry("a", w, testutil.NewRecord("a")))

	txn := r.NewTxn()
	e2 := testutil.NewRecord("a")
	require.NoError(t, r.UpdateEntry(w, e2))

	owned := txn.Owned()
	require.Len(t, owned, 1)
	assert.Same(t, e2, owned[0])

	// Commit: the scope is simply discarded.
	r.RemoveTxn(txn)
	assert.Nil(t, r.Txn())

	got, ok := r.IDToEntry("a")
	require.True(t, ok)
	assert.Same(t, e2, got)
}

func TestTxnScopesNest(t *testing.T) {
	r := New(Options{})

	outer := r.NewTxn()
	inner := r.NewTxn()
	assert.Same(t, inner, r.Txn())

	r.RemoveTxn(inner)
	assert.Same(t, outer, r.Txn())

	r.RemoveTxn(outer)
	assert.Nil(t, r.Txn())
}

func TestUpdateEntriesMarksInStorage(t *testing.T) {
	r := New(Options{})
	s := r.NewScope()
	defer r.RemoveScope(s)

	w := &testutil.Widget{}
	require.NoError(t, r.RegisterObject("a", w))
	assert.False(t, r.ObjectInStorage(w))

	e := testutil.NewRecord("a")
	require.NoError(t, r.UpdateEntries([]Update{{Object: w, Entry: e}}))

	assert.True(t, r.ObjectInStorage(w))
	got, ok := r.ObjectToEntry(w)
	require.True(t, ok)
	assert.Same(t, e, got)
}

func TestRollbackRestoresPreviousEntry(t *testing.T) {
	r := New(Options{})
	s := r.NewScope()
	defer r.RemoveScope(s)

	w := &testutil.Widget{}
	e1 := testutil.NewRecord("a")
	require.NoError(t, r.RegisterObjectAndEntry("a", w, e1))

	txn := r.NewTxn()
	e2 := testutil.Mutate(e1)
	require.NoError(t, r.UpdateEntry(w, e2))

	r.RollbackEntries(txn.Owned())
	r.RemoveTxn(txn)

	got, ok := r.IDToEntry("a")
	require.True(t, ok)
	assert.Same(t, types.Entry(e1), got)

	gotEntry, ok := r.ObjectToEntry(w)
	require.True(t, ok)
	assert.Same(t, types.Entry(e1), gotEntry)
}

func TestRollbackUnregistersNewlyCreatedID(t *testing.T) {
	r := New(Options{})
	s := r.NewScope()
	defer r.RemoveScope(s)

	txn := r.NewTxn()
	w := &testutil.Widget{}
	e := testutil.NewRecord("a") // no previous version
	require.NoError(t, r.UpdateEntry(w, e))

	r.RollbackEntries(txn.Owned())
	r.RemoveTxn(txn)

	_, ok := r.IDToEntry("a")
	assert.False(t, ok)
	_, ok = r.IDToObject("a")
	assert.False(t, ok)
	_, ok = r.ObjectToID(w)
	assert.False(t, ok)
}

func TestRollbackUnwindsChainedMutationsInReverse(t *testing.T) {
	r := New(Options{})
	s := r.NewScope()
	defer r.RemoveScope(s)

	txn := r.NewTxn()
	w := &testutil.Widget{}
	e1 := testutil.NewRecord("a")
	require.NoError(t, r.UpdateEntry(w, e1))
	e2 := testutil.Mutate(e1)
	require.NoError(t, r.UpdateEntry(w, e2))

	// Reverse processing first rewinds a→e1, then fully unregisters the id:
	// the state is as if neither mutation occurred.
	r.RollbackEntries(txn.Owned())
	r.RemoveTxn(txn)

	_, ok := r.IDToEntry("a")
	assert.False(t, ok)
	_, ok = r.IDToObject("a")
	assert.False(t, ok)
}

func TestRollbackAfterCommittedBaseline(t *testing.T) {
	r := New(Options{})
	s := r.NewScope()
	defer r.RemoveScope(s)

	w := &testutil.Widget{}
	e1 := testutil.NewRecord("a")
	require.NoError(t, r.RegisterObjectAndEntry("a", w, e1))

	txn := r.NewTxn()
	e2 := testutil.Mutate(e1)
	require.NoError(t, r.UpdateEntry(w, e2))
	e3 := testutil.Mutate(e2)
	require.NoError(t, r.UpdateEntry(w, e3))

	// Two chained mutations unwind back to the committed baseline e1.
	r.RollbackEntries(txn.Owned())
	r.RemoveTxn(txn)

	got, ok := r.IDToEntry("a")
	require.True(t, ok)
	assert.Same(t, types.Entry(e1), got)
}
