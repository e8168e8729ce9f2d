// Package types defines the shared contracts of the live-object registry:
// identifiers, the Entry capability produced by the storage backend, the
// leak-tracker capability, and the typed error taxonomy.
//
// This package only exposes interfaces and core types. The registry package
// provides the implementation; storage, serialization, and identifier
// generation live in upstream collaborators.
//
// Design goals:
//   - Opaque identifiers and entries; the registry never interprets payloads.
//   - Lookups never fail; absence is a value, not an error.
//   - Typed errors with stable categories (no-open-scope/already-registered/...).
//
// This package has no dependencies beyond the standard library.
package types
