// Package identity provides the reference-kind checks behind the registry's
// identity-keyed tables. Objects and entries are distinguished by identity,
// never by value equality, so the registry only accepts pointer-backed
// values: pointers are the one reference kind Go can use as a map key
// without value comparison.
package identity

import "reflect"

// IsReference reports whether v is a pointer-backed value usable as an
// identity key. nil interfaces and typed nil pointers are rejected.
func IsReference(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && !rv.IsNil()
}

// Same reports whether a and b are the same reference: identical dynamic
// type and identical address. Unlike ==, it never panics when a payload has
// a non-comparable dynamic type.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ra := reflect.ValueOf(a)
	rb := reflect.ValueOf(b)
	if ra.Kind() != reflect.Pointer || rb.Kind() != reflect.Pointer {
		return false
	}
	return ra.Type() == rb.Type() && ra.Pointer() == rb.Pointer()
}
