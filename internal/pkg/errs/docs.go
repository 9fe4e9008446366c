// Package errs holds the typed errors shared by the domain, use cases and adapters.
//
// Every type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound, ErrStateTransitionIsInvalid) with a
// struct carrying the offending name, value or state. The struct unwraps to its
// sentinel so callers match with errors.Is and read details
// with errors.As.
//
// The HTTP adapter turns sentinels into status codes: not found is 404, a bad
// value is 422 and a forbidden transition is 409.
package errs
