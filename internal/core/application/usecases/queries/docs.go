// Package queries contains read-only operations of the CQRS split.
//
// Query handlers read straight from the database with raw SQL and return flat
// response structs. They never load aggregates and never take row locks.
package queries
