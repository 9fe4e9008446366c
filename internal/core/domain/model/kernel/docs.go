// Package kernel provides core domain primitives shared by the order, rider and
// notification aggregates.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and text encoding
//   - GeoPoint: A latitude/longitude pair validated against WGS84 bounds
//
// Both types are immutable and safe to copy and share between goroutines.
package kernel
