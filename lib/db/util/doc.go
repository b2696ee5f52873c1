// Package util provides utility components for
// database implementations that satisfy the db.KVDB interface.
//
// The package contains:
//   - statistics: shard distribution statistics and a go-metrics backed size histogram
//   - functions: seeded hash functions and shard selection
//
// Each component is designed to work with any implementation of the db.KVDB interface,
// allowing for consistent measurement across different storage backends.
package util
