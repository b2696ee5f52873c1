// Package db provides a standardized interface for key-value database implementations.
// It defines the KVDB interface that allows for consistent interaction with various
// database backends while abstracting implementation details.
//
// The package focuses on:
//   - A unified interface for byte-level key-value operations
//   - Feature discovery through capability flags
//   - Metadata reporting
//
// Key Components:
//
//   - KVDB Interface: The core interface that all database implementations must satisfy.
//     It provides methods for basic operations (Set, Get, Has, Delete), enumeration
//     (Range) and metadata retrieval (GetInfo).
//
//   - Feature Flags: The Feature type defines capability flags that implementations
//     can advertise through the SupportsFeature method. This allows clients to
//     discover supported operations at runtime.
//
//   - Implementation Identifiers: The Implementation type provides string constants
//     for different database backends (currently "maple").
//
//   - Database Information: The DatabaseInfo structure provides standardized
//     reporting on database state, including size statistics, implementation type,
//     and implementation-specific metadata. Note: For most implementations all
//     size statistics will be estimated since a precise calculation can be
//     expensive.
//
// Values are opaque to the database. The store layer (see package store) encodes typed
// values into bytes before handing them to a KVDB.
//
// Write Index:
//
//	All write operations take a write index that serves as a logical timestamp.
//	It is used to detect stale writes: an entry is only replaced by a write with an
//	equal or higher index. The database does not generate indices itself, this is
//	the responsibility of the caller (see lstore).
//
// Available implementations:
//   - maple: sharded in-memory engine (package db/engines/maple)
package db
