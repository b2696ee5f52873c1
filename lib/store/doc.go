// Package store provides a high-level interface for typed key-value storage operations
// with unified error handling. It serves as an abstraction layer over the lower-level,
// byte-oriented db.KVDB implementations, adding value typing (see package value),
// write index management and standardized error reporting.
//
// The package focuses on:
//   - A unified interface (IStore) for typed key-value operations across different backends
//   - Pluggable storage backend architecture through DBFactory pattern
//
// Key Components:
//
//   - IStore Interface: The core abstraction defining operations for interacting with
//     a key-value store. Keys are case-sensitive strings, values are value.TypedValue.
//     Set always fully replaces an existing value, values are never merged.
//
//   - Error System: A structured error reporting mechanism using typed error codes
//     and descriptive messages. A stored value whose bytes can't be decoded is reported
//     with RetCMalformedValue instead of bringing the process down.
//
//   - DBFactory: A function type that abstracts the creation of underlying db.KVDB
//     instances, providing dependency injection and flexible configuration of
//     storage backends.
//
// Implementations:
//
//	- Local Store (lstore): A non-distributed implementation that directly
//	  utilizes a db.KVDB instance. It manages write index progression internally
//	  using atomic operations and records per-store operation metrics.
//	  Available in the "github.com/ValentinKolb/tKV/lib/store/lstore" package.
//
// Stores are plain values passed to their users, there is no global store instance.
// This allows independent stores to be used side by side (e.g. in parallel tests).
package store
