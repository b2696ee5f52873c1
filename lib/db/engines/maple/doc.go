// Package maple implements a sharded in-memory key-value database (KVDB).
// It provides a complete implementation of the db.KVDB interface with a focus on
// thread safety and predictable memory behavior.
//
// The package focuses on:
//   - Concurrent access through sharding and lock-free map reads
//   - Stale write detection based on a caller provided write index
//   - Sampled size and distribution statistics for monitoring
//
// Key Components:
//
//   - mapleImpl: The central database structure implementing db.KVDB. It manages
//     the shards and maintains a monotonically increasing write index. The write
//     index itself is generated by the caller (see lstore), maple only tracks the
//     highest index it has seen.
//
//   - Shard: A partition of the database that manages a subset of the key space.
//     Each shard wraps an xsync.MapOf keyed by the original string key, so keys can
//     be enumerated with Range.
//
//   - Entry: The stored value bytes together with the index of the write that
//     produced them.
//
// Internal Mechanisms:
//
//   - Sharding Strategy: String keys are hashed with a seeded FNV-1a hash (the seed
//     is random per database instance), the hash is shifted right by 7 bits and taken
//     modulo the number of shards.
//
//   - Stale Writes: Set and Delete only modify an entry if their write index is equal
//     to or greater than the index stored with the entry.
//
//   - Copy Semantics: Values are copied on the way in and on the way out, callers
//     never alias stored memory.
//
// Statistics:
//
//	GetInfo samples up to 100 entries per shard into a go-metrics histogram and
//	reports an estimated total size together with the shard distribution quality.
//
// Usage Example:
//
//	database := maple.NewMapleDB(nil) // default options: one shard per CPU
//	database.Set("answer", []byte{42}, 1)
//	value, ok := database.Get("answer")
package maple
