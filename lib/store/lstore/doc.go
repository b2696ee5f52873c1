// Package lstore implements a local, in-memory, single-node typed key-value store based on the
// store.IStore interface. It provides a thin wrapper around any db.KVDB
// implementation with automatic write index management. Data is stored entirely
// in memory and is not persisted between process restarts.
//
// Key Features:
//   - Pure in-memory storage without persistence
//   - Direct integration with db.KVDB implementations
//   - Typed values encoded as [tag][payload] (see value.TypedValue.MarshalBinary)
//   - Automatic write index progression using atomic operations
//   - Feature detection to handle unsupported operations gracefully
//   - Per-store operation counters and latency histograms (VictoriaMetrics)
//
// Implementation Details:
//
//   - Write Index Management: The store maintains an atomic counter that automatically
//     increments with each write operation. This provides a monotonically increasing
//     logical timestamp that ensures consistent ordering of operations.
//
//   - Decoding: Values are decoded on every read. Bytes that can't be decoded are
//     reported as a *store.Error with code RetCMalformedValue. Range skips such
//     entries and reports them after the iteration.
//
//   - Metrics: Every store owns its own metrics.Set, so independent stores never share
//     counters. Use WritePrometheus (store.IMetricsWriter) to export them.
//
// Usage Example:
//
//	factory := func() db.KVDB { return maple.NewMapleDB(nil) }
//	s := lstore.NewLocalStore(factory)
//
//	err := s.Set("age", value.FromInt(42))
//	v, found, err := s.Get("age")
package lstore
