package lstore

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/ValentinKolb/tKV/lib/value"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	log = logger.GetLogger("store")
)

// operation names used as metric labels
const (
	opSet    = "set"
	opGet    = "get"
	opDelete = "delete"
	opHas    = "has"
	opRange  = "range"
)

type storeImpl struct {
	db      db.KVDB
	index   atomic.Uint64
	metrics *metrics.Set
}

// NewLocalStore creates a new local store instance.
// This store implementation is not distributed and only works on a single node.
// This works by using the given db implementation (e.g. maple) directly.
func NewLocalStore(factory store.DBFactory) store.IStore {
	return &storeImpl{
		db:      factory(),
		index:   atomic.Uint64{},
		metrics: metrics.NewSet(),
	}
}

// incAndGetIndex increments the index and returns the new value.
// It is used to ensure that each write operation has a unique index.
//
// Thread-safety: This method is thread-safe since it uses atomic operations.
func (s *storeImpl) incAndGetIndex() uint64 {
	return s.index.Add(1)
}

// track counts an operation and records its duration
func (s *storeImpl) track(op string, start time.Time) {
	s.metrics.GetOrCreateCounter(fmt.Sprintf(`tkv_store_operations_total{op=%q}`, op)).Inc()
	s.metrics.GetOrCreateHistogram(fmt.Sprintf(`tkv_store_operation_duration_seconds{op=%q}`, op)).UpdateDuration(start)
}

// decode converts stored bytes back into a typed value
func decode(key string, data []byte) (value.TypedValue, error) {
	var v value.TypedValue
	if err := v.UnmarshalBinary(data); err != nil {
		log.Warningf("could not decode value for key %q: %v", key, err)
		return value.TypedValue{}, store.NewError(store.RetCMalformedValue, fmt.Sprintf("value for key %q: %v", key, err))
	}
	return v, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Set(key string, v value.TypedValue) error {
	defer s.track(opSet, time.Now())
	if !s.db.SupportsFeature(db.FeatureSet) {
		return store.NewError(store.RetCUnsupportedOperation, "Set operation is not supported")
	}
	data, err := v.MarshalBinary()
	if err != nil {
		return store.NewError(store.RetCInvalidOperation, err.Error())
	}
	idx := s.incAndGetIndex()
	s.db.Set(key, data, idx)
	log.Debugf("set key %q (type %s, index %d)", key, v.Type(), idx)
	return nil
}

func (s *storeImpl) Get(key string) (value.TypedValue, bool, error) {
	defer s.track(opGet, time.Now())
	if !s.db.SupportsFeature(db.FeatureGet) {
		return value.TypedValue{}, false, store.NewError(store.RetCUnsupportedOperation, "Get operation is not supported")
	}
	data, ok := s.db.Get(key)
	if !ok {
		return value.TypedValue{}, false, nil
	}
	v, err := decode(key, data)
	if err != nil {
		return value.TypedValue{}, false, err
	}
	return v, true, nil
}

func (s *storeImpl) Delete(key string) (bool, error) {
	defer s.track(opDelete, time.Now())
	if !s.db.SupportsFeature(db.FeatureDelete | db.FeatureHas) {
		return false, store.NewError(store.RetCUnsupportedOperation, "Delete operation is not supported")
	}
	if !s.db.Has(key) {
		return false, nil
	}
	s.db.Delete(key, s.incAndGetIndex())
	log.Debugf("deleted key %q", key)
	return true, nil
}

func (s *storeImpl) Has(key string) (bool, error) {
	defer s.track(opHas, time.Now())
	if !s.db.SupportsFeature(db.FeatureHas) {
		return false, store.NewError(store.RetCUnsupportedOperation, "Has operation is not supported")
	}
	return s.db.Has(key), nil
}

func (s *storeImpl) Range(fn func(key string, v value.TypedValue) bool) error {
	defer s.track(opRange, time.Now())
	if !s.db.SupportsFeature(db.FeatureRange) {
		return store.NewError(store.RetCUnsupportedOperation, "Range operation is not supported")
	}
	var errs []error
	s.db.Range(func(key string, data []byte) bool {
		v, err := decode(key, data)
		if err != nil {
			// skip broken entries but keep iterating
			errs = append(errs, err)
			return true
		}
		return fn(key, v)
	})
	if len(errs) > 0 {
		return store.NewError(store.RetCMalformedValue, errors.Join(errs...).Error())
	}
	return nil
}

func (s *storeImpl) GetDBInfo() (db.DatabaseInfo, error) {
	return s.db.GetInfo(), nil
}

// WritePrometheus writes the operation metrics of this store (see store.IMetricsWriter)
func (s *storeImpl) WritePrometheus(w io.Writer) {
	s.metrics.WritePrometheus(w)
}
