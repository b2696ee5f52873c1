package testing

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/tKV/lib/db"
)

// DBFactory is a function that creates a new instance of a KVDB implementation
type DBFactory func() db.KVDB

// RunKVDBTests runs a comprehensive test suite for a KVDB implementation.
func RunKVDBTests(t *testing.T, name string, factory DBFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("Has", func(t *testing.T) {
			testHas(t, factory())
		})

		t.Run("StaleWrites", func(t *testing.T) {
			testStaleWrites(t, factory())
		})

		t.Run("Range", func(t *testing.T) {
			testRange(t, factory())
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, factory())
		})

		t.Run("CollisionHandling", func(t *testing.T) {
			testCollisionHandling(t, factory())
		})

		t.Run("ConcurrentAccess", func(t *testing.T) {
			testConcurrentAccess(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// Checks if the database supports the specified feature
// Skip the test if it is not supported
func requireFeature(t testing.TB, database db.KVDB, feature db.Feature) {
	if !database.SupportsFeature(feature) {
		t.Skip()
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet|db.FeatureGet)

	testKey := "test-key"
	testValue1 := []byte("test-value1")
	testValue2 := []byte("v2")

	database.Set(testKey, testValue1, 1)

	result, exists := database.Get(testKey)
	if !exists {
		t.Errorf("Expected key %s to exist after Set", testKey)
	}
	if !bytes.Equal(result, testValue1) {
		t.Errorf("Expected value %s, got %s", testValue1, result)
	}

	// a shorter value must fully replace the old one
	database.Set(testKey, testValue2, 2)

	result, exists = database.Get(testKey)
	if !exists {
		t.Errorf("Expected key %s to exist after Set", testKey)
	}
	if !bytes.Equal(result, testValue2) {
		t.Errorf("Expected value %s, got %s", testValue2, result)
	}

	if _, exists = database.Get("nonexistent-key"); exists {
		t.Errorf("Expected nonexistent key to return exists=false")
	}

	// keys are case-sensitive
	if _, exists = database.Get("TEST-KEY"); exists {
		t.Errorf("Expected lookup to be case-sensitive")
	}

	retrievedValue, _ := database.Get(testKey)
	retrievedValue[0] = 'X'

	originalValue, _ := database.Get(testKey)
	if bytes.Equal(retrievedValue, originalValue) {
		t.Errorf("Get should return a copy, not a reference to the stored value")
	}

	input := []byte("input")
	database.Set("input-key", input, 3)
	input[0] = 'X'
	if stored, _ := database.Get("input-key"); !bytes.Equal(stored, []byte("input")) {
		t.Errorf("Set should copy the value, stored value changed to %s", stored)
	}
}

func testDelete(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet|db.FeatureGet|db.FeatureDelete)

	testKey := "delete-test-key"
	testValue := []byte("delete-test-value")

	database.Set(testKey, testValue, 1)

	if _, exists := database.Get(testKey); !exists {
		t.Errorf("Expected key %s to exist after Set", testKey)
	}

	database.Delete(testKey, 2)

	if _, exists := database.Get(testKey); exists {
		t.Errorf("Expected key %s to not exist after Delete", testKey)
	}

	// deleting a missing key is a no-op
	database.Delete("nonexistent-key", 3)
	if database.Has("nonexistent-key") {
		t.Errorf("Delete must not create keys")
	}

	// a key can be set again after it was deleted
	database.Set(testKey, testValue, 4)
	if _, exists := database.Get(testKey); !exists {
		t.Errorf("Expected key %s to exist after Set following Delete", testKey)
	}
}

func testHas(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet|db.FeatureHas)

	testKey := "has-test-key"

	if database.Has(testKey) {
		t.Errorf("Expected Has to return false for nonexistent key %s", testKey)
	}

	database.Set(testKey, []byte("value"), 1)

	if !database.Has(testKey) {
		t.Errorf("Expected Has to return true for existing key %s", testKey)
	}
}

func testStaleWrites(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet|db.FeatureGet|db.FeatureDelete)

	testKey := "stale-key"

	database.Set(testKey, []byte("new"), 10)
	database.Set(testKey, []byte("old"), 5)

	if result, _ := database.Get(testKey); !bytes.Equal(result, []byte("new")) {
		t.Errorf("Stale write overwrote newer value, got %s", result)
	}

	database.Delete(testKey, 9)
	if !database.Has(testKey) {
		t.Errorf("Stale delete removed newer value")
	}

	// same index is not stale
	database.Set(testKey, []byte("same"), 10)
	if result, _ := database.Get(testKey); !bytes.Equal(result, []byte("same")) {
		t.Errorf("Write with equal index was ignored, got %s", result)
	}

	if database.WriteIdx() != 10 {
		t.Errorf("Expected write index 10, got %d", database.WriteIdx())
	}
	database.SetWriteIdx(3)
	if database.WriteIdx() != 10 {
		t.Errorf("Write index must never decrease, got %d", database.WriteIdx())
	}
}

func testRange(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet|db.FeatureRange)

	expected := make(map[string][]byte)
	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("range-key-%d", i)
		value := []byte(fmt.Sprintf("range-value-%d", i))
		expected[key] = value
		database.Set(key, value, uint64(i+1))
	}

	seen := make(map[string][]byte)
	database.Range(func(key string, value []byte) bool {
		if _, ok := seen[key]; ok {
			t.Errorf("Range visited key %s twice", key)
		}
		seen[key] = value
		return true
	})

	if len(seen) != len(expected) {
		t.Errorf("Range visited %d keys, expected %d", len(seen), len(expected))
	}
	for key, value := range expected {
		if !bytes.Equal(seen[key], value) {
			t.Errorf("Range returned %s for key %s, expected %s", seen[key], key, value)
		}
	}

	// returning false stops the iteration
	visited := 0
	database.Range(func(string, []byte) bool {
		visited++
		return visited < 10
	})
	if visited != 10 {
		t.Errorf("Range did not stop after fn returned false, visited %d keys", visited)
	}
}

func testEdgeCases(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet|db.FeatureGet)

	emptyValueKey := "empty-value-key"

	database.Set(emptyValueKey, []byte{}, 1)

	result, exists := database.Get(emptyValueKey)
	if !exists {
		t.Errorf("Key for empty value not found after Set")
	} else if len(result) != 0 {
		t.Errorf("Empty value mismatch: %v", result)
	}

	nilValueKey := "nil-value-key"

	database.Set(nilValueKey, nil, 2)

	result, exists = database.Get(nilValueKey)
	if !exists {
		t.Errorf("Key for nil value not found after Set")
	} else if len(result) != 0 {
		t.Errorf("Nil value resulted in non-empty value: %v", result)
	}

	unicodeKey := "你好世界"
	database.Set(unicodeKey, []byte("hello world"), 3)
	if result, _ = database.Get(unicodeKey); !bytes.Equal(result, []byte("hello world")) {
		t.Errorf("Value mismatch for unicode key")
	}

	largeKey := string(make([]byte, 1000))
	largeKeyValue := []byte("value for large key")

	database.Set(largeKey, largeKeyValue, 4)

	result, exists = database.Get(largeKey)
	if !exists {
		t.Errorf("Large key not found after Set")
	} else if !bytes.Equal(result, largeKeyValue) {
		t.Errorf("Value mismatch for large key")
	}

	largeValueKey := "large-value-key"
	largeValue := make([]byte, 1024*1024)
	for i := range largeValue {
		largeValue[i] = byte(i % 256)
	}

	database.Set(largeValueKey, largeValue, 5)

	result, exists = database.Get(largeValueKey)
	if !exists {
		t.Errorf("Key for large value not found after Set")
	} else if !bytes.Equal(result, largeValue) {
		t.Errorf("Large value mismatch (size %d, expected %d)", len(result), len(largeValue))
	}
}

func testCollisionHandling(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet|db.FeatureGet|db.FeatureDelete)

	prefix := "collision-test-"
	numKeys := 1000

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		value := []byte(fmt.Sprintf("value-%d", i))

		database.Set(key, value, 1)
	}

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		expectedValue := []byte(fmt.Sprintf("value-%d", i))

		actualValue, exists := database.Get(key)
		if !exists {
			t.Errorf("Key %s not found", key)
			continue
		}

		if !bytes.Equal(actualValue, expectedValue) {
			t.Errorf("Value for key %s does not match: expected %s, got %s",
				key, expectedValue, actualValue)
		}
	}

	for i := 0; i < numKeys; i += 2 {
		key := fmt.Sprintf("%s%d", prefix, i)
		database.Delete(key, 10)
	}

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		_, exists := database.Get(key)

		if i%2 == 0 {
			if exists {
				t.Errorf("Key %s should be deleted", key)
			}
		} else {
			if !exists {
				t.Errorf("Key %s should still exist", key)
			}
		}
	}
}

func testConcurrentAccess(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet|db.FeatureGet)

	numWorkers := 8
	numKeys := 200

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < numKeys; i++ {
				key := fmt.Sprintf("worker-%d-key-%d", worker, i)
				database.Set(key, []byte(key), uint64(i+1))
				if _, ok := database.Get(key); !ok {
					t.Errorf("Key %s not found directly after Set", key)
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < numWorkers; w++ {
		for i := 0; i < numKeys; i++ {
			key := fmt.Sprintf("worker-%d-key-%d", w, i)
			if result, _ := database.Get(key); !bytes.Equal(result, []byte(key)) {
				t.Errorf("Value mismatch for key %s: %s", key, result)
			}
		}
	}
}
