package bench

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/ValentinKolb/tKV/lib/common"
)

func TestBenchmarksRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping benchmarks in short mode")
	}

	conf := benchConfig{Threads: 2, Keys: 10}
	for _, bm := range benchmarks {
		t.Run(bm.name, func(t *testing.T) {
			s := util.NewStore(&common.Config{Shards: 2})
			result := testing.Benchmark(func(b *testing.B) {
				bm.fn(b, s, conf)
			})
			if result.N == 0 {
				t.Errorf("benchmark %s did not run", bm.name)
			}
		})
	}
}

func TestShouldSkip(t *testing.T) {
	conf := benchConfig{Skip: strings.Split("get, mixed", ",")}

	if !shouldSkip(conf, "get") || !shouldSkip(conf, "mixed") {
		t.Errorf("listed benchmarks were not skipped")
	}
	if shouldSkip(conf, "set-int") {
		t.Errorf("unlisted benchmark was skipped")
	}
}

func TestFormatResult(t *testing.T) {
	if got := formatResult("get", testing.BenchmarkResult{}); !strings.Contains(got, "skipped") {
		t.Errorf("empty result not reported as skipped: %q", got)
	}

	got := formatResult("get", testing.BenchmarkResult{N: 1000, T: 1000000})
	if !strings.Contains(got, "1000ns/op") || !strings.Contains(got, "1000000 ops/sec") {
		t.Errorf("unexpected result line %q", got)
	}
}

func TestWriteResultsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	results := map[string]testing.BenchmarkResult{
		"get":     {N: 10, T: 1000},
		"set-int": {N: 10, T: 2000},
	}

	if err := writeResultsToCSV(path, results, benchConfig{Threads: 1, Keys: 5}); err != nil {
		t.Fatalf("writeResultsToCSV() error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("could not parse CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d rows", len(rows))
	}
	// rows follow the execution order
	if rows[1][0] != "set-int" || rows[2][0] != "get" {
		t.Errorf("unexpected row order: %v", rows)
	}
}
