package bench

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/ValentinKolb/tKV/lib/command"
	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/ValentinKolb/tKV/lib/value"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	log = logger.GetLogger("bench")

	BenchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Performance testing tool for the tKV store",
		Long:  "Runs a set of parallel benchmarks against a local in-memory store and prints the results.",
		RunE:  run,
	}
)

// benchConfig holds the settings of a benchmark run
type benchConfig struct {
	Threads int
	Keys    int
	Skip    []string
}

// benchmark is a single named benchmark
type benchmark struct {
	name string
	fn   func(b *testing.B, s store.IStore, conf benchConfig)
}

// benchmarks lists all benchmarks in the order they are executed
var benchmarks = []benchmark{
	{"set-str", benchSet(value.FromString("a test value"))},
	{"set-int", benchSet(value.FromInt(42))},
	{"set-float", benchSet(value.FromFloat(3.14))},
	{"set-bool", benchSet(value.FromBool(true))},
	{"get", benchGet},
	{"has-not", benchHasNot},
	{"process", benchProcess},
	{"mixed", benchMixed},
}

func init() {
	key := "threads"
	BenchCmd.Flags().Int(key, 10, util.WrapString("Parallelism multiplier of the benchmarks (goroutines = threads * GOMAXPROCS)"))

	key = "keys"
	BenchCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))

	key = "skip"
	BenchCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set-str,get)"))

	key = "csv"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func run(_ *cobra.Command, _ []string) error {
	conf := benchConfig{
		Threads: viper.GetInt("threads"),
		Keys:    viper.GetInt("keys"),
		Skip:    strings.Split(viper.GetString("skip"), ","),
	}
	if conf.Threads <= 0 || conf.Keys <= 0 {
		return fmt.Errorf("threads and keys must be positive (got threads=%d, keys=%d)", conf.Threads, conf.Keys)
	}

	storeConf := util.GetConfig()

	fmt.Println("Performance testing tool for tKV")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(storeConf.String())
	fmt.Printf("Threads: %d\nKeys:    %d\n", conf.Threads, conf.Keys)
	fmt.Println()

	results := make(map[string]testing.BenchmarkResult, len(benchmarks))
	for _, bm := range benchmarks {
		if shouldSkip(conf, bm.name) {
			printResult(bm.name, testing.BenchmarkResult{})
			continue
		}
		log.Debugf("running benchmark %s", bm.name)
		result := testing.Benchmark(func(b *testing.B) {
			bm.fn(b, util.NewStore(storeConf), conf)
		})
		results[bm.name] = result
		printResult(bm.name, result)
	}

	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, conf); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Benchmarks
// --------------------------------------------------------------------------

func benchSet(v value.TypedValue) func(b *testing.B, s store.IStore, conf benchConfig) {
	return func(b *testing.B, s store.IStore, conf benchConfig) {
		keys := makeKeys("set", conf.Keys)

		b.SetParallelism(conf.Threads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if err := s.Set(keys[counter%len(keys)], v); err != nil {
					log.Errorf("(set) - error setting key: %v", err)
				}
				counter++
			}
		})
	}
}

func benchGet(b *testing.B, s store.IStore, conf benchConfig) {
	keys := makeKeys("get", conf.Keys)
	for i, key := range keys {
		_ = s.Set(key, value.FromInt(int64(i)))
	}

	b.SetParallelism(conf.Threads)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			if _, _, err := s.Get(keys[counter%len(keys)]); err != nil {
				log.Errorf("(get) - error getting key: %v", err)
			}
			counter++
		}
	})
}

func benchHasNot(b *testing.B, s store.IStore, conf benchConfig) {
	keys := makeKeys("has-not", conf.Keys)

	b.SetParallelism(conf.Threads)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			if _, err := s.Has(keys[counter%len(keys)]); err != nil {
				log.Errorf("(has-not) - error checking key: %v", err)
			}
			counter++
		}
	})
}

// benchProcess measures full command lines including parsing and rendering
func benchProcess(b *testing.B, s store.IStore, conf benchConfig) {
	p := command.NewProcessor()
	keys := makeKeys("process", conf.Keys)
	lines := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("SET %s float 2.5", key), fmt.Sprintf("GET %s", key))
	}

	b.SetParallelism(conf.Threads)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			p.Process(s, lines[counter%len(lines)])
			counter++
		}
	})
}

func benchMixed(b *testing.B, s store.IStore, conf benchConfig) {
	keys := makeKeys("mixed", conf.Keys)
	for _, key := range keys {
		_ = s.Set(key, value.FromBool(true))
	}

	b.SetParallelism(conf.Threads)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := keys[counter%len(keys)]
			var err error
			switch counter % 4 {
			case 0:
				err = s.Set(key, value.FromString("mixed"))
			case 1:
				_, _, err = s.Get(key)
			case 2:
				_, err = s.Delete(key)
			case 3:
				_, err = s.Has(key)
			}
			if err != nil {
				log.Errorf("(mixed) - error performing operation (%d): %v", counter%4, err)
			}
			counter++
		}
	})
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(conf benchConfig, name string) bool {
	for _, skip := range conf.Skip {
		if strings.TrimSpace(skip) == name {
			return true
		}
	}
	return false
}

// makeKeys creates n distinct keys with the given prefix
func makeKeys(prefix string, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("__bench-%s-%d", prefix, i)
	}
	return keys
}

// formatResult formats the result of a benchmark
func formatResult(name string, result testing.BenchmarkResult) string {
	if result.N == 0 {
		return fmt.Sprintf("%-20sskipped", name)
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	return fmt.Sprintf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec", name, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

func printResult(name string, result testing.BenchmarkResult) {
	fmt.Println(formatResult(name, result))
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, conf benchConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"Test", "N", "NsPerOp", "DurationPerOp", "OpsPerSec", "Threads", "Keys"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// keep the execution order
	for _, bm := range benchmarks {
		result, ok := results[bm.name]
		if !ok {
			continue
		}
		nsPerOp := math.Max(float64(result.NsPerOp()), 1)
		row := []string{
			bm.name,
			strconv.Itoa(result.N),
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", 1.0/(nsPerOp/1e9)),
			strconv.Itoa(conf.Threads),
			strconv.Itoa(conf.Keys),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %w", bm.name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
