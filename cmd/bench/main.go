// Bench measures hash-table structural quality (load factor, cluster and
// chain lengths, memory) and operation latency (insert/find/erase) across
// bucket strategies, table kinds, and key distributions.
//
// Usage:
//
//	go run ./cmd/bench -keys 100000 -reps 5 -csv results.csv
//
// Flags:
//
//	-keys         Number of keys per dataset; 0 prompts on stdin (default: 0)
//	-reps         Repetitions per combination; phase times are averaged (default: 3)
//	-cap          Initial capacity for any-capacity strategies (default: 17, prime)
//	-pow2cap      Initial capacity for fibonacci hashing (default: 16)
//	-seed         Seed for the random dataset and digest strategies (default: 42)
//	-strategies   Comma-separated strategies: modulo,fibonacci,xxhash,murmur3,xxh3
//	-tables       Comma-separated table kinds: open,chained
//	-datasets     Comma-separated datasets: random,sequential,clustered
//	-csv          Write results as CSV rows to this file
//	-dataset-dir  Cache generated datasets as files in this directory
//	-workers      Combinations run in parallel; >1 distorts timings (default: 1)
//	-v            Log verbosity: 0 info, 1 debug (default: 0)
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"golang.org/x/sync/errgroup"

	"github.com/probekit/hashbench"
	"github.com/probekit/hashbench/dataset"
	"github.com/probekit/hashbench/strategy"
)

const (
	defaultCapacity     = 17 // prime, the classic textbook starting size
	defaultPow2Capacity = 16
	defaultSeed         = 42
)

// namedKeys is one generated dataset with its display name.
type namedKeys struct {
	name string
	keys []int64
}

// combo is one benchmark combination to run.
type combo struct {
	dataset  string
	keys     []int64
	stratID  strategy.ID
	kind     hashbench.TableKindID
	capacity int
}

// result pairs a combination with its metrics, in submission order.
type result struct {
	combo
	metrics hashbench.Metrics
}

func exitOnErr(logger logr.Logger, err error, msg string) {
	if err != nil {
		logger.Error(err, msg)
		os.Exit(1)
	}
}

// getLogger returns a stdr-backed logr.Logger at verbosity v
// (0 info, 1 debug).
func getLogger(v int) logr.Logger {
	logger := stdr.New(nil)
	if v < 0 || v > 1 {
		v = 0
		logger.Info("Invalid verbosity, defaulting to info level.")
	}
	stdr.SetVerbosity(v)
	return logger
}

func main() {
	keysFlag := flag.Int("keys", 0, "number of keys per dataset (0 prompts on stdin)")
	repsFlag := flag.Int("reps", 3, "repetitions per combination")
	capFlag := flag.Int("cap", defaultCapacity, "initial capacity for any-capacity strategies")
	pow2CapFlag := flag.Int("pow2cap", defaultPow2Capacity, "initial capacity for fibonacci hashing (power of two)")
	seedFlag := flag.Uint64("seed", defaultSeed, "seed for the random dataset and digest strategies")
	strategiesFlag := flag.String("strategies", "fibonacci,modulo", "comma-separated strategies")
	tablesFlag := flag.String("tables", "open,chained", "comma-separated table kinds")
	datasetsFlag := flag.String("datasets", "random,sequential,clustered", "comma-separated datasets")
	csvFlag := flag.String("csv", "", "write results as CSV to this file")
	datasetDirFlag := flag.String("dataset-dir", "", "cache generated datasets in this directory")
	workersFlag := flag.Int("workers", 1, "combinations to run in parallel")
	verbosityFlag := flag.Int("v", 0, "log verbosity (0 info, 1 debug)")
	flag.Parse()

	logger := getLogger(*verbosityFlag)

	numKeys := *keysFlag
	if numKeys <= 0 {
		n, err := promptKeyCount()
		exitOnErr(logger, err, "invalid number of keys")
		numKeys = n
	}

	stratIDs, err := parseStrategies(*strategiesFlag)
	exitOnErr(logger, err, "parsing -strategies")
	kinds, err := parseTables(*tablesFlag)
	exitOnErr(logger, err, "parsing -tables")

	datasets, err := buildDatasets(logger, *datasetsFlag, *datasetDirFlag, *seedFlag, numKeys)
	exitOnErr(logger, err, "generating datasets")

	var combos []combo
	for _, ds := range datasets {
		for _, id := range stratIDs {
			capacity := *capFlag
			if id == strategy.Fibonacci {
				capacity = *pow2CapFlag
			}
			for _, kind := range kinds {
				combos = append(combos, combo{
					dataset:  ds.name,
					keys:     ds.keys,
					stratID:  id,
					kind:     kind,
					capacity: capacity,
				})
			}
		}
	}

	logger.V(1).Info("running benchmark matrix",
		"combinations", len(combos), "keys", numKeys, "reps", *repsFlag)

	results := make([]result, len(combos))
	var g errgroup.Group
	g.SetLimit(max(1, *workersFlag))
	for i, c := range combos {
		g.Go(func() error {
			strat, err := strategy.New(c.stratID, *seedFlag)
			if err != nil {
				return err
			}
			m, err := hashbench.RunTest(c.keys, c.kind, strat, c.capacity, *repsFlag)
			if err != nil {
				return fmt.Errorf("%s/%s/%s: %w", c.dataset, c.stratID, c.kind, err)
			}
			results[i] = result{combo: c, metrics: m}
			return nil
		})
	}
	exitOnErr(logger, g.Wait(), "running benchmarks")

	printResults(results)
	if rss := getMaxRSS(); rss > 0 {
		fmt.Printf("Peak RSS: %.1f MiB\n", float64(rss)/(1<<20))
	}

	if *csvFlag != "" {
		exitOnErr(logger, writeCSV(*csvFlag, results, numKeys, *repsFlag), "writing CSV")
		logger.Info("wrote CSV results", "path", *csvFlag)
	}
}

// promptKeyCount reads the key count from stdin, mirroring the interactive
// mode of the original tool.
func promptKeyCount() (int, error) {
	fmt.Print("Enter number of keys: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("key count must be positive, got %d", n)
	}
	return n, nil
}

func parseStrategies(s string) ([]strategy.ID, error) {
	var ids []strategy.ID
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(name) {
		case "modulo":
			ids = append(ids, strategy.Modulo)
		case "fibonacci":
			ids = append(ids, strategy.Fibonacci)
		case "xxhash":
			ids = append(ids, strategy.XXHash)
		case "murmur3":
			ids = append(ids, strategy.Murmur3)
		case "xxh3":
			ids = append(ids, strategy.XXH3)
		default:
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
	}
	return ids, nil
}

func parseTables(s string) ([]hashbench.TableKindID, error) {
	var kinds []hashbench.TableKindID
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(name) {
		case "open":
			kinds = append(kinds, hashbench.KindOpenAddressing)
		case "chained":
			kinds = append(kinds, hashbench.KindChained)
		default:
			return nil, fmt.Errorf("unknown table kind %q", name)
		}
	}
	return kinds, nil
}

// buildDatasets generates the selected key distributions. With a dataset
// directory configured, previously generated files are memory-mapped back
// instead of regenerated, and fresh generations are persisted for next time.
func buildDatasets(logger logr.Logger, names, dir string, seed uint64, n int) ([]namedKeys, error) {
	generators := map[string]func() []int64{
		"random":     func() []int64 { return dataset.Random(seed, n) },
		"sequential": func() []int64 { return dataset.Sequential(n) },
		"clustered":  func() []int64 { return dataset.Clustered(n) },
	}
	// Display names in the original tool's report casing.
	display := map[string]string{
		"random":     "Random",
		"sequential": "Sequential",
		"clustered":  "Clustered",
	}

	var out []namedKeys
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		gen, ok := generators[name]
		if !ok {
			return nil, fmt.Errorf("unknown dataset %q", name)
		}

		if dir == "" {
			out = append(out, namedKeys{name: display[name], keys: gen()})
			continue
		}

		path := filepath.Join(dir, fmt.Sprintf("%s-%d-%d.keys", name, n, seed))
		if f, err := dataset.Open(path); err == nil {
			keys := f.Keys()
			if cerr := f.Close(); cerr != nil {
				return nil, cerr
			}
			logger.V(1).Info("loaded cached dataset", "path", path, "keys", len(keys))
			out = append(out, namedKeys{name: display[name], keys: keys})
			continue
		}

		keys := gen()
		if err := dataset.Write(path, keys); err != nil {
			return nil, err
		}
		logger.V(1).Info("cached dataset", "path", path, "keys", len(keys))
		out = append(out, namedKeys{name: display[name], keys: keys})
	}
	return out, nil
}

// printResults renders the per-combination report grouped by dataset.
func printResults(results []result) {
	lastDataset := ""
	for _, r := range results {
		if r.dataset != lastDataset {
			fmt.Printf("===== Dataset: %s =====\n", r.dataset)
			lastDataset = r.dataset
		}
		fmt.Printf("-- %s / %s (capacity %d) --\n", r.stratID, r.kind, r.capacity)
		fmt.Printf("  Load factor       : %.3f\n", r.metrics.LoadFactor)
		fmt.Printf("  Avg chain length  : %.2f\n", r.metrics.AvgChainLength)
		fmt.Printf("  Max chain length  : %d\n", r.metrics.MaxChainLength)
		fmt.Printf("  Insert time (ms)  : %.3f\n", millis(r.metrics.InsertTime))
		fmt.Printf("  Find time (ms)    : %.3f\n", millis(r.metrics.FindTime))
		fmt.Printf("  Erase time (ms)   : %.3f\n", millis(r.metrics.EraseTime))
		fmt.Printf("  Memory usage (B)  : %d\n", r.metrics.MemoryBytes)
	}
}

func writeCSV(path string, results []result, numKeys, reps int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"dataset", "strategy", "table", "keys", "capacity", "reps",
		"load_factor", "avg_chain", "max_chain",
		"insert_ms", "find_ms", "erase_ms", "memory_bytes",
	}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{
			r.dataset,
			r.stratID.String(),
			r.kind.String(),
			strconv.Itoa(numKeys),
			strconv.Itoa(r.capacity),
			strconv.Itoa(reps),
			strconv.FormatFloat(r.metrics.LoadFactor, 'f', 6, 64),
			strconv.FormatFloat(r.metrics.AvgChainLength, 'f', 6, 64),
			strconv.Itoa(r.metrics.MaxChainLength),
			strconv.FormatFloat(millis(r.metrics.InsertTime), 'f', 6, 64),
			strconv.FormatFloat(millis(r.metrics.FindTime), 'f', 6, 64),
			strconv.FormatFloat(millis(r.metrics.EraseTime), 'f', 6, 64),
			strconv.Itoa(r.metrics.MemoryBytes),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func millis(d time.Duration) float64 {
	return d.Seconds() * 1000
}
