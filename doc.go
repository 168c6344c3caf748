// Package hashbench benchmarks hash-table collision-resolution strategies
// over integer keys.
//
// Two table variants share the Table interface: open addressing with linear
// probing and tombstone deletion (grows automatically past a 0.7 load
// factor) and separate chaining over a fixed bucket count. Bucket selection
// is pluggable through the strategy package, which provides modulo and
// fibonacci (multiplicative) hashing plus digest-based strategies built on
// xxHash64, murmur3, and xxh3.
//
// # Basic Usage
//
// Benchmarking a workload:
//
//	strat, err := strategy.New(strategy.Modulo, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	keys := dataset.Random(42, 100_000)
//	metrics, err := hashbench.RunTest(keys, hashbench.KindOpenAddressing, strat, 17, 5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("load factor %.3f, insert %v\n", metrics.LoadFactor, metrics.InsertTime)
//
// Using a table directly:
//
//	table, err := hashbench.NewTable(hashbench.KindChained, 64, strat)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table.Insert(7)
//	found := table.Contains(7)
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Public API: table.go (Table, TableKindID, NewTable), harness.go (RunTest, Metrics)
//   - Bucket selection: strategy/ (Strategy, New, the five concrete strategies)
//   - Workloads: dataset/ (seeded generators, binary dataset files)
//   - Table variants: internal/openaddr/ (linear probing), internal/chained/ (arena chains)
//   - CLI: cmd/bench
package hashbench
