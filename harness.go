package hashbench

import (
	"time"

	hasherrors "github.com/probekit/hashbench/errors"
	"github.com/probekit/hashbench/strategy"
)

// Metrics is an immutable snapshot produced by one RunTest call.
//
// The structural fields (LoadFactor, AvgChainLength, MaxChainLength,
// MemoryBytes) describe the table immediately after the insert pass of the
// first repetition; the phase times are means across all repetitions.
type Metrics struct {
	LoadFactor     float64
	AvgChainLength float64
	MaxChainLength int

	InsertTime time.Duration
	FindTime   time.Duration
	EraseTime  time.Duration

	MemoryBytes int
}

// RunTest benchmarks one table kind under one bucket strategy. Each
// repetition constructs a fresh table, then times an insert pass, a find
// pass, and an erase pass over keys in their given order. Structural metrics
// are captured once, after the first repetition's insert pass, before finds
// and erases disturb the slot states; repeating the snapshot would only
// re-measure the same shape.
//
// The key sequence may contain duplicates. An empty sequence, a
// non-positive capacity, a nil or incompatible strategy, and repetitions
// below one are rejected before any table is built.
func RunTest(keys []int64, kind TableKindID, strat strategy.Strategy, initialCapacity, repetitions int) (Metrics, error) {
	if len(keys) == 0 {
		return Metrics{}, hasherrors.ErrNoKeys
	}
	if repetitions < 1 {
		return Metrics{}, hasherrors.ErrZeroRepetitions
	}

	var m Metrics
	var insert, find, erase time.Duration
	for rep := 0; rep < repetitions; rep++ {
		table, err := NewTable(kind, initialCapacity, strat)
		if err != nil {
			return Metrics{}, err
		}

		start := time.Now()
		for _, k := range keys {
			table.Insert(k)
		}
		insert += time.Since(start)

		if rep == 0 {
			m.LoadFactor = table.LoadFactor()
			m.AvgChainLength = table.AverageChainLength()
			m.MaxChainLength = table.MaxChainLength()
			m.MemoryBytes = table.MemoryUsage()
		}

		start = time.Now()
		for _, k := range keys {
			table.Contains(k)
		}
		find += time.Since(start)

		start = time.Now()
		for _, k := range keys {
			table.Remove(k)
		}
		erase += time.Since(start)
	}

	n := time.Duration(repetitions)
	m.InsertTime = insert / n
	m.FindTime = find / n
	m.EraseTime = erase / n
	return m, nil
}
