package chained

import (
	"encoding/binary"
	"hash/fnv"
	randv2 "math/rand/v2"
	"testing"

	"github.com/probekit/hashbench/strategy"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *randv2.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return randv2.New(randv2.NewPCG(testSeed1^s1, testSeed2^s2))
}

func newModuloTable(t testing.TB, capacity int) *Table {
	t.Helper()
	strat, err := strategy.New(strategy.Modulo, 0)
	if err != nil {
		t.Fatalf("strategy.New: %v", err)
	}
	return New(capacity, strat)
}

// Keys 1, 5, 9 are congruent mod 4 and share one bucket: the chain grows to
// three, and removing 5 from the middle leaves the other two reachable.
func TestSingleBucketChain(t *testing.T) {
	table := newModuloTable(t, 4)
	for _, k := range []int64{1, 5, 9} {
		table.Insert(k)
	}

	if table.Len() != 3 {
		t.Fatalf("Len = %d, want 3", table.Len())
	}
	if got := table.MaxChainLength(); got != 3 {
		t.Errorf("MaxChainLength = %d, want 3", got)
	}
	if got := table.AverageChainLength(); got != 3.0 {
		t.Errorf("AverageChainLength = %v, want 3.0", got)
	}
	if !table.Contains(5) {
		t.Fatal("Contains(5) = false")
	}

	if !table.Remove(5) {
		t.Fatal("Remove(5) failed")
	}
	if table.Contains(5) {
		t.Error("Contains(5) = true after remove")
	}
	if got := table.MaxChainLength(); got != 2 {
		t.Errorf("MaxChainLength = %d after remove, want 2", got)
	}
	if !table.Contains(1) || !table.Contains(9) {
		t.Error("middle removal broke the chain")
	}
}

// Insertion prepends, so within a bucket keys appear in reverse arrival order.
func TestInsertPrepends(t *testing.T) {
	table := newModuloTable(t, 4)
	for _, k := range []int64{1, 5, 9} {
		table.Insert(k)
	}

	want := []int64{9, 5, 1}
	i := table.heads[1]
	for _, k := range want {
		if i == nilNode {
			t.Fatalf("chain shorter than %d nodes", len(want))
		}
		if table.nodes[i].key != k {
			t.Fatalf("chain order: got key %d, want %d", table.nodes[i].key, k)
		}
		i = table.nodes[i].next
	}
	if i != nilNode {
		t.Fatal("chain longer than expected")
	}
}

func TestDuplicateInsertIsNoOp(t *testing.T) {
	table := newModuloTable(t, 4)
	table.Insert(5)
	table.Insert(5)
	if table.Len() != 1 {
		t.Fatalf("Len = %d after duplicate insert, want 1", table.Len())
	}
	if got := table.MaxChainLength(); got != 1 {
		t.Errorf("MaxChainLength = %d, want 1", got)
	}
}

// Empty buckets are excluded from the average's denominator.
func TestAverageSkipsEmptyBuckets(t *testing.T) {
	table := newModuloTable(t, 8)
	for _, k := range []int64{0, 1, 2, 3} {
		table.Insert(k)
	}
	if got := table.AverageChainLength(); got != 1.0 {
		t.Errorf("AverageChainLength = %v, want 1.0 over non-empty buckets", got)
	}
}

func TestRemoveHead(t *testing.T) {
	table := newModuloTable(t, 4)
	for _, k := range []int64{1, 5, 9} {
		table.Insert(k)
	}
	// 9 is the chain head after prepending.
	if !table.Remove(9) {
		t.Fatal("Remove(9) failed")
	}
	if !table.Contains(1) || !table.Contains(5) {
		t.Error("head removal broke the chain")
	}
	if table.Remove(9) {
		t.Error("Remove(9) = true for absent key")
	}
}

// Removed nodes return to the free list and are reused before the arena
// grows again.
func TestFreeListReuse(t *testing.T) {
	table := newModuloTable(t, 4)
	for _, k := range []int64{1, 5, 9} {
		table.Insert(k)
	}
	arena := len(table.nodes)

	table.Remove(5)
	table.Insert(13)
	if len(table.nodes) != arena {
		t.Errorf("arena grew to %d nodes, want reuse at %d", len(table.nodes), arena)
	}
	if !table.Contains(13) || table.Contains(5) {
		t.Error("free-list reuse corrupted lookups")
	}
}

func TestCapacityFixed(t *testing.T) {
	table := newModuloTable(t, 4)
	for k := int64(0); k < 100; k++ {
		table.Insert(k)
	}
	if table.Capacity() != 4 {
		t.Errorf("Capacity = %d, chained tables never resize", table.Capacity())
	}
	if lf := table.LoadFactor(); lf != 25.0 {
		t.Errorf("LoadFactor = %v, want 25.0", lf)
	}
}

func TestMemoryUsage(t *testing.T) {
	table := newModuloTable(t, 4)
	if got := table.MemoryUsage(); got != 4*4 {
		t.Fatalf("MemoryUsage = %d for empty table, want %d", got, 4*4)
	}
	for _, k := range []int64{1, 5, 9} {
		table.Insert(k)
	}
	want := 4*4 + 3*16
	if got := table.MemoryUsage(); got != want {
		t.Errorf("MemoryUsage = %d, want %d", got, want)
	}

	// Logical content only: a removed node leaves the estimate.
	table.Remove(5)
	if got := table.MemoryUsage(); got != 4*4+2*16 {
		t.Errorf("MemoryUsage = %d after remove, want %d", got, 4*4+2*16)
	}
}

func TestClear(t *testing.T) {
	table := newModuloTable(t, 4)
	for k := int64(0); k < 20; k++ {
		table.Insert(k)
	}
	table.Clear()

	if table.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", table.Len())
	}
	if got := table.MemoryUsage(); got != 4*4 {
		t.Errorf("MemoryUsage = %d after Clear, want %d", got, 4*4)
	}
	for k := int64(0); k < 20; k++ {
		if table.Contains(k) {
			t.Fatalf("Contains(%d) = true after Clear", k)
		}
	}

	table.Insert(7)
	if !table.Contains(7) {
		t.Error("table unusable after Clear")
	}
}

func TestInsertContainsRoundTrip(t *testing.T) {
	rng := newTestRNG(t)
	table := newModuloTable(t, 64)

	seen := make(map[int64]bool)
	for len(seen) < 500 {
		seen[int64(rng.IntN(1<<30))] = true
	}
	for k := range seen {
		table.Insert(k)
	}

	if table.Len() != len(seen) {
		t.Fatalf("Len = %d, want %d", table.Len(), len(seen))
	}
	for k := range seen {
		if !table.Contains(k) {
			t.Errorf("Contains(%d) = false after insert", k)
		}
	}
	for probe := int64(1 << 31); probe < 1<<31+100; probe++ {
		if table.Contains(probe) {
			t.Errorf("Contains(%d) = true for never-inserted key", probe)
		}
	}

	for k := range seen {
		if !table.Remove(k) {
			t.Errorf("Remove(%d) = false for present key", k)
		}
	}
	if table.Len() != 0 {
		t.Errorf("Len = %d after removing everything, want 0", table.Len())
	}
}
