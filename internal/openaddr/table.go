// Package openaddr implements the open-addressing table variant: a single
// slot array with linear probing, tombstone deletion, and automatic growth.
package openaddr

import (
	"unsafe"

	"github.com/probekit/hashbench/strategy"
)

// growthThreshold is the load factor above which an insert triggers a rehash.
const growthThreshold = 0.7

type slotState uint8

const (
	slotEmpty slotState = iota
	slotFilled
	slotDeleted
)

// Table stores keys directly in its slot array. Collisions resolve by linear
// probing; removal leaves a tombstone so later probes still find keys placed
// past the removed slot. Tombstones accumulate until a growth rehash drops
// them.
type Table struct {
	keys   []int64
	states []slotState
	size   int
	strat  strategy.Strategy
}

// New constructs a table with the given bucket count. Capacity and strategy
// compatibility are validated by the caller (see hashbench.NewTable).
func New(capacity int, strat strategy.Strategy) *Table {
	return &Table{
		keys:   make([]int64, capacity),
		states: make([]slotState, capacity),
		strat:  strat,
	}
}

// Insert adds key to the table. Inserting a present key is a no-op. When the
// load factor exceeds growthThreshold after the insert, the table rehashes
// into a larger slot array.
func (t *Table) Insert(key int64) {
	if t.insert(key) && t.LoadFactor() > growthThreshold {
		t.grow()
	}
}

// insert places key without checking the growth threshold and reports whether
// a new key was added. The probe must continue past tombstones before
// concluding the key is absent: a duplicate may sit beyond the first Deleted
// slot. The first tombstone seen is remembered and becomes the placement slot
// when no duplicate turns up.
func (t *Table) insert(key int64) bool {
	idx := t.strat.Index(key, len(t.states))
	place := -1
	for probes := 0; probes < len(t.states); probes++ {
		switch t.states[idx] {
		case slotEmpty:
			if place < 0 {
				place = idx
			}
			t.keys[place] = key
			t.states[place] = slotFilled
			t.size++
			return true
		case slotDeleted:
			if place < 0 {
				place = idx
			}
		case slotFilled:
			if t.keys[idx] == key {
				return false
			}
		}
		idx++
		if idx == len(t.states) {
			idx = 0
		}
	}
	// Full wrap without an Empty slot: every slot is Filled or Deleted.
	if place >= 0 {
		t.keys[place] = key
		t.states[place] = slotFilled
		t.size++
		return true
	}
	// Saturated with live keys. Growth fires well below full occupancy, so
	// this is unreachable through Insert, but grow rather than drop the key.
	t.grow()
	return t.insert(key)
}

// Contains reports whether key is present.
func (t *Table) Contains(key int64) bool {
	return t.find(key) >= 0
}

// Remove converts key's slot to a tombstone and reports whether key was
// found. The slot cannot be reset to Empty: probes for keys placed later in
// the same chain rely on it not terminating their search.
func (t *Table) Remove(key int64) bool {
	idx := t.find(key)
	if idx < 0 {
		return false
	}
	t.states[idx] = slotDeleted
	t.size--
	return true
}

// find returns the slot index holding key, or -1. It stops on the first
// Empty slot, passes through Deleted slots, and gives up after a full wrap
// so a table saturated with tombstones cannot loop forever.
func (t *Table) find(key int64) int {
	idx := t.strat.Index(key, len(t.states))
	for probes := 0; probes < len(t.states); probes++ {
		switch t.states[idx] {
		case slotEmpty:
			return -1
		case slotFilled:
			if t.keys[idx] == key {
				return idx
			}
		}
		idx++
		if idx == len(t.states) {
			idx = 0
		}
	}
	return -1
}

// grow rehashes into a slot array sized to the smallest prime at least twice
// the current capacity. A strategy that cannot address a prime bucket count
// (fibonacci) doubles to the next power of two instead. Either way the array
// is rebuilt from scratch and tombstones do not survive.
func (t *Table) grow() {
	newCap := nextPrime(2 * len(t.states))
	if t.strat.Validate(newCap) != nil {
		newCap = nextPowerOfTwo(2 * len(t.states))
	}

	oldKeys, oldStates := t.keys, t.states
	t.keys = make([]int64, newCap)
	t.states = make([]slotState, newCap)
	t.size = 0
	for i, st := range oldStates {
		if st == slotFilled {
			t.insert(oldKeys[i])
		}
	}
}

// Len returns the number of live keys.
func (t *Table) Len() int { return t.size }

// Capacity returns the current slot count.
func (t *Table) Capacity() int { return len(t.states) }

// LoadFactor returns the ratio of live keys to slots.
func (t *Table) LoadFactor() float64 {
	return float64(t.size) / float64(len(t.states))
}

// AverageChainLength returns the mean cluster length, where a cluster is a
// maximal run of contiguous Filled slots. Tombstones break clusters exactly
// like Empty slots: the metric tracks physical occupancy, not probe reach.
func (t *Table) AverageChainLength() float64 {
	count, total, _ := t.clusterStats()
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// MaxChainLength returns the length of the longest cluster.
func (t *Table) MaxChainLength() int {
	_, _, max := t.clusterStats()
	return max
}

// clusterStats scans the slot array once and returns the cluster count, the
// total Filled slots across clusters, and the longest cluster. The scan
// starts just past a non-Filled slot so a run wrapping the end of the array
// counts as one cluster.
func (t *Table) clusterStats() (count, total, maxLen int) {
	n := len(t.states)
	start := -1
	for i, st := range t.states {
		if st != slotFilled {
			start = i
			break
		}
	}
	if start < 0 {
		// Every slot is Filled: the whole array is a single cluster.
		return 1, n, n
	}

	run := 0
	for i := 1; i <= n; i++ {
		idx := start + i
		if idx >= n {
			idx -= n
		}
		if t.states[idx] == slotFilled {
			run++
			continue
		}
		if run > 0 {
			count++
			total += run
			if run > maxLen {
				maxLen = run
			}
			run = 0
		}
	}
	return count, total, maxLen
}

// MemoryUsage estimates the slot array footprint in bytes. This is a model
// figure (key plus state tag per slot), not allocator accounting.
func (t *Table) MemoryUsage() int {
	return len(t.states) * int(unsafe.Sizeof(int64(0))+unsafe.Sizeof(slotState(0)))
}

// Clear resets every slot to Empty, keeping the current capacity. Stale key
// values are left in place; an Empty state makes them unreachable.
func (t *Table) Clear() {
	clear(t.states)
	t.size = 0
}
