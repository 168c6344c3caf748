// Package chained implements the separate-chaining table variant. Each
// bucket heads a singly linked chain of nodes held in a table-owned arena
// and linked by index, so every node has exactly one owner and teardown
// releases the whole arena at once.
package chained

import (
	"unsafe"

	"github.com/probekit/hashbench/strategy"
)

// nilNode marks the end of a chain and an empty bucket head.
const nilNode = -1

type node struct {
	key  int64
	next int32
}

// Table is a fixed-capacity chained hash table. The bucket count never
// changes over the table's lifetime; chains absorb any load. Removed nodes
// go on a free list threaded through the arena and are reused by later
// inserts.
type Table struct {
	heads []int32
	nodes []node
	free  int32
	size  int
	strat strategy.Strategy
}

// New constructs a table with the given bucket count. Capacity and strategy
// compatibility are validated by the caller (see hashbench.NewTable).
func New(capacity int, strat strategy.Strategy) *Table {
	t := &Table{
		heads: make([]int32, capacity),
		free:  nilNode,
		strat: strat,
	}
	for i := range t.heads {
		t.heads[i] = nilNode
	}
	return t
}

// Insert prepends key to its bucket's chain unless already present. The new
// node becomes the chain head, so within a bucket the observable order is
// the reverse of arrival order.
func (t *Table) Insert(key int64) {
	b := t.strat.Index(key, len(t.heads))
	for i := t.heads[b]; i != nilNode; i = t.nodes[i].next {
		if t.nodes[i].key == key {
			return
		}
	}
	n := t.alloc()
	t.nodes[n] = node{key: key, next: t.heads[b]}
	t.heads[b] = n
	t.size++
}

// Contains reports whether key is present.
func (t *Table) Contains(key int64) bool {
	b := t.strat.Index(key, len(t.heads))
	for i := t.heads[b]; i != nilNode; i = t.nodes[i].next {
		if t.nodes[i].key == key {
			return true
		}
	}
	return false
}

// Remove unlinks the node holding key, returns it to the free list, and
// reports whether key was found.
func (t *Table) Remove(key int64) bool {
	b := t.strat.Index(key, len(t.heads))
	prev := int32(nilNode)
	for i := t.heads[b]; i != nilNode; i = t.nodes[i].next {
		if t.nodes[i].key == key {
			if prev == nilNode {
				t.heads[b] = t.nodes[i].next
			} else {
				t.nodes[prev].next = t.nodes[i].next
			}
			t.release(i)
			t.size--
			return true
		}
		prev = i
	}
	return false
}

// alloc returns a node index, reusing the free list before growing the
// arena.
func (t *Table) alloc() int32 {
	if t.free != nilNode {
		n := t.free
		t.free = t.nodes[n].next
		return n
	}
	t.nodes = append(t.nodes, node{})
	return int32(len(t.nodes) - 1)
}

// release pushes node n onto the free list. The key is zeroed so a released
// node can never match a lookup through a stale link.
func (t *Table) release(n int32) {
	t.nodes[n] = node{next: t.free}
	t.free = n
}

// Len returns the number of live keys.
func (t *Table) Len() int { return t.size }

// Capacity returns the bucket count.
func (t *Table) Capacity() int { return len(t.heads) }

// LoadFactor returns the ratio of live keys to buckets. Unlike the
// open-addressing variant this can exceed 1: chains are unbounded.
func (t *Table) LoadFactor() float64 {
	return float64(t.size) / float64(len(t.heads))
}

// AverageChainLength returns the mean chain length over buckets holding at
// least one node. Empty buckets do not dilute the figure.
func (t *Table) AverageChainLength() float64 {
	buckets, total, _ := t.chainStats()
	if buckets == 0 {
		return 0
	}
	return float64(total) / float64(buckets)
}

// MaxChainLength returns the length of the longest chain.
func (t *Table) MaxChainLength() int {
	_, _, max := t.chainStats()
	return max
}

// chainStats walks every chain and returns the non-empty bucket count, the
// total node count, and the longest chain.
func (t *Table) chainStats() (buckets, total, maxLen int) {
	for _, h := range t.heads {
		n := 0
		for i := h; i != nilNode; i = t.nodes[i].next {
			n++
		}
		if n == 0 {
			continue
		}
		buckets++
		total += n
		if n > maxLen {
			maxLen = n
		}
	}
	return buckets, total, maxLen
}

// MemoryUsage estimates the table footprint in bytes: one head reference per
// bucket plus one node per live key. Free-listed nodes are excluded; the
// estimate models logical content, not arena capacity.
func (t *Table) MemoryUsage() int {
	return len(t.heads)*int(unsafe.Sizeof(int32(0))) + t.size*int(unsafe.Sizeof(node{}))
}

// Clear releases every chain. Dropping the arena and free list reclaims all
// nodes at once; no per-node unlinking is needed because the arena owns
// every node.
func (t *Table) Clear() {
	for i := range t.heads {
		t.heads[i] = nilNode
	}
	t.nodes = t.nodes[:0]
	t.free = nilNode
	t.size = 0
}
