package hashbench

import (
	hasherrors "github.com/probekit/hashbench/errors"
	"github.com/probekit/hashbench/internal/chained"
	"github.com/probekit/hashbench/internal/openaddr"
	"github.com/probekit/hashbench/strategy"
)

// TableKindID identifies the collision-resolution scheme backing a Table.
type TableKindID uint16

const (
	// KindOpenAddressing stores keys directly in the slot array and resolves
	// collisions by linear probing with tombstone deletion. Grows
	// automatically past a 0.7 load factor.
	KindOpenAddressing TableKindID = 0

	// KindChained stores keys in per-bucket linked chains. The bucket count
	// is fixed for the table's lifetime.
	KindChained TableKindID = 1
)

// String returns the table kind name.
func (k TableKindID) String() string {
	switch k {
	case KindOpenAddressing:
		return "open-addressing"
	case KindChained:
		return "chained"
	default:
		return "unknown"
	}
}

// Table is a keyed associative container over int64 keys. Implementations
// are not safe for concurrent use.
type Table interface {
	// Insert adds key to the table; inserting a present key is a no-op.
	Insert(key int64)

	// Contains reports whether key is present.
	Contains(key int64) bool

	// Remove deletes key if present and reports whether it was found.
	Remove(key int64) bool

	// Len returns the number of live keys.
	Len() int

	// Capacity returns the current bucket count.
	Capacity() int

	// LoadFactor returns Len divided by Capacity.
	LoadFactor() float64

	// AverageChainLength returns the mean chain length. For open addressing
	// a "chain" is a cluster, a maximal run of contiguous filled slots; for
	// chaining it is a bucket's linked chain, averaged over non-empty
	// buckets only.
	AverageChainLength() float64

	// MaxChainLength returns the longest chain (or cluster) length.
	MaxChainLength() int

	// MemoryUsage estimates the table footprint in bytes.
	MemoryUsage() int

	// Clear removes every key, keeping the current capacity.
	Clear()
}

// NewTable constructs a table of the given kind. It rejects a non-positive
// capacity, a nil strategy, and a strategy that cannot address the given
// bucket count (fibonacci hashing with a non-power-of-two capacity) before
// any slot storage is allocated.
func NewTable(kind TableKindID, capacity int, strat strategy.Strategy) (Table, error) {
	if capacity < 1 {
		return nil, hasherrors.ErrZeroCapacity
	}
	if strat == nil {
		return nil, hasherrors.ErrNilStrategy
	}
	if err := strat.Validate(capacity); err != nil {
		return nil, err
	}

	switch kind {
	case KindOpenAddressing:
		return openaddr.New(capacity, strat), nil
	case KindChained:
		return chained.New(capacity, strat), nil
	default:
		return nil, hasherrors.ErrUnknownTableKind
	}
}
