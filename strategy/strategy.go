// Package strategy implements the bucket-selection strategies used by the
// hashbench tables.
//
// A Strategy maps an integer key and the current bucket count to a home
// bucket index. Strategies are deterministic and pure: a table calls Index
// once per probe origin and derives further probe positions itself.
package strategy

import (
	"encoding/binary"
	"math/bits"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	hasherrors "github.com/probekit/hashbench/errors"
)

// ID identifies a bucket-selection strategy.
type ID uint16

const (
	// Modulo reduces the key modulo the bucket count. Valid for any bucket
	// count; pairs best with primes.
	Modulo ID = 0

	// Fibonacci multiplies the low 32 bits of the key by the golden-ratio
	// constant and keeps the high-order bits. Requires a power-of-two
	// bucket count.
	Fibonacci ID = 1

	// XXHash buckets keys by their xxHash64 digest.
	XXHash ID = 2

	// Murmur3 buckets keys by their murmur3 64-bit digest.
	Murmur3 ID = 3

	// XXH3 buckets keys by their xxh3 digest.
	XXH3 ID = 4
)

// String returns the strategy name.
func (id ID) String() string {
	switch id {
	case Modulo:
		return "modulo"
	case Fibonacci:
		return "fibonacci"
	case XXHash:
		return "xxhash"
	case Murmur3:
		return "murmur3"
	case XXH3:
		return "xxh3"
	default:
		return "unknown"
	}
}

// Strategy maps a key to a bucket index in [0, buckets).
type Strategy interface {
	// Index returns the home bucket for key. The bucket count must have
	// passed Validate.
	Index(key int64, buckets int) int

	// Validate reports whether the strategy can address a table with the
	// given bucket count.
	Validate(buckets int) error
}

// New creates the strategy identified by id. The seed perturbs the
// digest-based strategies (XXHash, Murmur3, XXH3) and is ignored by Modulo
// and Fibonacci, which are fixed functions of the key.
func New(id ID, seed uint64) (Strategy, error) {
	switch id {
	case Modulo:
		return modulo{}, nil
	case Fibonacci:
		return fibonacci{}, nil
	case XXHash:
		return xxhashStrategy{seed: seed}, nil
	case Murmur3:
		return murmurStrategy{seed: uint32(seed)}, nil
	case XXH3:
		return xxh3Strategy{seed: seed}, nil
	default:
		return nil, hasherrors.ErrUnknownStrategy
	}
}

type modulo struct{}

func (modulo) Index(key int64, buckets int) int {
	return int(uint64(key) % uint64(buckets))
}

func (modulo) Validate(buckets int) error {
	if buckets < 1 {
		return hasherrors.ErrZeroCapacity
	}
	return nil
}

// fibonacciMultiplier is the nearest odd integer to 2^32 divided by the
// golden ratio. Multiplication by it scrambles consecutive keys across the
// high-order bits, which the shift then selects.
const fibonacciMultiplier = uint32(2654435769)

type fibonacci struct{}

func (fibonacci) Index(key int64, buckets int) int {
	// buckets is a power of two, so its bit length minus one is log2.
	shift := 32 - (bits.Len(uint(buckets)) - 1)
	return int((uint32(key) * fibonacciMultiplier) >> shift)
}

func (fibonacci) Validate(buckets int) error {
	if buckets < 1 {
		return hasherrors.ErrZeroCapacity
	}
	if buckets&(buckets-1) != 0 {
		return hasherrors.ErrCapacityNotPowerOfTwo
	}
	return nil
}

// keyBytes encodes a key as 8 little-endian bytes for the digest strategies.
func keyBytes(key int64) [8]byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))
	return buf
}

type xxhashStrategy struct {
	seed uint64
}

func (s xxhashStrategy) Index(key int64, buckets int) int {
	// xxHash64 has no seeded one-shot sum; fold the seed into a prefix the
	// way a salt would be.
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], s.seed)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(key))
	return int(xxhash.Sum64(buf[:]) % uint64(buckets))
}

func (xxhashStrategy) Validate(buckets int) error {
	if buckets < 1 {
		return hasherrors.ErrZeroCapacity
	}
	return nil
}

type murmurStrategy struct {
	seed uint32
}

func (s murmurStrategy) Index(key int64, buckets int) int {
	buf := keyBytes(key)
	return int(murmur3.Sum64WithSeed(buf[:], s.seed) % uint64(buckets))
}

func (murmurStrategy) Validate(buckets int) error {
	if buckets < 1 {
		return hasherrors.ErrZeroCapacity
	}
	return nil
}

type xxh3Strategy struct {
	seed uint64
}

func (s xxh3Strategy) Index(key int64, buckets int) int {
	buf := keyBytes(key)
	return int(xxh3.HashSeed(buf[:], s.seed) % uint64(buckets))
}

func (xxh3Strategy) Validate(buckets int) error {
	if buckets < 1 {
		return hasherrors.ErrZeroCapacity
	}
	return nil
}
