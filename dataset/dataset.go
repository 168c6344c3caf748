// Package dataset generates the reference key workloads and persists them
// as binary files for reuse across benchmark runs.
//
// Generators are pure functions of their arguments, so a run can be
// reproduced from a seed and a count alone. The three reference
// distributions stress bucket strategies differently: Random approximates a
// well-behaved workload, Sequential defeats plain modulo bucketing on
// power-of-two capacities, and Clustered packs consecutive keys into runs
// that linear probing turns into long clusters.
package dataset

import "math/rand/v2"

// randomKeyBound bounds Random's keys to [0, 2^30].
const randomKeyBound = 1 << 30

// seedMixer decorrelates the two PCG stream halves derived from one seed.
// It is the 64-bit golden-ratio constant.
const seedMixer = 0x9e3779b97f4a7c15

// Random returns n keys drawn uniformly from [0, 2^30].
func Random(seed uint64, n int) []int64 {
	rng := rand.New(rand.NewPCG(seed, seed^seedMixer))
	keys := make([]int64, n)
	for i := range keys {
		keys[i] = int64(rng.IntN(randomKeyBound + 1))
	}
	return keys
}

// Sequential returns the keys 0..n-1 in ascending order.
func Sequential(n int) []int64 {
	keys := make([]int64, n)
	for i := range keys {
		keys[i] = int64(i)
	}
	return keys
}

// Clustered returns n keys laid out as runs of ten consecutive values
// separated by gaps of ten.
func Clustered(n int) []int64 {
	keys := make([]int64, n)
	for i := range keys {
		keys[i] = int64(i/10*20 + i%10)
	}
	return keys
}
