// Package errors defines all exported error sentinels for the hashbench library.
//
// This is the single source of truth for error values. Both the top-level
// hashbench package and its subpackages import from here, ensuring errors.Is
// checks work across package boundaries.
package errors

import "errors"

// Construction errors
var (
	ErrZeroCapacity          = errors.New("hashbench: table capacity must be at least one bucket")
	ErrNilStrategy           = errors.New("hashbench: bucket strategy must not be nil")
	ErrCapacityNotPowerOfTwo = errors.New("hashbench: fibonacci hashing requires a power-of-two bucket count")
	ErrUnknownStrategy       = errors.New("hashbench: unknown bucket strategy")
	ErrUnknownTableKind      = errors.New("hashbench: unknown table kind")
)

// Harness errors
var (
	ErrNoKeys          = errors.New("hashbench: key sequence must not be empty")
	ErrZeroRepetitions = errors.New("hashbench: repetitions must be at least one")
)

// Dataset file errors
var (
	ErrEmptyDataset   = errors.New("hashbench: cannot write dataset with zero keys")
	ErrInvalidMagic   = errors.New("hashbench: invalid dataset magic number")
	ErrInvalidVersion = errors.New("hashbench: unsupported dataset version")
	ErrTruncatedFile  = errors.New("hashbench: dataset file is truncated")
	ErrChecksumFailed = errors.New("hashbench: dataset checksum verification failed")
)
