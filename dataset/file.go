package dataset

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"

	hasherrors "github.com/probekit/hashbench/errors"
)

const (
	// magic number for dataset files, "HBDS" in little-endian
	magic = uint32(0x48424453)

	// version is the current format version
	version = uint16(0x0001)

	// headerSize is the exact size of the serialized header (32 bytes)
	headerSize = 32

	// keySize is the on-disk size of one key
	keySize = 8
)

// Dataset file header layout:
//
//	Offset  Size  Field     Type
//	0       4     Magic     0x48424453 ("HBDS")
//	4       2     Version   0x0001
//	6       2     Reserved  zero
//	8       8     NumKeys   uint64_le
//	16      8     Checksum  uint64_le (xxHash64 of the key region)
//	24      8     Reserved  zero
//
// Keys follow the header as NumKeys little-endian int64 values.

// Write serializes keys to a dataset file at path. An empty key sequence is
// rejected: a dataset that drives no benchmark passes is a caller error, not
// a representable file.
func Write(path string, keys []int64) error {
	if len(keys) == 0 {
		return hasherrors.ErrEmptyDataset
	}

	buf := make([]byte, headerSize+keySize*len(keys))
	for i, k := range keys {
		binary.LittleEndian.PutUint64(buf[headerSize+keySize*i:], uint64(k))
	}
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	binary.LittleEndian.PutUint16(buf[4:6], version)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(len(keys)))
	binary.LittleEndian.PutUint64(buf[16:24], xxhash.Sum64(buf[headerSize:]))

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write dataset file: %w", err)
	}
	return nil
}

// File is a read-only, memory-mapped key dataset.
//
// Close unmaps the file; no method may be called after Close returns.
type File struct {
	mmap mmap.MMap
	data []byte // key region of the mapping
	n    int
}

// Open memory-maps and verifies the dataset file at path. The whole key
// region is checksummed up front so a torn or corrupted file fails here
// rather than skewing a benchmark.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat dataset file: %w", err)
	}
	// The smallest valid file holds one key.
	if stat.Size() < headerSize+keySize {
		return nil, hasherrors.ErrTruncatedFile
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap dataset file: %w", err)
	}

	d := &File{mmap: mm}
	if err := d.verify([]byte(mm)); err != nil {
		_ = mm.Unmap()
		return nil, err
	}
	return d, nil
}

// verify parses and validates the header against the mapped contents.
func (f *File) verify(data []byte) error {
	if binary.LittleEndian.Uint32(data[0:4]) != magic {
		return hasherrors.ErrInvalidMagic
	}
	if binary.LittleEndian.Uint16(data[4:6]) != version {
		return hasherrors.ErrInvalidVersion
	}

	numKeys := binary.LittleEndian.Uint64(data[8:16])
	if uint64(len(data)) != headerSize+keySize*numKeys {
		return hasherrors.ErrTruncatedFile
	}

	keyRegion := data[headerSize:]
	if xxhash.Sum64(keyRegion) != binary.LittleEndian.Uint64(data[16:24]) {
		return hasherrors.ErrChecksumFailed
	}

	f.data = keyRegion
	f.n = int(numKeys)
	return nil
}

// Len returns the number of keys in the dataset.
func (f *File) Len() int { return f.n }

// Key returns the i'th key, decoded from the mapping in place.
func (f *File) Key(i int) int64 {
	return int64(binary.LittleEndian.Uint64(f.data[keySize*i:]))
}

// Keys decodes every key into a fresh slice. The copy detaches the caller
// from the mapping's lifetime, so the slice stays valid after Close.
func (f *File) Keys() []int64 {
	keys := make([]int64, f.n)
	for i := range keys {
		keys[i] = f.Key(i)
	}
	return keys
}

// Close unmaps the dataset.
func (f *File) Close() error {
	return f.mmap.Unmap()
}
