// file: pkg/fatdisk/header.go

package fatdisk

import (
	"encoding/binary"
	"errors"
)

const (
	// Header constants
	HeaderSize = 16

	// Default geometry: 4K blocks, 1GB data region, 64K directory slots
	DefaultBlockSize   = 4096
	DefaultMaxDiskSize = 1024 * 1024 * 1024
	DefaultMaxFiles    = 64 * 1024

	// Per-entry sizes of the metadata tables
	FatEntrySize       = 4
	DirectoryEntrySize = 32
)

// FormatHeader is the 16-byte superblock at the start of the host file.
// All fields are little-endian int32; the fourth word is reserved.
type FormatHeader struct {
	BlockSize  int32 // bytes per data block
	FatEntries int32 // number of FAT slots = number of data blocks
	MaxFiles   int32 // number of directory slots
}

// DefaultHeader returns the default disk geometry.
func DefaultHeader() FormatHeader {
	return FormatHeader{
		BlockSize:  DefaultBlockSize,
		FatEntries: DefaultMaxDiskSize / DefaultBlockSize,
		MaxFiles:   DefaultMaxFiles,
	}
}

// toBytes serializes the header into its on-disk form.
func (h FormatHeader) toBytes() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.BlockSize))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(h.FatEntries))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(h.MaxFiles))
	// bytes 12..16 reserved, zero
	return buf
}

// parseHeader reads a header back from its on-disk form.
func parseHeader(data []byte) (FormatHeader, error) {
	if len(data) < HeaderSize {
		return FormatHeader{}, errors.New("data too short for header")
	}

	h := FormatHeader{
		BlockSize:  int32(binary.LittleEndian.Uint32(data[0:4])),
		FatEntries: int32(binary.LittleEndian.Uint32(data[4:8])),
		MaxFiles:   int32(binary.LittleEndian.Uint32(data[8:12])),
	}
	if h.BlockSize <= 0 || h.FatEntries <= 0 || h.MaxFiles <= 0 {
		return FormatHeader{}, errors.New("invalid disk geometry in header")
	}
	return h, nil
}

// fatOffset is where the FAT region starts.
func (h FormatHeader) fatOffset() int64 {
	return HeaderSize
}

// directoryOffset is where the directory table starts.
func (h FormatHeader) directoryOffset() int64 {
	return h.fatOffset() + int64(h.FatEntries)*FatEntrySize
}

// dataOffset is where the block data region starts.
func (h FormatHeader) dataOffset() int64 {
	return h.directoryOffset() + int64(h.MaxFiles)*DirectoryEntrySize
}
