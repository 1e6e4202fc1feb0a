// file: pkg/fatdisk/disk.go

package fatdisk

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Disk is a flat-namespace file store inside a single host file. The
// layout is a 16-byte header, a FAT, a directory table and a region of
// fixed-size data blocks. Safe for concurrent use: reads share a lock,
// mutations are exclusive. Metadata reaches durable storage on Close.
type Disk struct {
	mu     sync.RWMutex
	file   *os.File
	meta   *metaRegion
	header FormatHeader

	fat       *FatManager
	directory *DirectoryManager
	blocks    *BlockStorage
}

// DiskStats describes the geometry and occupancy of an open disk.
type DiskStats struct {
	BlockSize   int
	TotalBlocks int
	FreeBlocks  int
	MaxFiles    int
	LiveFiles   int
}

// Create formats a fresh disk image at path with the default geometry,
// replacing any existing file there.
func Create(path string) (*Disk, error) {
	return CreateWithGeometry(path, DefaultBlockSize, DefaultMaxDiskSize, DefaultMaxFiles)
}

// CreateWithGeometry formats a fresh disk image at path, replacing any
// existing file there. The data region holds maxDiskSize/blockSize
// blocks. The FAT is zeroed on disk; directory and data regions stay
// sparse.
func CreateWithGeometry(path string, blockSize, maxDiskSize, maxFiles int) (*Disk, error) {
	if blockSize <= 0 || maxFiles <= 0 || maxDiskSize < blockSize {
		return nil, fmt.Errorf("invalid disk geometry: blockSize=%d maxDiskSize=%d maxFiles=%d",
			blockSize, maxDiskSize, maxFiles)
	}

	header := FormatHeader{
		BlockSize:  int32(blockSize),
		FatEntries: int32(maxDiskSize / blockSize),
		MaxFiles:   int32(maxFiles),
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}

	if _, err := file.WriteAt(header.toBytes(), 0); err != nil {
		file.Close()
		return nil, err
	}
	// Extending the file zero-fills the FAT region; holes read as zero,
	// which is the FREE marker.
	if err := file.Truncate(header.dataOffset()); err != nil {
		file.Close()
		return nil, err
	}

	return openDisk(file, header)
}

// LoadFromFile opens an existing disk image and rebuilds the in-memory
// metadata from it.
func LoadFromFile(path string) (*Disk, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("disk %s: %w", path, ErrFileNotFound)
		}
		return nil, err
	}

	headerBytes := make([]byte, HeaderSize)
	if _, err := file.ReadAt(headerBytes, 0); err != nil {
		file.Close()
		return nil, err
	}
	header, err := parseHeader(headerBytes)
	if err != nil {
		file.Close()
		return nil, err
	}

	// Make sure the metadata prefix is mappable even if the image was
	// truncated short of the data region.
	if info, err := file.Stat(); err != nil {
		file.Close()
		return nil, err
	} else if info.Size() < header.dataOffset() {
		if err := file.Truncate(header.dataOffset()); err != nil {
			file.Close()
			return nil, err
		}
	}

	return openDisk(file, header)
}

func openDisk(file *os.File, header FormatHeader) (*Disk, error) {
	meta, err := mapMetaRegion(file, header.dataOffset())
	if err != nil {
		file.Close()
		return nil, err
	}

	fatRegion := meta.slice(header.fatOffset(), int64(header.FatEntries)*FatEntrySize)
	dirRegion := meta.slice(header.directoryOffset(), int64(header.MaxFiles)*DirectoryEntrySize)

	return &Disk{
		file:      file,
		meta:      meta,
		header:    header,
		fat:       newFatManager(fatRegion, int(header.FatEntries)),
		directory: newDirectoryManager(dirRegion, int(header.MaxFiles)),
		blocks:    newBlockStorage(file, header.dataOffset(), int(header.BlockSize)),
	}, nil
}

// CreateFile records an empty file under name. An existing file of the
// same name is replaced.
func (d *Disk) CreateFile(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := validateFileName(name); err != nil {
		return err
	}
	d.deleteIfPresent(name)

	index := d.directory.findFreeEntry()
	if index == -1 {
		return fmt.Errorf("root %w", ErrDirectoryFull)
	}
	d.directory.updateEntry(index, name, EndOfChain, 0)
	return nil
}

// WriteFile stores data under name. An existing file of the same name
// is replaced; if allocation then fails the old contents are already
// gone. Empty data records an empty file with no blocks.
func (d *Disk) WriteFile(name string, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := validateFileName(name); err != nil {
		return err
	}
	d.deleteIfPresent(name)

	index := d.directory.findFreeEntry()
	if index == -1 {
		return fmt.Errorf("root %w", ErrDirectoryFull)
	}

	blockSize := int(d.header.BlockSize)
	blocksNeeded := (len(data) + blockSize - 1) / blockSize
	blocks, err := d.fat.allocateBlocks(blocksNeeded)
	if err != nil {
		return err
	}

	if err := d.blocks.write(blocks, data); err != nil {
		return err
	}
	d.fat.updateFatChain(blocks)

	startBlock := int32(EndOfChain)
	if len(blocks) > 0 {
		startBlock = int32(blocks[0])
	}
	d.directory.updateEntry(index, name, startBlock, int32(len(data)))
	return nil
}

// AppendFile extends the file under name by data. The tail of the last
// block is filled first, then freshly allocated blocks are spliced onto
// the chain. If that allocation fails the tail bytes stay written but
// the logical size is untouched, so they remain invisible to ReadFile.
func (d *Disk) AppendFile(name string, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := validateFileName(name); err != nil {
		return err
	}
	entry, ok := d.directory.entry(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	if len(data) == 0 {
		return nil
	}

	currentSize := entry.FileSize
	startBlock := entry.StartBlock

	if startBlock == EndOfChain {
		newBlocks, err := d.fat.allocateBlocks(1)
		if err != nil {
			return err
		}
		startBlock = int32(newBlocks[0])
		d.fat.updateFatChain(newBlocks)
		d.directory.updateEntry(d.directory.entryIndex(name), name, startBlock, 0)
	}

	lastBlock := int(startBlock)
	for next := d.fat.nextBlock(lastBlock); next != EndOfChain; next = d.fat.nextBlock(lastBlock) {
		lastBlock = int(next)
	}

	blockSize := int(d.header.BlockSize)
	offset := int(currentSize) % blockSize
	if currentSize > 0 && offset == 0 {
		// The last block is exactly full; there is no tail to fill.
		offset = blockSize
	}

	written := 0
	if offset < blockSize {
		n, err := d.blocks.appendToBlock(lastBlock, offset, data)
		if err != nil {
			return err
		}
		written = n
	}

	if remaining := len(data) - written; remaining > 0 {
		blocksNeeded := (remaining + blockSize - 1) / blockSize
		newBlocks, err := d.fat.allocateBlocks(blocksNeeded)
		if err != nil {
			return err
		}
		d.fat.updateFatEntry(lastBlock, int32(newBlocks[0]))
		d.fat.updateFatChain(newBlocks)
		if err := d.blocks.write(newBlocks, data[written:]); err != nil {
			return err
		}
	}

	d.directory.updateFileSize(name, currentSize+int32(len(data)))
	return nil
}

// ReadFile returns the full contents of the file under name.
func (d *Disk) ReadFile(name string) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entry, ok := d.directory.entry(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	fileData := make([]byte, entry.FileSize)
	current := entry.StartBlock
	read := 0

	for current != EndOfChain && read < int(entry.FileSize) {
		blockData, err := d.blocks.readBlock(int(current))
		if err != nil {
			return nil, err
		}
		n := len(blockData)
		if rest := int(entry.FileSize) - read; rest < n {
			n = rest
		}
		copy(fileData[read:], blockData[:n])
		read += n
		current = d.fat.nextBlock(int(current))
	}
	return fileData, nil
}

// DeleteFile frees the file's chain and tombstones its directory slot.
func (d *Disk) DeleteFile(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.deleteIfPresent(name) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return nil
}

// ListFiles returns the live directory entries in slot order.
func (d *Disk) ListFiles() []DirectoryEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.directory.list()
}

// Stats reports the disk geometry and current occupancy.
func (d *Disk) Stats() DiskStats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return DiskStats{
		BlockSize:   int(d.header.BlockSize),
		TotalBlocks: int(d.header.FatEntries),
		FreeBlocks:  d.fat.freeCount(),
		MaxFiles:    int(d.header.MaxFiles),
		LiveFiles:   d.directory.liveCount(),
	}
}

// Close flushes the mapped metadata, forces the host file and releases
// the mapping and the file handle. The disk must not be used afterwards.
func (d *Disk) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.meta.flush(); err != nil {
		return err
	}
	if err := d.file.Sync(); err != nil {
		return err
	}
	if err := d.meta.unmap(); err != nil {
		return err
	}
	return d.file.Close()
}

// deleteIfPresent frees and tombstones name if it exists. Callers hold
// the write lock; Go locks are not reentrant, so this helper must stay
// lock-free.
func (d *Disk) deleteIfPresent(name string) bool {
	entry, ok := d.directory.entry(name)
	if !ok {
		return false
	}
	d.fat.freeChain(entry.StartBlock)
	d.directory.markDeleted(name)
	return true
}

func validateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: filename cannot be empty", ErrInvalidFileName)
	}
	if len(name) > FilenameMaxLength {
		return fmt.Errorf("%w: %q exceeds %d bytes", ErrInvalidFileName, name, FilenameMaxLength)
	}
	return nil
}
