// file: pkg/fatdisk/blockstorage.go

package fatdisk

import (
	"fmt"
	"io"
	"os"
)

// BlockStorage performs byte-aligned I/O against the data region of the
// host file. It holds no state beyond the region geometry; the host file
// is sparse-extended lazily by writes and unused blocks are never
// zero-filled.
type BlockStorage struct {
	file       *os.File
	baseOffset int64
	blockSize  int
}

func newBlockStorage(file *os.File, baseOffset int64, blockSize int) *BlockStorage {
	return &BlockStorage{
		file:       file,
		baseOffset: baseOffset,
		blockSize:  blockSize,
	}
}

func (bs *BlockStorage) blockOffset(block int) int64 {
	return bs.baseOffset + int64(block)*int64(bs.blockSize)
}

// write stores data across the given blocks in order, one blockSize
// chunk per block. The last block may receive a partial chunk. The
// caller guarantees data holds enough bytes to fill every block except
// possibly the last.
func (bs *BlockStorage) write(blocks []int, data []byte) error {
	for _, block := range blocks {
		n := bs.blockSize
		if len(data) < n {
			n = len(data)
		}
		if _, err := bs.file.WriteAt(data[:n], bs.blockOffset(block)); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// appendToBlock writes up to blockSize-offset bytes of data into block
// starting at offset, returning how many bytes were consumed.
func (bs *BlockStorage) appendToBlock(block, offset int, data []byte) (int, error) {
	if offset < 0 || offset >= bs.blockSize {
		return 0, fmt.Errorf("%w: offset %d outside block of %d bytes",
			ErrInvalidBlockOperation, offset, bs.blockSize)
	}

	n := bs.blockSize - offset
	if len(data) < n {
		n = len(data)
	}
	if _, err := bs.file.WriteAt(data[:n], bs.blockOffset(block)+int64(offset)); err != nil {
		return 0, err
	}
	return n, nil
}

// readBlock returns exactly blockSize bytes of the given block. Reads
// past the current end of the sparse host file come back zero-filled.
func (bs *BlockStorage) readBlock(block int) ([]byte, error) {
	buf := make([]byte, bs.blockSize)
	if _, err := bs.file.ReadAt(buf, bs.blockOffset(block)); err != nil && err != io.EOF {
		return nil, err
	}
	return buf, nil
}
