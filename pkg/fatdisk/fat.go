// file: pkg/fatdisk/fat.go

package fatdisk

import "encoding/binary"

const (
	// FAT entry sentinels. Zero doubles as the FREE marker, so a live
	// mid-chain pointer to block 0 is indistinguishable from a free
	// slot. First-fit allocation keeps block 0 at the head of whichever
	// chain claims it first, which is how the format has always behaved.
	EndOfChain = -1
	FreeBlock  = 0
)

// FatManager maintains the FAT chains in the mapped FAT region and an
// in-memory bitmap of free blocks. The bitmap is the complement of
// "entries with a nonzero FAT value" and only allocateBlocks and
// freeChain may change it.
type FatManager struct {
	fat     []byte // mapped FAT region, one int32 per block
	free    *bitset
	entries int
}

// newFatManager wraps the mapped FAT region and rebuilds the free
// bitmap by scanning it. On a freshly formatted disk the region is all
// zeroes and every block comes up free.
func newFatManager(region []byte, entries int) *FatManager {
	m := &FatManager{
		fat:     region,
		free:    newBitset(entries),
		entries: entries,
	}
	for i := 0; i < entries; i++ {
		if m.entry(i) == FreeBlock {
			m.free.Set(i)
		}
	}
	return m
}

func (m *FatManager) entry(block int) int32 {
	return int32(binary.LittleEndian.Uint32(m.fat[block*FatEntrySize:]))
}

func (m *FatManager) setEntry(block int, next int32) {
	binary.LittleEndian.PutUint32(m.fat[block*FatEntrySize:], uint32(next))
}

// allocateBlocks takes n free blocks in ascending index order, clearing
// each from the bitmap. The returned order is the order the caller
// chains them in. A shortfall rolls back the partial allocation and
// reports ErrInsufficientSpace.
func (m *FatManager) allocateBlocks(n int) ([]int, error) {
	blocks := make([]int, 0, n)
	from := 0
	for i := 0; i < n; i++ {
		next := m.free.NextSet(from)
		if next == -1 {
			for _, b := range blocks {
				m.free.Set(b)
			}
			return nil, ErrInsufficientSpace
		}
		m.free.Clear(next)
		blocks = append(blocks, next)
		from = next + 1
	}
	return blocks, nil
}

// updateFatChain links the blocks into a chain ending in EndOfChain.
func (m *FatManager) updateFatChain(blocks []int) {
	for i, block := range blocks {
		next := int32(EndOfChain)
		if i < len(blocks)-1 {
			next = int32(blocks[i+1])
		}
		m.setEntry(block, next)
	}
}

// updateFatEntry overwrites a single FAT slot. Used to splice a new
// tail onto an existing chain.
func (m *FatManager) updateFatEntry(block int, next int32) {
	m.setEntry(block, next)
}

// nextBlock returns the FAT value of block.
func (m *FatManager) nextBlock(block int) int32 {
	return m.entry(block)
}

// freeChain walks the chain from startBlock, zeroing each FAT slot and
// returning the block to the bitmap. Any out-of-range value, EndOfChain
// included, terminates the walk.
func (m *FatManager) freeChain(startBlock int32) {
	current := startBlock
	for current >= 0 && int(current) < m.entries {
		next := m.entry(int(current))
		m.setEntry(int(current), FreeBlock)
		m.free.Set(int(current))
		current = next
	}
}

// freeCount returns the number of free blocks.
func (m *FatManager) freeCount() int {
	return m.free.Count()
}
