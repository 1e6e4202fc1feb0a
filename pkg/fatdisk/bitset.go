// file: pkg/fatdisk/bitset.go

package fatdisk

import "math/bits"

// bitset is a fixed-size bit vector used to track free blocks. Set bits
// mark free blocks, mirroring the zero entries of the FAT.
type bitset struct {
	words []uint64
	size  int
}

func newBitset(size int) *bitset {
	return &bitset{
		words: make([]uint64, (size+63)/64),
		size:  size,
	}
}

// Set marks bit i.
func (b *bitset) Set(i int) {
	b.words[i>>6] |= 1 << (uint(i) & 63)
}

// Clear unmarks bit i.
func (b *bitset) Clear(i int) {
	b.words[i>>6] &^= 1 << (uint(i) & 63)
}

// NextSet returns the index of the lowest set bit at or after from,
// or -1 if no bit is set in the remainder of the vector.
func (b *bitset) NextSet(from int) int {
	if from < 0 {
		from = 0
	}
	if from >= b.size {
		return -1
	}

	w := from >> 6
	word := b.words[w] >> (uint(from) & 63)
	if word != 0 {
		i := from + bits.TrailingZeros64(word)
		if i < b.size {
			return i
		}
		return -1
	}

	for w++; w < len(b.words); w++ {
		if b.words[w] != 0 {
			i := w<<6 + bits.TrailingZeros64(b.words[w])
			if i < b.size {
				return i
			}
			return -1
		}
	}
	return -1
}

// Count returns the number of set bits.
func (b *bitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}
