// file: pkg/fatdisk/directory.go

package fatdisk

import (
	"bytes"
	"encoding/binary"
)

const (
	// Directory entry layout: 24-byte zero-padded UTF-8 name, then
	// int32 start block and int32 file size.
	FilenameMaxLength = 24

	// First-byte markers. Any other leading byte means the entry is live.
	deletedEntryMarker = 0xE5
	unusedEntryMarker  = 0x00
)

// DirectoryEntry is one live 32-byte slot of the directory table.
type DirectoryEntry struct {
	Name       string
	StartBlock int32 // first block of the chain, EndOfChain for an empty file
	FileSize   int32 // total logical bytes
}

// toBytes serializes the entry into its on-disk form.
func (e DirectoryEntry) toBytes() []byte {
	buf := make([]byte, DirectoryEntrySize)
	copy(buf[:FilenameMaxLength], e.Name)
	binary.LittleEndian.PutUint32(buf[FilenameMaxLength:], uint32(e.StartBlock))
	binary.LittleEndian.PutUint32(buf[FilenameMaxLength+4:], uint32(e.FileSize))
	return buf
}

// parseDirectoryEntry decodes a 32-byte slot. Only the trailing zero
// padding is stripped from the name; interior and leading bytes are
// preserved as stored.
func parseDirectoryEntry(data []byte) DirectoryEntry {
	name := bytes.TrimRight(data[:FilenameMaxLength], "\x00")
	return DirectoryEntry{
		Name:       string(name),
		StartBlock: int32(binary.LittleEndian.Uint32(data[FilenameMaxLength:])),
		FileSize:   int32(binary.LittleEndian.Uint32(data[FilenameMaxLength+4:])),
	}
}

// DirectoryManager owns the mapped directory region together with the
// in-memory view of it: an array of live entries and a name index.
// Deletion tombstones the slot on disk and drops it from the view;
// tombstoned slots are reused by findFreeEntry.
type DirectoryManager struct {
	dir     []byte // mapped directory region, one 32-byte slot per file
	entries []*DirectoryEntry
	index   map[string]int
}

// newDirectoryManager wraps the mapped directory region and loads the
// live entries. Slots whose first byte is the unused or deleted marker
// are skipped.
func newDirectoryManager(region []byte, maxFiles int) *DirectoryManager {
	m := &DirectoryManager{
		dir:     region,
		entries: make([]*DirectoryEntry, maxFiles),
		index:   make(map[string]int),
	}
	for i := 0; i < maxFiles; i++ {
		slot := region[i*DirectoryEntrySize : (i+1)*DirectoryEntrySize]
		if slot[0] == unusedEntryMarker || slot[0] == deletedEntryMarker {
			continue
		}
		entry := parseDirectoryEntry(slot)
		m.entries[i] = &entry
		m.index[entry.Name] = i
	}
	return m
}

// findFreeEntry returns the lowest unused slot index, or -1 when the
// directory is full.
func (m *DirectoryManager) findFreeEntry() int {
	for i, e := range m.entries {
		if e == nil {
			return i
		}
	}
	return -1
}

// updateEntry writes the full 32-byte encoding at slot index and
// refreshes the in-memory view.
func (m *DirectoryManager) updateEntry(index int, name string, startBlock, fileSize int32) {
	entry := DirectoryEntry{Name: name, StartBlock: startBlock, FileSize: fileSize}
	copy(m.dir[index*DirectoryEntrySize:], entry.toBytes())
	m.entries[index] = &entry
	m.index[name] = index
}

// entry returns the live entry for name, if any.
func (m *DirectoryManager) entry(name string) (DirectoryEntry, bool) {
	i, ok := m.index[name]
	if !ok {
		return DirectoryEntry{}, false
	}
	return *m.entries[i], true
}

// entryIndex returns the slot index of name, or -1 if absent.
func (m *DirectoryManager) entryIndex(name string) int {
	i, ok := m.index[name]
	if !ok {
		return -1
	}
	return i
}

// markDeleted tombstones the slot holding name. Only the status byte is
// touched on disk; the rest of the slot keeps its stale bytes.
func (m *DirectoryManager) markDeleted(name string) {
	i, ok := m.index[name]
	if !ok {
		return
	}
	m.dir[i*DirectoryEntrySize] = deletedEntryMarker
	m.entries[i] = nil
	delete(m.index, name)
}

// updateFileSize patches only the 4-byte size field of the slot.
func (m *DirectoryManager) updateFileSize(name string, newSize int32) {
	i, ok := m.index[name]
	if !ok {
		return
	}
	pos := i*DirectoryEntrySize + FilenameMaxLength + 4
	binary.LittleEndian.PutUint32(m.dir[pos:], uint32(newSize))
	updated := *m.entries[i]
	updated.FileSize = newSize
	m.entries[i] = &updated
}

// list returns the live entries in slot order.
func (m *DirectoryManager) list() []DirectoryEntry {
	var out []DirectoryEntry
	for _, e := range m.entries {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out
}

// liveCount returns the number of live entries.
func (m *DirectoryManager) liveCount() int {
	return len(m.index)
}
