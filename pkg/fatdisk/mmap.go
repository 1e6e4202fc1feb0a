// file: pkg/fatdisk/mmap.go

package fatdisk

import (
	"os"

	"golang.org/x/sys/unix"
)

// metaRegion is the shared read-write mapping of the metadata prefix of
// the host file (header, FAT and directory table). The FAT and directory
// managers mutate sub-slices of it; the whole region is synced once on
// flush. Mapping from offset zero keeps the mmap page-aligned regardless
// of geometry.
type metaRegion struct {
	data []byte
}

// mapMetaRegion maps the first length bytes of the host file. The file
// must already span the requested length.
func mapMetaRegion(f *os.File, length int64) (*metaRegion, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, int(length),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &metaRegion{data: data}, nil
}

// slice returns the mapped bytes in [off, off+length).
func (r *metaRegion) slice(off, length int64) []byte {
	return r.data[off : off+length]
}

// flush forces the mapped metadata to durable storage.
func (r *metaRegion) flush() error {
	if r.data == nil {
		return nil
	}
	return unix.Msync(r.data, unix.MS_SYNC)
}

// unmap releases the mapping. The region must not be used afterwards.
func (r *metaRegion) unmap() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	return err
}
