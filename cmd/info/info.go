// file: cmd/info/info.go

package info

import (
	"fmt"
	"io"
	"os"

	"github.com/sbrachman/single-file-disk/pkg/fatdisk"
)

// Options configures the report.
type Options struct {
	Out io.Writer
}

// Info prints the geometry and occupancy of a disk image.
func Info(diskPath string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	disk, err := fatdisk.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}
	defer disk.Close()

	stats := disk.Stats()
	fmt.Fprintf(out, "Image:           %s\n", diskPath)
	fmt.Fprintf(out, "Block size:      %d bytes\n", stats.BlockSize)
	fmt.Fprintf(out, "Data capacity:   %d bytes (%d blocks)\n",
		stats.TotalBlocks*stats.BlockSize, stats.TotalBlocks)
	fmt.Fprintf(out, "Free space:      %d bytes (%d blocks)\n",
		stats.FreeBlocks*stats.BlockSize, stats.FreeBlocks)
	fmt.Fprintf(out, "Directory slots: %d (%d in use)\n", stats.MaxFiles, stats.LiveFiles)
	return nil
}
