// file: cmd/create/create.go

package create

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sbrachman/single-file-disk/pkg/fatdisk"
)

// Options configures the geometry of the new disk image.
type Options struct {
	BlockSize int // bytes per data block
	DiskSize  int // data region capacity in bytes
	MaxFiles  int // directory slots
	Quiet     bool
}

// DefaultOptions returns the default geometry for Create.
func DefaultOptions() *Options {
	return &Options{
		BlockSize: fatdisk.DefaultBlockSize,
		DiskSize:  fatdisk.DefaultMaxDiskSize,
		MaxFiles:  fatdisk.DefaultMaxFiles,
	}
}

// Create formats a fresh disk image at diskPath, replacing any existing
// file there. Parent directories are created as needed.
func Create(diskPath string, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}

	if dir := filepath.Dir(diskPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
	}

	disk, err := fatdisk.CreateWithGeometry(diskPath, opts.BlockSize, opts.DiskSize, opts.MaxFiles)
	if err != nil {
		return fmt.Errorf("failed to create disk: %w", err)
	}
	if err := disk.Close(); err != nil {
		return fmt.Errorf("failed to close disk: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Created %s (%d blocks of %d bytes, %d directory slots)\n",
			diskPath, opts.DiskSize/opts.BlockSize, opts.BlockSize, opts.MaxFiles)
	}
	return nil
}
