// file: cmd/delete/delete.go

package delete

import (
	"fmt"

	"github.com/sbrachman/single-file-disk/pkg/fatdisk"
)

// Options configures the deletion.
type Options struct {
	Quiet bool
}

// Delete removes a stored file from the disk image.
func Delete(diskPath, name string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	disk, err := fatdisk.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}

	if err := disk.DeleteFile(name); err != nil {
		disk.Close()
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	if err := disk.Close(); err != nil {
		return fmt.Errorf("failed to close disk: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Deleted %s\n", name)
	}
	return nil
}
