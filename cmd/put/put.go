// file: cmd/put/put.go

package put

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sbrachman/single-file-disk/pkg/fatdisk"
)

// Options configures the store operation.
type Options struct {
	Name  string // name inside the disk; defaults to the host base name
	Quiet bool
}

// Put stores a host file on the disk image, replacing any stored file
// of the same name.
func Put(diskPath, hostPath string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	name := opts.Name
	if name == "" {
		name = filepath.Base(hostPath)
	}

	data, err := os.ReadFile(hostPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", hostPath, err)
	}

	disk, err := fatdisk.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}

	if err := disk.WriteFile(name, data); err != nil {
		disk.Close()
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	if err := disk.Close(); err != nil {
		return fmt.Errorf("failed to close disk: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Stored %s (%d bytes)\n", name, len(data))
	}
	return nil
}
