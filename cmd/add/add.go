// file: cmd/add/add.go

package add

import (
	"fmt"
	"io"
	"os"

	"github.com/sbrachman/single-file-disk/pkg/fatdisk"
)

// Options configures the append operation.
type Options struct {
	Quiet bool
}

// Add appends the contents of a host file to a stored file. A hostPath
// of "-" reads from stdin.
func Add(diskPath, name, hostPath string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	var data []byte
	var err error
	if hostPath == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(hostPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	disk, err := fatdisk.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}

	if err := disk.AppendFile(name, data); err != nil {
		disk.Close()
		return fmt.Errorf("failed to append to %s: %w", name, err)
	}
	if err := disk.Close(); err != nil {
		return fmt.Errorf("failed to close disk: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Appended %d bytes to %s\n", len(data), name)
	}
	return nil
}
