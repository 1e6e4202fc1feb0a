// file: cmd/extract/extract.go

package extract

import (
	"fmt"
	"os"

	"github.com/sbrachman/single-file-disk/pkg/fatdisk"
)

// Options configures the extraction.
type Options struct {
	Quiet bool
}

// Extract writes the contents of a stored file to hostPath. An empty
// hostPath or "-" writes to stdout.
func Extract(diskPath, name, hostPath string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	disk, err := fatdisk.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}
	defer disk.Close()

	data, err := disk.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if hostPath == "" || hostPath == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(hostPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", hostPath, err)
	}
	if !opts.Quiet {
		fmt.Printf("Extracted %s to %s (%d bytes)\n", name, hostPath, len(data))
	}
	return nil
}
