// file: cmd/list/list.go

package list

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sbrachman/single-file-disk/pkg/fatdisk"
)

// Options configures the listing.
type Options struct {
	Long bool // include start block
	Out  io.Writer
}

// List tabulates the live files on the disk image.
func List(diskPath string, opts *Options) error {
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

	entries := disk.ListFiles()
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	if opts.Long {
		fmt.Fprintln(w, "NAME\tSIZE\tSTART")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\t%d\n", e.Name, e.FileSize, e.StartBlock)
		}
	} else {
		fmt.Fprintln(w, "NAME\tSIZE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\n", e.Name, e.FileSize)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d file(s)\n", len(entries))
	return nil
}
