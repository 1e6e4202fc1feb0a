// file: cmd/main.go

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sbrachman/single-file-disk/cmd/add"
	"github.com/sbrachman/single-file-disk/cmd/create"
	"github.com/sbrachman/single-file-disk/cmd/delete"
	"github.com/sbrachman/single-file-disk/cmd/extract"
	"github.com/sbrachman/single-file-disk/cmd/info"
	"github.com/sbrachman/single-file-disk/cmd/list"
	"github.com/sbrachman/single-file-disk/cmd/put"
)

func main() {
	root := &cobra.Command{
		Use:           "sfdisk",
		Short:         "Manage single-file FAT disk images",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	createOpts := create.DefaultOptions()
	createCmd := &cobra.Command{
		Use:   "create <image>",
		Short: "Format a fresh disk image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return create.Create(args[0], createOpts)
		},
	}
	createCmd.Flags().IntVar(&createOpts.BlockSize, "block-size", createOpts.BlockSize, "bytes per data block")
	createCmd.Flags().IntVar(&createOpts.DiskSize, "disk-size", createOpts.DiskSize, "data region capacity in bytes")
	createCmd.Flags().IntVar(&createOpts.MaxFiles, "max-files", createOpts.MaxFiles, "number of directory slots")
	createCmd.Flags().BoolVarP(&createOpts.Quiet, "quiet", "q", false, "suppress output")

	putOpts := &put.Options{}
	putCmd := &cobra.Command{
		Use:   "put <image> <hostfile>",
		Short: "Store a host file on the disk image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return put.Put(args[0], args[1], putOpts)
		},
	}
	putCmd.Flags().StringVarP(&putOpts.Name, "name", "n", "", "name inside the image (default: host base name)")
	putCmd.Flags().BoolVarP(&putOpts.Quiet, "quiet", "q", false, "suppress output")

	addOpts := &add.Options{}
	addCmd := &cobra.Command{
		Use:   "add <image> <name> <hostfile|->",
		Short: "Append host-file bytes to a stored file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return add.Add(args[0], args[1], args[2], addOpts)
		},
	}
	addCmd.Flags().BoolVarP(&addOpts.Quiet, "quiet", "q", false, "suppress output")

	extractOpts := &extract.Options{}
	extractCmd := &cobra.Command{
		Use:   "extract <image> <name> [hostpath]",
		Short: "Write a stored file to the host (stdout by default)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			hostPath := ""
			if len(args) == 3 {
				hostPath = args[2]
			}
			return extract.Extract(args[0], args[1], hostPath, extractOpts)
		},
	}
	extractCmd.Flags().BoolVarP(&extractOpts.Quiet, "quiet", "q", false, "suppress output")

	listOpts := &list.Options{}
	listCmd := &cobra.Command{
		Use:   "list <image>",
		Short: "List the files on the disk image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return list.List(args[0], listOpts)
		},
	}
	listCmd.Flags().BoolVarP(&listOpts.Long, "long", "l", false, "include start block")

	deleteOpts := &delete.Options{}
	deleteCmd := &cobra.Command{
		Use:   "delete <image> <name>",
		Short: "Delete a stored file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return delete.Delete(args[0], args[1], deleteOpts)
		},
	}
	deleteCmd.Flags().BoolVarP(&deleteOpts.Quiet, "quiet", "q", false, "suppress output")

	infoCmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Show geometry and occupancy of a disk image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return info.Info(args[0], nil)
		},
	}

	root.AddCommand(createCmd, putCmd, addCmd, extractCmd, listCmd, deleteCmd, infoCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
