// file: pkg/fatdisk/errors.go

package fatdisk

import "errors"

var (
	ErrInvalidFileName       = errors.New("invalid filename")
	ErrFileNotFound          = errors.New("file not found")
	ErrDirectoryFull         = errors.New("directory is full")
	ErrInsufficientSpace     = errors.New("not enough free space")
	ErrInvalidBlockOperation = errors.New("invalid block operation")
)
