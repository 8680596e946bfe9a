package filesystem

import (
	"fmt"
)

var (
	ErrInvalidName        = fmt.Errorf("invalid file name")
	ErrNameTooLong        = fmt.Errorf("file name too long")
	ErrAlreadyExists      = fmt.Errorf("file already exists")
	ErrNotFound           = fmt.Errorf("file not found")
	ErrDirectoryFull      = fmt.Errorf("directory table full")
	ErrOutOfSpace         = fmt.Errorf("file too large")
	ErrStorageUnavailable = fmt.Errorf("storage unavailable")
)

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
