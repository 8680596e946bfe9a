package blockstore

import (
	"fmt"
	"io"
)

var (
	ErrNoBlock       = fmt.Errorf("no such block")
	ErrWriteTooLarge = fmt.Errorf("write too large")
)

// Device is the random-access byte store a Store runs on. *os.File
// satisfies it; MemDevice backs tests.
type Device interface {
	io.ReaderAt
	io.WriterAt
	io.Seeker
	Sync() error
	Truncate(size int64) error
}

// Store addresses fixed-size blocks on a Device, starting at dataStart.
// Block i occupies bytes [dataStart+i*blockSize, dataStart+(i+1)*blockSize).
type Store struct {
	dev       Device
	blockSize int
	numBlocks int
	dataStart int64
}

func New(dev Device, blockSize, numBlocks int, dataStart int64) *Store {
	return &Store{
		dev:       dev,
		blockSize: blockSize,
		numBlocks: numBlocks,
		dataStart: dataStart,
	}
}

func (s *Store) Offset(id int) int64 {
	return s.dataStart + int64(id)*int64(s.blockSize)
}

func (s *Store) Blocksize() int {
	return s.blockSize
}

func (s *Store) ReadBlock(id int) ([]byte, error) {
	if id < 0 || id >= s.numBlocks {
		return nil, ErrNoBlock
	}
	blk := make([]byte, s.blockSize)
	if _, err := s.dev.ReadAt(blk, s.Offset(id)); err != nil && err != io.EOF {
		return nil, err
	}
	return blk, nil
}

// WriteBlock writes data into block id, padding with zeros up to the block
// size so stale bytes from a previous occupant never leak.
func (s *Store) WriteBlock(id int, data []byte) error {
	if id < 0 || id >= s.numBlocks {
		return ErrNoBlock
	}
	if len(data) > s.blockSize {
		return ErrWriteTooLarge
	}
	blk := make([]byte, s.blockSize)
	copy(blk, data)
	_, err := s.dev.WriteAt(blk, s.Offset(id))
	return err
}

func (s *Store) ZeroBlock(id int) error {
	return s.WriteBlock(id, nil)
}

func (s *Store) Sync() error {
	return s.dev.Sync()
}
