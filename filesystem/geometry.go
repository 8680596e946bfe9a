package filesystem

const (
	// NameBytes is the fixed width of the on-disk name field. Names are
	// zero-padded to this width and may not exceed it.
	NameBytes = 11

	entryBytes = NameBytes + 2 + 2 // name, size (u16), head (i16)
	nodeBytes  = 4 + 4             // blockIndex (i32), next (i32)
)

// NoBlock is the sentinel index meaning "no node": an empty file's head,
// the end of a chain, or the link of a free node.
const NoBlock = -1

// Geometry fixes the capacity of a disk image. The on-disk layout is the
// directory table followed by the allocation table, rounded up to a whole
// number of blocks; the data region starts right after.
type Geometry struct {
	MaxFiles  int
	MaxBlocks int
	BlockSize int
}

// DefaultGeometry is the capacity the fileserver binary ships with.
var DefaultGeometry = Geometry{
	MaxFiles:  5,
	MaxBlocks: 10,
	BlockSize: 128,
}

func (g Geometry) MetadataSize() int {
	return g.MaxFiles*entryBytes + g.MaxBlocks*nodeBytes
}

// DataStart is the byte offset of block 0: the first block boundary at or
// after the metadata region.
func (g Geometry) DataStart() int64 {
	blocks := (g.MetadataSize() + g.BlockSize - 1) / g.BlockSize
	return int64(blocks) * int64(g.BlockSize)
}

func (g Geometry) TotalSize() int64 {
	return g.DataStart() + int64(g.MaxBlocks)*int64(g.BlockSize)
}

func (g Geometry) blocksFor(size int) int {
	return (size + g.BlockSize - 1) / g.BlockSize
}
