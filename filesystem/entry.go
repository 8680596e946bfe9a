package filesystem

import (
	"bytes"
	"encoding/binary"
)

// FEntry is one directory slot: a file's name, its live size in bytes and
// the index of the first node of its block chain. An empty name marks the
// slot free.
type FEntry struct {
	Name string
	Size int
	Head int
}

func (e FEntry) Empty() bool {
	return e.Name == ""
}

func (e *FEntry) clear() {
	e.Name = ""
	e.Size = 0
	e.Head = NoBlock
}

// On disk an entry is {name: NameBytes bytes, size: u16, head: i16},
// big-endian, the name zero-padded.
func encodeEntry(buf []byte, e FEntry) {
	for i := 0; i < NameBytes; i++ {
		buf[i] = 0
	}
	copy(buf[:NameBytes], e.Name)
	binary.BigEndian.PutUint16(buf[NameBytes:], uint16(e.Size))
	binary.BigEndian.PutUint16(buf[NameBytes+2:], uint16(int16(e.Head)))
}

func decodeEntry(buf []byte) FEntry {
	return FEntry{
		Name: string(bytes.TrimRight(buf[:NameBytes], "\x00")),
		Size: int(binary.BigEndian.Uint16(buf[NameBytes:])),
		Head: int(int16(binary.BigEndian.Uint16(buf[NameBytes+2:]))),
	}
}
