package filesystem

import (
	"encoding/binary"
	"fmt"
)

type nodeState uint8

const (
	stateFree nodeState = iota
	stateInUse
)

// extentNode describes one physical block's allocation state and its
// forward link. Node i always maps to data block i.
type extentNode struct {
	state nodeState
	next  int
}

// On disk a node is {blockIndex: i32, next: i32}, big-endian. blockIndex
// carries the node's own index in its magnitude and the allocation state
// in its sign: positive means in use, negative means free. The sign is a
// serialization detail only; in memory the state is explicit.
func encodeNode(buf []byte, idx int, n extentNode) {
	blockIndex := int32(idx)
	if n.state == stateFree {
		blockIndex = -blockIndex
	}
	binary.BigEndian.PutUint32(buf, uint32(blockIndex))
	binary.BigEndian.PutUint32(buf[4:], uint32(int32(n.next)))
}

// decodeNode rejects a record whose stored magnitude disagrees with its
// slot. Node 0 cannot encode a sign, so it decodes as free; the mount path
// promotes it to in-use when some entry's chain reaches it.
func decodeNode(buf []byte, idx int) (extentNode, error) {
	blockIndex := int32(binary.BigEndian.Uint32(buf))
	next := int(int32(binary.BigEndian.Uint32(buf[4:])))

	magnitude := blockIndex
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if int(magnitude) != idx {
		return extentNode{}, fmt.Errorf("extent node %d: stored index %d", idx, blockIndex)
	}

	state := stateInUse
	if blockIndex <= 0 {
		state = stateFree
	}
	return extentNode{state: state, next: next}, nil
}
