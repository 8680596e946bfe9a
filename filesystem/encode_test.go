package filesystem

import (
	"encoding/binary"
	"testing"
)

func TestNodeSignedMagnitude(t *testing.T) {
	buf := make([]byte, nodeBytes)

	encodeNode(buf, 7, extentNode{state: stateFree, next: NoBlock})
	if got := int32(binary.BigEndian.Uint32(buf)); got != -7 {
		t.Errorf("free node 7: wanted blockIndex -7 on disk, got %d", got)
	}
	if got := int32(binary.BigEndian.Uint32(buf[4:])); got != -1 {
		t.Errorf("free node 7: wanted next -1 on disk, got %d", got)
	}

	encodeNode(buf, 7, extentNode{state: stateInUse, next: 3})
	if got := int32(binary.BigEndian.Uint32(buf)); got != 7 {
		t.Errorf("in-use node 7: wanted blockIndex 7 on disk, got %d", got)
	}
	n, err := decodeNode(buf, 7)
	if err != nil {
		t.Fatal(err)
	}
	if n.state != stateInUse || n.next != 3 {
		t.Errorf("decode in-use node 7: got %+v", n)
	}
}

func TestNodeZeroDecodesFree(t *testing.T) {
	// -0 is unrepresentable: node 0 always decodes free and is promoted
	// by chain reachability at mount
	buf := make([]byte, nodeBytes)
	encodeNode(buf, 0, extentNode{state: stateInUse, next: 4})
	n, err := decodeNode(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n.state != stateFree {
		t.Error("node 0 should decode as free")
	}
	if n.next != 4 {
		t.Errorf("node 0 must keep its link: wanted 4, got %d", n.next)
	}
}

func TestNodeIndexMismatch(t *testing.T) {
	buf := make([]byte, nodeBytes)
	encodeNode(buf, 5, extentNode{state: stateInUse, next: NoBlock})
	if _, err := decodeNode(buf, 6); err == nil {
		t.Error("decoding node 5's record at slot 6 should fail")
	}
}

func TestEntryCodec(t *testing.T) {
	buf := make([]byte, entryBytes)

	encodeEntry(buf, FEntry{Name: "notes.txt", Size: 300, Head: 2})
	e := decodeEntry(buf)
	if e.Name != "notes.txt" || e.Size != 300 || e.Head != 2 {
		t.Errorf("entry round trip: got %+v", e)
	}

	// a shorter name must fully overwrite a longer previous occupant
	encodeEntry(buf, FEntry{Name: "a", Size: 0, Head: NoBlock})
	e = decodeEntry(buf)
	if e.Name != "a" {
		t.Errorf("wanted name 'a', got %q", e.Name)
	}
	if e.Head != NoBlock {
		t.Errorf("wanted head %d, got %d", NoBlock, e.Head)
	}

	encodeEntry(buf, FEntry{})
	if e := decodeEntry(buf); !e.Empty() {
		t.Errorf("cleared entry should decode empty, got %+v", e)
	}
}
