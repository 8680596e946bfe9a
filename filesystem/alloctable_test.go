package filesystem

import (
	"errors"
	"testing"
)

func TestAllocateFirstFit(t *testing.T) {
	tbl := newAllocTable(10)

	ids, err := tbl.allocate(3)
	if err != nil {
		t.Fatal(err)
	}
	for i, id := range ids {
		if id != i {
			t.Fatalf("first-fit on a fresh table: wanted [0 1 2], got %v", ids)
		}
	}
	tbl.link(ids)

	// free the middle block; the next single-block allocation must take it
	tbl.freeNode(1)
	ids, err = tbl.allocate(1)
	if err != nil {
		t.Fatal(err)
	}
	if ids[0] != 1 {
		t.Errorf("wanted lowest free index 1, got %d", ids[0])
	}
}

func TestAllocateExhausted(t *testing.T) {
	tbl := newAllocTable(4)
	ids, err := tbl.allocate(4)
	if err != nil {
		t.Fatal(err)
	}
	tbl.link(ids)
	if _, err := tbl.allocate(1); !errors.Is(err, ErrOutOfSpace) {
		t.Errorf("wanted ErrOutOfSpace, got %v", err)
	}
}

func TestLinkTerminatesChain(t *testing.T) {
	tbl := newAllocTable(10)
	ids := []int{2, 5, 7}
	tbl.link(ids)

	if tbl.nodes[2].next != 5 || tbl.nodes[5].next != 7 {
		t.Error("chain links out of order")
	}
	if tbl.nodes[7].next != NoBlock {
		t.Errorf("last node must terminate with %d, got %d", NoBlock, tbl.nodes[7].next)
	}

	got := tbl.chain(2)
	if len(got) != 3 || got[0] != 2 || got[1] != 5 || got[2] != 7 {
		t.Errorf("chain(2): got %v", got)
	}
}

func TestChainBounds(t *testing.T) {
	tbl := newAllocTable(5)

	if ids := tbl.chain(NoBlock); len(ids) != 0 {
		t.Errorf("empty head: wanted no nodes, got %v", ids)
	}
	if ids := tbl.chain(99); len(ids) != 0 {
		t.Errorf("out-of-range head: wanted no nodes, got %v", ids)
	}

	// self-loop must not walk forever
	tbl.link([]int{3})
	tbl.nodes[3].next = 3
	if ids := tbl.chain(3); len(ids) > 5 {
		t.Errorf("cycle walk exceeded table size: %d nodes", len(ids))
	}
}

func TestFreeCount(t *testing.T) {
	tbl := newAllocTable(10)
	if got := tbl.freeCount(); got != 10 {
		t.Fatalf("fresh table: wanted 10 free, got %d", got)
	}
	ids, _ := tbl.allocate(4)
	tbl.link(ids)
	if got := tbl.freeCount(); got != 6 {
		t.Fatalf("after linking 4: wanted 6 free, got %d", got)
	}
	for _, id := range ids {
		tbl.freeNode(id)
	}
	if got := tbl.freeCount(); got != 10 {
		t.Fatalf("after freeing: wanted 10 free, got %d", got)
	}
}

func TestLoadRebuildsFreeList(t *testing.T) {
	tbl := newAllocTable(6)
	tbl.link([]int{1, 4})

	buf := make([]byte, 6*nodeBytes)
	tbl.encode(buf)

	loaded, err := loadAllocTable(buf, 6)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		if loaded.free[i] != tbl.free[i] {
			t.Errorf("node %d: free %v after reload, %v before", i, loaded.free[i], tbl.free[i])
		}
		if loaded.nodes[i].next != tbl.nodes[i].next {
			t.Errorf("node %d: next %d after reload, %d before", i, loaded.nodes[i].next, tbl.nodes[i].next)
		}
	}
}
