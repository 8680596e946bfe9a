package filesystem

// allocTable owns the extent nodes and the derived free list. It maps a
// file's head pointer to the ordered list of blocks holding its content.
// The free list is rebuilt from the node states on load, never persisted.
type allocTable struct {
	nodes []extentNode
	free  []bool
}

func newAllocTable(maxBlocks int) *allocTable {
	t := &allocTable{
		nodes: make([]extentNode, maxBlocks),
		free:  make([]bool, maxBlocks),
	}
	for i := range t.nodes {
		t.nodes[i] = extentNode{state: stateFree, next: NoBlock}
		t.free[i] = true
	}
	return t
}

func loadAllocTable(buf []byte, maxBlocks int) (*allocTable, error) {
	t := &allocTable{
		nodes: make([]extentNode, maxBlocks),
		free:  make([]bool, maxBlocks),
	}
	for i := 0; i < maxBlocks; i++ {
		n, err := decodeNode(buf[i*nodeBytes:], i)
		if err != nil {
			return nil, err
		}
		t.nodes[i] = n
		t.free[i] = n.state == stateFree
	}
	return t, nil
}

func (t *allocTable) encode(buf []byte) {
	for i, n := range t.nodes {
		encodeNode(buf[i*nodeBytes:], i, n)
	}
}

func (t *allocTable) freeCount() int {
	count := 0
	for _, f := range t.free {
		if f {
			count++
		}
	}
	return count
}

// allocate collects the first n free node indices in ascending order.
// First-fit, lowest index first, so allocation is reproducible.
func (t *allocTable) allocate(n int) ([]int, error) {
	ids := make([]int, 0, n)
	for i := 0; i < len(t.nodes) && len(ids) < n; i++ {
		if t.free[i] {
			ids = append(ids, i)
		}
	}
	if len(ids) < n {
		return nil, ErrOutOfSpace
	}
	return ids, nil
}

// link marks every node in ids as in use and chains them in order, the
// last one terminated with NoBlock.
func (t *allocTable) link(ids []int) {
	for k, id := range ids {
		next := NoBlock
		if k+1 < len(ids) {
			next = ids[k+1]
		}
		t.nodes[id] = extentNode{state: stateInUse, next: next}
		t.free[id] = false
	}
}

// chain walks the links from head until the sentinel. Iteration is bounded
// to valid indices and to the table size, so a corrupted chain cannot walk
// off the table or loop forever.
func (t *allocTable) chain(head int) []int {
	ids := make([]int, 0)
	id := head
	for id != NoBlock && id >= 0 && id < len(t.nodes) && len(ids) < len(t.nodes) {
		ids = append(ids, id)
		id = t.nodes[id].next
	}
	return ids
}

func (t *allocTable) freeNode(id int) {
	t.nodes[id] = extentNode{state: stateFree, next: NoBlock}
	t.free[id] = true
}

// reserve forces a node in use without touching its link. Used on load to
// settle node 0, whose on-disk sign is ambiguous.
func (t *allocTable) reserve(id int) {
	t.nodes[id].state = stateInUse
	t.free[id] = false
}
