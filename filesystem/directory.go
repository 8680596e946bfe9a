package filesystem

// directory is the fixed table of file entries. Lookups are linear scans;
// the table is tiny by construction.
type directory struct {
	entries []FEntry
}

func newDirectory(maxFiles int) *directory {
	d := &directory{entries: make([]FEntry, maxFiles)}
	for i := range d.entries {
		d.entries[i].clear()
	}
	return d
}

func loadDirectory(buf []byte, maxFiles int) *directory {
	d := &directory{entries: make([]FEntry, maxFiles)}
	for i := 0; i < maxFiles; i++ {
		d.entries[i] = decodeEntry(buf[i*entryBytes:])
	}
	return d
}

func (d *directory) encode(buf []byte) {
	for i, e := range d.entries {
		encodeEntry(buf[i*entryBytes:], e)
	}
}

// find returns the slot holding name, or -1.
func (d *directory) find(name string) int {
	for i, e := range d.entries {
		if !e.Empty() && e.Name == name {
			return i
		}
	}
	return -1
}

// freeSlot returns the first empty slot, or -1 if the table is full.
func (d *directory) freeSlot() int {
	for i, e := range d.entries {
		if e.Empty() {
			return i
		}
	}
	return -1
}

// list returns the nonempty names in ascending slot order.
func (d *directory) list() []string {
	names := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		if !e.Empty() {
			names = append(names, e.Name)
		}
	}
	return names
}
