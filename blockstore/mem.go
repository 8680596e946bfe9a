package blockstore

import (
	"io"
	"sync"
)

// A simple in-memory Device for tests. Reads past the written extent
// come back zero-filled, like a sparse file.
type MemDevice struct {
	data []byte
	lock sync.Mutex
}

func NewMemDevice() *MemDevice {
	return &MemDevice{
		data: make([]byte, 0),
	}
}

func (m *MemDevice) Len() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.data)
}

func (m *MemDevice) ReadAt(p []byte, off int64) (int, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for i := range p {
		p[i] = 0
	}
	if off < int64(len(m.data)) {
		copy(p, m.data[off:])
	}
	return len(p), nil
}

func (m *MemDevice) WriteAt(p []byte, off int64) (int, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	end := off + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[off:], p)
	return len(p), nil
}

// Seek only tracks the size probe mounts do; MemDevice keeps no cursor.
func (m *MemDevice) Seek(offset int64, whence int) (int64, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	switch whence {
	case io.SeekEnd:
		return int64(len(m.data)) + offset, nil
	case io.SeekCurrent:
		return offset, nil
	default:
		return offset, nil
	}
}

func (m *MemDevice) Sync() error {
	return nil
}

func (m *MemDevice) Truncate(size int64) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if size <= int64(len(m.data)) {
		m.data = m.data[:size]
		return nil
	}
	grown := make([]byte, size)
	copy(grown, m.data)
	m.data = grown
	return nil
}
