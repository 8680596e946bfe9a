package filesystem

import (
	"io"
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/ConcordiaPaulaLagoTeaching/file-sharing-server-team-hs/blockstore"
)

// Manager orchestrates the directory table, the allocation table and the
// block store of one mounted disk image. It is the sole owner of the
// backing device for the life of the process.
//
// One read/write lock guards the whole table set: List and Read may run
// concurrently, mutations are exclusive. Every mutation rewrites the full
// metadata region and fsyncs before returning.
type Manager struct {
	geo    Geometry
	dev    blockstore.Device
	blocks *blockstore.Store
	dir    *directory
	alloc  *allocTable

	lock sync.RWMutex

	file *os.File // set when mounted from a path, for Close
}

// Mount opens (or creates) the disk image at path. An empty image is
// formatted with empty tables; a populated one is loaded back.
func Mount(path string, geo Geometry) (*Manager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		log.Errorf("Failed to open disk image %s: %s", path, err.Error())
		return nil, storageErr(err)
	}
	m, err := MountDevice(f, geo)
	if err != nil {
		f.Close()
		return nil, err
	}
	m.file = f
	return m, nil
}

// MountDevice mounts an already-open device. Tests use a MemDevice here.
func MountDevice(dev blockstore.Device, geo Geometry) (*Manager, error) {
	m := &Manager{
		geo:    geo,
		dev:    dev,
		blocks: blockstore.New(dev, geo.BlockSize, geo.MaxBlocks, geo.DataStart()),
	}

	size, err := dev.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, storageErr(err)
	}

	if size == 0 {
		m.dir = newDirectory(geo.MaxFiles)
		m.alloc = newAllocTable(geo.MaxBlocks)
		if err := dev.Truncate(geo.TotalSize()); err != nil {
			return nil, storageErr(err)
		}
		if err := m.writeMetadata(); err != nil {
			return nil, err
		}
		log.Infof("Formatted new disk: %d files, %d blocks of %d bytes",
			geo.MaxFiles, geo.MaxBlocks, geo.BlockSize)
		return m, nil
	}

	buf := make([]byte, geo.MetadataSize())
	if _, err := dev.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, storageErr(err)
	}
	m.dir = loadDirectory(buf, geo.MaxFiles)
	alloc, err := loadAllocTable(buf[geo.MaxFiles*entryBytes:], geo.MaxBlocks)
	if err != nil {
		return nil, err
	}
	m.alloc = alloc

	// Settle node 0 and shield against dangling links: a node is live iff
	// some entry's chain reaches it.
	for _, e := range m.dir.entries {
		if e.Empty() {
			continue
		}
		for _, id := range m.alloc.chain(e.Head) {
			m.alloc.reserve(id)
		}
	}

	log.Infof("Mounted disk: %d files, %d free blocks", len(m.dir.list()), m.alloc.freeCount())
	return m, nil
}

func (m *Manager) Close() error {
	if m.file != nil {
		return m.file.Close()
	}
	return nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	if len(name) > NameBytes {
		return ErrNameTooLong
	}
	return nil
}

// Create installs a new empty entry for name.
func (m *Manager) Create(name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if m.dir.find(name) >= 0 {
		return ErrAlreadyExists
	}
	slot := m.dir.freeSlot()
	if slot < 0 {
		return ErrDirectoryFull
	}
	m.dir.entries[slot] = FEntry{Name: name, Size: 0, Head: NoBlock}
	return m.writeMetadata()
}

// Write replaces the whole content of name. The existing chain is always
// freed first, then a fresh one is allocated; there is no in-place reuse,
// so which physical blocks end up holding the file is deterministic.
func (m *Manager) Write(name string, content []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if len(content) > 0xFFFF {
		// the size field is 16 bits
		return ErrOutOfSpace
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	slot := m.dir.find(name)
	if slot < 0 {
		return ErrNotFound
	}
	e := &m.dir.entries[slot]

	if err := m.freeChain(e.Head); err != nil {
		return err
	}
	e.Size = 0
	e.Head = NoBlock

	needed := m.geo.blocksFor(len(content))
	if needed > m.alloc.freeCount() {
		// The old chain is already gone: leave the entry empty but keep
		// the tables mutually consistent on disk.
		if err := m.writeMetadata(); err != nil {
			return err
		}
		return ErrOutOfSpace
	}

	ids, err := m.alloc.allocate(needed)
	if err != nil {
		return err
	}
	m.alloc.link(ids)

	for k, id := range ids {
		start := k * m.geo.BlockSize
		end := start + m.geo.BlockSize
		if end > len(content) {
			end = len(content)
		}
		if err := m.blocks.WriteBlock(id, content[start:end]); err != nil {
			log.Errorf("Failed to write block %d for file %s: %s", id, name, err.Error())
			return storageErr(err)
		}
	}

	if len(ids) > 0 {
		e.Head = ids[0]
	}
	e.Size = len(content)
	return m.writeMetadata()
}

// Read returns the exact byte sequence last written to name.
func (m *Manager) Read(name string) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	slot := m.dir.find(name)
	if slot < 0 {
		return nil, ErrNotFound
	}
	e := m.dir.entries[slot]
	if e.Size == 0 {
		return []byte{}, nil
	}

	needed := m.geo.blocksFor(e.Size)
	content := make([]byte, 0, needed*m.geo.BlockSize)
	for _, id := range m.alloc.chain(e.Head) {
		blk, err := m.blocks.ReadBlock(id)
		if err != nil {
			log.Errorf("Failed to read block %d for file %s: %s", id, name, err.Error())
			return nil, storageErr(err)
		}
		content = append(content, blk...)
		if len(content) >= e.Size {
			break
		}
	}
	if len(content) < e.Size {
		return nil, storageErr(io.ErrUnexpectedEOF)
	}
	return content[:e.Size], nil
}

// Delete frees name's chain, zeroing its data blocks, and clears the entry.
func (m *Manager) Delete(name string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	slot := m.dir.find(name)
	if slot < 0 {
		return ErrNotFound
	}
	if err := m.freeChain(m.dir.entries[slot].Head); err != nil {
		return err
	}
	m.dir.entries[slot].clear()
	return m.writeMetadata()
}

// List returns the nonempty file names in ascending slot order.
func (m *Manager) List() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.dir.list()
}

// Stat reports the block capacity and how much of it is free.
func (m *Manager) Stat() (total int, free int) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.geo.MaxBlocks, m.alloc.freeCount()
}

// freeChain walks head's chain, zeroing each data block before marking its
// node free. A no-op for an empty chain.
func (m *Manager) freeChain(head int) error {
	for _, id := range m.alloc.chain(head) {
		if err := m.blocks.ZeroBlock(id); err != nil {
			log.Errorf("Failed to zero block %d: %s", id, err.Error())
			return storageErr(err)
		}
		m.alloc.freeNode(id)
	}
	return nil
}

// writeMetadata serializes both tables to the start of the device and
// forces them durable. It is the single choke point for crash consistency:
// after any successful operation, reloading reproduces the in-memory state.
func (m *Manager) writeMetadata() error {
	buf := make([]byte, m.geo.MetadataSize())
	m.dir.encode(buf)
	m.alloc.encode(buf[m.geo.MaxFiles*entryBytes:])
	if _, err := m.dev.WriteAt(buf, 0); err != nil {
		log.Errorf("Failed to write metadata: %s", err.Error())
		return storageErr(err)
	}
	if err := m.dev.Sync(); err != nil {
		log.Errorf("Failed to sync metadata: %s", err.Error())
		return storageErr(err)
	}
	return nil
}
