package export

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/pkg/metrics"
)

// DefaultMemoEntries bounds a Memo built with a non-positive size.
const DefaultMemoEntries = 128

// Memo remembers encoded files keyed by their source rows, so a repeated
// download of the same selection skips encoding. Oldest entries are evicted
// first. Safe for concurrent use.
type Memo struct {
	mu      sync.Mutex
	max     int
	entries map[uint64]File
	order   []uint64
}

// NewMemo creates a memo holding at most maxEntries files.
func NewMemo(maxEntries int) *Memo {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoEntries
	}
	return &Memo{max: maxEntries, entries: make(map[uint64]File, maxEntries)}
}

// File returns the export of events named for kind and player.
func (m *Memo) File(kind Kind, player string, events []model.Event) (File, error) {
	name := FileName(kind, player)
	key := memoKey(name, events)

	m.mu.Lock()
	if f, ok := m.entries[key]; ok {
		m.mu.Unlock()
		metrics.RecordCSVCacheHit()
		return f, nil
	}
	m.mu.Unlock()
	metrics.RecordCSVCacheMiss()

	data, err := EncodeBytes(events)
	if err != nil {
		return File{}, err
	}
	f := File{Name: name, ContentType: ContentType, Data: data}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok {
		if len(m.order) >= m.max {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.entries, oldest)
		}
		m.entries[key] = f
		m.order = append(m.order, key)
	}
	metrics.UpdateCSVCacheEntries(len(m.entries))
	return f, nil
}

// Len reports the number of memoized files.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// memoKey hashes the file name and every exported column of the rows.
func memoKey(name string, events []model.Event) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(name)
	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	writeStr := func(s string) {
		writeInt(len(s))
		_, _ = d.WriteString(s)
	}
	for _, e := range events {
		_, _ = d.Write(e.ID[:])
		writeInt(e.MatchID)
		writeInt(e.Period)
		writeInt(e.Minute)
		writeInt(e.Second)
		writeStr(e.Team)
		writeStr(e.Player)
		writeStr(e.Type)
		writeStr(formatPoint(e.Location))
		writeStr(formatPoint(e.PassEndLocation))
		writeStr(e.PassOutcome)
		writeStr(e.ShotOutcome)
	}
	return d.Sum64()
}
