// Package dedupe tracks keys that were already seen while walking an event
// table, so repeated rows can be dropped in a single pass.
package dedupe

// Deduper records seen keys. It is not safe for concurrent use; every
// aggregation builds its own.
type Deduper[K comparable] interface {
	// SeenAndRecord reports whether key was seen before and records it if not.
	SeenAndRecord(key K) bool

	Size() int
}

// inMemoryDeduper is a map-backed Deduper.
type inMemoryDeduper[K comparable] struct {
	seen map[K]struct{}
}

// New creates an empty in-memory deduper.
func New[K comparable](opts ...Option) Deduper[K] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &inMemoryDeduper[K]{seen: make(map[K]struct{}, o.capacityHint)}
}

func (d *inMemoryDeduper[K]) SeenAndRecord(key K) bool {
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper[K]) Size() int {
	return len(d.seen)
}
