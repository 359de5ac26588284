package prefroom

import (
	"maps"
	"slices"
	"sync"
)

// MemoryStore is an in-memory Store. It is safe for concurrent use.
// An optional persist function receives a snapshot of the store after
// every committed batch: synchronously for Commit, in a background
// goroutine for Apply. Calls to persist never overlap, and a snapshot
// older than one already persisted is dropped, so the last persisted
// snapshot always reflects the last written batch.
type MemoryStore struct {
	persist func(map[string]any) error

	mu      sync.RWMutex
	values  map[string]any
	subs    map[uint64]func(string)
	next    uint64
	version uint64

	persistMu sync.Mutex
	persisted uint64
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithPersist sets the function called with a snapshot of the store after
// each committed batch.
func WithPersist(fn func(map[string]any) error) MemoryOption {
	return func(s *MemoryStore) {
		s.persist = fn
	}
}

// WithValues seeds the store with initial values.
func WithValues(values map[string]any) MemoryOption {
	return func(s *MemoryStore) {
		maps.Copy(s.values, values)
	}
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		values: make(map[string]any),
		subs:   make(map[uint64]func(string)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func lookup[T any](s *MemoryStore, key string, def T) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key].(T); ok {
		return v
	}
	return def
}

// Bool implements Store.
func (s *MemoryStore) Bool(key string, def bool) bool { return lookup(s, key, def) }

// Int implements Store.
func (s *MemoryStore) Int(key string, def int) int { return lookup(s, key, def) }

// Int64 implements Store.
func (s *MemoryStore) Int64(key string, def int64) int64 { return lookup(s, key, def) }

// Float32 implements Store.
func (s *MemoryStore) Float32(key string, def float32) float32 { return lookup(s, key, def) }

// String implements Store.
func (s *MemoryStore) String(key string, def string) string { return lookup(s, key, def) }

// StringSet implements Store. The returned slice is a copy.
func (s *MemoryStore) StringSet(key string, def []string) []string {
	return slices.Clone(lookup(s, key, def))
}

// Contains implements Store.
func (s *MemoryStore) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// Keys implements Store.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Edit implements Store.
func (s *MemoryStore) Edit() Editor {
	return &memoryEditor{store: s}
}

// Subscribe implements Store.
func (s *MemoryStore) Subscribe(fn func(key string)) Unsubscribe {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// edit is a single pending change. A nil value removes the key.
type edit struct {
	key   string
	value any
}

type memoryEditor struct {
	store *MemoryStore
	clear bool
	edits []edit
}

func (e *memoryEditor) put(key string, v any) Editor {
	e.edits = append(e.edits, edit{key: key, value: v})
	return e
}

func (e *memoryEditor) PutBool(key string, v bool) Editor       { return e.put(key, v) }
func (e *memoryEditor) PutInt(key string, v int) Editor         { return e.put(key, v) }
func (e *memoryEditor) PutInt64(key string, v int64) Editor     { return e.put(key, v) }
func (e *memoryEditor) PutFloat32(key string, v float32) Editor { return e.put(key, v) }
func (e *memoryEditor) PutString(key string, v string) Editor   { return e.put(key, v) }

func (e *memoryEditor) PutStringSet(key string, v []string) Editor {
	if v == nil {
		return e.Remove(key)
	}
	return e.put(key, slices.Clone(v))
}

func (e *memoryEditor) Remove(key string) Editor {
	e.edits = append(e.edits, edit{key: key})
	return e
}

func (e *memoryEditor) Clear() Editor {
	e.clear = true
	return e
}

func (e *memoryEditor) Commit() error {
	snapshot, version := e.store.write(e)
	if e.store.persist == nil {
		return nil
	}
	return e.store.save(version, snapshot)
}

func (e *memoryEditor) Apply() {
	snapshot, version := e.store.write(e)
	if e.store.persist != nil {
		go func() { _ = e.store.save(version, snapshot) }()
	}
}

// save persists the snapshot taken at version unless a newer one was
// already persisted.
func (s *MemoryStore) save(version uint64, snapshot map[string]any) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if version <= s.persisted {
		return nil
	}
	s.persisted = version
	return s.persist(snapshot)
}

// write applies the batch, notifies subscribers of changed keys and
// returns a snapshot of the resulting values with its version.
func (s *MemoryStore) write(e *memoryEditor) (map[string]any, uint64) {
	var changed []string
	s.mu.Lock()
	if e.clear {
		changed = slices.Sorted(maps.Keys(s.values))
		clear(s.values)
	}
	for _, ed := range e.edits {
		if ed.value == nil {
			if _, ok := s.values[ed.key]; !ok {
				continue
			}
			delete(s.values, ed.key)
		} else {
			s.values[ed.key] = ed.value
		}
		if !slices.Contains(changed, ed.key) {
			changed = append(changed, ed.key)
		}
	}
	s.version++
	snapshot, version := maps.Clone(s.values), s.version
	subs := make([]func(string), 0, len(s.subs))
	for _, id := range slices.Sorted(maps.Keys(s.subs)) {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()
	for _, key := range changed {
		for _, fn := range subs {
			fn(key)
		}
	}
	return snapshot, version
}

var _ Store = (*MemoryStore)(nil)
