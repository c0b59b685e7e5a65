package kv

import (
	"sort"
	"strings"
	"sync"

	log "github.com/inconshreveable/log15"
)

var mlog = log.New("module", "kv.memdb")

// MemDB is a sorted in-memory KV store, grounded on
// common/db/go_mem_db.go. It backs tests and any embedding host that has
// no durable-storage requirement of its own.
type MemDB struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemDB constructs an empty in-memory store.
func NewMemDB() *MemDB {
	return &MemDB{data: make(map[string][]byte)}
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

func (db *MemDB) Get(key []byte) ([]byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	v, ok := db.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return copyBytes(v), nil
}

func (db *MemDB) Set(key, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.data[string(key)] = copyBytes(value)
	return nil
}

func (db *MemDB) Delete(key []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.data, string(key))
	return nil
}

func (db *MemDB) Close() error { return nil }

func (db *MemDB) Iterator(prefix []byte, reverse bool) Iterator {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var keys []string
	for k := range db.data {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return &memIterator{db: db, keys: keys, reverse: reverse, index: -1}
}

func (db *MemDB) NewBatch() Batch {
	return &memBatch{db: db}
}

type memKV struct{ k, v []byte }

type memBatch struct {
	db     *MemDB
	writes []memKV
}

func (b *memBatch) Set(key, value []byte) {
	b.writes = append(b.writes, memKV{copyBytes(key), copyBytes(value)})
}

func (b *memBatch) Delete(key []byte) {
	b.writes = append(b.writes, memKV{copyBytes(key), nil})
}

func (b *memBatch) Write() error {
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	for _, w := range b.writes {
		if w.v == nil {
			delete(b.db.data, string(w.k))
		} else {
			b.db.data[string(w.k)] = w.v
		}
	}
	return nil
}

type memIterator struct {
	db      *MemDB
	keys    []string
	reverse bool
	index   int
}

func (it *memIterator) Rewind() bool {
	if len(it.keys) == 0 {
		it.index = -1
		return false
	}
	if it.reverse {
		it.index = len(it.keys) - 1
	} else {
		it.index = 0
	}
	return true
}

func (it *memIterator) Seek(key []byte) bool {
	target := string(key)
	idx := sort.SearchStrings(it.keys, target)
	if it.reverse {
		// largest key <= target
		if idx < len(it.keys) && it.keys[idx] == target {
			it.index = idx
			return true
		}
		idx--
		if idx < 0 {
			it.index = len(it.keys)
			return false
		}
		it.index = idx
		return true
	}
	if idx >= len(it.keys) {
		it.index = len(it.keys)
		return false
	}
	it.index = idx
	return true
}

func (it *memIterator) Next() bool {
	if it.reverse {
		it.index--
	} else {
		it.index++
	}
	return it.Valid()
}

func (it *memIterator) Valid() bool {
	return it.index >= 0 && it.index < len(it.keys)
}

func (it *memIterator) Key() []byte {
	return []byte(it.keys[it.index])
}

func (it *memIterator) Value() []byte {
	v, err := it.db.Get(it.Key())
	if err != nil {
		mlog.Error("memIterator.Value", "err", err)
		return nil
	}
	return v
}

func (it *memIterator) Close() {}
