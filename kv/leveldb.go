package kv

import (
	"path"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDB is the durable backend, grounded on common/db/go_level_db.go.
// It is what an embedding host would point the bet store and account
// ledger at outside of tests.
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens (or creates and recovers) a goleveldb database under
// dir/name.db, matching NewGoLevelDB's layout and corruption-recovery path.
func OpenLevelDB(name, dir string) (*LevelDB, error) {
	dbPath := path.Join(dir, name+".db")
	db, err := leveldb.OpenFile(dbPath, &opt.Options{
		OpenFilesCacheCapacity: 128,
		BlockCacheCapacity:     64 * opt.MiB,
		WriteBuffer:            32 * opt.MiB,
	})
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(dbPath, nil)
	}
	if err != nil {
		return nil, err
	}
	return &LevelDB{db: db}, nil
}

func (db *LevelDB) Get(key []byte) ([]byte, error) {
	v, err := db.db.Get(key, nil)
	if err == errors.ErrNotFound {
		return nil, ErrNotFound
	}
	return v, err
}

func (db *LevelDB) Set(key, value []byte) error {
	return db.db.Put(key, value, nil)
}

func (db *LevelDB) Delete(key []byte) error {
	return db.db.Delete(key, nil)
}

func (db *LevelDB) Close() error {
	return db.db.Close()
}

func (db *LevelDB) Iterator(prefix []byte, reverse bool) Iterator {
	it := db.db.NewIterator(util.BytesPrefix(prefix), nil)
	return &levelIterator{it: it, reverse: reverse}
}

func (db *LevelDB) NewBatch() Batch {
	return &levelBatch{db: db, batch: new(leveldb.Batch)}
}

type levelBatch struct {
	db    *LevelDB
	batch *leveldb.Batch
}

func (b *levelBatch) Set(key, value []byte) {
	b.batch.Put(key, value)
}

func (b *levelBatch) Delete(key []byte) {
	b.batch.Delete(key)
}

func (b *levelBatch) Write() error {
	return b.db.db.Write(b.batch, nil)
}

type levelIterator struct {
	it        iterator
	reverse   bool
	started   bool
}

// iterator captures the subset of goleveldb's Iterator this wrapper needs;
// declared locally so levelIterator's fields stay testable without pulling
// in the concrete goleveldb type in signatures.
type iterator interface {
	First() bool
	Last() bool
	Next() bool
	Prev() bool
	Seek(key []byte) bool
	Key() []byte
	Value() []byte
	Release()
}

func (it *levelIterator) Rewind() bool {
	it.started = true
	if it.reverse {
		return it.it.Last()
	}
	return it.it.First()
}

func (it *levelIterator) Seek(key []byte) bool {
	it.started = true
	return it.it.Seek(key)
}

func (it *levelIterator) Next() bool {
	if !it.started {
		return it.Rewind()
	}
	if it.reverse {
		return it.it.Prev()
	}
	return it.it.Next()
}

func (it *levelIterator) Valid() bool {
	return it.it.Key() != nil
}

func (it *levelIterator) Key() []byte {
	k := it.it.Key()
	out := make([]byte, len(k))
	copy(out, k)
	return out
}

func (it *levelIterator) Value() []byte {
	v := it.it.Value()
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

func (it *levelIterator) Close() {
	it.it.Release()
}
