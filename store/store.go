// Package store is the bet store: indexed collections of pending and
// matched bets, the uuid history, the game collection, the moderator
// singleton and the stats sub-record, all built on kv.DB.
// Grounded on plugin/dapp/game/executor/gamedb.go's Key()/
// calcGameStatusIndexKey() secondary-index convention and on
// common/db/list_helper.go's ordered-range-scan idiom.
package store

import (
	"encoding/binary"

	log "github.com/inconshreveable/log15"

	"github.com/scorum/betting/kv"
)

var slog = log.New("module", "store.betting")

// BetStore is the single storage facade the betting service and
// evaluators are built against.
type BetStore struct {
	db kv.DB
}

// New wraps db as a bet store.
func New(db kv.DB) *BetStore {
	return &BetStore{db: db}
}

func (s *BetStore) nextID(seqKey string) uint64 {
	v, err := s.db.Get([]byte(seqKey))
	var next uint64 = 1
	if err == nil && len(v) == 8 {
		next = binary.BigEndian.Uint64(v) + 1
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, next)
	if err := s.db.Set([]byte(seqKey), buf); err != nil {
		slog.Error("nextID", "seq", seqKey, "err", err)
	}
	return next
}

// scanIDs walks every key under prefix and returns the trailing id decoded
// by decodeID, snapshotting the full set before returning so a caller can
// safely mutate (remove) the very collection the range describes without
// invalidating a live cursor during range mutation.
func scanIDs[T ~uint64](s *BetStore, prefix []byte, decodeID func(key []byte) T) []T {
	it := s.db.Iterator(prefix, false)
	defer it.Close()
	var ids []T
	for ok := it.Rewind(); ok; ok = it.Next() {
		ids = append(ids, decodeID(it.Key()))
	}
	return ids
}

// last20 extracts the trailing 20-digit zero-padded decimal id segment
// every secondary-index key ends with (see keys.go).
func last20(key []byte) uint64 {
	if len(key) < 20 {
		return 0
	}
	tail := key[len(key)-20:]
	var v uint64
	for _, c := range tail {
		if c < '0' || c > '9' {
			return 0
		}
		v = v*10 + uint64(c-'0')
	}
	return v
}
