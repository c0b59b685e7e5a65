package store

import (
	"encoding/binary"

	"github.com/scorum/betting/kv"
	"github.com/scorum/betting/types"
)

// CreateGame persists a brand-new game, assigning it a fresh id.
func (s *BetStore) CreateGame(g types.Game) (types.Game, error) {
	g.ID = s.nextID(seqGameKey)
	if err := s.putGame(g); err != nil {
		return types.Game{}, err
	}
	return g, nil
}

func (s *BetStore) putGame(g types.Game) error {
	if err := s.db.Set(keyGameByID(g.ID), types.Encode(g)); err != nil {
		return err
	}
	idBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(idBuf, g.ID)
	if err := s.db.Set(keyGameByUUID(g.UUID), idBuf); err != nil {
		return err
	}
	return s.syncAutoResolveIndex(g)
}

// syncAutoResolveIndex keeps game:autoresolve: entries present only for
// games the auto-resolver should still consider (status == started); it is
// idempotent so callers can invoke it after every game mutation.
func (s *BetStore) syncAutoResolveIndex(g types.Game) error {
	key := keyGameAutoResolve(g.AutoResolveTime, g.ID)
	if g.Status == types.GameStatusStarted {
		return s.db.Set(key, []byte{1})
	}
	return s.db.Delete(key)
}

// GetGame loads a game by primary id.
func (s *BetStore) GetGame(id uint64) (types.Game, error) {
	v, err := s.db.Get(keyGameByID(id))
	if err != nil {
		return types.Game{}, err
	}
	var g types.Game
	if err := types.Decode(v, &g); err != nil {
		panic(err)
	}
	return g, nil
}

// GetGameByUUID resolves the external game uuid used on the wire to the
// store's internal primary id and loads the record.
func (s *BetStore) GetGameByUUID(u [16]byte) (types.Game, error) {
	v, err := s.db.Get(keyGameByUUID(u))
	if err != nil {
		return types.Game{}, err
	}
	id := binary.BigEndian.Uint64(v)
	return s.GetGame(id)
}

// UpdateGame persists a mutated game record, refreshing the auto-resolve
// index if its status or deadline changed.
func (s *BetStore) UpdateGame(g types.Game) error {
	return s.putGame(g)
}

// RemoveGame deletes a game and its uuid/auto-resolve indices. Callers
// must have already verified it has no associated bets (the CancelGame
// precondition).
func (s *BetStore) RemoveGame(g types.Game) error {
	if err := s.db.Delete(keyGameByID(g.ID)); err != nil {
		return err
	}
	if err := s.db.Delete(keyGameByUUID(g.UUID)); err != nil {
		return err
	}
	return s.db.Delete(keyGameAutoResolve(g.AutoResolveTime, g.ID))
}

// GamesToAutoResolve returns, in ascending deadline order (ties broken by
// game id), every game whose auto-resolve deadline is at or before
// headBlockTime — grounded on
// database/block_tasks/process_bets_auto_resolving.cpp's per-block sweep
// and gamedb.go's queryGameListByStatusAndAddr ordered-range pattern.
// Determinism for replay comes from the id tie-break in the index key.
func (s *BetStore) GamesToAutoResolve(headBlockTime int64) ([]types.Game, error) {
	it := s.db.Iterator([]byte(gameAutoResolveIx), false)
	defer it.Close()
	var out []types.Game
	for ok := it.Rewind(); ok; ok = it.Next() {
		id := last20(it.Key())
		g, err := s.GetGame(id)
		if err == kv.ErrNotFound {
			continue // index entry stale relative to a concurrent removal; skip
		}
		if err != nil {
			return nil, err
		}
		if g.AutoResolveTime > headBlockTime {
			break // index is ordered by deadline; nothing further qualifies
		}
		out = append(out, g)
	}
	return out, nil
}
