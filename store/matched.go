package store

import (
	"github.com/scorum/betting/types"
)

// CreateMatchedBet persists a new matched bet record; called by the
// matcher (an external collaborator) once it has paired two pending
// sides. The two pending bets it replaces have already been removed or
// resized by the caller.
func (s *BetStore) CreateMatchedBet(gameID uint64, market types.Market, bet1, bet2 types.BetData) (types.MatchedBet, error) {
	id := types.MatchedBetID(s.nextID(seqMatchedKey))
	mb := types.MatchedBet{ID: id, GameID: gameID, Market: market, Bet1: bet1, Bet2: bet2}
	if err := s.putMatchedBet(mb); err != nil {
		return types.MatchedBet{}, err
	}
	return mb, nil
}

func (s *BetStore) putMatchedBet(mb types.MatchedBet) error {
	enc := types.Encode(mb)
	if err := s.db.Set(keyMatchedByID(mb.ID), enc); err != nil {
		return err
	}
	if err := s.db.Set(keyMatchedByGameMarket(mb.GameID, mb.Market, mb.ID), enc); err != nil {
		return err
	}
	return s.db.Set(keyMatchedByGameCreated(mb.GameID, mb.Bet1.Created, mb.ID), enc)
}

func (s *BetStore) deleteMatchedBet(mb types.MatchedBet) error {
	if err := s.db.Delete(keyMatchedByID(mb.ID)); err != nil {
		return err
	}
	if err := s.db.Delete(keyMatchedByGameMarket(mb.GameID, mb.Market, mb.ID)); err != nil {
		return err
	}
	return s.db.Delete(keyMatchedByGameCreated(mb.GameID, mb.Bet1.Created, mb.ID))
}

// GetMatchedBet loads a matched bet by primary id.
func (s *BetStore) GetMatchedBet(id types.MatchedBetID) (types.MatchedBet, error) {
	v, err := s.db.Get(keyMatchedByID(id))
	if err != nil {
		return types.MatchedBet{}, err
	}
	var mb types.MatchedBet
	if err := types.Decode(v, &mb); err != nil {
		panic(err)
	}
	return mb, nil
}

// RemoveMatchedBet deletes a matched bet and its secondary indices.
func (s *BetStore) RemoveMatchedBet(mb types.MatchedBet) error {
	return s.deleteMatchedBet(mb)
}

// MatchedBetsByGame returns every matched bet for gameID, ordered by the
// first leg's creation time.
func (s *BetStore) MatchedBetsByGame(gameID uint64) ([]types.MatchedBet, error) {
	it := s.db.Iterator(prefixMatchedByGame(gameID), false)
	defer it.Close()
	var out []types.MatchedBet
	for ok := it.Rewind(); ok; ok = it.Next() {
		var mb types.MatchedBet
		if err := types.Decode(it.Value(), &mb); err != nil {
			panic(err)
		}
		out = append(out, mb)
	}
	return out, nil
}

// MatchedBetsByGameAndMarkets returns gameID's matched bets whose market is
// a member of markets, walking the (game, market) ordered index once.
func (s *BetStore) MatchedBetsByGameAndMarkets(gameID uint64, markets map[types.Market]struct{}) ([]types.MatchedBet, error) {
	it := s.db.Iterator(prefixMatchedByGameMarket(gameID), false)
	defer it.Close()
	var out []types.MatchedBet
	for ok := it.Rewind(); ok; ok = it.Next() {
		var mb types.MatchedBet
		if err := types.Decode(it.Value(), &mb); err != nil {
			panic(err)
		}
		if _, ok := markets[mb.Market]; ok {
			out = append(out, mb)
		}
	}
	return out, nil
}

// MatchedBetIDsByGame snapshots the ids of every matched bet for gameID.
func (s *BetStore) MatchedBetIDsByGame(gameID uint64) []types.MatchedBetID {
	return scanIDs(s, prefixMatchedByGame(gameID), func(k []byte) types.MatchedBetID {
		return types.MatchedBetID(last20(k))
	})
}

// HasBetsForGame reports whether gameID has any pending or matched bet
// still associated with it — used by CancelGame's precondition, which
// must check BOTH stores (the original checks the matched store twice,
// almost certainly a bug).
func (s *BetStore) HasBetsForGame(gameID uint64) (bool, error) {
	pending, err := s.PendingBetsByGame(gameID)
	if err != nil {
		return false, err
	}
	if len(pending) > 0 {
		return true, nil
	}
	matched, err := s.MatchedBetsByGame(gameID)
	if err != nil {
		return false, err
	}
	return len(matched) > 0, nil
}
