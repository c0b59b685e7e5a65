package store

import (
	"github.com/scorum/betting/types"
)

// CreatePendingBet persists a brand-new pending bet and its secondary
// indices, assigning it a fresh id.
func (s *BetStore) CreatePendingBet(gameID uint64, data types.BetData) (types.PendingBet, error) {
	id := types.PendingBetID(s.nextID(seqPendingKey))
	pb := types.PendingBet{
		ID:     id,
		GameID: gameID,
		Market: types.MarketOf(data.Wincase),
		Data:   data,
	}
	if err := s.putPendingBet(pb); err != nil {
		return types.PendingBet{}, err
	}
	return pb, nil
}

func (s *BetStore) putPendingBet(pb types.PendingBet) error {
	enc := types.Encode(pb)
	if err := s.db.Set(keyPendingByID(pb.ID), enc); err != nil {
		return err
	}
	if err := s.db.Set(keyPendingByGameMarket(pb.GameID, pb.Market, pb.ID), enc); err != nil {
		return err
	}
	if err := s.db.Set(keyPendingByGameCreated(pb.GameID, pb.Data.Created, pb.ID), enc); err != nil {
		return err
	}
	if err := s.db.Set(keyPendingByGameBetter(pb.GameID, pb.Data.Better, pb.ID), enc); err != nil {
		return err
	}
	if err := s.db.Set(keyPendingByGameKind(pb.GameID, pb.Data.Kind, pb.ID), enc); err != nil {
		return err
	}
	return s.db.Set(keyPendingByUUID(pb.Data.UUID), enc)
}

func (s *BetStore) deletePendingBet(pb types.PendingBet) error {
	if err := s.db.Delete(keyPendingByID(pb.ID)); err != nil {
		return err
	}
	if err := s.db.Delete(keyPendingByGameMarket(pb.GameID, pb.Market, pb.ID)); err != nil {
		return err
	}
	if err := s.db.Delete(keyPendingByGameCreated(pb.GameID, pb.Data.Created, pb.ID)); err != nil {
		return err
	}
	if err := s.db.Delete(keyPendingByGameBetter(pb.GameID, pb.Data.Better, pb.ID)); err != nil {
		return err
	}
	if err := s.db.Delete(keyPendingByGameKind(pb.GameID, pb.Data.Kind, pb.ID)); err != nil {
		return err
	}
	return s.db.Delete(keyPendingByUUID(pb.Data.UUID))
}

// GetPendingBet loads a pending bet by primary id.
func (s *BetStore) GetPendingBet(id types.PendingBetID) (types.PendingBet, error) {
	v, err := s.db.Get(keyPendingByID(id))
	if err != nil {
		return types.PendingBet{}, err
	}
	var pb types.PendingBet
	if err := types.Decode(v, &pb); err != nil {
		panic(err)
	}
	return pb, nil
}

// GetPendingBetByUUID loads a pending bet by its bet uuid.
func (s *BetStore) GetPendingBetByUUID(u [16]byte) (types.PendingBet, error) {
	v, err := s.db.Get(keyPendingByUUID(u))
	if err != nil {
		return types.PendingBet{}, err
	}
	var pb types.PendingBet
	if err := types.Decode(v, &pb); err != nil {
		panic(err)
	}
	return pb, nil
}

// UpdatePendingBet persists a mutated pending bet whose keyed fields
// (game, market, better, created, kind, uuid, id) are unchanged; only the
// stake actually varies across this store's callers (coalescing restore).
func (s *BetStore) UpdatePendingBet(pb types.PendingBet) error {
	return s.putPendingBet(pb)
}

// RemovePendingBet deletes a pending bet and all of its secondary indices.
func (s *BetStore) RemovePendingBet(pb types.PendingBet) error {
	return s.deletePendingBet(pb)
}

// PendingBetsByGame returns every pending bet for gameID, ordered by
// creation time.
func (s *BetStore) PendingBetsByGame(gameID uint64) ([]types.PendingBet, error) {
	return s.decodePendingRange(prefixPendingByGame(gameID))
}

// PendingBetsByGameAndBetter returns gameID's pending bets placed by
// better, ordered by id.
func (s *BetStore) PendingBetsByGameAndBetter(gameID uint64, better string) ([]types.PendingBet, error) {
	return s.decodePendingRange(prefixPendingByGameBetter(gameID, better))
}

// PendingBetsByGameAndKind returns gameID's pending bets of the given
// kind, ordered by id.
func (s *BetStore) PendingBetsByGameAndKind(gameID uint64, kind types.BetKind) ([]types.PendingBet, error) {
	return s.decodePendingRange(prefixPendingByGameKind(gameID, kind))
}

// PendingBetsByGameAndMarkets returns gameID's pending bets whose market is
// a member of markets, walking the (game, market) ordered index once and
// testing membership as it goes — the merge-style intersection the
// market-partitioned cancel calls for.
func (s *BetStore) PendingBetsByGameAndMarkets(gameID uint64, markets map[types.Market]struct{}) ([]types.PendingBet, error) {
	all, err := s.decodeRangeInGameMarketOrder(prefixPendingByGameMarket(gameID))
	if err != nil {
		return nil, err
	}
	var out []types.PendingBet
	for _, pb := range all {
		if _, ok := markets[pb.Market]; ok {
			out = append(out, pb)
		}
	}
	return out, nil
}

func (s *BetStore) decodeRangeInGameMarketOrder(prefix []byte) ([]types.PendingBet, error) {
	it := s.db.Iterator(prefix, false)
	defer it.Close()
	var out []types.PendingBet
	for ok := it.Rewind(); ok; ok = it.Next() {
		var pb types.PendingBet
		if err := types.Decode(it.Value(), &pb); err != nil {
			panic(err)
		}
		out = append(out, pb)
	}
	return out, nil
}

func (s *BetStore) decodePendingRange(prefix []byte) ([]types.PendingBet, error) {
	return s.decodeRangeInGameMarketOrder(prefix)
}

// PendingBetIDsByGame snapshots the ids of every pending bet for gameID,
// used by bulk cancellation so mutating the collection mid-scan is safe.
func (s *BetStore) PendingBetIDsByGame(gameID uint64) []types.PendingBetID {
	return scanIDs(s, prefixPendingByGame(gameID), func(k []byte) types.PendingBetID {
		return types.PendingBetID(last20(k))
	})
}
