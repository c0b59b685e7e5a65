package store

import (
	"github.com/scorum/betting/kv"
	"github.com/scorum/betting/types"
)

// GetBettingProperty loads the moderator singleton, defaulting to an empty
// moderator if it has never been set.
func (s *BetStore) GetBettingProperty() (types.BettingProperty, error) {
	v, err := s.db.Get([]byte(propBettingKey))
	if err != nil {
		if err == kv.ErrNotFound {
			return types.BettingProperty{}, nil
		}
		return types.BettingProperty{}, err
	}
	var p types.BettingProperty
	if err := types.Decode(v, &p); err != nil {
		panic(err)
	}
	return p, nil
}

// SetBettingProperty persists the moderator singleton.
func (s *BetStore) SetBettingProperty(p types.BettingProperty) error {
	return s.db.Set([]byte(propBettingKey), types.Encode(p))
}

// GetBettingStats loads the running pending/matched volume totals.
func (s *BetStore) GetBettingStats() (types.BettingStats, error) {
	v, err := s.db.Get([]byte(propStatsKey))
	if err != nil {
		if err == kv.ErrNotFound {
			return types.BettingStats{}, nil
		}
		return types.BettingStats{}, err
	}
	var st types.BettingStats
	if err := types.Decode(v, &st); err != nil {
		panic(err)
	}
	return st, nil
}

func (s *BetStore) setBettingStats(st types.BettingStats) error {
	return s.db.Set([]byte(propStatsKey), types.Encode(st))
}

// AddPendingVolume adjusts pending_bets_volume by delta (may be negative).
func (s *BetStore) AddPendingVolume(delta int64) error {
	st, err := s.GetBettingStats()
	if err != nil {
		return err
	}
	st.PendingBetsVolume += delta
	return s.setBettingStats(st)
}

// AddMatchedVolume adjusts matched_bets_volume by delta (may be negative).
func (s *BetStore) AddMatchedVolume(delta int64) error {
	st, err := s.GetBettingStats()
	if err != nil {
		return err
	}
	st.MatchedBetsVolume += delta
	return s.setBettingStats(st)
}
