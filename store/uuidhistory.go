package store

import "github.com/scorum/betting/kv"

// SeenUUID reports whether u has ever been accepted, used to reject
// replays.
func (s *BetStore) SeenUUID(u [16]byte) (bool, error) {
	_, err := s.db.Get(keyUUIDHistory(u))
	if err == nil {
		return true, nil
	}
	if err == kv.ErrNotFound {
		return false, nil
	}
	return false, err
}

// RecordUUID adds u to the permanent uuid history. It is never removed:
// the history is monotone.
func (s *BetStore) RecordUUID(u [16]byte) error {
	return s.db.Set(keyUUIDHistory(u), []byte{1})
}
