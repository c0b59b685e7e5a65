package types

import "github.com/google/uuid"

// BetCancelledKind distinguishes which store a cancelled bet was removed
// from, carried on the virtual operation so indexers don't have to guess.
type BetCancelledKind int32

const (
	BetCancelledPending BetCancelledKind = iota
	BetCancelledMatched
)

func (k BetCancelledKind) String() string {
	if k == BetCancelledMatched {
		return "matched"
	}
	return "pending"
}

// BetCancelled is emitted whenever a bet's stake is returned to its
// better, whether from the pending book or from a matched pair leg.
type BetCancelled struct {
	GameUUID uuid.UUID
	Better   string
	BetUUID  uuid.UUID
	Stake    int64
	Kind     BetCancelledKind
}

// BetRestored is emitted when a matched bet leg is moved back into the
// pending book instead of being refunded.
type BetRestored struct {
	GameUUID uuid.UUID
	Better   string
	BetUUID  uuid.UUID
	Stake    int64
}

// GameStatusChanged is emitted when the auto-resolver expires a game.
// Other status changes (post_game_results marking a game resolved) emit
// no event.
type GameStatusChanged struct {
	GameUUID  uuid.UUID
	OldStatus GameStatus
	NewStatus GameStatus
}
