// Package evaluator holds the thin operation dispatchers: one per
// externally accepted operation, each validating existence/ownership/
// moderator-authority before delegating to the betting service.
// Operation syntactic validation itself stays an external collaborator —
// these evaluators assume op fields already passed that check. They
// enforce the boundary rules the service itself does not see: account
// existence, uuid ownership, moderator identity, the minimum stake and
// odds range for post_bet, and the size and uniqueness of a
// cancel_pending_bets uuid list.
package evaluator

import (
	"github.com/google/uuid"

	"github.com/scorum/betting/types"
)

// PostBetOp mirrors the post_bet operation.
type PostBetOp struct {
	Better   string
	GameUUID uuid.UUID
	Wincase  types.Wincase
	Odds     types.Odds
	Stake    int64
	Kind     types.BetKind
	BetUUID  uuid.UUID
}

// CancelPendingBetsOp mirrors the cancel_pending_bets operation.
type CancelPendingBetsOp struct {
	Better   string
	BetUUIDs []uuid.UUID
}

// CancelGameOp mirrors the cancel_game operation.
type CancelGameOp struct {
	Moderator string
	GameUUID  uuid.UUID
}

// UpdateGameMarketsOp mirrors the update_game_markets operation.
type UpdateGameMarketsOp struct {
	Moderator  string
	GameUUID   uuid.UUID
	NewMarkets []types.Market
}

// UpdateGameStartTimeOp mirrors the update_game_start_time operation.
type UpdateGameStartTimeOp struct {
	Moderator    string
	GameUUID     uuid.UUID
	NewStartTime int64
}

// PostGameResultsOp mirrors the post_game_results operation.
type PostGameResultsOp struct {
	Moderator       string
	GameUUID        uuid.UUID
	WinningWincases []types.Wincase
}
