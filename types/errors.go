package types

import "github.com/pkg/errors"

// Error kinds returned by the betting core, optionally wrapped with
// context via errors.Wrap. Not every failure is one of these kinds: kv
// storage errors pass through, and cancel_pending_bets rejects an
// oversized or duplicate-containing uuid list with a plain error.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrUnknownBet         = errors.New("unknown bet")
	ErrDuplicateUUID      = errors.New("duplicate bet uuid")
	ErrUnknownGame        = errors.New("unknown game")
	ErrInvalidGameState   = errors.New("invalid game state for requested transition")
	ErrNotModerator       = errors.New("caller is not the moderator")
	ErrGameHasBets        = errors.New("cannot cancel game: bets are still associated with it")
	ErrInvariantViolation = errors.New("invariant violation")
)
