package types

import "github.com/google/uuid"

// Kind of a bet: live bets and pre-match (non-live) bets are governed by
// different cancellation policies downstream in the betting service.
type BetKind int32

const (
	BetKindNonLive BetKind = iota
	BetKindLive
)

func (k BetKind) String() string {
	if k == BetKindLive {
		return "live"
	}
	return "non-live"
}

// BetData is embedded in both pending and matched bets.
type BetData struct {
	UUID    uuid.UUID
	Better  string
	Stake   int64
	Odds    Odds
	Wincase Wincase
	Kind    BetKind
	Created int64 // block-time of creation, unix seconds
}

// PendingBetID is the store-local primary identifier of a pending bet.
type PendingBetID uint64

// PendingBet lives in the pending store until it is cancelled, matched
// away, or swept by a game cancel/expiry.
type PendingBet struct {
	ID     PendingBetID
	GameID uint64
	Market Market
	Data   BetData
}

// MatchedBetID is the store-local primary identifier of a matched bet.
type MatchedBetID uint64

// MatchedBet pairs two opposing pending bets that the matcher locked
// against each other.
type MatchedBet struct {
	ID        MatchedBetID
	GameID    uint64
	Market    Market
	Bet1      BetData
	Bet2      BetData
}
