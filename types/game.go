package types

import "github.com/google/uuid"

// GameStatus is the lifecycle state of a scheduled game.
type GameStatus int32

const (
	GameStatusCreated GameStatus = iota
	GameStatusStarted
	GameStatusFinished
	GameStatusResolved
	GameStatusExpired
)

func (s GameStatus) String() string {
	switch s {
	case GameStatusCreated:
		return "created"
	case GameStatusStarted:
		return "started"
	case GameStatusFinished:
		return "finished"
	case GameStatusResolved:
		return "resolved"
	case GameStatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Game is a scheduled event with a lifecycle and a set of open markets.
type Game struct {
	ID              uint64
	UUID            uuid.UUID
	Status          GameStatus
	StartTime       int64
	AutoResolveTime int64
	Markets         []Market
	Results         []Wincase
}

// AcceptsBets reports whether the game's current status allows new bets to
// be posted against it.
func (g Game) AcceptsBets() bool {
	return g.Status == GameStatusCreated || g.Status == GameStatusStarted
}

// HasMarket reports whether m is one of the game's currently open markets.
func (g Game) HasMarket(m Market) bool {
	for _, gm := range g.Markets {
		if gm == m {
			return true
		}
	}
	return false
}
