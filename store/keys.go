package store

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/scorum/betting/types"
)

// Key layout follows plugin/dapp/game/executor/gamedb.go's
// calcGameStatusIndexKey/Key() convention: "<collection>:<index-name>:
// <field>..." with fixed-width zero-padded numeric fields so a byte-order
// scan is also the field's natural order.

func zpad(id uint64) string {
	return fmt.Sprintf("%020d", id)
}

// zpadTime biases a unix-seconds timestamp so negative values (never
// expected in practice, but not ruled out by the type) still sort
// correctly against non-negative ones.
func zpadTime(t int64) string {
	return fmt.Sprintf("%020d", t+1<<62)
}

const (
	pendingByID          = "bet:pending:id:"
	pendingByGameMarket  = "bet:pending:game-market:"
	pendingByGameCreated = "bet:pending:game-created:"
	pendingByGameBetter  = "bet:pending:game-better:"
	pendingByGameKind    = "bet:pending:game-kind:"
	pendingByUUID        = "bet:pending:uuid:"

	matchedByID          = "bet:matched:id:"
	matchedByGameMarket  = "bet:matched:game-market:"
	matchedByGameCreated = "bet:matched:game-created:"

	uuidHistoryKey = "bet:uuid-history:"

	gameByID          = "game:id:"
	gameByUUID        = "game:uuid:"
	gameAutoResolveIx = "game:autoresolve:"

	propBettingKey = "prop:betting"
	propStatsKey   = "prop:stats"
)

func keyPendingByID(id types.PendingBetID) []byte {
	return []byte(pendingByID + zpad(uint64(id)))
}

// marketSortKey renders m so that byte-lexicographic order on the result
// agrees with types.CompareMarket, which the market-partitioned cancel's
// merge-style intersection relies on.
func marketSortKey(m types.Market) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%03d:", m.Kind)
	switch m.Kind {
	case types.KindHandicap, types.KindTotal:
		scaled := m.Threshold.Decimal().Shift(6).Add(decimal.New(1<<48, 0)).IntPart()
		fmt.Fprintf(&buf, "%020d", scaled)
	case types.KindCorrectScore:
		fmt.Fprintf(&buf, "%010d:%010d", int64(m.Home)+1<<30, int64(m.Away)+1<<30)
	}
	return buf.Bytes()
}

func keyPendingByGameMarket(gameID uint64, m types.Market, id types.PendingBetID) []byte {
	return append(append([]byte(fmt.Sprintf("%s%s:", pendingByGameMarket, zpad(gameID))), marketSortKey(m)...),
		[]byte(fmt.Sprintf(":%s", zpad(uint64(id))))...)
}

func prefixPendingByGameMarket(gameID uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:", pendingByGameMarket, zpad(gameID)))
}

func keyPendingByGameCreated(gameID uint64, created int64, id types.PendingBetID) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:%s", pendingByGameCreated, zpad(gameID), zpadTime(created), zpad(uint64(id))))
}

func prefixPendingByGame(gameID uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:", pendingByGameCreated, zpad(gameID)))
}

// betterSegment length-prefixes better so a variable-length, unescaped
// account name can never make one better's key range a byte-prefix of
// another's (e.g. "ali" against "ali:ce") the way bare colon-splicing
// would; account-name syntax is out of scope for this module, so the key
// encoding cannot assume better is colon-free.
func betterSegment(better string) string {
	return fmt.Sprintf("%010d:%s", len(better), better)
}

func keyPendingByGameBetter(gameID uint64, better string, id types.PendingBetID) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:%s", pendingByGameBetter, zpad(gameID), betterSegment(better), zpad(uint64(id))))
}

func prefixPendingByGameBetter(gameID uint64, better string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:", pendingByGameBetter, zpad(gameID), betterSegment(better)))
}

func keyPendingByGameKind(gameID uint64, kind types.BetKind, id types.PendingBetID) []byte {
	return []byte(fmt.Sprintf("%s%s:%d:%s", pendingByGameKind, zpad(gameID), kind, zpad(uint64(id))))
}

func prefixPendingByGameKind(gameID uint64, kind types.BetKind) []byte {
	return []byte(fmt.Sprintf("%s%s:%d:", pendingByGameKind, zpad(gameID), kind))
}

func keyPendingByUUID(u [16]byte) []byte {
	return []byte(pendingByUUID + fmt.Sprintf("%x", u))
}

func keyMatchedByID(id types.MatchedBetID) []byte {
	return []byte(matchedByID + zpad(uint64(id)))
}

func keyMatchedByGameMarket(gameID uint64, m types.Market, id types.MatchedBetID) []byte {
	return append(append([]byte(fmt.Sprintf("%s%s:", matchedByGameMarket, zpad(gameID))), marketSortKey(m)...),
		[]byte(fmt.Sprintf(":%s", zpad(uint64(id))))...)
}

func prefixMatchedByGameMarket(gameID uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:", matchedByGameMarket, zpad(gameID)))
}

// keyMatchedByGameCreated orders a game's matched bets by the first leg's
// creation time; used for generic listing, not by the time-partitioned
// cancel (which must inspect both legs individually).
func keyMatchedByGameCreated(gameID uint64, created int64, id types.MatchedBetID) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:%s", matchedByGameCreated, zpad(gameID), zpadTime(created), zpad(uint64(id))))
}

func prefixMatchedByGame(gameID uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:", matchedByGameCreated, zpad(gameID)))
}

func keyUUIDHistory(u [16]byte) []byte {
	return []byte(uuidHistoryKey + fmt.Sprintf("%x", u))
}

func keyGameByID(id uint64) []byte {
	return []byte(gameByID + zpad(id))
}

func keyGameByUUID(u [16]byte) []byte {
	return []byte(gameByUUID + fmt.Sprintf("%x", u))
}

func keyGameAutoResolve(autoResolveTime int64, id uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", gameAutoResolveIx, zpadTime(autoResolveTime), zpad(id)))
}

const seqPendingKey = "seq:pending"
const seqMatchedKey = "seq:matched"
const seqGameKey = "seq:game"
