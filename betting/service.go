// Package betting is the betting service: the state machine governing
// the lifecycle of pending and matched bets, the transactional coupling
// between bet storage and account balances, and the cancellation
// semantics they must obey. Grounded on
// plugin/dapp/game/executor's Action methods (GameCreate/GameCancel/...),
// generalized from a single rock-paper-scissors game record to the
// pending/matched bet stores.
package betting

import (
	"github.com/google/uuid"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"

	"github.com/scorum/betting/account"
	"github.com/scorum/betting/config"
	"github.com/scorum/betting/eventsink"
	"github.com/scorum/betting/kv"
	"github.com/scorum/betting/store"
	"github.com/scorum/betting/types"
)

var blog = log.New("module", "betting.service")

// Service is the betting core's public contract.
type Service struct {
	store *store.BetStore
	acc   *account.DB
	sink  eventsink.Sink
	cfg   config.Parameters
}

// New builds a betting service over its collaborators.
func New(st *store.BetStore, acc *account.DB, sink eventsink.Sink, cfg config.Parameters) *Service {
	return &Service{store: st, acc: acc, sink: sink, cfg: cfg}
}

// IsModerator reports whether account equals the current moderator held in
// the singleton property.
func (s *Service) IsModerator(account string) (bool, error) {
	p, err := s.store.GetBettingProperty()
	if err != nil {
		return false, errors.Wrap(err, "IsModerator: load betting property")
	}
	return p.Moderator == account, nil
}

// SetModerator overwrites the moderator singleton; called during genesis
// setup or by whatever out-of-scope governance operation rotates it.
func (s *Service) SetModerator(account string) error {
	return s.store.SetBettingProperty(types.BettingProperty{Moderator: account})
}

// findCoalesceTarget implements the lookup both create_pending_bet's
// coalescing invariant and restore_bet require: a pending bet in the
// same game, by the same better, with the same created/odds/kind and an
// equal wincase (equal meaning neither wincase compares less than the
// other), if one already exists.
func (s *Service) findCoalesceTarget(gameID uint64, better string, wincase types.Wincase, odds types.Odds, kind types.BetKind, created int64) (types.PendingBet, bool, error) {
	candidates, err := s.store.PendingBetsByGameAndBetter(gameID, better)
	if err != nil {
		return types.PendingBet{}, false, err
	}
	for _, pb := range candidates {
		if pb.Data.Created == created &&
			pb.Data.Kind == kind &&
			pb.Data.Odds.Equal(odds) &&
			types.WincaseEqual(pb.Data.Wincase, wincase) {
			return pb, true, nil
		}
	}
	return types.PendingBet{}, false, nil
}

// CreatePendingBet implements create_pending_bet. Effects, in
// order: record the uuid in history; create (or coalesce into) a pending
// bet; increase pending_bets_volume; debit the better. Every precondition
// is checked before any effect runs, so a rejected call mutates nothing.
func (s *Service) CreatePendingBet(gameID uint64, better string, stake int64, odds types.Odds, wincase types.Wincase, betUUID uuid.UUID, kind types.BetKind, created int64) (types.PendingBet, error) {
	game, err := s.store.GetGame(gameID)
	if err == kv.ErrNotFound {
		return types.PendingBet{}, types.ErrUnknownGame
	}
	if err != nil {
		return types.PendingBet{}, errors.Wrap(err, "CreatePendingBet: load game")
	}
	if !game.AcceptsBets() {
		return types.PendingBet{}, errors.Wrapf(types.ErrInvalidGameState, "game %s status %s", game.UUID, game.Status)
	}
	seen, err := s.store.SeenUUID(betUUID)
	if err != nil {
		return types.PendingBet{}, errors.Wrap(err, "CreatePendingBet: check uuid history")
	}
	if seen {
		return types.PendingBet{}, errors.Wrapf(types.ErrDuplicateUUID, "uuid %s", betUUID)
	}
	balance, err := s.acc.Balance(better)
	if err != nil {
		return types.PendingBet{}, errors.Wrap(err, "CreatePendingBet: load balance")
	}
	if balance < stake {
		blog.Error("CreatePendingBet", "better", better, "balance", balance, "stake", stake)
		return types.PendingBet{}, errors.Wrapf(types.ErrInsufficientFunds, "better %s: balance %d < stake %d", better, balance, stake)
	}

	if err := s.store.RecordUUID(betUUID); err != nil {
		return types.PendingBet{}, errors.Wrap(err, "CreatePendingBet: record uuid")
	}

	target, found, err := s.findCoalesceTarget(gameID, better, wincase, odds, kind, created)
	if err != nil {
		return types.PendingBet{}, errors.Wrap(err, "CreatePendingBet: coalesce lookup")
	}
	var pb types.PendingBet
	if found {
		target.Data.Stake += stake
		if err := s.store.UpdatePendingBet(target); err != nil {
			return types.PendingBet{}, errors.Wrap(err, "CreatePendingBet: coalesce update")
		}
		pb = target
	} else {
		data := types.BetData{
			UUID: betUUID, Better: better, Stake: stake, Odds: odds,
			Wincase: wincase, Kind: kind, Created: created,
		}
		pb, err = s.store.CreatePendingBet(gameID, data)
		if err != nil {
			return types.PendingBet{}, errors.Wrap(err, "CreatePendingBet: create")
		}
	}

	if err := s.store.AddPendingVolume(stake); err != nil {
		return types.PendingBet{}, errors.Wrap(err, "CreatePendingBet: adjust volume")
	}
	if err := s.acc.DecreaseBalance(better, stake); err != nil {
		return types.PendingBet{}, errors.Wrap(err, "CreatePendingBet: debit")
	}
	blog.Debug("CreatePendingBet", "better", better, "game", gameID, "uuid", betUUID, "stake", stake)
	return pb, nil
}

// cancelPendingBet is the shared body of both cancel_pending_bet
// overloads: credit the stake, emit BetCancelled{pending}, decrement
// pending_bets_volume, remove the record.
func (s *Service) cancelPendingBet(pb types.PendingBet, gameUUID uuid.UUID) error {
	if err := s.acc.IncreaseBalance(pb.Data.Better, pb.Data.Stake); err != nil {
		return errors.Wrap(err, "cancelPendingBet: credit")
	}
	s.sink.EmitBetCancelled(types.BetCancelled{
		GameUUID: gameUUID, Better: pb.Data.Better, BetUUID: pb.Data.UUID,
		Stake: pb.Data.Stake, Kind: types.BetCancelledPending,
	})
	if err := s.store.AddPendingVolume(-pb.Data.Stake); err != nil {
		return errors.Wrap(err, "cancelPendingBet: adjust volume")
	}
	if err := s.store.RemovePendingBet(pb); err != nil {
		return errors.Wrap(err, "cancelPendingBet: remove")
	}
	blog.Debug("cancelPendingBet", "better", pb.Data.Better, "uuid", pb.Data.UUID, "stake", pb.Data.Stake)
	return nil
}

// CancelPendingBetByID is the by-id overload of cancel_pending_bet.
func (s *Service) CancelPendingBetByID(id types.PendingBetID) error {
	pb, err := s.store.GetPendingBet(id)
	if err == kv.ErrNotFound {
		return types.ErrUnknownBet
	}
	if err != nil {
		return errors.Wrap(err, "CancelPendingBetByID: load")
	}
	game, err := s.store.GetGame(pb.GameID)
	if err != nil {
		return errors.Wrap(err, "CancelPendingBetByID: load game")
	}
	return s.cancelPendingBet(pb, game.UUID)
}

// CancelPendingBet is the by-object overload of cancel_pending_bet, used by
// callers (cancel_bets and its variants) that already hold both the bet
// and its game's uuid.
func (s *Service) CancelPendingBet(pb types.PendingBet, gameUUID uuid.UUID) error {
	return s.cancelPendingBet(pb, gameUUID)
}

// returnBet is the internal helper backing cancellation: it credits a
// matched bet leg's stake back and emits BetCancelled{matched}.
func (s *Service) returnBet(leg types.BetData, gameUUID uuid.UUID) error {
	if err := s.acc.IncreaseBalance(leg.Better, leg.Stake); err != nil {
		return errors.Wrap(err, "returnBet: credit")
	}
	s.sink.EmitBetCancelled(types.BetCancelled{
		GameUUID: gameUUID, Better: leg.Better, BetUUID: leg.UUID,
		Stake: leg.Stake, Kind: types.BetCancelledMatched,
	})
	if err := s.store.AddMatchedVolume(-leg.Stake); err != nil {
		return errors.Wrap(err, "returnBet: adjust volume")
	}
	blog.Debug("returnBet", "better", leg.Better, "uuid", leg.UUID, "stake", leg.Stake)
	return nil
}

// restorePendingBet is the internal helper backing time-partitioned
// cancellation: it moves a matched bet leg back into the pending book,
// coalescing into an existing
// semantically-identical pending bet when one exists. The account balance
// is untouched — the stake was already held when the bet was matched.
func (s *Service) restorePendingBet(gameID uint64, gameUUID uuid.UUID, leg types.BetData) error {
	target, found, err := s.findCoalesceTarget(gameID, leg.Better, leg.Wincase, leg.Odds, leg.Kind, leg.Created)
	if err != nil {
		return errors.Wrap(err, "restorePendingBet: coalesce lookup")
	}
	if found {
		target.Data.Stake += leg.Stake
		if err := s.store.UpdatePendingBet(target); err != nil {
			return errors.Wrap(err, "restorePendingBet: coalesce update")
		}
	} else {
		if _, err := s.store.CreatePendingBet(gameID, leg); err != nil {
			return errors.Wrap(err, "restorePendingBet: create")
		}
	}
	s.sink.EmitBetRestored(types.BetRestored{
		GameUUID: gameUUID, Better: leg.Better, BetUUID: leg.UUID, Stake: leg.Stake,
	})
	if err := s.store.AddPendingVolume(leg.Stake); err != nil {
		return errors.Wrap(err, "restorePendingBet: adjust pending volume")
	}
	if err := s.store.AddMatchedVolume(-leg.Stake); err != nil {
		return errors.Wrap(err, "restorePendingBet: adjust matched volume")
	}
	blog.Debug("restorePendingBet", "better", leg.Better, "uuid", leg.UUID, "stake", leg.Stake)
	return nil
}

// CancelMatchedBet implements cancel_matched_bet: return both legs,
// then remove the record.
func (s *Service) CancelMatchedBet(mb types.MatchedBet, gameUUID uuid.UUID) error {
	if err := s.returnBet(mb.Bet1, gameUUID); err != nil {
		return err
	}
	if err := s.returnBet(mb.Bet2, gameUUID); err != nil {
		return err
	}
	return errors.Wrap(s.store.RemoveMatchedBet(mb), "CancelMatchedBet: remove")
}

// CancelBets implements the unqualified cancel_bets(game_id): cancel
// every pending bet for the game, then every matched bet.
func (s *Service) CancelBets(gameID uint64) error {
	game, err := s.gameOrUnknown(gameID)
	if err != nil {
		return err
	}
	for _, id := range s.store.PendingBetIDsByGame(gameID) {
		pb, err := s.store.GetPendingBet(id)
		if err == kv.ErrNotFound {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "CancelBets: load pending")
		}
		if err := s.cancelPendingBet(pb, game.UUID); err != nil {
			return err
		}
	}
	for _, id := range s.store.MatchedBetIDsByGame(gameID) {
		mb, err := s.store.GetMatchedBet(id)
		if err == kv.ErrNotFound {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "CancelBets: load matched")
		}
		if err := s.CancelMatchedBet(mb, game.UUID); err != nil {
			return err
		}
	}
	return nil
}

// CancelBetsCreatedAfter implements the time-partitioned
// cancel_bets(game_id, created_after): every pending bet is refunded
// outright; every matched leg created at or after createdAfter is
// refunded, every leg created strictly before is restored to pending.
// Both legs of a matched bet are always processed, independently,
// before the matched record is removed — never an early return that
// could leave one leg unsettled.
func (s *Service) CancelBetsCreatedAfter(gameID uint64, createdAfter int64) error {
	game, err := s.gameOrUnknown(gameID)
	if err != nil {
		return err
	}
	for _, id := range s.store.PendingBetIDsByGame(gameID) {
		pb, err := s.store.GetPendingBet(id)
		if err == kv.ErrNotFound {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "CancelBetsCreatedAfter: load pending")
		}
		if err := s.cancelPendingBet(pb, game.UUID); err != nil {
			return err
		}
	}
	for _, id := range s.store.MatchedBetIDsByGame(gameID) {
		mb, err := s.store.GetMatchedBet(id)
		if err == kv.ErrNotFound {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "CancelBetsCreatedAfter: load matched")
		}
		if err := s.settleLeg(gameID, game.UUID, mb.Bet1, createdAfter); err != nil {
			return err
		}
		if err := s.settleLeg(gameID, game.UUID, mb.Bet2, createdAfter); err != nil {
			return err
		}
		if err := s.store.RemoveMatchedBet(mb); err != nil {
			return errors.Wrap(err, "CancelBetsCreatedAfter: remove matched")
		}
	}
	return nil
}

func (s *Service) settleLeg(gameID uint64, gameUUID uuid.UUID, leg types.BetData, createdAfter int64) error {
	if leg.Created >= createdAfter {
		return s.returnBet(leg, gameUUID)
	}
	return s.restorePendingBet(gameID, gameUUID, leg)
}

// CancelBetsInMarkets implements the market-partitioned
// cancel_bets(game_id, cancelled_markets): intersect the game's bets with
// the cancelled market set, then cancel every match — matched bets are
// always fully refunded, never re-queued.
func (s *Service) CancelBetsInMarkets(gameID uint64, markets map[types.Market]struct{}) error {
	game, err := s.gameOrUnknown(gameID)
	if err != nil {
		return err
	}
	pending, err := s.store.PendingBetsByGameAndMarkets(gameID, markets)
	if err != nil {
		return errors.Wrap(err, "CancelBetsInMarkets: select pending")
	}
	for _, pb := range pending {
		if err := s.cancelPendingBet(pb, game.UUID); err != nil {
			return err
		}
	}
	matched, err := s.store.MatchedBetsByGameAndMarkets(gameID, markets)
	if err != nil {
		return errors.Wrap(err, "CancelBetsInMarkets: select matched")
	}
	for _, mb := range matched {
		if err := s.CancelMatchedBet(mb, game.UUID); err != nil {
			return err
		}
	}
	return nil
}

// CancelPendingBetsForGame cancels every pending bet of a game (bulk
// variant of cancel_pending_bets over a pre-selected range).
func (s *Service) CancelPendingBetsForGame(gameID uint64) error {
	for _, id := range s.store.PendingBetIDsByGame(gameID) {
		if err := s.CancelPendingBetByID(id); err != nil && !errors.Is(err, types.ErrUnknownBet) {
			return err
		}
	}
	return nil
}

// CancelPendingBetsForGameAndKind cancels a game's pending bets of one
// kind only.
func (s *Service) CancelPendingBetsForGameAndKind(gameID uint64, kind types.BetKind) error {
	bets, err := s.store.PendingBetsByGameAndKind(gameID, kind)
	if err != nil {
		return errors.Wrap(err, "CancelPendingBetsForGameAndKind: select")
	}
	game, err := s.gameOrUnknown(gameID)
	if err != nil {
		return err
	}
	for _, pb := range bets {
		if err := s.cancelPendingBet(pb, game.UUID); err != nil {
			return err
		}
	}
	return nil
}

// CancelPendingBetsByIDs cancels an explicit, caller-supplied list of
// pending bets — the shape CancelPendingBetsEvaluator.Apply uses for its uuid
// list, after resolving each uuid to a store id.
func (s *Service) CancelPendingBetsByIDs(ids []types.PendingBetID) error {
	for _, id := range ids {
		if err := s.CancelPendingBetByID(id); err != nil {
			return err
		}
	}
	return nil
}

// CancelMatchedBetsForGame cancels every matched bet of a game.
func (s *Service) CancelMatchedBetsForGame(gameID uint64) error {
	game, err := s.gameOrUnknown(gameID)
	if err != nil {
		return err
	}
	for _, id := range s.store.MatchedBetIDsByGame(gameID) {
		mb, err := s.store.GetMatchedBet(id)
		if err == kv.ErrNotFound {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "CancelMatchedBetsForGame: load")
		}
		if err := s.CancelMatchedBet(mb, game.UUID); err != nil {
			return err
		}
	}
	return nil
}

// CancelGame implements cancel_game: it removes the game record, but
// only once neither the matched nor the pending store still carries a
// bet against it (fixing the original's matched-store-checked-twice bug
// by checking both stores).
func (s *Service) CancelGame(gameID uint64) error {
	has, err := s.store.HasBetsForGame(gameID)
	if err != nil {
		return errors.Wrap(err, "CancelGame: check bets")
	}
	if has {
		return errors.Wrapf(types.ErrGameHasBets, "game %d", gameID)
	}
	game, err := s.gameOrUnknown(gameID)
	if err != nil {
		return err
	}
	return errors.Wrap(s.store.RemoveGame(game), "CancelGame: remove")
}

func (s *Service) gameOrUnknown(gameID uint64) (types.Game, error) {
	game, err := s.store.GetGame(gameID)
	if err == kv.ErrNotFound {
		return types.Game{}, types.ErrUnknownGame
	}
	if err != nil {
		return types.Game{}, errors.Wrap(err, "load game")
	}
	return game, nil
}
