package evaluator

import (
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"

	"github.com/scorum/betting/account"
	"github.com/scorum/betting/betting"
	"github.com/scorum/betting/config"
	"github.com/scorum/betting/kv"
	"github.com/scorum/betting/store"
	"github.com/scorum/betting/types"
)

var elog = log.New("module", "evaluator.betting")

// collaborators bundles the pieces every evaluator needs: the store (for
// existence/ownership lookups, and for persisting changes to the game
// record itself — markets, start time, results; bet, balance and stats
// mutations all go through the service), the account ledger (existence
// checks), the service, and the loaded parameters.
type collaborators struct {
	store   *store.BetStore
	acc     *account.DB
	service *betting.Service
	cfg     config.Parameters
}

func (c *collaborators) requireAccount(name string) error {
	ok, err := c.acc.Exists(name)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(types.ErrUnknownBet, "unknown account %q", name)
	}
	return nil
}

func (c *collaborators) requireModerator(name string) error {
	isMod, err := c.service.IsModerator(name)
	if err != nil {
		return err
	}
	if !isMod {
		return errors.Wrapf(types.ErrNotModerator, "account %q", name)
	}
	return nil
}

func (c *collaborators) resolveGame(gameUUID [16]byte) (types.Game, error) {
	g, err := c.store.GetGameByUUID(gameUUID)
	if err == kv.ErrNotFound {
		return types.Game{}, errors.Wrapf(types.ErrUnknownGame, "uuid %x", gameUUID)
	}
	return g, err
}

// PostBetEvaluator dispatches post_bet to Service.CreatePendingBet.
type PostBetEvaluator struct {
	collaborators
}

// NewPostBetEvaluator builds the post_bet dispatcher.
func NewPostBetEvaluator(st *store.BetStore, acc *account.DB, svc *betting.Service, cfg config.Parameters) *PostBetEvaluator {
	return &PostBetEvaluator{collaborators{st, acc, svc, cfg}}
}

// Apply validates op against the game and stake/odds boundary rules and,
// if it passes, posts the bet at blockTime.
func (e *PostBetEvaluator) Apply(op PostBetOp, blockTime int64) (types.PendingBet, error) {
	if err := e.requireAccount(op.Better); err != nil {
		return types.PendingBet{}, err
	}
	if op.Stake < e.cfg.MinBetStake {
		return types.PendingBet{}, errors.Wrapf(types.ErrInvalidGameState, "stake %d below minimum %d", op.Stake, e.cfg.MinBetStake)
	}
	if _, err := types.NewOdds(op.Odds.Num, op.Odds.Den, e.cfg.MinOdds); err != nil {
		return types.PendingBet{}, errors.Wrap(err, "post_bet: odds")
	}
	game, err := e.resolveGame(op.GameUUID)
	if err != nil {
		return types.PendingBet{}, err
	}
	pb, err := e.service.CreatePendingBet(game.ID, op.Better, op.Stake, op.Odds, op.Wincase, op.BetUUID, op.Kind, blockTime)
	if err != nil {
		elog.Error("PostBetEvaluator.Apply", "better", op.Better, "game", op.GameUUID, "err", err)
		return types.PendingBet{}, err
	}
	return pb, nil
}

// CancelPendingBetsEvaluator dispatches cancel_pending_bets.
type CancelPendingBetsEvaluator struct {
	collaborators
}

// NewCancelPendingBetsEvaluator builds the cancel_pending_bets dispatcher.
func NewCancelPendingBetsEvaluator(st *store.BetStore, acc *account.DB, svc *betting.Service, cfg config.Parameters) *CancelPendingBetsEvaluator {
	return &CancelPendingBetsEvaluator{collaborators{st, acc, svc, cfg}}
}

// Apply checks, for every uuid in op.BetUUIDs, that it both exists and is
// owned by op.Better before cancelling any of them — an all-or-nothing
// pre-check, not a cancel-what-you-can loop.
func (e *CancelPendingBetsEvaluator) Apply(op CancelPendingBetsOp) error {
	if err := e.requireAccount(op.Better); err != nil {
		return err
	}
	if len(op.BetUUIDs) > e.cfg.MaxBulkUUIDs {
		return errors.Errorf("cancel_pending_bets: %d uuids exceeds max %d", len(op.BetUUIDs), e.cfg.MaxBulkUUIDs)
	}
	seen := make(map[[16]byte]struct{}, len(op.BetUUIDs))
	ids := make([]types.PendingBetID, 0, len(op.BetUUIDs))
	for _, u := range op.BetUUIDs {
		if _, dup := seen[u]; dup {
			return errors.Errorf("cancel_pending_bets: duplicate uuid %s", u)
		}
		seen[u] = struct{}{}
		pb, err := e.store.GetPendingBetByUUID(u)
		if err == kv.ErrNotFound {
			return errors.Wrapf(types.ErrUnknownBet, "uuid %s", u)
		}
		if err != nil {
			return err
		}
		if pb.Data.Better != op.Better {
			return errors.Wrapf(types.ErrUnknownBet, "uuid %s not owned by %q", u, op.Better)
		}
		ids = append(ids, pb.ID)
	}
	return e.service.CancelPendingBetsByIDs(ids)
}

// CancelGameEvaluator dispatches cancel_game.
type CancelGameEvaluator struct {
	collaborators
}

// NewCancelGameEvaluator builds the cancel_game dispatcher.
func NewCancelGameEvaluator(st *store.BetStore, acc *account.DB, svc *betting.Service, cfg config.Parameters) *CancelGameEvaluator {
	return &CancelGameEvaluator{collaborators{st, acc, svc, cfg}}
}

// Apply enforces moderator authority, then cancels every bet for the game
// before removing the game record.
func (e *CancelGameEvaluator) Apply(op CancelGameOp) error {
	if err := e.requireModerator(op.Moderator); err != nil {
		return err
	}
	game, err := e.resolveGame(op.GameUUID)
	if err != nil {
		return err
	}
	if err := e.service.CancelBets(game.ID); err != nil {
		return err
	}
	return e.service.CancelGame(game.ID)
}

// UpdateGameMarketsEvaluator dispatches update_game_markets.
type UpdateGameMarketsEvaluator struct {
	collaborators
}

// NewUpdateGameMarketsEvaluator builds the update_game_markets dispatcher.
func NewUpdateGameMarketsEvaluator(st *store.BetStore, acc *account.DB, svc *betting.Service, cfg config.Parameters) *UpdateGameMarketsEvaluator {
	return &UpdateGameMarketsEvaluator{collaborators{st, acc, svc, cfg}}
}

// Apply computes the set of markets removed by the update and cancels
// every bet that falls in it, then persists the new market list.
func (e *UpdateGameMarketsEvaluator) Apply(op UpdateGameMarketsOp) error {
	if err := e.requireModerator(op.Moderator); err != nil {
		return err
	}
	game, err := e.resolveGame(op.GameUUID)
	if err != nil {
		return err
	}
	// Thresholds are compared in lowest terms, the form MarketOf stores on
	// every bet, so set membership matches the bets' own markets.
	newSet := make(map[types.Market]struct{}, len(op.NewMarkets))
	for _, m := range op.NewMarkets {
		m.Threshold = m.Threshold.Normalize()
		newSet[m] = struct{}{}
	}
	removed := make(map[types.Market]struct{})
	for _, m := range game.Markets {
		m.Threshold = m.Threshold.Normalize()
		if _, kept := newSet[m]; !kept {
			removed[m] = struct{}{}
		}
	}
	if len(removed) > 0 {
		if err := e.service.CancelBetsInMarkets(game.ID, removed); err != nil {
			return err
		}
	}
	game.Markets = op.NewMarkets
	return e.store.UpdateGame(game)
}

// UpdateGameStartTimeEvaluator dispatches update_game_start_time.
type UpdateGameStartTimeEvaluator struct {
	collaborators
}

// NewUpdateGameStartTimeEvaluator builds the update_game_start_time
// dispatcher.
func NewUpdateGameStartTimeEvaluator(st *store.BetStore, acc *account.DB, svc *betting.Service, cfg config.Parameters) *UpdateGameStartTimeEvaluator {
	return &UpdateGameStartTimeEvaluator{collaborators{st, acc, svc, cfg}}
}

// Apply runs the time-partitioned cancel with the game's previous start
// time as the cut-off — every pending bet is refunded, matched legs
// created at or after the cut-off are refunded and earlier legs are
// restored to pending — then records the new start time.
func (e *UpdateGameStartTimeEvaluator) Apply(op UpdateGameStartTimeOp) error {
	if err := e.requireModerator(op.Moderator); err != nil {
		return err
	}
	game, err := e.resolveGame(op.GameUUID)
	if err != nil {
		return err
	}
	oldStart := game.StartTime
	if err := e.service.CancelBetsCreatedAfter(game.ID, oldStart); err != nil {
		return err
	}
	game.StartTime = op.NewStartTime
	return e.store.UpdateGame(game)
}

// PostGameResultsEvaluator dispatches post_game_results. Settlement
// itself is out of scope; this evaluator only persists the winning
// wincases the game resolved to.
type PostGameResultsEvaluator struct {
	collaborators
}

// NewPostGameResultsEvaluator builds the post_game_results dispatcher.
func NewPostGameResultsEvaluator(st *store.BetStore, acc *account.DB, svc *betting.Service, cfg config.Parameters) *PostGameResultsEvaluator {
	return &PostGameResultsEvaluator{collaborators{st, acc, svc, cfg}}
}

// Apply enforces moderator authority and persists op.WinningWincases as
// the game's results.
func (e *PostGameResultsEvaluator) Apply(op PostGameResultsOp) error {
	if err := e.requireModerator(op.Moderator); err != nil {
		return err
	}
	game, err := e.resolveGame(op.GameUUID)
	if err != nil {
		return err
	}
	if game.Status != types.GameStatusFinished && game.Status != types.GameStatusStarted {
		return errors.Wrapf(types.ErrInvalidGameState, "game %s status %s", game.UUID, game.Status)
	}
	game.Results = op.WinningWincases
	game.Status = types.GameStatusResolved
	return e.store.UpdateGame(game)
}
