package evaluator_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorum/betting/account"
	"github.com/scorum/betting/betting"
	"github.com/scorum/betting/config"
	"github.com/scorum/betting/eventsink"
	"github.com/scorum/betting/evaluator"
	"github.com/scorum/betting/kv"
	"github.com/scorum/betting/store"
	"github.com/scorum/betting/types"
)

type harness struct {
	store *store.BetStore
	acc   *account.DB
	svc   *betting.Service
	cfg   config.Parameters
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := kv.NewMemDB()
	st := store.New(db)
	acc := account.New(db)
	cfg := config.Defaults()
	svc := betting.New(st, acc, eventsink.NewLog(), cfg)
	return &harness{store: st, acc: acc, svc: svc, cfg: cfg}
}

func (h *harness) createGame(t *testing.T, markets ...types.Market) types.Game {
	t.Helper()
	g, err := h.store.CreateGame(types.Game{
		UUID: uuid.New(), Status: types.GameStatusStarted, StartTime: 1000, AutoResolveTime: 9999, Markets: markets,
	})
	require.NoError(t, err)
	return g
}

func TestPostBetEvaluatorApplyPostsBet(t *testing.T) {
	h := newHarness(t)
	game := h.createGame(t, types.Market{Kind: types.KindResultHome})
	require.NoError(t, h.acc.IncreaseBalance("alice", 5000))

	ev := evaluator.NewPostBetEvaluator(h.store, h.acc, h.svc, h.cfg)
	odds := types.Odds{Num: 3, Den: 2}
	pb, err := ev.Apply(evaluator.PostBetOp{
		Better: "alice", GameUUID: game.UUID, Odds: odds, Stake: 1000,
		Wincase: types.Wincase{Kind: types.KindResultHome, Yes: true}, BetUUID: uuid.New(),
	}, 1500)
	require.NoError(t, err)
	assert.Equal(t, "alice", pb.Data.Better)
}

func TestPostBetEvaluatorRejectsUnknownAccount(t *testing.T) {
	h := newHarness(t)
	game := h.createGame(t, types.Market{Kind: types.KindResultHome})

	ev := evaluator.NewPostBetEvaluator(h.store, h.acc, h.svc, h.cfg)
	_, err := ev.Apply(evaluator.PostBetOp{
		Better: "ghost", GameUUID: game.UUID, Odds: types.Odds{Num: 3, Den: 2}, Stake: 1000,
		Wincase: types.Wincase{Kind: types.KindResultHome, Yes: true}, BetUUID: uuid.New(),
	}, 1500)
	assert.Error(t, err)
}

func TestPostBetEvaluatorRejectsStakeBelowMinimum(t *testing.T) {
	h := newHarness(t)
	game := h.createGame(t, types.Market{Kind: types.KindResultHome})
	require.NoError(t, h.acc.IncreaseBalance("alice", 5000))

	ev := evaluator.NewPostBetEvaluator(h.store, h.acc, h.svc, h.cfg)
	_, err := ev.Apply(evaluator.PostBetOp{
		Better: "alice", GameUUID: game.UUID, Odds: types.Odds{Num: 3, Den: 2}, Stake: 1,
		Wincase: types.Wincase{Kind: types.KindResultHome, Yes: true}, BetUUID: uuid.New(),
	}, 1500)
	assert.ErrorIs(t, err, types.ErrInvalidGameState)
}

func TestCancelPendingBetsEvaluatorAllOrNothing(t *testing.T) {
	h := newHarness(t)
	game := h.createGame(t, types.Market{Kind: types.KindResultHome}, types.Market{Kind: types.KindResultAway})
	require.NoError(t, h.acc.IncreaseBalance("alice", 5000))
	require.NoError(t, h.acc.IncreaseBalance("bob", 5000))

	pb1, err := h.svc.CreatePendingBet(game.ID, "alice", 1000, types.Odds{Num: 3, Den: 2},
		types.Wincase{Kind: types.KindResultHome, Yes: true}, uuid.New(), types.BetKindNonLive, 1500)
	require.NoError(t, err)
	// Owned by bob, not alice.
	pb2, err := h.svc.CreatePendingBet(game.ID, "bob", 1000, types.Odds{Num: 3, Den: 2},
		types.Wincase{Kind: types.KindResultAway, Yes: true}, uuid.New(), types.BetKindNonLive, 1500)
	require.NoError(t, err)

	ev := evaluator.NewCancelPendingBetsEvaluator(h.store, h.acc, h.svc, h.cfg)
	err = ev.Apply(evaluator.CancelPendingBetsOp{
		Better:   "alice",
		BetUUIDs: []uuid.UUID{pb1.Data.UUID, pb2.Data.UUID},
	})
	assert.Error(t, err, "must reject the whole batch when one uuid is not owned by the caller")

	// Neither bet should have been cancelled.
	_, err = h.store.GetPendingBet(pb1.ID)
	assert.NoError(t, err)
	_, err = h.store.GetPendingBet(pb2.ID)
	assert.NoError(t, err)
}

func TestCancelPendingBetsEvaluatorRejectsUnknownUUID(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.acc.IncreaseBalance("alice", 5000))

	ev := evaluator.NewCancelPendingBetsEvaluator(h.store, h.acc, h.svc, h.cfg)
	err := ev.Apply(evaluator.CancelPendingBetsOp{Better: "alice", BetUUIDs: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, types.ErrUnknownBet)
}

func TestCancelPendingBetsEvaluatorCancelsOwnedBatch(t *testing.T) {
	h := newHarness(t)
	game := h.createGame(t, types.Market{Kind: types.KindResultHome})
	require.NoError(t, h.acc.IncreaseBalance("alice", 5000))

	pb1, err := h.svc.CreatePendingBet(game.ID, "alice", 1000, types.Odds{Num: 3, Den: 2},
		types.Wincase{Kind: types.KindResultHome, Yes: true}, uuid.New(), types.BetKindNonLive, 1500)
	require.NoError(t, err)
	pb2, err := h.svc.CreatePendingBet(game.ID, "alice", 500, types.Odds{Num: 5, Den: 2},
		types.Wincase{Kind: types.KindResultHome, Yes: false}, uuid.New(), types.BetKindNonLive, 1500)
	require.NoError(t, err)

	ev := evaluator.NewCancelPendingBetsEvaluator(h.store, h.acc, h.svc, h.cfg)
	err = ev.Apply(evaluator.CancelPendingBetsOp{
		Better:   "alice",
		BetUUIDs: []uuid.UUID{pb1.Data.UUID, pb2.Data.UUID},
	})
	require.NoError(t, err)

	_, err = h.store.GetPendingBet(pb1.ID)
	assert.Equal(t, kv.ErrNotFound, err)
	_, err = h.store.GetPendingBet(pb2.ID)
	assert.Equal(t, kv.ErrNotFound, err)
}

func TestCancelGameEvaluatorRequiresModerator(t *testing.T) {
	h := newHarness(t)
	game := h.createGame(t)
	require.NoError(t, h.svc.SetModerator("mod"))

	ev := evaluator.NewCancelGameEvaluator(h.store, h.acc, h.svc, h.cfg)
	err := ev.Apply(evaluator.CancelGameOp{Moderator: "notmod", GameUUID: game.UUID})
	assert.ErrorIs(t, err, types.ErrNotModerator)

	err = ev.Apply(evaluator.CancelGameOp{Moderator: "mod", GameUUID: game.UUID})
	require.NoError(t, err)

	_, err = h.store.GetGame(game.ID)
	assert.Equal(t, kv.ErrNotFound, err)
}

func TestUpdateGameMarketsEvaluatorCancelsOnlyRemovedMarkets(t *testing.T) {
	h := newHarness(t)
	homeMkt := types.Market{Kind: types.KindResultHome}
	awayMkt := types.Market{Kind: types.KindResultAway}
	game := h.createGame(t, homeMkt, awayMkt)
	require.NoError(t, h.svc.SetModerator("mod"))
	require.NoError(t, h.acc.IncreaseBalance("alice", 5000))
	require.NoError(t, h.acc.IncreaseBalance("bob", 5000))

	_, err := h.svc.CreatePendingBet(game.ID, "alice", 1000, types.Odds{Num: 3, Den: 2},
		types.Wincase{Kind: types.KindResultHome, Yes: true}, uuid.New(), types.BetKindNonLive, 1500)
	require.NoError(t, err)
	_, err = h.svc.CreatePendingBet(game.ID, "bob", 1000, types.Odds{Num: 3, Den: 2},
		types.Wincase{Kind: types.KindResultAway, Yes: true}, uuid.New(), types.BetKindNonLive, 1500)
	require.NoError(t, err)

	ev := evaluator.NewUpdateGameMarketsEvaluator(h.store, h.acc, h.svc, h.cfg)
	require.NoError(t, ev.Apply(evaluator.UpdateGameMarketsOp{
		Moderator: "mod", GameUUID: game.UUID, NewMarkets: []types.Market{awayMkt},
	}))

	pending, err := h.store.PendingBetsByGame(game.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "bob", pending[0].Data.Better)

	updated, err := h.store.GetGame(game.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.Market{awayMkt}, updated.Markets)
}

func TestUpdateGameStartTimeEvaluatorCancelsBetsAfterOldStart(t *testing.T) {
	h := newHarness(t)
	game := h.createGame(t, types.Market{Kind: types.KindResultHome})
	require.NoError(t, h.svc.SetModerator("mod"))
	require.NoError(t, h.acc.IncreaseBalance("alice", 5000))

	_, err := h.svc.CreatePendingBet(game.ID, "alice", 1000, types.Odds{Num: 3, Den: 2},
		types.Wincase{Kind: types.KindResultHome, Yes: true}, uuid.New(), types.BetKindNonLive, 1500)
	require.NoError(t, err)

	ev := evaluator.NewUpdateGameStartTimeEvaluator(h.store, h.acc, h.svc, h.cfg)
	require.NoError(t, ev.Apply(evaluator.UpdateGameStartTimeOp{
		Moderator: "mod", GameUUID: game.UUID, NewStartTime: 2000,
	}))

	pending, err := h.store.PendingBetsByGame(game.ID)
	require.NoError(t, err)
	assert.Empty(t, pending, "bet created after the old start time should be cancelled")

	balAlice, err := h.acc.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), balAlice)

	updated, err := h.store.GetGame(game.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), updated.StartTime)
}

func TestPostGameResultsEvaluatorPersistsResults(t *testing.T) {
	h := newHarness(t)
	game := h.createGame(t, types.Market{Kind: types.KindResultHome})
	require.NoError(t, h.svc.SetModerator("mod"))

	ev := evaluator.NewPostGameResultsEvaluator(h.store, h.acc, h.svc, h.cfg)
	results := []types.Wincase{{Kind: types.KindResultHome, Yes: true}}
	require.NoError(t, ev.Apply(evaluator.PostGameResultsOp{
		Moderator: "mod", GameUUID: game.UUID, WinningWincases: results,
	}))

	updated, err := h.store.GetGame(game.ID)
	require.NoError(t, err)
	assert.Equal(t, results, updated.Results)
	assert.Equal(t, types.GameStatusResolved, updated.Status)
}
