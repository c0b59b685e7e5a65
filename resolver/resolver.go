// Package resolver is the auto-resolver task: a per-block pass that
// expires games whose auto-resolve deadline has elapsed. Grounded on
// database/block_tasks/process_bets_auto_resolving.cpp's per-block sweep
// and on chain33's block-task phase ordering (runs after user
// transactions apply).
package resolver

import (
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"

	"github.com/scorum/betting/betting"
	"github.com/scorum/betting/eventsink"
	"github.com/scorum/betting/store"
	"github.com/scorum/betting/types"
)

var rlog = log.New("module", "resolver.autoresolve")

// AutoResolver runs once per block, after transactions apply.
type AutoResolver struct {
	store   *store.BetStore
	service *betting.Service
	sink    eventsink.Sink
}

// New builds an auto-resolver over its collaborators.
func New(st *store.BetStore, service *betting.Service, sink eventsink.Sink) *AutoResolver {
	return &AutoResolver{store: st, service: service, sink: sink}
}

// Run expires every game whose auto-resolve deadline is at or before
// headBlockTime. Games are processed in the deterministic order
// GamesToAutoResolve returns; for each, in order: cancel_bets,
// cancel_game, then a GameStatusChanged{started, expired} event — matching
// the original's cancel_bets -> cancel_game -> push_virtual_operation
// sequence. The per-game sequence is atomic with respect to the caller's
// block-apply transaction.
func (r *AutoResolver) Run(headBlockTime int64) error {
	games, err := r.store.GamesToAutoResolve(headBlockTime)
	if err != nil {
		return errors.Wrap(err, "AutoResolver.Run: query")
	}
	for _, g := range games {
		if err := r.expire(g); err != nil {
			return errors.Wrapf(err, "AutoResolver.Run: expire game %s", g.UUID)
		}
	}
	return nil
}

func (r *AutoResolver) expire(g types.Game) error {
	if err := r.service.CancelBets(g.ID); err != nil {
		return errors.Wrap(err, "cancel bets")
	}
	if err := r.service.CancelGame(g.ID); err != nil {
		return errors.Wrap(err, "cancel game")
	}
	r.sink.EmitGameStatusChanged(types.GameStatusChanged{
		GameUUID:  g.UUID,
		OldStatus: types.GameStatusStarted,
		NewStatus: types.GameStatusExpired,
	})
	rlog.Debug("expire", "game", g.UUID)
	return nil
}
