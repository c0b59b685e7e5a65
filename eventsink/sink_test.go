package eventsink_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/scorum/betting/eventsink"
	"github.com/scorum/betting/types"
)

func TestLogRecordsInterleavedOrder(t *testing.T) {
	l := eventsink.NewLog()
	game := uuid.New()

	l.EmitBetCancelled(types.BetCancelled{GameUUID: game, Better: "alice", Stake: 100})
	l.EmitBetRestored(types.BetRestored{GameUUID: game, Better: "bob", Stake: 50})
	l.EmitBetCancelled(types.BetCancelled{GameUUID: game, Better: "carl", Stake: 25})

	assert.Len(t, l.BetCancelled, 2)
	assert.Len(t, l.BetRestored, 1)
	assert.Equal(t, []eventsink.EventRef{
		{Kind: "BetCancelled", Index: 0},
		{Kind: "BetRestored", Index: 0},
		{Kind: "BetCancelled", Index: 1},
	}, l.Order)
}

func TestLogReset(t *testing.T) {
	l := eventsink.NewLog()
	l.EmitGameStatusChanged(types.GameStatusChanged{})
	l.Reset()
	assert.Empty(t, l.GameStatusChanged)
	assert.Empty(t, l.Order)
}
