// Package eventsink is the virtual-operation sink external collaborator:
// the service pushes a trail of typed events describing every financial
// mutation, and how the host pickles them to the block's side-channel is
// out of scope. Grounded on the []*types.ReceiptLog accumulation idiom in
// gamedb.go/game.go (logs = append(logs, receiptLog)), generalized from
// "append to a receipt" to "append to an ordered sink".
package eventsink

import "github.com/scorum/betting/types"

// Sink receives virtual operations in the exact order they are produced,
// preserving the within-transaction ordering guarantee.
type Sink interface {
	EmitBetCancelled(types.BetCancelled)
	EmitBetRestored(types.BetRestored)
	EmitGameStatusChanged(types.GameStatusChanged)
}

// Log is an in-memory ordered recorder used by tests and by any embedding
// host that wants the emitted sequence without wiring a real block
// side-channel.
type Log struct {
	BetCancelled      []types.BetCancelled
	BetRestored       []types.BetRestored
	GameStatusChanged []types.GameStatusChanged
	// Order records the interleaved sequence of the above, as opaque
	// (kind, index) markers, so tests can assert the exact emission
	// order across event types within one transaction.
	Order []EventRef
}

// EventRef names one recorded event by kind and its index into the
// matching typed slice above.
type EventRef struct {
	Kind  string
	Index int
}

// NewLog constructs an empty recorder.
func NewLog() *Log {
	return &Log{}
}

func (l *Log) EmitBetCancelled(evt types.BetCancelled) {
	l.Order = append(l.Order, EventRef{Kind: "BetCancelled", Index: len(l.BetCancelled)})
	l.BetCancelled = append(l.BetCancelled, evt)
}

func (l *Log) EmitBetRestored(evt types.BetRestored) {
	l.Order = append(l.Order, EventRef{Kind: "BetRestored", Index: len(l.BetRestored)})
	l.BetRestored = append(l.BetRestored, evt)
}

func (l *Log) EmitGameStatusChanged(evt types.GameStatusChanged) {
	l.Order = append(l.Order, EventRef{Kind: "GameStatusChanged", Index: len(l.GameStatusChanged)})
	l.GameStatusChanged = append(l.GameStatusChanged, evt)
}

// Reset clears the recorded event trail; useful between test cases sharing
// one Log instance.
func (l *Log) Reset() {
	l.BetCancelled = nil
	l.BetRestored = nil
	l.GameStatusChanged = nil
	l.Order = nil
}
