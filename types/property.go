package types

// BettingProperty is the singleton holding the current moderator account.
type BettingProperty struct {
	Moderator string
}

// BettingStats is the betting-related sub-record of the global dynamic
// properties object: running totals that must always reconcile with the
// sum of live stakes.
type BettingStats struct {
	PendingBetsVolume int64
	MatchedBetsVolume int64
}
