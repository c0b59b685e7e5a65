// Package config loads the governable numeric parameters the betting
// core validates against, mirroring common/config's tml.DecodeFile
// pattern and plugin/dapp/game/executor/gamedb.go's GetConfValue
// fallback-to-default idiom: a value absent from the file keeps its
// compiled-in default rather than failing the load.
package config

import (
	tml "github.com/BurntSushi/toml"

	"github.com/scorum/betting/types"
)

// Parameters are the numeric knobs the boundary validation rules and the
// store's range queries reference as configurable constants.
type Parameters struct {
	// MinBetStake is the smallest stake, in the native coin's smallest
	// unit, post_bet will accept.
	MinBetStake int64
	// MinOdds is the lower bound of the allowed odds range; the upper
	// bound is its inverse.
	MinOdds types.Rational
	// SCRPrecision is the number of smallest-unit digits the native coin
	// carries; stakes must be denominated at this precision.
	SCRPrecision int64
	// MaxBulkUUIDs caps the length of a single cancel_pending_bets uuid
	// list.
	MaxBulkUUIDs int
	// DefaultListCount and MaxListCount are page-size knobs in the style of
	// gamedb.go's ConfName_DefaultCount/ConfName_MaxCount; no store range
	// query in this module reads them.
	DefaultListCount int32
	MaxListCount     int32
}

// Defaults returns the compiled-in parameter values; used whenever a key
// is absent from the loaded file.
func Defaults() Parameters {
	return Parameters{
		MinBetStake: 1000, // 0.001 SCR at 6-digit precision
		// MinOdds is deliberately far below 1: every valid Odds already
		// has numerator > denominator (ratio > 1), so this bound is
		// satisfied automatically, and its real job is to set the
		// *upper* bound via NewOdds's Invert() (the
		// [MIN_ODDS, 1/MIN_ODDS] range) — matching
		// post_bet_operation::validate()'s SCORUM_MIN_ODDS.base()/
		// .inverted() pair.
		MinOdds:          types.Rational{Num: 1, Den: 1000},
		SCRPrecision:     6,
		MaxBulkUUIDs:     100,
		DefaultListCount: 20,
		MaxListCount:     100,
	}
}

// fileParameters mirrors Parameters field-for-field but with pointer/zero
// fields so tml.DecodeFile only overrides keys actually present in the
// file, matching GetConfValue's "absent falls back to default" behavior.
type fileParameters struct {
	MinBetStake      *int64
	MinOddsNum       *int64
	MinOddsDen       *int64
	SCRPrecision     *int64
	MaxBulkUUIDs     *int
	DefaultListCount *int32
	MaxListCount     *int32
}

// Load decodes path as TOML into Parameters, starting from Defaults and
// overriding only the keys present in the file.
func Load(path string) (Parameters, error) {
	p := Defaults()
	var f fileParameters
	if _, err := tml.DecodeFile(path, &f); err != nil {
		return Parameters{}, err
	}
	if f.MinBetStake != nil {
		p.MinBetStake = *f.MinBetStake
	}
	if f.MinOddsNum != nil && f.MinOddsDen != nil {
		p.MinOdds = types.Rational{Num: *f.MinOddsNum, Den: *f.MinOddsDen}
	}
	if f.SCRPrecision != nil {
		p.SCRPrecision = *f.SCRPrecision
	}
	if f.MaxBulkUUIDs != nil {
		p.MaxBulkUUIDs = *f.MaxBulkUUIDs
	}
	if f.DefaultListCount != nil {
		p.DefaultListCount = *f.DefaultListCount
	}
	if f.MaxListCount != nil {
		p.MaxListCount = *f.MaxListCount
	}
	return p, nil
}
