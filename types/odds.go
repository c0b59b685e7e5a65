package types

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Odds is the exact rational price a bet side was offered at: numerator
// over denominator, with numerator strictly greater than denominator.
type Odds struct {
	Num int64
	Den int64
}

// NewOdds validates num > den > 0 and that num/den falls within
// [minOdds, 1/minOdds].
func NewOdds(num, den int64, minOdds Rational) (Odds, error) {
	if den <= 0 {
		return Odds{}, errors.New("odds: denominator must be positive")
	}
	if num <= den {
		return Odds{}, errors.New("odds: numerator must be greater than denominator")
	}
	o := Odds{Num: num, Den: den}
	if !o.withinRange(minOdds) {
		return Odds{}, errors.New("odds: out of allowed range")
	}
	return o, nil
}

func (o Odds) withinRange(minOdds Rational) bool {
	r := Rational{Num: o.Num, Den: o.Den}
	maxOdds := minOdds.Invert()
	// r must lie in [minOdds, maxOdds].
	if r.Less(minOdds) {
		return false
	}
	if maxOdds.Less(r) {
		return false
	}
	return true
}

// Equal reports whether two odds represent the same price.
func (o Odds) Equal(other Odds) bool {
	return Rational{o.Num, o.Den}.Equal(Rational{other.Num, other.Den})
}

// Rational views the odds as a plain fraction.
func (o Odds) Rational() Rational {
	return Rational{Num: o.Num, Den: o.Den}
}

// Decimal converts the exact fraction to a fixed-point decimal for display
// and logging purposes only; it is never used to drive stored arithmetic.
func (o Odds) Decimal() decimal.Decimal {
	if o.Den == 0 {
		return decimal.Zero
	}
	return decimal.New(o.Num, 0).DivRound(decimal.New(o.Den, 0), 8)
}
