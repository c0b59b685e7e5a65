package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rational is an exact fraction used for odds and for threshold lines
// (handicap, total). No floating point ever reaches persistent state.
type Rational struct {
	Num int64
	Den int64
}

// NewRational builds a Rational, rejecting a non-positive denominator.
func NewRational(num, den int64) (Rational, error) {
	if den <= 0 {
		return Rational{}, fmt.Errorf("rational: denominator must be positive, got %d", den)
	}
	return Rational{Num: num, Den: den}, nil
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Normalize reduces the fraction to lowest terms with a positive denominator.
func (r Rational) Normalize() Rational {
	if r.Den < 0 {
		r.Num, r.Den = -r.Num, -r.Den
	}
	if r.Num == 0 {
		return Rational{0, 1}
	}
	if g := gcd(r.Num, r.Den); g > 1 {
		r.Num /= g
		r.Den /= g
	}
	return r
}

// Less reports whether r < other, via cross-multiplication (no float, no
// division, both denominators are required to be positive by construction).
func (r Rational) Less(other Rational) bool {
	return r.Num*other.Den < other.Num*r.Den
}

// Equal reports whether r == other as fractions (not as raw num/den pairs).
func (r Rational) Equal(other Rational) bool {
	return r.Num*other.Den == other.Num*r.Den
}

// Compare returns -1, 0, or 1 as r is less than, equal to, or greater than other.
func (r Rational) Compare(other Rational) int {
	if r.Equal(other) {
		return 0
	}
	if r.Less(other) {
		return -1
	}
	return 1
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Invert returns 1/r.
func (r Rational) Invert() Rational {
	return Rational{Num: r.Den, Den: r.Num}
}

// Decimal converts the exact fraction to a fixed-point decimal, used only
// to build order-preserving secondary-index keys and for display; never
// used to drive stored arithmetic.
func (r Rational) Decimal() decimal.Decimal {
	if r.Den == 0 {
		return decimal.Zero
	}
	return decimal.New(r.Num, 0).DivRound(decimal.New(r.Den, 0), 8)
}
