package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// minOdds mirrors config.Defaults().MinOdds: a fraction below one whose
// inverse becomes the effective upper bound of the allowed odds range.
var minOdds = Rational{Num: 1, Den: 1000}

func TestNewOddsRejectsBadShape(t *testing.T) {
	_, err := NewOdds(3, 0, minOdds)
	assert.Error(t, err)

	_, err = NewOdds(2, 2, minOdds)
	assert.Error(t, err)

	_, err = NewOdds(1, 2, minOdds)
	assert.Error(t, err)
}

func TestNewOddsRejectsAboveUpperBound(t *testing.T) {
	maxOdds := minOdds.Invert() // 1000/1
	_, err := NewOdds(maxOdds.Num+1, maxOdds.Den, minOdds)
	assert.Error(t, err)
}

func TestNewOddsAcceptsWithinRange(t *testing.T) {
	o, err := NewOdds(3, 2, minOdds)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), o.Num)

	maxOdds := minOdds.Invert()
	o, err = NewOdds(maxOdds.Num, maxOdds.Den, minOdds)
	assert.NoError(t, err)
	assert.True(t, o.Rational().Equal(maxOdds))
}

func TestOddsEqual(t *testing.T) {
	a := Odds{Num: 3, Den: 2}
	b := Odds{Num: 6, Den: 4}
	assert.True(t, a.Equal(b))
}
