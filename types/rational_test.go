package types

import "testing"

import "github.com/stretchr/testify/assert"

func TestRationalNormalize(t *testing.T) {
	r := Rational{Num: 2, Den: 4}.Normalize()
	assert.Equal(t, Rational{Num: 1, Den: 2}, r)

	r = Rational{Num: -3, Den: -6}.Normalize()
	assert.Equal(t, Rational{Num: 1, Den: 2}, r)

	r = Rational{Num: 3, Den: -6}.Normalize()
	assert.Equal(t, Rational{Num: -1, Den: 2}, r)

	r = Rational{Num: 0, Den: 5}.Normalize()
	assert.Equal(t, Rational{Num: 0, Den: 1}, r)
}

func TestRationalCompare(t *testing.T) {
	assert.True(t, Rational{1, 2}.Less(Rational{2, 3}))
	assert.False(t, Rational{2, 3}.Less(Rational{1, 2}))
	assert.True(t, Rational{1, 2}.Equal(Rational{2, 4}))
	assert.Equal(t, 0, Rational{1, 2}.Compare(Rational{2, 4}))
	assert.Equal(t, -1, Rational{1, 3}.Compare(Rational{1, 2}))
	assert.Equal(t, 1, Rational{2, 3}.Compare(Rational{1, 2}))
}

func TestRationalInvert(t *testing.T) {
	assert.Equal(t, Rational{5, 2}, Rational{2, 5}.Invert())
}

func TestNewRationalRejectsNonPositiveDenominator(t *testing.T) {
	_, err := NewRational(1, 0)
	assert.Error(t, err)
	_, err = NewRational(1, -1)
	assert.Error(t, err)
}
