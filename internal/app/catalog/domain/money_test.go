package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money creation", func(t *testing.T) {
		m, err := NewMoney(450, 100)
		require.NoError(t, err)
		assert.Equal(t, "4.50", m.String())
	})

	t.Run("zero denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, 0)
		assert.Error(t, err)
	})

	t.Run("negative denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	})

	t.Run("negative numerator allowed", func(t *testing.T) {
		m, err := NewMoney(-100, 1)
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("3.75")
	require.NoError(t, err)
	assert.True(t, m.Equals(MustMoney(375, 100)))

	_, err = ParseMoney("three")
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	ten := MustMoney(10, 1)
	three := MustMoney(3, 1)

	assert.Equal(t, 13.0, ten.Add(three).Float64())
	assert.Equal(t, 7.0, ten.Subtract(three).Float64())
	assert.True(t, three.Subtract(ten).ClampZero().IsZero())
	assert.True(t, three.LessThan(ten))
	assert.True(t, ten.GreaterThan(three))
}

func TestMoney_Decimal(t *testing.T) {
	third := MustMoney(1, 3)
	assert.True(t, third.Decimal().Equal(decimal.RequireFromString("0.33")))
	assert.Equal(t, 0.33, third.Float64())

	fromDecimal := NewMoneyFromDecimal(decimal.RequireFromString("12.5"))
	assert.True(t, fromDecimal.Equals(MustMoney(25, 2)))
}

func TestMoney_CopyIsIndependent(t *testing.T) {
	m := MustMoney(5, 1)
	c := m.Copy()
	r := c.Rat()
	r.SetInt64(99)
	assert.True(t, c.Equals(m))
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, int64(20), roundPercent(MustMoney(2, 1), MustMoney(10, 1)))
	assert.Equal(t, int64(33), roundPercent(MustMoney(1, 1), MustMoney(3, 1)))
	// 12.5 rounds up
	assert.Equal(t, int64(13), roundPercent(MustMoney(1, 1), MustMoney(8, 1)))
	assert.Equal(t, int64(67), roundPercent(MustMoney(2, 1), MustMoney(3, 1)))
}
