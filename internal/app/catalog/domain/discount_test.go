package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func mustDiscount(t *testing.T, kind DiscountKind, value string, start, end *time.Time, active bool) *Discount {
	t.Helper()
	d, err := NewDiscount(kind, decimal.RequireFromString(value), start, end, active)
	require.NoError(t, err)
	return d
}

func TestNewDiscount(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	t.Run("valid percentage discount", func(t *testing.T) {
		d, err := NewDiscount(DiscountPercentage, decimal.NewFromInt(20), &start, &end, true)
		require.NoError(t, err)
		assert.Equal(t, DiscountPercentage, d.Kind())
		assert.True(t, d.Value().Equal(decimal.NewFromInt(20)))
	})

	t.Run("open-ended bounds are allowed", func(t *testing.T) {
		d, err := NewDiscount(DiscountFixed, decimal.NewFromInt(3), nil, nil, true)
		require.NoError(t, err)
		assert.Nil(t, d.StartsAt())
		assert.Nil(t, d.EndsAt())
	})

	t.Run("negative value returns validation error", func(t *testing.T) {
		_, err := NewDiscount(DiscountFixed, decimal.NewFromInt(-1), nil, nil, true)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, FieldDiscountValue, vErr.Field)
	})

	t.Run("percentage above 100 returns error", func(t *testing.T) {
		_, err := NewDiscount(DiscountPercentage, decimal.NewFromInt(101), nil, nil, true)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("fixed above 100 is fine", func(t *testing.T) {
		_, err := NewDiscount(DiscountFixed, decimal.NewFromInt(150), nil, nil, true)
		assert.NoError(t, err)
	})

	t.Run("end before start returns error", func(t *testing.T) {
		_, err := NewDiscount(DiscountPercentage, decimal.NewFromInt(10), &end, &start, true)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, FieldDiscountWindow, vErr.Field)
	})

	t.Run("unknown kind returns error", func(t *testing.T) {
		_, err := NewDiscount("bogo", decimal.NewFromInt(10), nil, nil, true)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("bounds normalised to UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		local := time.Date(2025, 1, 1, 2, 0, 0, 0, loc)
		d, err := NewDiscount(DiscountFixed, decimal.NewFromInt(1), &local, nil, true)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, d.StartsAt().Location())
		assert.True(t, d.StartsAt().Equal(start))
	})
}

func TestDiscount_QualifiesAt(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	d := mustDiscount(t, DiscountPercentage, "20", &start, &end, true)

	t.Run("valid during period", func(t *testing.T) {
		assert.True(t, d.QualifiesAt(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("invalid before start", func(t *testing.T) {
		assert.False(t, d.QualifiesAt(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)))
	})

	t.Run("invalid after end", func(t *testing.T) {
		assert.False(t, d.QualifiesAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		assert.True(t, d.QualifiesAt(start))
		assert.True(t, d.QualifiesAt(end))
	})

	t.Run("inactive never qualifies", func(t *testing.T) {
		off := mustDiscount(t, DiscountPercentage, "20", nil, nil, false)
		assert.False(t, off.QualifiesAt(start))
	})

	t.Run("open start qualifies before end", func(t *testing.T) {
		openStart := mustDiscount(t, DiscountFixed, "1", nil, &end, true)
		assert.True(t, openStart.QualifiesAt(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.False(t, openStart.QualifiesAt(end.Add(time.Second)))
	})

	t.Run("open end qualifies after start", func(t *testing.T) {
		openEnd := mustDiscount(t, DiscountFixed, "1", &start, nil, true)
		assert.True(t, openEnd.QualifiesAt(time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.False(t, openEnd.QualifiesAt(start.Add(-time.Second)))
	})
}

func TestDiscount_Apply(t *testing.T) {
	ten := MustMoney(10, 1)

	t.Run("percentage", func(t *testing.T) {
		d := mustDiscount(t, DiscountPercentage, "20", nil, nil, true)
		assert.Equal(t, 8.0, d.Apply(ten).Float64())
	})

	t.Run("fractional percentage", func(t *testing.T) {
		d := mustDiscount(t, DiscountPercentage, "12.5", nil, nil, true)
		assert.True(t, d.Apply(ten).Equals(MustMoney(875, 100)))
	})

	t.Run("fixed", func(t *testing.T) {
		d := mustDiscount(t, DiscountFixed, "3", nil, nil, true)
		assert.Equal(t, 7.0, d.Apply(ten).Float64())
	})

	t.Run("fixed larger than price clamps to zero", func(t *testing.T) {
		d := mustDiscount(t, DiscountFixed, "15", nil, nil, true)
		assert.True(t, d.Apply(ten).IsZero())
	})

	t.Run("hundred percent is free", func(t *testing.T) {
		d := mustDiscount(t, DiscountPercentage, "100", nil, nil, true)
		assert.True(t, d.Apply(ten).IsZero())
	})
}
