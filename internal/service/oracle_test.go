package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPriceOracle_OneToOne(t *testing.T) {
	oracle := NewOneToOneOracle()

	quoted, err := oracle.Quote(context.Background(), decimal.RequireFromString("29.00"))
	require.NoError(t, err)
	assert.True(t, quoted.Equal(decimal.RequireFromString("29.00")))
}

func TestStaticPriceOracle_AppliesRate(t *testing.T) {
	oracle := NewStaticPriceOracle(decimal.RequireFromString("0.5"))

	quoted, err := oracle.Quote(context.Background(), decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	assert.True(t, quoted.Equal(decimal.RequireFromString("5.00")))
}

func TestStaticPriceOracle_ZeroAmount(t *testing.T) {
	oracle := NewOneToOneOracle()

	quoted, err := oracle.Quote(context.Background(), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, quoted.IsZero())
}
