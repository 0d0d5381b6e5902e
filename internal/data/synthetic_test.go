package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/box-arb/internal/arb"
)

func TestSyntheticChainSource(t *testing.T) {
	date := time.Date(2020, time.March, 16, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2020, time.April, 17, 0, 0, 0, 0, time.UTC)

	t.Run("generates call and put quotes per strike", func(t *testing.T) {
		chain, err := NewSyntheticChainSource("SPY", date, expiry, 580, 11, 42).Chain(context.Background())
		require.NoError(t, err)
		require.Len(t, chain.Quotes, 22)

		calls, puts := 0, 0
		for _, q := range chain.Quotes {
			assert.Equal(t, "SPY", q.Symbol)
			assert.Equal(t, date, q.Date)
			assert.Equal(t, expiry, q.Expiration)
			assert.Greater(t, q.Strike, 0.0)
			assert.GreaterOrEqual(t, q.Bid, 0.0)
			assert.GreaterOrEqual(t, q.Ask, q.Bid)
			switch q.OptionType {
			case arb.Call:
				calls++
			case arb.Put:
				puts++
			}
		}
		assert.Equal(t, 11, calls)
		assert.Equal(t, 11, puts)
	})

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		a, err := NewSyntheticChainSource("SPY", date, expiry, 580, 41, 7).Chain(context.Background())
		require.NoError(t, err)
		b, err := NewSyntheticChainSource("SPY", date, expiry, 580, 41, 7).Chain(context.Background())
		require.NoError(t, err)
		assert.Equal(t, a.Quotes, b.Quotes)
	})

	t.Run("different seeds move the quotes", func(t *testing.T) {
		a, err := NewSyntheticChainSource("SPY", date, expiry, 580, 41, 1).Chain(context.Background())
		require.NoError(t, err)
		b, err := NewSyntheticChainSource("SPY", date, expiry, 580, 41, 2).Chain(context.Background())
		require.NoError(t, err)
		assert.NotEqual(t, a.Quotes, b.Quotes)
	})

	t.Run("feeds the scan pipeline end to end", func(t *testing.T) {
		chain, err := NewSyntheticChainSource("SPY", date, expiry, 580, 21, 42).Chain(context.Background())
		require.NoError(t, err)

		table := arb.BuildQuoteTable(chain.Quotes)
		require.NotEmpty(t, table.Quotes)

		liquid := arb.FilterQuotes(table.Quotes, 0.25)
		groups := arb.GroupByExpiration(liquid)
		require.Len(t, groups, 1)

		cands := arb.ScanGroups(groups, arb.ScanParams{
			Mode:             arb.ModeAdjacent,
			RiskFreeRate:     0.02,
			MaxStrikesPerExp: 250,
		}, 1)
		require.NotEmpty(t, cands)
		for _, c := range cands {
			assert.Less(t, c.K1, c.K2)
			// synthetic quotes straddle fair value, no free lunch expected
			assert.Less(t, c.ProfitBuy, 0.0)
			assert.Less(t, c.ProfitSell, 0.0)
		}
	})
}
