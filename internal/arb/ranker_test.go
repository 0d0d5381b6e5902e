package arb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(date time.Time, k1, k2, profitBuy, profitSell float64) BoxCandidate {
	return BoxCandidate{
		Date:       date,
		Symbol:     "SPY",
		Expiration: expiryDate,
		K1:         k1,
		K2:         k2,
		PayoffPV:   k2 - k1,
		ProfitBuy:  profitBuy,
		ProfitSell: profitSell,
	}
}

func TestGate(t *testing.T) {
	cands := []BoxCandidate{
		candidate(quoteDate, 95, 100, 0.50, -1.00),  // buy side clears
		candidate(quoteDate, 100, 105, -1.00, 0.30), // sell side clears
		candidate(quoteDate, 105, 110, 0.10, 0.10),  // neither clears
		candidate(quoteDate, 110, 115, 0.25, -2.00), // exactly at threshold
	}

	kept := Gate(cands, 0.25)
	require.Len(t, kept, 3)
	assert.Equal(t, 95.0, kept[0].K1)
	assert.Equal(t, 100.0, kept[1].K1)
	assert.Equal(t, 110.0, kept[2].K1)

	assert.Len(t, Gate(cands, 0.0), 4)
	assert.Empty(t, Gate(cands, 10.0))
}

func TestSortByProfitDeterministic(t *testing.T) {
	day2 := quoteDate.AddDate(0, 0, 1)
	cands := []BoxCandidate{
		candidate(day2, 100, 110, 0.50, 0.10),
		candidate(quoteDate, 100, 105, 0.50, 0.40), // ties on buy profit, earlier date wins
		candidate(quoteDate, 95, 100, 1.25, 0.05),
		candidate(quoteDate, 100, 110, 0.50, 0.40), // ties again, wider K2 loses
	}

	buys := SortByBuyProfit(cands)
	require.Len(t, buys, 4)
	assert.Equal(t, 1.25, buys[0].ProfitBuy)
	assert.Equal(t, 105.0, buys[1].K2)
	assert.Equal(t, 110.0, buys[2].K2)
	assert.Equal(t, day2, buys[3].Date)

	sells := SortBySellProfit(cands)
	assert.Equal(t, 0.40, sells[0].ProfitSell)
	assert.Equal(t, 105.0, sells[0].K2)

	// input order untouched
	assert.Equal(t, day2, cands[0].Date)
}

func TestSummarizeByDate(t *testing.T) {
	day2 := quoteDate.AddDate(0, 0, 1)
	day3 := quoteDate.AddDate(0, 0, 2)
	cands := []BoxCandidate{
		candidate(day2, 100, 105, 0.30, 0.90),
		candidate(quoteDate, 95, 100, 0.50, -1.00),
		candidate(quoteDate, 100, 105, -0.25, 0.75),
		candidate(day3, 100, 105, -3.00, -2.00),
	}

	t.Run("full window", func(t *testing.T) {
		summaries := SummarizeByDate(cands, time.Time{}, time.Time{})
		require.Len(t, summaries, 3)

		assert.Equal(t, quoteDate, summaries[0].Date)
		assert.Equal(t, 2, summaries[0].NCandidates)
		assert.Equal(t, 0.75, summaries[0].MaxProfit)

		assert.Equal(t, day2, summaries[1].Date)
		assert.Equal(t, 0.90, summaries[1].MaxProfit)

		// max profit can be negative when no pair clears either side
		assert.Equal(t, day3, summaries[2].Date)
		assert.Equal(t, -2.00, summaries[2].MaxProfit)
	})

	t.Run("bounded window", func(t *testing.T) {
		summaries := SummarizeByDate(cands, day2, day2)
		require.Len(t, summaries, 1)
		assert.Equal(t, day2, summaries[0].Date)
		assert.Equal(t, 1, summaries[0].NCandidates)
	})

	t.Run("open-ended start", func(t *testing.T) {
		summaries := SummarizeByDate(cands, time.Time{}, day2)
		require.Len(t, summaries, 2)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SummarizeByDate(nil, time.Time{}, time.Time{}))
	})
}
