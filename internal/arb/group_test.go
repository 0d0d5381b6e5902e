package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByExpiration(t *testing.T) {
	later := expiryDate.AddDate(0, 1, 0)

	near105 := filteredStrike(t, 105, 3.00, 3.25, 4.00, 4.25)
	near100 := filteredStrike(t, 100, 6.00, 6.25, 2.00, 2.25)
	far100 := filteredStrike(t, 100, 7.00, 7.30, 3.00, 3.30)
	far100.Expiration = later
	qqq100 := filteredStrike(t, 100, 5.00, 5.25, 2.50, 2.75)
	qqq100.Symbol = "QQQ"

	groups := GroupByExpiration([]FilteredStrike{near105, far100, qqq100, near100})
	require.Len(t, groups, 3)

	// (date, symbol, expiration) ascending
	assert.Equal(t, "QQQ", groups[0].Symbol)
	assert.Equal(t, "SPY", groups[1].Symbol)
	assert.Equal(t, expiryDate, groups[1].Expiration)
	assert.Equal(t, later, groups[2].Expiration)

	// strikes within a group sorted ascending
	require.Len(t, groups[1].Strikes, 2)
	assert.Equal(t, 100.0, groups[1].Strikes[0].Strike)
	assert.Equal(t, 105.0, groups[1].Strikes[1].Strike)
}

func TestGroupByExpirationEmpty(t *testing.T) {
	assert.Empty(t, GroupByExpiration(nil))
}
