package volatility

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/box-arb/internal/data"
)

var day0 = time.Date(2020, time.February, 3, 0, 0, 0, 0, time.UTC)

// closes spaced one calendar day apart, weekends ignored for test purposes
func barSeries(closes ...float64) []data.Bar {
	bars := make([]data.Bar, len(closes))
	for i, c := range closes {
		bars[i] = data.Bar{Date: day0.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func TestNewAnalyzer(t *testing.T) {
	t.Run("computes log returns in date order", func(t *testing.T) {
		bars := barSeries(100, 110, 99)
		// shuffle, the analyzer must sort
		a, err := NewAnalyzer([]data.Bar{bars[2], bars[0], bars[1]})
		require.NoError(t, err)

		rets := a.LogReturns()
		require.Len(t, rets, 2)
		assert.InDelta(t, math.Log(1.10), rets[0], 1e-12)
		assert.InDelta(t, math.Log(99.0/110.0), rets[1], 1e-12)
		assert.Equal(t, day0, a.Bars()[0].Date)
	})

	t.Run("rejects short series", func(t *testing.T) {
		_, err := NewAnalyzer(barSeries(100))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive closes", func(t *testing.T) {
		_, err := NewAnalyzer(barSeries(100, 0, 102))
		assert.Error(t, err)
	})
}

func TestRolling(t *testing.T) {
	t.Run("constant growth has zero volatility", func(t *testing.T) {
		a, err := NewAnalyzer(barSeries(100, 101, 102.01, 103.0301, 104.060401))
		require.NoError(t, err)

		points, err := a.Rolling(3)
		require.NoError(t, err)
		require.Len(t, points, 2)
		for _, p := range points {
			assert.InDelta(t, 0, p.Vol, 1e-9)
		}
	})

	t.Run("observations align with the bar ending the window", func(t *testing.T) {
		a, err := NewAnalyzer(barSeries(100, 102, 99, 104, 101))
		require.NoError(t, err)

		points, err := a.Rolling(2)
		require.NoError(t, err)
		require.Len(t, points, 3)
		assert.Equal(t, day0.AddDate(0, 0, 2), points[0].Date)
		assert.Equal(t, day0.AddDate(0, 0, 4), points[2].Date)
		for _, p := range points {
			assert.Greater(t, p.Vol, 0.0)
		}
	})

	t.Run("window validation", func(t *testing.T) {
		a, err := NewAnalyzer(barSeries(100, 102, 99))
		require.NoError(t, err)

		_, err = a.Rolling(1)
		assert.Error(t, err)
		_, err = a.Rolling(3) // only 2 returns available
		assert.Error(t, err)
	})
}

func TestEWMA(t *testing.T) {
	t.Run("matches the recursion by hand", func(t *testing.T) {
		a, err := NewAnalyzer(barSeries(100, 102, 99, 104))
		require.NoError(t, err)

		decay := 0.94
		rets := a.LogReturns()
		points, err := a.EWMA(decay)
		require.NoError(t, err)
		require.Len(t, points, 3)

		variance := rets[0] * rets[0]
		assert.InDelta(t, math.Sqrt(variance)*math.Sqrt(252), points[0].Vol, 1e-12)

		variance = (1-decay)*rets[1]*rets[1] + decay*variance
		assert.InDelta(t, math.Sqrt(variance)*math.Sqrt(252), points[1].Vol, 1e-12)

		variance = (1-decay)*rets[2]*rets[2] + decay*variance
		assert.InDelta(t, math.Sqrt(variance)*math.Sqrt(252), points[2].Vol, 1e-12)

		assert.Equal(t, day0.AddDate(0, 0, 1), points[0].Date)
		assert.Equal(t, day0.AddDate(0, 0, 3), points[2].Date)
	})

	t.Run("decay validation", func(t *testing.T) {
		a, err := NewAnalyzer(barSeries(100, 102))
		require.NoError(t, err)

		_, err = a.EWMA(0)
		assert.Error(t, err)
		_, err = a.EWMA(1)
		assert.Error(t, err)
	})
}

func TestEventImpact(t *testing.T) {
	// calm first half, turbulent second half
	closes := []float64{100, 100.1, 100.2, 100.1, 100.2, 100.3, 95, 103, 92, 105, 97, 108}
	a, err := NewAnalyzer(barSeries(closes...))
	require.NoError(t, err)

	t.Run("post-event volatility jumps", func(t *testing.T) {
		impact, err := a.EventImpact(day0.AddDate(0, 0, 5), 5)
		require.NoError(t, err)
		assert.Equal(t, day0.AddDate(0, 0, 5), impact.EventDate)
		assert.Greater(t, impact.PostVol, impact.PreVol)
		assert.InDelta(t, impact.PostVol-impact.PreVol, impact.Change, 1e-12)
	})

	t.Run("snaps to the nearest trading day", func(t *testing.T) {
		shifted := day0.AddDate(0, 0, 5).Add(9 * time.Hour)
		impact, err := a.EventImpact(shifted, 5)
		require.NoError(t, err)
		assert.Equal(t, day0.AddDate(0, 0, 5), impact.EventDate)
	})

	t.Run("rejects windows without enough returns", func(t *testing.T) {
		_, err := a.EventImpact(day0, 5)
		assert.Error(t, err)

		_, err = a.EventImpact(day0.AddDate(0, 0, 5), 1)
		assert.Error(t, err)
	})
}
