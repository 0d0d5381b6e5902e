// Package volatility computes realized-volatility analytics over a daily
// close series: rolling-window and EWMA (RiskMetrics) annualized volatility,
// plus before/after comparisons around a market event.
package volatility

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/contactkeval/box-arb/internal/data"
)

// annualization factor for daily returns, sqrt of 252 trading days
var annFactor = math.Sqrt(252.0)

// Analyzer holds a close series and its log returns. Returns are aligned so
// rets[i] is the return realized on bars[i+1].
type Analyzer struct {
	bars []data.Bar
	rets []float64
}

func NewAnalyzer(bars []data.Bar) (*Analyzer, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("need at least two closes, got %d", len(bars))
	}

	sorted := append([]data.Bar(nil), bars...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	rets := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Close <= 0 || sorted[i-1].Close <= 0 {
			return nil, fmt.Errorf("non-positive close on %s", sorted[i].Date.Format("2006-01-02"))
		}
		rets = append(rets, math.Log(sorted[i].Close/sorted[i-1].Close))
	}
	return &Analyzer{bars: sorted, rets: rets}, nil
}

// Point is an annualized volatility observation.
type Point struct {
	Date time.Time
	Vol  float64
}

// Rolling computes the trailing-window annualized realized volatility. The
// first observation lands on the window-th return.
func (a *Analyzer) Rolling(window int) ([]Point, error) {
	if window < 2 {
		return nil, fmt.Errorf("rolling window must be >= 2, got %d", window)
	}
	if window > len(a.rets) {
		return nil, fmt.Errorf("rolling window %d exceeds %d available returns", window, len(a.rets))
	}

	out := make([]Point, 0, len(a.rets)-window+1)
	for i := window; i <= len(a.rets); i++ {
		sd, err := stats.StandardDeviationSample(a.rets[i-window : i])
		if err != nil {
			return nil, fmt.Errorf("stddev over window ending at %d: %w", i, err)
		}
		out = append(out, Point{Date: a.bars[i].Date, Vol: sd * annFactor})
	}
	return out, nil
}

// EWMA computes RiskMetrics-style exponentially weighted volatility:
// var_t = (1-decay)*r_t^2 + decay*var_{t-1}, seeded with the first squared
// return. decay 0.94 is the RiskMetrics daily standard.
func (a *Analyzer) EWMA(decay float64) ([]Point, error) {
	if decay <= 0 || decay >= 1 {
		return nil, fmt.Errorf("decay factor must be in (0, 1), got %v", decay)
	}

	variance := a.rets[0] * a.rets[0]
	out := make([]Point, 0, len(a.rets))
	out = append(out, Point{Date: a.bars[1].Date, Vol: math.Sqrt(variance) * annFactor})
	for i := 1; i < len(a.rets); i++ {
		variance = (1-decay)*a.rets[i]*a.rets[i] + decay*variance
		out = append(out, Point{Date: a.bars[i+1].Date, Vol: math.Sqrt(variance) * annFactor})
	}
	return out, nil
}

// EventImpact compares annualized realized volatility over the lookback days
// before and after an event date.
type EventImpact struct {
	EventDate time.Time // nearest trading day to the requested date
	PreVol    float64
	PostVol   float64
	Change    float64 // PostVol - PreVol
}

func (a *Analyzer) EventImpact(eventDate time.Time, lookback int) (EventImpact, error) {
	if lookback < 2 {
		return EventImpact{}, fmt.Errorf("lookback must be >= 2, got %d", lookback)
	}

	// nearest trading day to the event
	idx := 0
	best := math.Abs(a.bars[0].Date.Sub(eventDate).Hours())
	for i, b := range a.bars {
		if d := math.Abs(b.Date.Sub(eventDate).Hours()); d < best {
			best = d
			idx = i
		}
	}

	// rets[i] belongs to bars[i+1]; the event return index is idx-1
	e := idx - 1
	preLo := e - lookback
	if preLo < 0 {
		preLo = 0
	}
	postHi := e + lookback
	if postHi > len(a.rets) {
		postHi = len(a.rets)
	}
	if e-preLo < 2 || postHi-e < 2 {
		return EventImpact{}, fmt.Errorf("not enough returns around %s for a %d-day window",
			a.bars[idx].Date.Format("2006-01-02"), lookback)
	}

	preSD, err := stats.StandardDeviationSample(a.rets[preLo:e])
	if err != nil {
		return EventImpact{}, fmt.Errorf("pre-event stddev: %w", err)
	}
	postSD, err := stats.StandardDeviationSample(a.rets[e:postHi])
	if err != nil {
		return EventImpact{}, fmt.Errorf("post-event stddev: %w", err)
	}

	pre := preSD * annFactor
	post := postSD * annFactor
	return EventImpact{
		EventDate: a.bars[idx].Date,
		PreVol:    pre,
		PostVol:   post,
		Change:    post - pre,
	}, nil
}

// Bars returns the sorted close series backing the analyzer.
func (a *Analyzer) Bars() []data.Bar {
	return a.bars
}

// LogReturns returns the log-return series; element i is realized on Bars()[i+1].
func (a *Analyzer) LogReturns() []float64 {
	return a.rets
}
