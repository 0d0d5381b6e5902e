package arb

import (
	"math"
	"sort"
	"time"
)

// Gate keeps candidates whose buy-box or sell-box profit clears the minimum.
// Profits below the threshold are indistinguishable from transaction-cost
// slippage and must not be reported as opportunities.
func Gate(cands []BoxCandidate, minProfit float64) []BoxCandidate {
	out := make([]BoxCandidate, 0, len(cands))
	for _, c := range cands {
		if c.ProfitBuy >= minProfit || c.ProfitSell >= minProfit {
			out = append(out, c)
		}
	}
	return out
}

// candidate ordering ties break on (date, K1, K2) ascending so ranked views
// are deterministic regardless of scan emission order.
func tieBreak(a, b BoxCandidate) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.K1 != b.K1 {
		return a.K1 < b.K1
	}
	return a.K2 < b.K2
}

// SortByBuyProfit returns a copy ranked best buy-box first.
func SortByBuyProfit(cands []BoxCandidate) []BoxCandidate {
	out := append([]BoxCandidate(nil), cands...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProfitBuy != out[j].ProfitBuy {
			return out[i].ProfitBuy > out[j].ProfitBuy
		}
		return tieBreak(out[i], out[j])
	})
	return out
}

// SortBySellProfit returns a copy ranked best sell-box first.
func SortBySellProfit(cands []BoxCandidate) []BoxCandidate {
	out := append([]BoxCandidate(nil), cands...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProfitSell != out[j].ProfitSell {
			return out[i].ProfitSell > out[j].ProfitSell
		}
		return tieBreak(out[i], out[j])
	})
	return out
}

// DailySummary aggregates one trading date's candidates.
type DailySummary struct {
	Date        time.Time
	NCandidates int
	MaxProfit   float64 // max over max(ProfitBuy, ProfitSell)
}

// SummarizeByDate builds per-date summaries for candidates inside
// [start, end]. A zero start or end leaves that bound open, so the same call
// serves both the full run and an event window. Output is sorted by date.
func SummarizeByDate(cands []BoxCandidate, start, end time.Time) []DailySummary {
	byDate := make(map[string]*DailySummary)
	var keys []string
	for _, c := range cands {
		if !start.IsZero() && c.Date.Before(start) {
			continue
		}
		if !end.IsZero() && c.Date.After(end) {
			continue
		}
		k := c.Date.Format(dateLayout)
		s, ok := byDate[k]
		if !ok {
			s = &DailySummary{Date: c.Date, MaxProfit: math.Inf(-1)}
			byDate[k] = s
			keys = append(keys, k)
		}
		s.NCandidates++
		if best := math.Max(c.ProfitBuy, c.ProfitSell); best > s.MaxProfit {
			s.MaxProfit = best
		}
	}

	sort.Strings(keys)
	out := make([]DailySummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byDate[k])
	}
	return out
}
