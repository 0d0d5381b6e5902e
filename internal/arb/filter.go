package arb

import "math"

// spreadFloor guards the relative-spread denominator when the ask is zero.
const spreadFloor = 1e-9

// FilteredStrike is a StrikeQuote that passed the liquidity gate, annotated
// with its relative bid/ask spreads.
type FilteredStrike struct {
	StrikeQuote
	CallSpreadPct float64
	PutSpreadPct  float64
}

// FilterQuote applies the liquidity gate to one strike. A non-positive bid on
// either side means there is no real buyer for the short leg of a box, and a
// relative spread above maxSpreadPct makes any apparent edge indistinguishable
// from crossing costs. The predicate is stateless and idempotent.
func FilterQuote(q StrikeQuote, maxSpreadPct float64) (FilteredStrike, bool) {
	if q.CallBid <= 0 || q.PutBid <= 0 {
		return FilteredStrike{}, false
	}
	callSpread := (q.CallAsk - q.CallBid) / math.Max(q.CallAsk, spreadFloor)
	putSpread := (q.PutAsk - q.PutBid) / math.Max(q.PutAsk, spreadFloor)
	if callSpread > maxSpreadPct || putSpread > maxSpreadPct {
		return FilteredStrike{}, false
	}
	return FilteredStrike{
		StrikeQuote:   q,
		CallSpreadPct: callSpread,
		PutSpreadPct:  putSpread,
	}, true
}

// FilterQuotes gates every strike in the table, preserving input order.
func FilterQuotes(quotes []StrikeQuote, maxSpreadPct float64) []FilteredStrike {
	out := make([]FilteredStrike, 0, len(quotes))
	for _, q := range quotes {
		if fs, ok := FilterQuote(q, maxSpreadPct); ok {
			out = append(out, fs)
		}
	}
	return out
}
