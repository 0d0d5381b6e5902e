package arb

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

// ScanMode selects which strike pairs a scan evaluates.
type ScanMode string

const (
	// ModeAdjacent scans consecutive strikes only, O(n). A cheap first pass
	// that captures the tightest combinations.
	ModeAdjacent ScanMode = "adjacent"
	// ModeAllPairs scans every i<j combination, O(n^2), bounded by the
	// per-group strike cap.
	ModeAllPairs ScanMode = "allpairs"
)

func ParseScanMode(s string) (ScanMode, error) {
	switch m := ScanMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAdjacent, ModeAllPairs:
		return m, nil
	default:
		return "", fmt.Errorf("unknown scan mode %q (want %s or %s)", s, ModeAdjacent, ModeAllPairs)
	}
}

// ScanParams are the tunables for one scan run.
type ScanParams struct {
	Mode             ScanMode
	RiskFreeRate     float64 // annual, for discounting the payoff
	MaxStrikesPerExp int     // per-group strike cap, <=0 disables
}

// BoxCandidate is the economics of one strike pair, K1 < K2 always. Long box:
// buy call K1, sell call K2, buy put K2, sell put K1; the sell box mirrors it.
type BoxCandidate struct {
	Date         time.Time
	Symbol       string
	Expiration   time.Time
	K1           float64
	K2           float64
	PayoffPV     float64 // (K2-K1) discounted to the quote date
	CostBuy      float64 // debit to establish the long box (ask on buys, bid on sells)
	ProfitBuy    float64 // PayoffPV - CostBuy
	ProceedsSell float64 // credit received writing the box
	ProfitSell   float64 // ProceedsSell - PayoffPV
	TYears       float64
}

// pairEnumerator yields the (i, j) index pairs a mode evaluates, i < j. Both
// modes share one scan routine so the leg formulas cannot drift apart.
type pairEnumerator func(n int, emit func(i, j int))

func adjacentPairs(n int, emit func(i, j int)) {
	for i := 0; i+1 < n; i++ {
		emit(i, i+1)
	}
}

func allPairs(n int, emit func(i, j int)) {
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			emit(i, j)
		}
	}
}

func (m ScanMode) pairs() pairEnumerator {
	if m == ModeAllPairs {
		return allPairs
	}
	return adjacentPairs
}

// YearsToExpiry is calendar days / 365, floored at zero for same-day expiry.
func YearsToExpiry(date, expiration time.Time) float64 {
	days := expiration.Sub(date).Hours() / 24.0
	return math.Max(days/365.0, 0)
}

// downselect enforces the strike cap before the pair loop so the number of
// comparisons per group is hard-bounded at max^2. Strikes are ranked by
// combined relative spread, keeping the most liquid ones. A heuristic, not a
// guaranteed-optimal pick.
func downselect(strikes []FilteredStrike, max int) []FilteredStrike {
	if max <= 0 || len(strikes) <= max {
		return strikes
	}
	byScore := make([]FilteredStrike, len(strikes))
	copy(byScore, strikes)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].CallSpreadPct+byScore[i].PutSpreadPct <
			byScore[j].CallSpreadPct+byScore[j].PutSpreadPct
	})
	kept := byScore[:max]
	sort.Slice(kept, func(i, j int) bool { return kept[i].Strike < kept[j].Strike })
	return kept
}

// ScanGroup computes box economics for every pair the mode enumerates. The
// minimum-profit gate is deliberately not applied here; that belongs to the
// ranker so a standalone scan sees all computed pairs.
func ScanGroup(g ExpirationGroup, p ScanParams) []BoxCandidate {
	strikes := downselect(g.Strikes, p.MaxStrikesPerExp)
	if len(strikes) < 2 {
		return nil
	}

	t := YearsToExpiry(g.Date, g.Expiration)
	disc := math.Exp(-p.RiskFreeRate * t)

	var out []BoxCandidate
	p.Mode.pairs()(len(strikes), func(i, j int) {
		lo, hi := strikes[i], strikes[j]
		payoffPV := (hi.Strike - lo.Strike) * disc
		costBuy := lo.CallAsk - hi.CallBid + hi.PutAsk - lo.PutBid
		proceedsSell := lo.CallBid - hi.CallAsk + hi.PutBid - lo.PutAsk
		out = append(out, BoxCandidate{
			Date:         g.Date,
			Symbol:       g.Symbol,
			Expiration:   g.Expiration,
			K1:           lo.Strike,
			K2:           hi.Strike,
			PayoffPV:     payoffPV,
			CostBuy:      costBuy,
			ProfitBuy:    payoffPV - costBuy,
			ProceedsSell: proceedsSell,
			ProfitSell:   proceedsSell - payoffPV,
			TYears:       t,
		})
	})
	return out
}

// ScanGroups scans independent groups on a bounded worker pool. Groups share
// no state, so results are just concatenated; callers re-sort via the ranker.
func ScanGroups(groups []ExpirationGroup, p ScanParams, workers int) []BoxCandidate {
	if workers > len(groups) {
		workers = len(groups)
	}
	if workers <= 1 {
		var out []BoxCandidate
		for _, g := range groups {
			out = append(out, ScanGroup(g, p)...)
		}
		return out
	}

	jobs := make(chan int)
	results := make([][]BoxCandidate, len(groups))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = ScanGroup(groups[i], p)
			}
		}()
	}
	for i := range groups {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var out []BoxCandidate
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
