// Package report writes scan results for downstream consumers: a candidates
// CSV matching the documented output contract, a run-summary JSON, and
// rendered console tables.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/contactkeval/box-arb/internal/arb"
)

const dateLayout = "2006-01-02"

// candidateRecord is the CSV projection of a BoxCandidate. Column names are
// the output contract; downstream tooling filters and plots these directly.
type candidateRecord struct {
	Date         string  `csv:"date"`
	Symbol       string  `csv:"act_symbol"`
	Expiration   string  `csv:"expiration"`
	K1           float64 `csv:"K1"`
	K2           float64 `csv:"K2"`
	PayoffPV     float64 `csv:"payoff_pv"`
	CostBuy      float64 `csv:"cost_buy"`
	ProfitBuy    float64 `csv:"profit_buy"`
	ProceedsSell float64 `csv:"proceeds_sell"`
	ProfitSell   float64 `csv:"profit_sell"`
	TYears       float64 `csv:"T_years"`
}

// WriteCandidatesCSV writes candidates to path. An empty candidate set still
// produces a file with the header row.
func WriteCandidatesCSV(cands []arb.BoxCandidate, path string) error {
	records := make([]candidateRecord, 0, len(cands))
	for _, c := range cands {
		records = append(records, candidateRecord{
			Date:         c.Date.Format(dateLayout),
			Symbol:       c.Symbol,
			Expiration:   c.Expiration.Format(dateLayout),
			K1:           c.K1,
			K2:           c.K2,
			PayoffPV:     c.PayoffPV,
			CostBuy:      c.CostBuy,
			ProfitBuy:    c.ProfitBuy,
			ProceedsSell: c.ProceedsSell,
			ProfitSell:   c.ProfitSell,
			TYears:       c.TYears,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create candidates file: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return fmt.Errorf("marshal candidates csv: %w", err)
	}
	return nil
}

// ReadCandidatesCSV loads a previously written candidates file, for re-ranking
// without re-deriving economics.
func ReadCandidatesCSV(path string) ([]arb.BoxCandidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidates file: %w", err)
	}
	defer f.Close()

	var records []*candidateRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parse candidates csv: %w", err)
	}

	cands := make([]arb.BoxCandidate, 0, len(records))
	for i, r := range records {
		date, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q: %w", i+1, r.Date, err)
		}
		expiration, err := time.Parse(dateLayout, r.Expiration)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad expiration %q: %w", i+1, r.Expiration, err)
		}
		cands = append(cands, arb.BoxCandidate{
			Date:         date,
			Symbol:       r.Symbol,
			Expiration:   expiration,
			K1:           r.K1,
			K2:           r.K2,
			PayoffPV:     r.PayoffPV,
			CostBuy:      r.CostBuy,
			ProfitBuy:    r.ProfitBuy,
			ProceedsSell: r.ProceedsSell,
			ProfitSell:   r.ProfitSell,
			TYears:       r.TYears,
		})
	}
	return cands, nil
}

// Summary is the run metadata written next to the candidates CSV.
type Summary struct {
	RunID            string  `json:"run_id"`
	Input            string  `json:"input"`
	Mode             string  `json:"mode"`
	MinProfit        float64 `json:"min_profit"`
	MaxSpreadPct     float64 `json:"max_spread_pct"`
	MaxStrikesPerExp int     `json:"max_strikes_per_exp"`
	RiskFreeRate     float64 `json:"risk_free_rate"`
	RawQuotes        int     `json:"raw_quotes"`
	UnparseableRows  int     `json:"unparseable_rows"`
	BadQuotes        int     `json:"bad_quotes"`
	OneSidedStrikes  int     `json:"one_sided_strikes"`
	Strikes          int     `json:"strikes"`
	LiquidStrikes    int     `json:"liquid_strikes"`
	Groups           int     `json:"groups"`
	Candidates       int     `json:"candidates"`
	Elapsed          string  `json:"elapsed"`
}

func WriteSummaryJSON(s Summary, path string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
