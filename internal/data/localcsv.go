package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/contactkeval/box-arb/internal/arb"
)

// chainRow mirrors one line of the option-chain CSV. Numeric fields stay
// strings so a malformed value drops the row instead of failing the file.
type chainRow struct {
	Date       string `csv:"date"`
	Symbol     string `csv:"act_symbol"`
	Expiration string `csv:"expiration"`
	Strike     string `csv:"strike"`
	CallPut    string `csv:"call_put"`
	Bid        string `csv:"bid"`
	Ask        string `csv:"ask"`
}

var requiredChainColumns = []string{"date", "act_symbol", "expiration", "strike", "call_put", "bid", "ask"}

type csvChainSource struct {
	path string
}

// NewCSVChainSource reads an option chain from a delimited file with columns
// date, act_symbol, expiration, strike, call_put, bid, ask.
func NewCSVChainSource(path string) ChainSource {
	return &csvChainSource{path: path}
}

func (s *csvChainSource) Chain(ctx context.Context) (*Chain, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open chain file: %w", err)
	}
	defer f.Close()

	// validate the header before touching any rows
	header, err := csv.NewReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("read chain header: %w", err)
	}
	if missing := missingColumns(header, requiredChainColumns); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind chain file: %w", err)
	}

	var rows []*chainRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse chain csv: %w", err)
	}

	chain := &Chain{Quotes: make([]arb.RawQuote, 0, len(rows))}
	for _, r := range rows {
		q, ok := parseChainRow(r)
		if !ok {
			chain.DroppedRows++
			continue
		}
		chain.Quotes = append(chain.Quotes, q)
	}
	if chain.DroppedRows > 0 {
		log.Warnf("dropped %d unparseable rows from %s", chain.DroppedRows, s.path)
	}
	log.Debugf("loaded %d raw quotes from %s", len(chain.Quotes), s.path)
	return chain, nil
}

func missingColumns(header, required []string) []string {
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[strings.ToLower(strings.TrimSpace(h))] = true
	}
	var missing []string
	for _, col := range required {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

func parseChainRow(r *chainRow) (arb.RawQuote, bool) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return arb.RawQuote{}, false
	}
	expiration, err := time.Parse(dateLayout, strings.TrimSpace(r.Expiration))
	if err != nil {
		return arb.RawQuote{}, false
	}
	strike, err := strconv.ParseFloat(strings.TrimSpace(r.Strike), 64)
	if err != nil {
		return arb.RawQuote{}, false
	}
	bid, err := strconv.ParseFloat(strings.TrimSpace(r.Bid), 64)
	if err != nil {
		return arb.RawQuote{}, false
	}
	ask, err := strconv.ParseFloat(strings.TrimSpace(r.Ask), 64)
	if err != nil {
		return arb.RawQuote{}, false
	}

	var side arb.OptionType
	switch strings.ToLower(strings.TrimSpace(r.CallPut)) {
	case "call", "c":
		side = arb.Call
	case "put", "p":
		side = arb.Put
	default:
		return arb.RawQuote{}, false
	}

	return arb.RawQuote{
		Date:       date,
		Symbol:     strings.TrimSpace(r.Symbol),
		Expiration: expiration,
		Strike:     strike,
		OptionType: side,
		Bid:        bid,
		Ask:        ask,
	}, true
}
