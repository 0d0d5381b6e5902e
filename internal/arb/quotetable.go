// Package arb implements the box-spread arbitrage pipeline: raw quote rows are
// pivoted into per-strike call/put quadruples, gated for liquidity, grouped by
// expiration and scanned pairwise for mispriced boxes.
package arb

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

type OptionType string

const (
	Call OptionType = "Call"
	Put  OptionType = "Put"
)

// RawQuote is one tick-level option quote row as supplied by the chain source.
type RawQuote struct {
	Date       time.Time
	Symbol     string
	Expiration time.Time
	Strike     float64
	OptionType OptionType
	Bid        float64
	Ask        float64
}

// StrikeQuote joins the call and put side of a single strike. A box needs all
// four legs quoted, so strikes missing either side never make it into a table.
type StrikeQuote struct {
	Date       time.Time
	Symbol     string
	Expiration time.Time
	Strike     float64
	CallBid    float64
	CallAsk    float64
	PutBid     float64
	PutAsk     float64
}

// DropCounts tracks rows excluded while building a table. Large counts usually
// mean an upstream feed problem, so callers should surface them.
type DropCounts struct {
	BadQuote int // negative bid or ask < bid
	OneSided int // strike quoted on only one of call/put
}

// QuoteTable is the normalized, deduplicated view of a raw chain, sorted by
// (date, symbol, expiration, strike).
type QuoteTable struct {
	Quotes []StrikeQuote
	Drops  DropCounts
}

type strikeKey struct {
	date       string
	symbol     string
	expiration string
	strike     float64
}

type sideQuote struct {
	bid float64
	ask float64
}

// BuildQuoteTable pivots raw quote rows into per-strike quadruples. Duplicate
// quotes for the same key and side collapse to the conservative executable
// price: highest bid, lowest ask. Never an average, which could overstate the
// liquidity a counterparty would honor.
func BuildQuoteTable(rows []RawQuote) *QuoteTable {
	calls := make(map[strikeKey]sideQuote)
	puts := make(map[strikeKey]sideQuote)
	meta := make(map[strikeKey]RawQuote)

	table := &QuoteTable{}
	for _, r := range rows {
		if r.Bid < 0 || r.Ask < r.Bid {
			table.Drops.BadQuote++
			continue
		}
		k := strikeKey{
			date:       r.Date.Format(dateLayout),
			symbol:     r.Symbol,
			expiration: r.Expiration.Format(dateLayout),
			strike:     r.Strike,
		}
		side := calls
		if r.OptionType == Put {
			side = puts
		}
		q, seen := side[k]
		if !seen {
			side[k] = sideQuote{bid: r.Bid, ask: r.Ask}
		} else {
			if r.Bid > q.bid {
				q.bid = r.Bid
			}
			if r.Ask < q.ask {
				q.ask = r.Ask
			}
			side[k] = q
		}
		if _, ok := meta[k]; !ok {
			meta[k] = r
		}
	}

	// inner join: a strike quoted on only one side cannot support a box
	for k, c := range calls {
		p, ok := puts[k]
		if !ok {
			table.Drops.OneSided++
			continue
		}
		src := meta[k]
		table.Quotes = append(table.Quotes, StrikeQuote{
			Date:       src.Date,
			Symbol:     src.Symbol,
			Expiration: src.Expiration,
			Strike:     src.Strike,
			CallBid:    c.bid,
			CallAsk:    c.ask,
			PutBid:     p.bid,
			PutAsk:     p.ask,
		})
	}
	for k := range puts {
		if _, ok := calls[k]; !ok {
			table.Drops.OneSided++
		}
	}

	sort.Slice(table.Quotes, func(i, j int) bool {
		a, b := table.Quotes[i], table.Quotes[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		if !a.Expiration.Equal(b.Expiration) {
			return a.Expiration.Before(b.Expiration)
		}
		return a.Strike < b.Strike
	})

	return table
}
