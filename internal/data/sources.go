// Package data supplies market data to the scan pipeline: option-chain quotes
// for the box scanner and daily close bars for the volatility analyzer. All
// I/O is confined here; the pipeline itself never touches the network or disk.
package data

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/contactkeval/box-arb/internal/arb"
)

const dateLayout = "2006-01-02"

// SchemaError reports a feed whose shape cannot support a scan. It is fatal
// and surfaced before any rows are processed.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Chain is the raw quote set for one scan run. DroppedRows counts rows whose
// numeric fields failed to parse; they are excluded, not errors.
type Chain struct {
	Quotes      []arb.RawQuote
	DroppedRows int
}

// ChainSource supplies the raw option quotes for a scan run.
type ChainSource interface {
	Chain(ctx context.Context) (*Chain, error)
}

// Bar is one daily close observation.
type Bar struct {
	Date  time.Time
	Close float64
}

// BarSource supplies daily close bars for realized-volatility analysis.
type BarSource interface {
	DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]Bar, error)
}
