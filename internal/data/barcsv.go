package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
)

type barRow struct {
	Date  string `csv:"date"`
	Close string `csv:"close"`
}

var requiredBarColumns = []string{"date", "close"}

// LoadBarsCSV reads a daily close series from a file with date and close
// columns, for running the volatility analyzer offline. Malformed rows are
// dropped; output is sorted by date.
func LoadBarsCSV(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars file: %w", err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("read bars header: %w", err)
	}
	if missing := missingColumns(header, requiredBarColumns); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind bars file: %w", err)
	}

	var rows []*barRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse bars csv: %w", err)
	}

	var bars []Bar
	dropped := 0
	for _, r := range rows {
		date, err := time.Parse(dateLayout, strings.TrimSpace(r.Date))
		if err != nil {
			dropped++
			continue
		}
		close, err := strconv.ParseFloat(strings.TrimSpace(r.Close), 64)
		if err != nil || close <= 0 {
			dropped++
			continue
		}
		bars = append(bars, Bar{Date: date, Close: close})
	}
	if dropped > 0 {
		log.Warnf("dropped %d unparseable rows from %s", dropped, path)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
