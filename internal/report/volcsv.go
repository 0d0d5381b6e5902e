package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/contactkeval/box-arb/internal/volatility"
)

// WriteVolatilityCSV writes the enriched close series: one row per trading
// day with the close, log return, each rolling volatility and the EWMA
// volatility. Rolling columns are empty until their window fills, mirroring
// how consumers expect a warm-up period. Column count depends on the window
// set, so this uses a plain csv writer rather than struct tags.
func WriteVolatilityCSV(path string, a *volatility.Analyzer, rolling map[int][]volatility.Point, ewma []volatility.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create volatility file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	windows := make([]int, 0, len(rolling))
	for win := range rolling {
		windows = append(windows, win)
	}
	sort.Ints(windows)

	header := []string{"date", "close", "log_ret"}
	for _, win := range windows {
		header = append(header, fmt.Sprintf("vol_%dd", win))
	}
	header = append(header, "vol_ewma")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write volatility header: %w", err)
	}

	rollingByDate := make([]map[string]float64, len(windows))
	for i, win := range windows {
		rollingByDate[i] = indexByDate(rolling[win])
	}
	ewmaByDate := indexByDate(ewma)

	bars := a.Bars()
	rets := a.LogReturns()
	for i, b := range bars {
		key := b.Date.Format(dateLayout)
		row := []string{key, formatFloat(b.Close)}
		if i == 0 {
			row = append(row, "")
		} else {
			row = append(row, formatFloat(rets[i-1]))
		}
		for j := range windows {
			row = append(row, lookupVol(rollingByDate[j], key))
		}
		row = append(row, lookupVol(ewmaByDate, key))
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write volatility row: %w", err)
		}
	}
	return nil
}

func indexByDate(points []volatility.Point) map[string]float64 {
	out := make(map[string]float64, len(points))
	for _, p := range points {
		out[p.Date.Format(dateLayout)] = p.Vol
	}
	return out
}

func lookupVol(byDate map[string]float64, key string) string {
	v, ok := byDate[key]
	if !ok {
		return ""
	}
	return formatFloat(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
