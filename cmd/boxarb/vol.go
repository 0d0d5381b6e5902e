package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contactkeval/box-arb/internal/data"
	"github.com/contactkeval/box-arb/internal/report"
	"github.com/contactkeval/box-arb/internal/volatility"
)

var volCmd = &cobra.Command{
	Use:   "vol",
	Short: "Compute realized-volatility analytics over a daily close series",
	Long: `vol reads daily closes from a CSV (--input) or fetches them from Polygon
(--symbol with --from/--to, POLYGON_API_KEY in the environment), computes
rolling and EWMA annualized volatility, and writes the enriched series for
downstream plotting. With --event-date it also compares realized volatility
before and after the event.`,
	Run: runVol,
}

func init() {
	f := volCmd.Flags()
	f.StringP("input", "i", "", "daily close CSV with date and close columns")
	f.StringP("symbol", "s", "", "ticker to fetch from Polygon instead of reading a file")
	f.String("from", "", "fetch start date (YYYY-MM-DD)")
	f.String("to", "", "fetch end date (YYYY-MM-DD)")
	f.IntSlice("windows", []int{20, 60, 120}, "rolling volatility windows in trading days")
	f.Float64("decay", 0.94, "EWMA decay factor (RiskMetrics standard 0.94)")
	f.String("event-date", "", "event date (YYYY-MM-DD) for before/after impact analysis")
	f.Int("lookback", 15, "trading days on each side of the event")
	f.StringP("output", "o", "volatility.csv", "output CSV path")
}

func runVol(cmd *cobra.Command, args []string) {
	bars, err := loadBars(cmd)
	if err != nil {
		log.Fatalf("loading closes: %v", err)
	}
	log.Infof("loaded %d daily closes", len(bars))

	analyzer, err := volatility.NewAnalyzer(bars)
	if err != nil {
		log.Fatalf("building analyzer: %v", err)
	}

	windows, _ := cmd.Flags().GetIntSlice("windows")
	rolling := make(map[int][]volatility.Point, len(windows))
	for _, window := range windows {
		points, err := analyzer.Rolling(window)
		if err != nil {
			log.Warnf("skipping %dd rolling volatility: %v", window, err)
			continue
		}
		rolling[window] = points
	}

	decay, _ := cmd.Flags().GetFloat64("decay")
	ewma, err := analyzer.EWMA(decay)
	if err != nil {
		log.Fatalf("EWMA volatility: %v", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if err := report.WriteVolatilityCSV(output, analyzer, rolling, ewma); err != nil {
		log.Fatalf("writing volatility series: %v", err)
	}
	log.Infof("wrote volatility series to %s", output)

	if eventDate := parseDateFlag(cmd, "event-date"); !eventDate.IsZero() {
		lookback, _ := cmd.Flags().GetInt("lookback")
		impact, err := analyzer.EventImpact(eventDate, lookback)
		if err != nil {
			log.Fatalf("event impact: %v", err)
		}
		fmt.Printf("\nEvent impact (%s, %dd on each side):\n", impact.EventDate.Format("2006-01-02"), lookback)
		fmt.Printf("  pre-event realized vol:  %6.2f%%\n", impact.PreVol*100)
		fmt.Printf("  post-event realized vol: %6.2f%%\n", impact.PostVol*100)
		fmt.Printf("  change:                  %+6.2f pp\n", impact.Change*100)
	}
}

func loadBars(cmd *cobra.Command) ([]data.Bar, error) {
	input, _ := cmd.Flags().GetString("input")
	symbol, _ := cmd.Flags().GetString("symbol")

	switch {
	case input != "":
		return data.LoadBarsCSV(input)
	case symbol != "":
		apiKey := os.Getenv("POLYGON_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("POLYGON_API_KEY not set")
		}
		from := parseDateFlag(cmd, "from")
		to := parseDateFlag(cmd, "to")
		if from.IsZero() || to.IsZero() {
			return nil, fmt.Errorf("--from and --to are required with --symbol")
		}
		if !from.Before(to) {
			return nil, fmt.Errorf("--from must be before --to")
		}
		src := data.NewPolygonBarSource(apiKey)
		return src.DailyBars(cmd.Context(), symbol, from, to)
	default:
		return nil, fmt.Errorf("either --input or --symbol is required")
	}
}
