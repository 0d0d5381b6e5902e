package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contactkeval/box-arb/internal/arb"
	"github.com/contactkeval/box-arb/internal/config"
	"github.com/contactkeval/box-arb/internal/data"
	"github.com/contactkeval/box-arb/internal/report"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan an option-chain CSV for box-spread candidates",
	Run:   runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringP("input", "i", "", "option-chain CSV (date, act_symbol, expiration, strike, call_put, bid, ask)")
	f.StringP("output-dir", "o", "./out", "directory for the candidates CSV and run summary")
	f.StringP("config", "c", "", "YAML config file; flags override its values")
	f.StringP("mode", "m", "", "scan mode: adjacent or allpairs")
	f.Float64("min-profit", 0, "minimum profit per share to report a candidate")
	f.Float64("max-spread-pct", 0, "maximum relative bid/ask spread per leg")
	f.Int("max-strikes", 0, "strike cap per expiration group")
	f.Float64P("rate", "r", 0, "annual risk-free rate for discounting the payoff")
	f.Int("workers", 0, "concurrent group scans")
	f.Int("top", 15, "rows shown in the console rankings")
	f.String("window-start", "", "focus-window start date (YYYY-MM-DD) for the daily summary")
	f.String("window-end", "", "focus-window end date (YYYY-MM-DD) for the daily summary")
	f.Bool("synthetic", false, "scan a generated chain instead of a file")
	f.String("symbol", "SPY", "underlying symbol for the synthetic chain")
	f.Float64("spot", 580.0, "spot price for the synthetic chain")
	f.Int("strikes", 41, "strike count for the synthetic chain")
	f.Int64("seed", 42, "random seed for the synthetic chain")
}

func runScan(cmd *cobra.Command, args []string) {
	start := time.Now()

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadScan(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	applyScanOverrides(cmd, &cfg)

	mode, err := arb.ParseScanMode(cfg.Mode)
	if err != nil {
		log.Fatal(err)
	}

	input, _ := cmd.Flags().GetString("input")
	synthetic, _ := cmd.Flags().GetBool("synthetic")

	var src data.ChainSource
	switch {
	case synthetic:
		symbol, _ := cmd.Flags().GetString("symbol")
		spot, _ := cmd.Flags().GetFloat64("spot")
		strikes, _ := cmd.Flags().GetInt("strikes")
		seed, _ := cmd.Flags().GetInt64("seed")
		today := time.Now().UTC().Truncate(24 * time.Hour)
		src = data.NewSyntheticChainSource(symbol, today, today.AddDate(0, 1, 0), spot, strikes, seed)
		input = fmt.Sprintf("synthetic:%s", symbol)
		log.Infof("scanning synthetic %s chain, spot %.2f, %d strikes", symbol, spot, strikes)
	case input != "":
		src = data.NewCSVChainSource(input)
	default:
		log.Fatal("either --input or --synthetic is required")
	}

	chain, err := src.Chain(cmd.Context())
	if err != nil {
		var schemaErr *data.SchemaError
		if errors.As(err, &schemaErr) {
			log.Fatalf("input schema: %v", schemaErr)
		}
		log.Fatalf("loading chain: %v", err)
	}

	table := arb.BuildQuoteTable(chain.Quotes)
	if table.Drops.BadQuote > 0 || table.Drops.OneSided > 0 {
		log.Infof("dropped %d bad quotes and %d one-sided strikes while pivoting",
			table.Drops.BadQuote, table.Drops.OneSided)
	}

	filtered := arb.FilterQuotes(table.Quotes, cfg.MaxSpreadPct)
	groups := arb.GroupByExpiration(filtered)
	log.Infof("%d strikes passed the liquidity gate across %d expiration groups",
		len(filtered), len(groups))

	params := arb.ScanParams{
		Mode:             mode,
		RiskFreeRate:     cfg.RiskFreeRate,
		MaxStrikesPerExp: cfg.MaxStrikesPerExp,
	}
	candidates := arb.Gate(arb.ScanGroups(groups, params, cfg.Workers), cfg.MinProfit)

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("creating output dir %s: %v", outputDir, err)
	}
	candidatesPath := filepath.Join(outputDir, "box_candidates.csv")
	if err := report.WriteCandidatesCSV(candidates, candidatesPath); err != nil {
		log.Fatalf("writing candidates: %v", err)
	}

	summary := report.Summary{
		RunID:            uuid.NewString(),
		Input:            input,
		Mode:             string(mode),
		MinProfit:        cfg.MinProfit,
		MaxSpreadPct:     cfg.MaxSpreadPct,
		MaxStrikesPerExp: cfg.MaxStrikesPerExp,
		RiskFreeRate:     cfg.RiskFreeRate,
		RawQuotes:        len(chain.Quotes),
		UnparseableRows:  chain.DroppedRows,
		BadQuotes:        table.Drops.BadQuote,
		OneSidedStrikes:  table.Drops.OneSided,
		Strikes:          len(table.Quotes),
		LiquidStrikes:    len(filtered),
		Groups:           len(groups),
		Candidates:       len(candidates),
		Elapsed:          time.Since(start).String(),
	}
	if err := report.WriteSummaryJSON(summary, filepath.Join(outputDir, "scan_summary.json")); err != nil {
		log.Fatalf("writing summary: %v", err)
	}

	if len(candidates) == 0 {
		log.Infof("[%s] no candidates found after filters", mode)
		return
	}
	log.Infof("[%s] %d candidates written to %s", mode, len(candidates), candidatesPath)

	top, _ := cmd.Flags().GetInt("top")
	fmt.Printf("\n[%s] TOP BUY-BOX candidates:\n", mode)
	report.RenderTopBuys(os.Stdout, candidates, top)
	fmt.Printf("\n[%s] TOP SELL-BOX candidates:\n", mode)
	report.RenderTopSells(os.Stdout, candidates, top)

	windowStart := parseDateFlag(cmd, "window-start")
	windowEnd := parseDateFlag(cmd, "window-end")
	if !windowStart.IsZero() || !windowEnd.IsZero() {
		summaries := arb.SummarizeByDate(candidates, windowStart, windowEnd)
		if len(summaries) == 0 {
			log.Infof("no candidates in the focus window")
		} else {
			fmt.Printf("\nDaily summary (focus window):\n")
			report.RenderDailySummary(os.Stdout, summaries)
		}
	}
}

// applyScanOverrides layers explicitly set flags over the config file values.
func applyScanOverrides(cmd *cobra.Command, cfg *config.Scan) {
	f := cmd.Flags()
	if f.Changed("mode") {
		cfg.Mode, _ = f.GetString("mode")
	}
	if f.Changed("min-profit") {
		cfg.MinProfit, _ = f.GetFloat64("min-profit")
	}
	if f.Changed("max-spread-pct") {
		cfg.MaxSpreadPct, _ = f.GetFloat64("max-spread-pct")
	}
	if f.Changed("max-strikes") {
		cfg.MaxStrikesPerExp, _ = f.GetInt("max-strikes")
	}
	if f.Changed("rate") {
		cfg.RiskFreeRate, _ = f.GetFloat64("rate")
	}
	if f.Changed("workers") {
		cfg.Workers, _ = f.GetInt("workers")
	}
}

func parseDateFlag(cmd *cobra.Command, name string) time.Time {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Fatalf("parsing --%s: %v", name, err)
	}
	return t
}
