package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contactkeval/box-arb/internal/arb"
	"github.com/contactkeval/box-arb/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Re-rank a previously written candidates CSV",
	Long: `report loads a candidates CSV produced by scan and re-applies the profit
threshold without re-deriving economics, so results can be sliced at different
thresholds after one expensive scan.`,
	Run: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringP("input", "i", "", "candidates CSV written by scan")
	f.Float64("min-profit", 0.05, "minimum profit per share to keep a candidate")
	f.Int("top", 20, "rows shown per ranking")
	f.String("window-start", "", "focus-window start date (YYYY-MM-DD)")
	f.String("window-end", "", "focus-window end date (YYYY-MM-DD)")
	reportCmd.MarkFlagRequired("input")
}

func runReport(cmd *cobra.Command, args []string) {
	input, _ := cmd.Flags().GetString("input")
	minProfit, _ := cmd.Flags().GetFloat64("min-profit")
	top, _ := cmd.Flags().GetInt("top")

	candidates, err := report.ReadCandidatesCSV(input)
	if err != nil {
		log.Fatalf("loading candidates: %v", err)
	}

	kept := arb.Gate(candidates, minProfit)
	if len(kept) == 0 {
		log.Infof("no candidates clear a %.2f profit threshold", minProfit)
		return
	}

	fmt.Printf("TOP BUY-BOX opportunities:\n")
	report.RenderTopBuys(os.Stdout, kept, top)
	fmt.Printf("\nTOP SELL-BOX opportunities:\n")
	report.RenderTopSells(os.Stdout, kept, top)

	windowStart := parseDateFlag(cmd, "window-start")
	windowEnd := parseDateFlag(cmd, "window-end")
	if !windowStart.IsZero() || !windowEnd.IsZero() {
		summaries := arb.SummarizeByDate(kept, windowStart, windowEnd)
		if len(summaries) == 0 {
			log.Infof("no candidates in the focus window")
			return
		}
		fmt.Printf("\nDaily summary (focus window):\n")
		report.RenderDailySummary(os.Stdout, summaries)
	}
}
