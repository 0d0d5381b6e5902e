package report

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/contactkeval/box-arb/internal/arb"
)

// RenderTopBuys prints the best buy-box candidates, ranked by ProfitBuy.
func RenderTopBuys(w io.Writer, cands []arb.BoxCandidate, n int) {
	renderCandidates(w, arb.SortByBuyProfit(cands), n)
}

// RenderTopSells prints the best sell-box candidates, ranked by ProfitSell.
func RenderTopSells(w io.Writer, cands []arb.BoxCandidate, n int) {
	renderCandidates(w, arb.SortBySellProfit(cands), n)
}

func renderCandidates(w io.Writer, ranked []arb.BoxCandidate, n int) {
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	p := message.NewPrinter(language.English)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"DATE", "EXPIRATION", "K1", "K2", "PAYOFF PV", "COST BUY", "PROFIT BUY", "PROCEEDS SELL", "PROFIT SELL"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")

	for _, c := range ranked {
		table.Append([]string{
			c.Date.Format(dateLayout),
			c.Expiration.Format(dateLayout),
			p.Sprintf("%.2f", c.K1),
			p.Sprintf("%.2f", c.K2),
			p.Sprintf("%.4f", c.PayoffPV),
			p.Sprintf("%.4f", c.CostBuy),
			p.Sprintf("%.4f", c.ProfitBuy),
			p.Sprintf("%.4f", c.ProceedsSell),
			p.Sprintf("%.4f", c.ProfitSell),
		})
	}
	table.Render()
}

// RenderDailySummary prints per-date candidate counts and best profits.
func RenderDailySummary(w io.Writer, summaries []arb.DailySummary) {
	p := message.NewPrinter(language.English)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"DATE", "CANDIDATES", "MAX PROFIT"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")

	for _, s := range summaries {
		table.Append([]string{
			s.Date.Format(dateLayout),
			p.Sprintf("%d", s.NCandidates),
			p.Sprintf("%.4f", s.MaxProfit),
		})
	}
	table.Render()
}
