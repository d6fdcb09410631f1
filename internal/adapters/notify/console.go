// Package notify renders evaluation results to a human-facing surface.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/Jay9714/project-gyan/internal/domain"
	"github.com/Jay9714/project-gyan/internal/oms"
)

// Console implements ports.Notifier on stdout.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole creates a notifier writing to stdout. table selects the full
// per-horizon table; otherwise a one-line summary per cycle.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify prints the cycle's verdicts in the configured mode.
func (c *Console) Notify(_ context.Context, verdicts []domain.MultiHorizonVerdict) error {
	if len(verdicts) == 0 {
		fmt.Fprintf(c.out, "[%s] no tickers evaluated\n", time.Now().Format("15:04:05"))
		return nil
	}

	if c.table {
		c.printFull(verdicts)
	} else {
		c.printCompact(verdicts)
	}
	return nil
}

// printCompact prints one line: counts by verdict plus the bullish names.
func (c *Console) printCompact(verdicts []domain.MultiHorizonVerdict) {
	now := time.Now().Format("15:04:05")
	buys, avoids := countShortVerdicts(verdicts)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d tickers → buy:%d avoid:%d", now, len(verdicts), buys, avoids)

	shown := 0
	for _, v := range verdicts {
		if shown >= 4 {
			break
		}
		if !v.Short.Verdict.Bullish() {
			continue
		}
		fmt.Fprintf(&sb, " | %s %s tgt %.2f sl %.2f",
			v.Ticker, v.Short.Verdict, v.Short.Target, v.Short.StopLoss)
		shown++
	}

	fmt.Fprintln(c.out, sb.String())
}

// printFull prints the three-horizon table, one row per ticker-horizon.
func (c *Console) printFull(verdicts []domain.MultiHorizonVerdict) {
	now := time.Now().Format("15:04:05")
	buys, avoids := countShortVerdicts(verdicts)
	fmt.Fprintf(c.out, "\n[%s] %d tickers evaluated — buy:%d avoid:%d\n",
		now, len(verdicts), buys, avoids)

	table := tablewriter.NewWriter(c.out)
	table.Header("Ticker", "Horizon", "Verdict", "Stop", "Target", "Aggressive", "R:R", "Mode")

	for _, v := range verdicts {
		for _, h := range domain.Horizons {
			hv := v.ByHorizon(h)
			mode := "forecast"
			if hv.UsingMomentum {
				mode = "momentum"
			}
			if hv.Verdict == domain.VerdictWaiting {
				mode = "-"
			}
			table.Append(
				v.Ticker,
				fmt.Sprintf("%s (%dd)", h, h.Days()),
				hv.Verdict.String(),
				fmt.Sprintf("%.2f", hv.StopLoss),
				fmt.Sprintf("%.2f", hv.Target),
				fmt.Sprintf("%.2f", hv.AggressiveTarget),
				fmt.Sprintf("%.2f", hv.RiskReward),
				mode,
			)
		}
	}
	table.Render()

	fmt.Fprintln(c.out, "  Target = conservative 2R | Aggressive = 3.5R | Mode = target source")
}

// PrintStatus renders the OMS snapshot and the open positions.
func (c *Console) PrintStatus(st oms.Status, trades []domain.Trade) {
	state := "INACTIVE"
	if st.Active {
		state = "ACTIVE"
	}
	fmt.Fprintf(c.out, "\n=== ENGINE %s ===\n", state)
	fmt.Fprintf(c.out, "  Capital:      %.2f (start %.2f)\n", st.Ledger.Capital, st.Ledger.StartCapital)
	fmt.Fprintf(c.out, "  Realized PnL: %.2f\n", st.Ledger.RealizedPnL)
	fmt.Fprintf(c.out, "  Open:         %d positions, %.2f notional\n", st.OpenCount, st.Exposure)

	open := 0
	for _, t := range trades {
		if t.Status == domain.StatusOpen {
			open++
		}
	}
	if open == 0 {
		fmt.Fprintln(c.out)
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Ticker", "Side", "Qty", "Entry", "Stop", "Take Profit", "Instrument", "Opened")

	for _, t := range trades {
		if t.Status != domain.StatusOpen {
			continue
		}
		table.Append(
			t.Ticker,
			string(t.Direction),
			fmt.Sprintf("%d", t.Quantity),
			fmt.Sprintf("%.2f", t.EntryPrice),
			fmt.Sprintf("%.2f", t.StopLoss),
			fmt.Sprintf("%.2f", t.TakeProfit),
			string(t.Instrument),
			t.EntryTime.Format("2006-01-02 15:04"),
		)
	}
	table.Render()
	fmt.Fprintln(c.out)
}

func countShortVerdicts(verdicts []domain.MultiHorizonVerdict) (buys, avoids int) {
	for _, v := range verdicts {
		switch {
		case v.Short.Verdict.Bullish():
			buys++
		case v.Short.Verdict == domain.VerdictAvoid:
			avoids++
		}
	}
	return
}
