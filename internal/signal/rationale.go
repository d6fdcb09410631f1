package signal

import (
	"fmt"
	"strings"

	"github.com/Jay9714/project-gyan/internal/domain"
)

const (
	rationaleDistress     = "Altman Z-Score in the distress zone"
	rationaleManipulation = "Beneish M-Score flags earnings manipulation risk"
)

// buildRationale renders the deterministic explanation attached to a
// finalized verdict: decision line, target provenance, sector context, and
// the fundamental health check. Same input, same text: the rationale is
// part of the output contract, not decoration.
func buildRationale(ctx *evalContext, h domain.Horizon, hv domain.HorizonVerdict, decisionTarget float64) string {
	var b strings.Builder

	upside := (decisionTarget - ctx.price) / ctx.price * 100
	fmt.Fprintf(&b, "%s (%s, %dd): score %.1f/100 (combined %.1f/5, base tier %s), projected move %+.1f%%.",
		hv.Verdict, h, h.Days(), ctx.score, ctx.combined, ctx.base, upside)

	if hv.UsingMomentum {
		fmt.Fprintf(&b, " Momentum override active: price above EMA50 with positive sentiment, "+
			"trend target %.2f replaces the statistical forecast.", decisionTarget)
	} else {
		fmt.Fprintf(&b, " Forecast target %.2f at the %d-day point.", decisionTarget, h.Days())
	}

	if ctx.in.Sector.Name != "" {
		fmt.Fprintf(&b, " Sector %s is %s", ctx.in.Sector.Name, strings.ToLower(ctx.in.Sector.Status.String()))
		if ctx.in.Sector.Status == domain.SectorBearish {
			b.WriteString("; verdict demoted one tier")
		}
		b.WriteString(".")
	}

	b.WriteString(" " + healthLine(ctx.in.Fundamentals))

	fmt.Fprintf(&b, " Stop %.2f, targets %.2f / %.2f (R:R %.2f).",
		hv.StopLoss, hv.Target, hv.AggressiveTarget, hv.RiskReward)

	return b.String()
}

// buildVetoRationale renders the explanation for a hard AVOID.
func buildVetoRationale(ctx *evalContext, h domain.Horizon, reason string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "AVOID (%s, %dd): %s.", h, h.Days(), reason)
	fmt.Fprintf(&b, " Altman Z %.2f, Beneish M %.2f.",
		ctx.in.Fundamentals.AltmanZ, ctx.in.Fundamentals.BeneishM)
	if ctx.in.Sector.CapitalIntensive {
		fmt.Fprintf(&b, " Sector %s is capital-intensive; the distress exemption does not cover this flag.",
			ctx.in.Sector.Name)
	}
	return b.String()
}

// healthLine summarizes the fundamental health check in one sentence.
func healthLine(f domain.FundamentalProfile) string {
	flags := []string{
		fmt.Sprintf("quality %.0f/100", f.QualityScore()),
		fmt.Sprintf("safety %.0f/100", f.RiskScore()),
	}
	if f.AltmanZ >= domain.AltmanSafe {
		flags = append(flags, fmt.Sprintf("Altman Z %.2f (safe)", f.AltmanZ))
	} else if f.AltmanZ > 0 {
		flags = append(flags, fmt.Sprintf("Altman Z %.2f (grey zone)", f.AltmanZ))
	}
	if f.PiotroskiF > 0 {
		flags = append(flags, fmt.Sprintf("Piotroski F %d/9", f.PiotroskiF))
	}
	if f.PledgePct > 0 {
		flags = append(flags, fmt.Sprintf("promoter pledge %.0f%%", f.PledgePct*100))
	}
	return "Fundamental health: " + strings.Join(flags, ", ") + "."
}
