package domain

// Thresholds for the three balance-sheet risk models. These are the
// canonical published cutoffs, not tunables.
const (
	AltmanDistress = 1.8   // Z below this signals bankruptcy risk
	AltmanSafe     = 3.0   // Z above this signals a safe balance sheet
	BeneishFlag    = -1.78 // M above this flags earnings-manipulation risk
)

// FundamentalProfile is the per-ticker fundamental ratio bundle plus the
// three composite risk scores. Refreshed at a lower cadence than features.
type FundamentalProfile struct {
	ROE           float64
	DebtToEquity  float64
	RevenueGrowth float64 // fraction, year over year
	PERatio       float64
	DividendYield float64

	// Governance / solvency extras
	InterestCoverage float64 // EBIT / interest expense
	PledgePct        float64 // promoter shares pledged, fraction

	PiotroskiF int     // 0-9, higher is better
	AltmanZ    float64 // bankruptcy proxy
	BeneishM   float64 // earnings-manipulation proxy
}

// Distressed reports an Altman Z in the bankruptcy-risk zone.
func (p FundamentalProfile) Distressed() bool {
	return p.AltmanZ < AltmanDistress
}

// ManipulationRisk reports a Beneish M above the manipulation cutoff.
func (p FundamentalProfile) ManipulationRisk() bool {
	return p.BeneishM > BeneishFlag
}

// QualityScore blends ratios and risk models into a 0-100 fundamental
// quality score. Piotroski lifts or drags the base, a safe Altman Z adds,
// distress subtracts, and a flagged Beneish M takes a heavy penalty.
func (p FundamentalProfile) QualityScore() float64 {
	score := p.ratioScore()

	switch {
	case p.PiotroskiF >= 7:
		score += 10
	case p.PiotroskiF <= 3:
		score -= 10
	}

	switch {
	case p.AltmanZ > AltmanSafe:
		score += 5
	case p.Distressed():
		score -= 20
	}

	if p.ManipulationRisk() {
		score -= 25
	}

	return clamp(score, 0, 100)
}

// RiskScore is a 0-100 safety score (higher is safer) built from leverage,
// the Altman/Beneish models, and the governance extras.
func (p FundamentalProfile) RiskScore() float64 {
	score := 50.0

	switch {
	case p.DebtToEquity < 0.5:
		score += 20
	case p.DebtToEquity > 2.0:
		score -= 20
	}

	switch {
	case p.AltmanZ > AltmanSafe:
		score += 15
	case p.Distressed():
		score -= 25
	}

	if p.ManipulationRisk() {
		score -= 25
	}

	if p.PledgePct > 0.25 {
		score -= 30 // governance red flag
	}
	if p.InterestCoverage > 0 && p.InterestCoverage < 1.5 {
		score -= 20 // solvency risk
	}

	return clamp(score, 0, 100)
}

// ratioScore scores the raw ratios on a 0-100 scale, normalizing by how
// many ratios were actually available so a sparse profile is not punished.
func (p FundamentalProfile) ratioScore() float64 {
	score := 0.0
	weights := 0.0

	if p.ROE != 0 {
		weights++
		score += clamp(p.ROE*100, 0, 20)
	}

	weights++
	score += clamp(20-p.DebtToEquity*10, 0, 20)

	if p.RevenueGrowth != 0 {
		weights++
		switch {
		case p.RevenueGrowth > 0.20:
			score += 20
		case p.RevenueGrowth > 0.10:
			score += 15
		case p.RevenueGrowth > 0.05:
			score += 10
		}
	}

	if p.DividendYield > 0 {
		weights++
		switch {
		case p.DividendYield > 0.04:
			score += 20
		case p.DividendYield > 0.02:
			score += 15
		default:
			score += 10
		}
	}

	if p.PERatio > 0 {
		weights++
		switch {
		case p.PERatio < 15:
			score += 20 // deep value
		case p.PERatio < 25:
			score += 15
		case p.PERatio < 40:
			score += 10
		default:
			score += 5 // expensive
		}
	}

	if weights == 0 {
		return 50.0
	}
	return clamp(score/(weights*20)*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
