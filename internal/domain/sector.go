package domain

import "strings"

// SectorStatus is the trend tag for a sector index.
type SectorStatus int

const (
	SectorNeutral SectorStatus = iota
	SectorBullish
	SectorBearish
)

func (s SectorStatus) String() string {
	switch s {
	case SectorBullish:
		return "BULLISH"
	case SectorBearish:
		return "BEARISH"
	default:
		return "NEUTRAL"
	}
}

// SectorContext is the resolved sector view used by the synthesizer:
// the capital-intensive classification is computed once here, not
// re-matched ad hoc inside the rules.
type SectorContext struct {
	Name             string
	Status           SectorStatus
	CapitalIntensive bool
}

// capitalIntensiveKeywords marks sectors whose business model structurally
// carries heavy debt, exempting them from the Altman Z distress veto.
var capitalIntensiveKeywords = []string{
	"real estate",
	"banking",
	"bank",
	"utilities",
	"infrastructure",
	"infra",
	"power",
	"telecom",
	"capital goods",
	"construction",
	"insurance",
	"nbfc",
	"industrials",
}

// LookupSector resolves a sector name and trend status into a SectorContext,
// classifying capital intensity by case-insensitive substring match against
// the fixed keyword set.
func LookupSector(name string, status SectorStatus) SectorContext {
	lower := strings.ToLower(name)
	ctx := SectorContext{Name: name, Status: status}
	for _, kw := range capitalIntensiveKeywords {
		if strings.Contains(lower, kw) {
			ctx.CapitalIntensive = true
			break
		}
	}
	return ctx
}

// SectorTrendScore converts sector-index indicators into a trend score and
// status. Base 50; trend adds (price above SMA-50, golden alignment),
// momentum adds around RSI 50 and subtracts at the overbought/panic bands.
// Score >= 70 is BULLISH, <= 40 is BEARISH.
func SectorTrendScore(price, sma50, sma200, rsi float64) (float64, SectorStatus) {
	score := 50.0

	if price > sma50 {
		score += 20
	}
	if sma50 > sma200 {
		score += 10
	}

	if rsi > 50 {
		score += 10
	}
	if rsi > 70 {
		score -= 10 // overbought
	}
	if rsi < 30 {
		score -= 10 // oversold panic
	}

	switch {
	case score >= 70:
		return score, SectorBullish
	case score <= 40:
		return score, SectorBearish
	default:
		return score, SectorNeutral
	}
}
