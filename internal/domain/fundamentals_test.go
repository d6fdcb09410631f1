package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFundamentalProfile_Distressed(t *testing.T) {
	assert.True(t, FundamentalProfile{AltmanZ: 1.5}.Distressed())
	assert.False(t, FundamentalProfile{AltmanZ: 1.8}.Distressed())
	assert.False(t, FundamentalProfile{AltmanZ: 3.2}.Distressed())
}

func TestFundamentalProfile_ManipulationRisk(t *testing.T) {
	assert.True(t, FundamentalProfile{BeneishM: -1.0}.ManipulationRisk())
	assert.False(t, FundamentalProfile{BeneishM: -1.78}.ManipulationRisk())
	assert.False(t, FundamentalProfile{BeneishM: -2.5}.ManipulationRisk())
}

func TestQualityScore_HighQuality(t *testing.T) {
	p := FundamentalProfile{
		ROE:           0.22,
		DebtToEquity:  0.3,
		RevenueGrowth: 0.25,
		PERatio:       14,
		PiotroskiF:    8,
		AltmanZ:       4.0,
		BeneishM:      -2.5,
	}
	score := p.QualityScore()
	assert.Greater(t, score, 80.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestQualityScore_ManipulationPenalty(t *testing.T) {
	clean := FundamentalProfile{ROE: 0.15, DebtToEquity: 0.5, PiotroskiF: 5, AltmanZ: 2.5, BeneishM: -2.5}
	flagged := clean
	flagged.BeneishM = -1.0

	assert.InDelta(t, clean.QualityScore()-25, flagged.QualityScore(), 0.001)
}

func TestQualityScore_EmptyProfileIsNeutralish(t *testing.T) {
	// Only the debt term scores (full 20/20 for zero debt); everything else
	// missing. The ratio base normalizes to 100 for the one weight, then
	// the missing risk models (Z=0 → distressed, M=0 → flagged) drag it.
	p := FundamentalProfile{}
	score := p.QualityScore()
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestRiskScore_SafeBalance(t *testing.T) {
	p := FundamentalProfile{DebtToEquity: 0.2, AltmanZ: 3.5, BeneishM: -2.5, InterestCoverage: 12}
	// 50 + 20 (low debt) + 15 (safe Z) = 85
	assert.InDelta(t, 85.0, p.RiskScore(), 0.001)
}

func TestRiskScore_GovernanceRedFlags(t *testing.T) {
	p := FundamentalProfile{
		DebtToEquity:     2.5,
		AltmanZ:          1.2,
		BeneishM:         -1.0,
		PledgePct:        0.40,
		InterestCoverage: 1.0,
	}
	// 50 - 20 - 25 - 25 - 30 - 20 → clamped to 0
	assert.Equal(t, 0.0, p.RiskScore())
}
