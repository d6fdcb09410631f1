package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupSector_CapitalIntensive(t *testing.T) {
	for _, name := range []string{
		"Real Estate",
		"PSU Banking",
		"Power Generation",
		"Telecom Services",
		"NBFC",
		"Infrastructure",
	} {
		ctx := LookupSector(name, SectorNeutral)
		assert.True(t, ctx.CapitalIntensive, name)
	}
}

func TestLookupSector_NotCapitalIntensive(t *testing.T) {
	for _, name := range []string{"IT", "Pharma", "FMCG", "Auto"} {
		ctx := LookupSector(name, SectorBullish)
		assert.False(t, ctx.CapitalIntensive, name)
	}
}

func TestLookupSector_PreservesStatus(t *testing.T) {
	ctx := LookupSector("Metal", SectorBearish)
	assert.Equal(t, SectorBearish, ctx.Status)
	assert.Equal(t, "Metal", ctx.Name)
}

func TestSectorTrendScore_Bullish(t *testing.T) {
	// price above SMA-50, golden alignment, RSI in the healthy band:
	// 50 + 20 + 10 + 10 = 90
	score, status := SectorTrendScore(105, 100, 95, 60)
	assert.Equal(t, 90.0, score)
	assert.Equal(t, SectorBullish, status)
}

func TestSectorTrendScore_OverboughtCapsScore(t *testing.T) {
	// RSI 75 adds +10 (>50) then takes -10 back (>70): 50+20+10 = 80
	score, status := SectorTrendScore(105, 100, 95, 75)
	assert.Equal(t, 80.0, score)
	assert.Equal(t, SectorBullish, status)
}

func TestSectorTrendScore_Bearish(t *testing.T) {
	// downtrend + panic RSI: 50 - 10 = 40 → BEARISH boundary
	score, status := SectorTrendScore(90, 100, 110, 25)
	assert.Equal(t, 40.0, score)
	assert.Equal(t, SectorBearish, status)
}

func TestDetectRegime(t *testing.T) {
	assert.Equal(t, RegimeNeutral, DetectRegime(100, 98, 95, 15)) // ADX filter wins
	assert.Equal(t, RegimeBullTrend, DetectRegime(100, 98, 95, 30))
	assert.Equal(t, RegimeBearTrend, DetectRegime(90, 93, 95, 30))
	assert.Equal(t, RegimeNeutral, DetectRegime(96, 94, 95, 30)) // mixed alignment
}
