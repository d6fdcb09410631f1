package signal

import (
	"testing"

	"github.com/Jay9714/project-gyan/internal/domain"
	"github.com/stretchr/testify/assert"
)

// healthyFundamentals passes both balance-sheet vetoes. The zero value of
// FundamentalProfile fails both (Z=0 is distressed, M=0 is flagged), so
// fixtures must be explicit.
func healthyFundamentals() domain.FundamentalProfile {
	return domain.FundamentalProfile{AltmanZ: 3.5, BeneishM: -2.5}
}

// strongBuyInput lines up every additive signal:
// RSI 15 + MACD 15 + volume 10 + support 10 + Piotroski 15 + growth 10
// + catalyst 0.45×20=9 → 84 points, combined 4.2.
func strongBuyInput() Input {
	fund := healthyFundamentals()
	fund.PiotroskiF = 8
	fund.RevenueGrowth = 0.15

	forecast := make(domain.ForecastCurve, 15)
	forecast[14] = 116 // +16% at the short-horizon point

	return Input{
		Ticker: "RELIANCE",
		Features: domain.FeatureSnapshot{
			Price:       100,
			RSI:         30,
			MACD:        1.2,
			MACDSignal:  0.8,
			ATR:         2,
			VolumeSpike: true,
			Support:     98,
			Resistance:  130,
		},
		Fundamentals: fund,
		Sentiment:    0.05,
		Forecast:     forecast,
		Sector:       domain.SectorContext{Name: "Energy", Status: domain.SectorNeutral},
		Catalyst:     0.45,
	}
}

func TestSynthesize_StrongBuy(t *testing.T) {
	s := New(Config{})
	out := s.Synthesize(strongBuyInput())

	// 84 pts → combined 4.2 ≥ 4, upside 16% > 15%
	assert.Equal(t, domain.VerdictStrongBuy, out.Short.Verdict)
	assert.False(t, out.Short.UsingMomentum)

	// stop = 100 − 2×1.5 = 97, risk 3 → targets 106 / 110.5
	assert.Equal(t, 97.0, out.Short.StopLoss)
	assert.Equal(t, 106.0, out.Short.Target)
	assert.Equal(t, 110.5, out.Short.AggressiveTarget)
	assert.Equal(t, 3.5, out.Short.RiskReward)

	// no forecast row at 60d → target falls back to price, zero upside,
	// combined ≥ 2 keeps it at ACCUMULATE
	assert.Equal(t, domain.VerdictAccumulate, out.Mid.Verdict)
}

func TestSynthesize_DistressVetoDominates(t *testing.T) {
	in := strongBuyInput()
	in.Fundamentals.AltmanZ = 1.2 // distress zone

	out := New(Config{}).Synthesize(in)

	// perfect technicals cannot outvote the veto, on any horizon
	for _, h := range domain.Horizons {
		hv := out.ByHorizon(h)
		assert.Equal(t, domain.VerdictAvoid, hv.Verdict, "horizon %s", h)
		assert.Contains(t, hv.Rationale, "Altman")
	}

	// bear-stance levels: stop above price
	assert.Greater(t, out.Short.StopLoss, 100.0)
	assert.Less(t, out.Short.Target, 100.0)
}

func TestSynthesize_CapitalIntensiveSectorExemptsAltman(t *testing.T) {
	in := strongBuyInput()
	in.Fundamentals.AltmanZ = 1.2
	in.Sector = domain.SectorContext{Name: "Infrastructure", Status: domain.SectorNeutral, CapitalIntensive: true}

	out := New(Config{}).Synthesize(in)

	assert.NotEqual(t, domain.VerdictAvoid, out.Short.Verdict)
	assert.Equal(t, domain.VerdictStrongBuy, out.Short.Verdict)
}

func TestSynthesize_CapitalIntensive_AltmanExempt_BeneishStillVetoes(t *testing.T) {
	in := strongBuyInput()
	in.Fundamentals.AltmanZ = 1.2
	in.Fundamentals.BeneishM = -1.0 // above -1.78 cutoff
	in.Sector = domain.SectorContext{Name: "Infrastructure", Status: domain.SectorNeutral, CapitalIntensive: true}

	out := New(Config{}).Synthesize(in)

	for _, h := range domain.Horizons {
		assert.Equal(t, domain.VerdictAvoid, out.ByHorizon(h).Verdict, "horizon %s", h)
	}
	assert.Contains(t, out.Short.Rationale, "Beneish")
}

func TestSynthesize_BearishSectorDowngrades(t *testing.T) {
	in := strongBuyInput()
	in.Sector.Status = domain.SectorBearish

	out := New(Config{}).Synthesize(in)

	// STRONG BUY demotes one tier to ACCUMULATE, never to SELL
	assert.Equal(t, domain.VerdictAccumulate, out.Short.Verdict)
	assert.Contains(t, out.Short.Rationale, "demoted")
}

func momentumInput() Input {
	fund := healthyFundamentals()
	fund.PiotroskiF = 7

	forecast := make(domain.ForecastCurve, 15)
	forecast[14] = 95 // forecast below price: distrusted in an uptrend

	return Input{
		Ticker: "TATAMOTORS",
		Features: domain.FeatureSnapshot{
			Price:       100,
			RSI:         55,
			MACD:        0.9,
			MACDSignal:  0.4,
			ATR:         2,
			EMA50:       92,
			VolumeSpike: true,
		},
		Fundamentals: fund,
		Sentiment:    0.3,
		Forecast:     forecast,
		Sector:       domain.SectorContext{Name: "Auto", Status: domain.SectorNeutral},
	}
}

func TestSynthesize_MomentumOverride(t *testing.T) {
	// MACD 15 + volume 10 + Piotroski 15 + sentiment 10 = 50 → combined 2.5
	out := New(Config{}).Synthesize(momentumInput())

	assert.True(t, out.Short.UsingMomentum)
	assert.Equal(t, domain.VerdictBuy, out.Short.Verdict)
	assert.Contains(t, out.Short.Rationale, "Momentum override")

	// single short-horizon check propagates to all horizons by default
	assert.True(t, out.Mid.UsingMomentum)
	assert.True(t, out.Long.UsingMomentum)
}

func TestSynthesize_MomentumPerHorizon(t *testing.T) {
	out := New(Config{MomentumPerHorizon: true}).Synthesize(momentumInput())

	assert.True(t, out.Short.UsingMomentum)
	// no 60d forecast row → falls back to price, not strictly below it, so
	// the mid horizon keeps the statistical path
	assert.False(t, out.Mid.UsingMomentum)
}

func TestSynthesize_MomentumLowConviction(t *testing.T) {
	in := momentumInput()
	// strip the score down to sentiment alone: 10 pts → combined 0.5 < 2
	in.Features.MACD = 0
	in.Features.MACDSignal = 0.5
	in.Features.VolumeSpike = false
	in.Fundamentals.PiotroskiF = 0

	out := New(Config{}).Synthesize(in)

	assert.True(t, out.Short.UsingMomentum)
	assert.Equal(t, domain.VerdictAccumulate, out.Short.Verdict)
}

func TestSynthesize_ForecastDownturnSells(t *testing.T) {
	forecast := make(domain.ForecastCurve, 15)
	forecast[14] = 90 // -10%, past the -2% tolerance

	out := New(Config{}).Synthesize(Input{
		Ticker:       "YESBANK",
		Features:     domain.FeatureSnapshot{Price: 100, ATR: 2},
		Fundamentals: healthyFundamentals(),
		Forecast:     forecast,
	})

	assert.Equal(t, domain.VerdictSell, out.Short.Verdict)
	// sell stance mirrors the levels below price: stop 103, targets 94 / 89.5
	assert.Equal(t, 103.0, out.Short.StopLoss)
	assert.Equal(t, 94.0, out.Short.Target)
	assert.Equal(t, 89.5, out.Short.AggressiveTarget)
}

func TestSynthesize_MarginalDipHolds(t *testing.T) {
	forecast := make(domain.ForecastCurve, 15)
	forecast[14] = 99 // -1%, inside the -2% tolerance

	out := New(Config{}).Synthesize(Input{
		Ticker:       "INFY",
		Features:     domain.FeatureSnapshot{Price: 100, ATR: 2},
		Fundamentals: healthyFundamentals(),
		Forecast:     forecast,
	})

	assert.Equal(t, domain.VerdictHold, out.Short.Verdict)
}

func TestSynthesize_NoPriceWaits(t *testing.T) {
	out := New(Config{}).Synthesize(Input{Ticker: "NEWIPO"})

	for _, h := range domain.Horizons {
		assert.Equal(t, domain.VerdictWaiting, out.ByHorizon(h).Verdict, "horizon %s", h)
	}
}

func TestSynthesize_MissingATRDefaultsToTwoPercent(t *testing.T) {
	in := strongBuyInput()
	in.Features.ATR = 0

	out := New(Config{}).Synthesize(in)

	// default ATR = 2% of 100 = 2 → same stop as the explicit fixture
	assert.Equal(t, 97.0, out.Short.StopLoss)
}

func TestBaseScore_ClampsAtBounds(t *testing.T) {
	in := strongBuyInput()
	in.Sentiment = 0.5 // +10 on top of 84
	in.Catalyst = 1.0  // catalyst climbs from 9 to 20
	assert.Equal(t, 100.0, baseScore(in))

	assert.Equal(t, 0.0, baseScore(Input{
		Features: domain.FeatureSnapshot{Price: 100, Resistance: 101},
	}))
}

func TestBaseVerdict_Tiers(t *testing.T) {
	assert.Equal(t, domain.VerdictStrongBuy, baseVerdict(80))
	assert.Equal(t, domain.VerdictBuy, baseVerdict(60))
	assert.Equal(t, domain.VerdictAccumulate, baseVerdict(35))
	assert.Equal(t, domain.VerdictHold, baseVerdict(25))
	assert.Equal(t, domain.VerdictSell, baseVerdict(10))
}
