package signal

import "github.com/Jay9714/project-gyan/internal/domain"

// Additive point weights for the base technical/fundamental score, on a
// 0-100 scale. These are documented constants, not silent literals: moving
// any of them moves verdicts.
const (
	ptsRSIOversold    = 15.0 // RSI below the oversold band
	ptsMACDBullish    = 15.0 // MACD line above signal
	ptsVolumeSpike    = 10.0
	ptsNearSupport    = 10.0 // price within 3% of support
	ptsNearResistance = -10.0
	ptsPiotroski      = 15.0 // F-Score >= 6
	ptsRevenueGrowth  = 10.0 // growth > 10%
	ptsSentiment      = 10.0 // sentiment > 0.1
	catalystScale     = 20.0 // catalyst in [0,1] scaled onto points

	rsiOversoldBand   = 35.0
	proximityBand     = 0.03 // support/resistance proximity, fraction
	sentimentPositive = 0.1
	growthStrong      = 0.10
	piotroskiQuality  = 6
)

// Base-verdict tiers on the 0-100 score.
const (
	tierStrongBuy  = 75.0
	tierBuy        = 50.0
	tierAccumulate = 30.0
	tierSell       = 20.0 // below this is SELL, between is HOLD
)

// combinedDivisor maps the 0-100 point score onto the 0-5 combined score
// the finalizer gates on (>=4 for STRONG BUY ⇔ >=80 points), keeping the
// two scales proportional.
const combinedDivisor = 20.0

// baseScore accumulates the additive technical + fundamental + sentiment
// + catalyst points for one evaluation.
func baseScore(in Input) float64 {
	score := 0.0
	f := in.Features

	if f.RSI > 0 && f.RSI < rsiOversoldBand {
		score += ptsRSIOversold
	}
	if f.MACDBullish() {
		score += ptsMACDBullish
	}
	if f.VolumeSpike {
		score += ptsVolumeSpike
	}
	if f.NearSupport(proximityBand) {
		score += ptsNearSupport
	}
	if f.NearResistance(proximityBand) {
		score += ptsNearResistance
	}

	if in.Fundamentals.PiotroskiF >= piotroskiQuality {
		score += ptsPiotroski
	}
	if in.Fundamentals.RevenueGrowth > growthStrong {
		score += ptsRevenueGrowth
	}

	if in.Sentiment > sentimentPositive {
		score += ptsSentiment
	}
	if in.Catalyst > 0 {
		score += in.Catalyst * catalystScale
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// baseVerdict maps the cumulative score to the pre-veto verdict tier.
func baseVerdict(score float64) domain.Verdict {
	switch {
	case score >= tierStrongBuy:
		return domain.VerdictStrongBuy
	case score >= tierBuy:
		return domain.VerdictBuy
	case score >= tierAccumulate:
		return domain.VerdictAccumulate
	case score < tierSell:
		return domain.VerdictSell
	default:
		return domain.VerdictHold
	}
}
