package domain

// Regime is the broad market state used to scale trailing stops.
type Regime string

const (
	RegimeNeutral           Regime = "NEUTRAL"
	RegimeBullTrend         Regime = "BULL_TREND"
	RegimeBearTrend         Regime = "BEAR_TREND"
	RegimeHighVolCrash      Regime = "HIGH_VOL_CRASH"
	RegimeVolatileCommodity Regime = "VOLATILE_COMMODITY"
)

// DetectRegime classifies the index regime from EMA alignment and trend
// strength. ADX below 20 is the strongest filter: no trend, so neutral
// regardless of the moving averages.
func DetectRegime(price, ema50, ema200, adx float64) Regime {
	if adx < 20 {
		return RegimeNeutral
	}
	switch {
	case price > ema200 && ema50 > ema200:
		return RegimeBullTrend
	case price < ema200 && ema50 < ema200:
		return RegimeBearTrend
	default:
		return RegimeNeutral // choppy
	}
}
