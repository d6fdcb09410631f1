package domain

// DefaultATRFraction is the fallback ATR when the indicator bundle is
// missing one: 2% of the current price. Documented because it changes stop
// and target placement, which changes verdicts.
const DefaultATRFraction = 0.02

// FeatureSnapshot is the per-ticker technical indicator bundle for one
// evaluation tick. Produced externally; immutable during an evaluation.
type FeatureSnapshot struct {
	Price       float64
	RSI         float64
	MACD        float64
	MACDSignal  float64
	ATR         float64
	EMA20       float64
	EMA50       float64
	EMA200      float64
	VolumeSpike bool
	Momentum7   float64 // 7-period momentum, fraction
	Support     float64
	Resistance  float64
}

// ATROrDefault returns the snapshot ATR, or 2% of price when the feed did
// not supply one.
func (f FeatureSnapshot) ATROrDefault() float64 {
	if f.ATR > 0 {
		return f.ATR
	}
	return f.Price * DefaultATRFraction
}

// MACDBullish reports a bullish MACD cross (line above signal).
func (f FeatureSnapshot) MACDBullish() bool {
	return f.MACD > f.MACDSignal
}

// NearSupport reports whether price sits within the given fraction of the
// support level.
func (f FeatureSnapshot) NearSupport(within float64) bool {
	if f.Support <= 0 {
		return false
	}
	return f.Price <= f.Support*(1+within)
}

// NearResistance reports whether price sits within the given fraction of
// the resistance level.
func (f FeatureSnapshot) NearResistance(within float64) bool {
	if f.Resistance <= 0 {
		return false
	}
	return f.Price >= f.Resistance*(1-within)
}

// ForecastCurve is a sequence of externally predicted prices indexed by
// trading-day offset from today. Horizon targets read offsets 14/60/365.
type ForecastCurve []float64

// At returns the predicted price at the given trading-day offset. A missing
// or non-positive row falls back to the supplied current price, which
// implies zero upside and lets the verdict degrade toward HOLD instead of
// failing the evaluation.
func (c ForecastCurve) At(offset int, current float64) float64 {
	if offset < 0 || offset >= len(c) {
		return current
	}
	if v := c[offset]; v > 0 {
		return v
	}
	return current
}
