package domain

// Verdict is the closed set of actionable recommendations. Keeping it an
// enum (instead of free-form strings) makes illegal verdicts
// unrepresentable in the rest of the engine.
type Verdict int

const (
	VerdictStrongBuy Verdict = iota
	VerdictBuy
	VerdictAccumulate
	VerdictHold
	VerdictSell
	VerdictAvoid
	VerdictWaiting
)

func (v Verdict) String() string {
	switch v {
	case VerdictStrongBuy:
		return "STRONG BUY"
	case VerdictBuy:
		return "BUY"
	case VerdictAccumulate:
		return "ACCUMULATE"
	case VerdictHold:
		return "HOLD"
	case VerdictSell:
		return "SELL"
	case VerdictAvoid:
		return "AVOID"
	default:
		return "WAITING"
	}
}

// Bullish reports whether the verdict recommends adding exposure.
func (v Verdict) Bullish() bool {
	return v == VerdictStrongBuy || v == VerdictBuy || v == VerdictAccumulate
}

// Downgraded returns the verdict one tier lower for bearish-sector
// demotion: STRONG BUY → ACCUMULATE, BUY → HOLD. A downgrade never turns a
// bullish verdict into SELL/AVOID, and non-bullish verdicts pass through.
func (v Verdict) Downgraded() Verdict {
	switch v {
	case VerdictStrongBuy:
		return VerdictAccumulate
	case VerdictBuy:
		return VerdictHold
	default:
		return v
	}
}

// Horizon is the holding period a verdict targets, indexed in trading days.
type Horizon int

const (
	HorizonShort Horizon = iota // ~14 trading days
	HorizonMid                  // ~60 trading days
	HorizonLong                 // ~365 trading days
)

// Horizons lists all horizons in evaluation order.
var Horizons = []Horizon{HorizonShort, HorizonMid, HorizonLong}

func (h Horizon) String() string {
	switch h {
	case HorizonShort:
		return "short"
	case HorizonMid:
		return "mid"
	default:
		return "long"
	}
}

// Days returns the forecast offset in trading days for this horizon.
func (h Horizon) Days() int {
	switch h {
	case HorizonShort:
		return 14
	case HorizonMid:
		return 60
	default:
		return 365
	}
}

// StopATRMultiple is the ATR multiplier for the initial stop-loss. Longer
// horizons get wider stops, proportional to expected holding-period
// volatility.
func (h Horizon) StopATRMultiple() float64 {
	switch h {
	case HorizonShort:
		return 1.5
	case HorizonMid:
		return 2.5
	default:
		return 3.5
	}
}

// MomentumATRMultiple is the ATR multiplier used when the momentum override
// replaces a distrusted statistical forecast target.
func (h Horizon) MomentumATRMultiple() float64 {
	switch h {
	case HorizonShort:
		return 3
	case HorizonMid:
		return 8
	default:
		return 15
	}
}

// HorizonVerdict is the per-horizon output of the synthesizer.
type HorizonVerdict struct {
	Horizon          Horizon
	Verdict          Verdict
	Target           float64 // conservative target price
	AggressiveTarget float64
	StopLoss         float64
	RiskReward       float64 // |aggressive - price| / risk, 2 decimals
	UsingMomentum    bool    // target derived from trend instead of forecast
	Rationale        string
}

// MultiHorizonVerdict bundles the three horizon verdicts for one ticker.
type MultiHorizonVerdict struct {
	Ticker string
	Short  HorizonVerdict
	Mid    HorizonVerdict
	Long   HorizonVerdict
}

// With returns a copy with the verdict stored in its horizon slot.
func (m MultiHorizonVerdict) With(hv HorizonVerdict) MultiHorizonVerdict {
	switch hv.Horizon {
	case HorizonShort:
		m.Short = hv
	case HorizonMid:
		m.Mid = hv
	default:
		m.Long = hv
	}
	return m
}

// ByHorizon returns the verdict for the given horizon.
func (m MultiHorizonVerdict) ByHorizon(h Horizon) HorizonVerdict {
	switch h {
	case HorizonShort:
		return m.Short
	case HorizonMid:
		return m.Mid
	default:
		return m.Long
	}
}
