// Package signal turns heterogeneous per-ticker inputs (technical
// features, fundamentals, a statistical forecast, sentiment, sector
// context, and an optional catalyst) into one verdict per investment
// horizon.
//
// The verdict pipeline is an ordered rule list evaluated short-circuit:
// hard vetoes first, then the scoring finalizer. The ordering is the
// dominance contract: a veto can never be outvoted by points.
package signal

import (
	"math"

	"github.com/Jay9714/project-gyan/internal/domain"
)

// Input is everything the synthesizer needs for one ticker. All fields are
// immutable during an evaluation; missing pieces degrade via documented
// defaults instead of failing.
type Input struct {
	Ticker       string
	Features     domain.FeatureSnapshot
	Fundamentals domain.FundamentalProfile
	Sentiment    float64 // [-1, 1]
	Forecast     domain.ForecastCurve
	Sector       domain.SectorContext
	Catalyst     float64 // [0, 1], 0 = no catalyst
}

// Config tunes synthesizer behavior.
type Config struct {
	// MomentumPerHorizon re-evaluates the momentum-override condition
	// against each horizon's own forecast point. When false (default, the
	// original behavior) the condition is checked once against the short
	// horizon and applied to all three.
	MomentumPerHorizon bool
}

// Synthesizer produces multi-horizon verdicts. Stateless and safe for
// concurrent use.
type Synthesizer struct {
	cfg Config
}

// New creates a Synthesizer.
func New(cfg Config) *Synthesizer {
	return &Synthesizer{cfg: cfg}
}

// evalContext carries the once-per-evaluation computations shared by all
// horizons.
type evalContext struct {
	in       Input
	price    float64
	atr      float64
	score    float64 // 0-100 additive points
	combined float64 // score / 20, the 0-5 gate scale
	base     domain.Verdict
	momentum bool // short-horizon momentum-override condition
}

// rule inspects the context for one horizon and either emits a final
// verdict (vetoes) or passes to the next rule. The last rule always emits.
type rule func(ctx *evalContext, h domain.Horizon) (domain.HorizonVerdict, bool)

// rules returns the ordered rule list. Veto rules come first and always
// dominate; the finalizer runs last and never declines.
func (s *Synthesizer) rules() []rule {
	return []rule{
		s.distressVeto,
		s.manipulationVeto,
		s.finalize,
	}
}

// Synthesize evaluates one ticker across the three horizons. It never
// fails: with no usable price it returns WAITING verdicts so downstream
// consumers always have a value.
func (s *Synthesizer) Synthesize(in Input) domain.MultiHorizonVerdict {
	out := domain.MultiHorizonVerdict{Ticker: in.Ticker}

	if in.Features.Price <= 0 {
		for _, h := range domain.Horizons {
			out = out.With(waitingVerdict(h))
		}
		return out
	}

	ctx := &evalContext{
		in:    in,
		price: in.Features.Price,
		atr:   in.Features.ATROrDefault(),
		score: baseScore(in),
	}
	ctx.combined = ctx.score / combinedDivisor
	ctx.base = baseVerdict(ctx.score)
	ctx.momentum = momentumCondition(in, domain.HorizonShort)

	rules := s.rules()
	for _, h := range domain.Horizons {
		for _, r := range rules {
			if hv, done := r(ctx, h); done {
				out = out.With(hv)
				break
			}
		}
	}
	return out
}

// distressVeto forces AVOID on an Altman Z in the bankruptcy zone, unless
// the sector is capital-intensive: those business models structurally
// carry the debt that the Z-score reads as distress.
func (s *Synthesizer) distressVeto(ctx *evalContext, h domain.Horizon) (domain.HorizonVerdict, bool) {
	if ctx.in.Fundamentals.Distressed() && !ctx.in.Sector.CapitalIntensive {
		return s.avoid(ctx, h, rationaleDistress), true
	}
	return domain.HorizonVerdict{}, false
}

// manipulationVeto forces AVOID on a flagged Beneish M. No sector
// exemption: earnings manipulation has no capital-intensity excuse.
func (s *Synthesizer) manipulationVeto(ctx *evalContext, h domain.Horizon) (domain.HorizonVerdict, bool) {
	if ctx.in.Fundamentals.ManipulationRisk() {
		return s.avoid(ctx, h, rationaleManipulation), true
	}
	return domain.HorizonVerdict{}, false
}

// finalize is the terminal rule: it derives the decision target (forecast
// or momentum), maps upside + combined score to a verdict, applies the
// bearish-sector downgrade, and attaches stop/target levels.
func (s *Synthesizer) finalize(ctx *evalContext, h domain.Horizon) (domain.HorizonVerdict, bool) {
	price, atr := ctx.price, ctx.atr

	useMomentum := ctx.momentum
	if s.cfg.MomentumPerHorizon {
		useMomentum = momentumCondition(ctx.in, h)
	}

	decisionTarget := ctx.in.Forecast.At(h.Days(), price)
	if useMomentum {
		decisionTarget = price + atr*h.MomentumATRMultiple()
	}
	upside := (decisionTarget - price) / price

	var v domain.Verdict
	switch {
	case useMomentum:
		// Trend + qualitative signal outvoted the statistical forecast;
		// still demand a minimum combined score for conviction.
		if ctx.combined >= 2 {
			v = domain.VerdictBuy
		} else {
			v = domain.VerdictAccumulate
		}
	case decisionTarget < price:
		// never sell on a marginal dip
		if upside < -0.02 {
			v = domain.VerdictSell
		} else {
			v = domain.VerdictHold
		}
	default:
		switch {
		case upside > 0.15 && ctx.combined >= 4:
			v = domain.VerdictStrongBuy
		case upside > 0.05 && ctx.combined >= 3.5:
			v = domain.VerdictBuy
		case ctx.combined >= 2:
			v = domain.VerdictAccumulate
		default:
			v = domain.VerdictHold
		}
	}

	// A bearish sector demotes bullish verdicts one tier, never upgrades.
	if ctx.in.Sector.Status == domain.SectorBearish {
		v = v.Downgraded()
	}

	bearishStance := v == domain.VerdictSell
	stop, target, aggressive, rr := levels(price, atr, h, bearishStance)

	hv := domain.HorizonVerdict{
		Horizon:          h,
		Verdict:          v,
		Target:           target,
		AggressiveTarget: aggressive,
		StopLoss:         stop,
		RiskReward:       rr,
		UsingMomentum:    useMomentum,
	}
	hv.Rationale = buildRationale(ctx, h, hv, decisionTarget)
	return hv, true
}

// avoid builds the veto verdict: bear-stance levels so the output never
// advertises buy-side upside.
func (s *Synthesizer) avoid(ctx *evalContext, h domain.Horizon, reason string) domain.HorizonVerdict {
	stop, target, aggressive, rr := levels(ctx.price, ctx.atr, h, true)
	hv := domain.HorizonVerdict{
		Horizon:          h,
		Verdict:          domain.VerdictAvoid,
		Target:           target,
		AggressiveTarget: aggressive,
		StopLoss:         stop,
		RiskReward:       rr,
	}
	hv.Rationale = buildVetoRationale(ctx, h, reason)
	return hv
}

// momentumCondition detects the turnaround setup: price riding above its
// 50-period EMA with positive sentiment while the statistical forecast for
// the horizon sits below the current price. When all three hold, the
// engine distrusts the point forecast and swaps in an ATR-multiple target.
func momentumCondition(in Input, h domain.Horizon) bool {
	f := in.Features
	if f.EMA50 <= 0 || f.Price <= f.EMA50 {
		return false
	}
	if in.Sentiment <= sentimentPositive {
		return false
	}
	return in.Forecast.At(h.Days(), f.Price) < f.Price
}

// levels derives the stop and the R-multiple targets for one horizon.
// risk = |price − stop|, with a 5%-of-price fallback when the stop lands
// exactly on price; conservative = 2R, aggressive = 3.5R. For a bearish
// stance the levels mirror below the price.
func levels(price, atr float64, h domain.Horizon, bearish bool) (stop, target, aggressive, rr float64) {
	dist := atr * h.StopATRMultiple()

	if bearish {
		stop = price + dist
	} else {
		stop = price - dist
	}

	risk := math.Abs(price - stop)
	if risk == 0 {
		risk = price * 0.05
	}

	if bearish {
		target = price - 2*risk
		aggressive = price - 3.5*risk
	} else {
		target = price + 2*risk
		aggressive = price + 3.5*risk
	}

	rr = round2(math.Abs(aggressive-price) / risk)
	return round2(stop), round2(target), round2(aggressive), rr
}

func waitingVerdict(h domain.Horizon) domain.HorizonVerdict {
	return domain.HorizonVerdict{
		Horizon:   h,
		Verdict:   domain.VerdictWaiting,
		Rationale: "Waiting: no usable price in the feature snapshot.",
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
