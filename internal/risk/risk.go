// Package risk implements pre-trade admission control, position sizing,
// and the dynamic trailing stop. Everything here is pure and safe to call
// concurrently.
package risk

import (
	"fmt"
	"math"

	"github.com/Jay9714/project-gyan/internal/domain"
)

// Defaults for the hard risk gates and sizing.
const (
	DefaultMaxDrawdownPct = 0.05 // block entries past 5% total drawdown
	DefaultDailyLossPct   = 0.02 // block entries past 2% daily loss
	DefaultRiskPerTrade   = 0.01 // risk 1% of capital per trade
)

// Trailing multipliers by regime: tight trail in crash conditions, loose
// trail in a confirmed bull trend to avoid premature exits.
const (
	trailTight   = 1.0
	trailDefault = 2.0
	trailLoose   = 3.0
)

// Manager holds the configured risk limits.
type Manager struct {
	maxDrawdownPct float64
	dailyLossPct   float64
	riskPerTrade   float64
}

// New creates a Manager. Non-positive arguments fall back to the defaults.
func New(maxDrawdownPct, dailyLossPct, riskPerTrade float64) *Manager {
	if maxDrawdownPct <= 0 {
		maxDrawdownPct = DefaultMaxDrawdownPct
	}
	if dailyLossPct <= 0 {
		dailyLossPct = DefaultDailyLossPct
	}
	if riskPerTrade <= 0 {
		riskPerTrade = DefaultRiskPerTrade
	}
	return &Manager{
		maxDrawdownPct: maxDrawdownPct,
		dailyLossPct:   dailyLossPct,
		riskPerTrade:   riskPerTrade,
	}
}

// CheckEntryAllowance applies the two hard entry blocks: total drawdown
// against the opening balance, then the daily loss limit. The first failing
// check's reason is returned; there are no partial overrides.
func (m *Manager) CheckEntryAllowance(currentCapital, startCapital, dailyPnL float64) (bool, string) {
	if startCapital > 0 {
		dd := (startCapital - currentCapital) / startCapital
		if dd > m.maxDrawdownPct {
			return false, fmt.Sprintf("Total Drawdown Breach (%.1f%% > %.1f%%)",
				dd*100, m.maxDrawdownPct*100)
		}
	}

	lossThreshold := -(currentCapital * m.dailyLossPct)
	if dailyPnL < lossThreshold {
		return false, fmt.Sprintf("Daily Loss Limit Hit (%.2f < %.2f)",
			dailyPnL, lossThreshold)
	}

	return true, "OK"
}

// PositionSize computes share quantity so that a stop-out loses at most
// riskPerTrade of capital: floor(capital × risk / |entry − stop|), minimum
// 1 share when the risk distance is positive. A zero risk distance returns
// 0 and the caller must reject the order rather than divide by zero.
func (m *Manager) PositionSize(capital, entryPrice, stopPrice float64) int {
	riskPerShare := math.Abs(entryPrice - stopPrice)
	if riskPerShare == 0 {
		return 0
	}

	qty := int((capital * m.riskPerTrade) / riskPerShare)
	if qty < 1 {
		return 1
	}
	return qty
}

// TrailingStop computes the updated stop for a long position. The ATR
// multiplier depends on regime, and the result is the greater of the new
// and current stop: the trail only ever ratchets up.
func (m *Manager) TrailingStop(entryPrice, currentPrice, currentStop, atr float64, regime domain.Regime) float64 {
	mult := trailDefault
	switch regime {
	case domain.RegimeHighVolCrash, domain.RegimeVolatileCommodity:
		mult = trailTight
	case domain.RegimeBullTrend:
		mult = trailLoose
	}

	newStop := currentPrice - atr*mult
	if newStop > currentStop {
		return newStop
	}
	return currentStop
}
