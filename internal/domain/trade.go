package domain

import "time"

// Direction is the side of a trade.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// Reversed returns the opposite side, used to price the exit leg of a
// round trip.
func (d Direction) Reversed() Direction {
	if d == DirectionBuy {
		return DirectionSell
	}
	return DirectionBuy
}

// TradeStatus is the order lifecycle state. There is no PENDING or
// CANCELLED: an order is synchronously admitted-and-filled or rejected
// before a Trade exists.
type TradeStatus string

const (
	StatusOpen   TradeStatus = "OPEN"
	StatusClosed TradeStatus = "CLOSED" // terminal; the trade is immutable after this
)

// InstrumentType selects the cost schedule and margin treatment.
type InstrumentType string

const (
	EquityIntraday   InstrumentType = "EQUITY_INTRADAY"
	EquityDelivery   InstrumentType = "EQUITY_DELIVERY"
	Futures          InstrumentType = "FUTURES"
	Options          InstrumentType = "OPTIONS"
	CommodityFutures InstrumentType = "COMMODITY_FUTURES"
	CommodityOptions InstrumentType = "COMMODITY_OPTIONS"
	CurrencyFutures  InstrumentType = "CURRENCY_FUTURES"
)

// Intraday reports whether the instrument settles same-day and therefore
// only blocks a margin fraction of the notional.
func (i InstrumentType) Intraday() bool {
	return i == EquityIntraday
}

// MarginFactor is the fraction of notional blocked when opening a
// position: full notional for delivery-style instruments, 20% as a
// simplified margin proxy for intraday.
func (i InstrumentType) MarginFactor() float64 {
	if i.Intraday() {
		return 0.2
	}
	return 1.0
}

// Trade is an admitted, filled position owned by the OMS. Only the stop
// may change while OPEN (trailing); CloseTrade is the only transition to
// CLOSED.
type Trade struct {
	ID         string
	Ticker     string
	Direction  Direction
	EntryPrice float64
	Quantity   int
	StopLoss   float64
	TakeProfit float64
	Instrument InstrumentType
	Status     TradeStatus
	EntryTime  time.Time
	ExitTime   *time.Time
	ExitPrice  float64
	EntryCost  float64 // transaction cost recorded at open
	PnL        float64 // net realized, set only on close
}

// Notional is entry price × quantity.
func (t Trade) Notional() float64 {
	return t.EntryPrice * float64(t.Quantity)
}

// RawPnL is the gross profit at the given exit price, sign-flipped for
// short trades. Costs are not included.
func (t Trade) RawPnL(exitPrice float64) float64 {
	pnl := (exitPrice - t.EntryPrice) * float64(t.Quantity)
	if t.Direction == DirectionSell {
		pnl = -pnl
	}
	return pnl
}

// CapitalLedger is the process-wide capital state. Owned exclusively by
// the OMS; every mutation happens under its lock and inside a repository
// transaction.
type CapitalLedger struct {
	Capital      float64
	StartCapital float64 // opening balance, baseline for drawdown checks
	RealizedPnL  float64
}

// Quote is the per-ticker price context used by trailing-stop sweeps.
type Quote struct {
	Price  float64
	ATR    float64
	Regime Regime
}
