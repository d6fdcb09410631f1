// Package oms owns the order lifecycle: admission, sizing, the capital
// ledger, trailing stops, and closes. It is the only writer of trades and
// capital; everything else observes.
package oms

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Jay9714/project-gyan/internal/domain"
	"github.com/Jay9714/project-gyan/internal/ports"
	"github.com/Jay9714/project-gyan/internal/risk"
)

// RejectCode classifies why an order was declined. A rejection is a
// business outcome, not a failure: capital and the trade log are untouched.
type RejectCode string

const (
	RejectInactive          RejectCode = "inactive"
	RejectRiskBlock         RejectCode = "risk-block"
	RejectZeroQuantity      RejectCode = "zero-quantity"
	RejectInsufficientFunds RejectCode = "insufficient-funds"
)

// Rejection is the typed error for declined orders. Callers discriminate
// it from store failures with errors.As; a non-Rejection error from
// PlaceOrder means state may be unrecorded and the engine must not retry
// blindly.
type Rejection struct {
	Code   RejectCode
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("order rejected (%s): %s", r.Code, r.Reason)
}

func reject(code RejectCode, format string, args ...any) error {
	return &Rejection{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// OrderRequest is the intake for PlaceOrder. Quantity is absent on
// purpose: sizing belongs to the risk manager, not the caller.
type OrderRequest struct {
	Ticker     string
	Direction  domain.Direction
	Price      float64
	StopLoss   float64
	TakeProfit float64
	Instrument domain.InstrumentType
}

// Status is the snapshot returned by OMS.Status.
type Status struct {
	Active    bool
	Ledger    domain.CapitalLedger
	OpenCount int
	Exposure  float64 // sum of open-position notionals
}

// OMS serializes every order operation behind one mutex. Throughput is not
// a concern at this scale; losing a capital update is.
type OMS struct {
	repo  ports.Repository
	risk  *risk.Manager
	costs ports.CostModel
	log   *slog.Logger

	mu sync.Mutex
}

// New creates the OMS.
func New(repo ports.Repository, riskMgr *risk.Manager, costs ports.CostModel, log *slog.Logger) *OMS {
	return &OMS{repo: repo, risk: riskMgr, costs: costs, log: log}
}

// Start flips the engine active so orders are accepted.
func (o *OMS) Start(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.repo.SetActive(ctx, true); err != nil {
		return fmt.Errorf("oms.Start: %w", err)
	}
	o.log.Info("oms started")
	return nil
}

// Stop halts order intake. Open positions keep trailing and can be closed.
func (o *OMS) Stop(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.repo.SetActive(ctx, false); err != nil {
		return fmt.Errorf("oms.Stop: %w", err)
	}
	o.log.Info("oms stopped")
	return nil
}

// Status reports the active flag, the ledger, and open exposure.
func (o *OMS) Status(ctx context.Context) (Status, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	active, err := o.repo.Active(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("oms.Status: %w", err)
	}
	ledger, err := o.repo.LoadLedger(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("oms.Status: %w", err)
	}
	trades, err := o.repo.Trades(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("oms.Status: %w", err)
	}

	st := Status{Active: active, Ledger: ledger}
	for _, t := range trades {
		if t.Status == domain.StatusOpen {
			st.OpenCount++
			st.Exposure += t.Notional()
		}
	}
	return st, nil
}

// PlaceOrder runs the admission pipeline: active flag, risk allowance,
// sizing, cost + margin funding. An admitted order is synchronously
// "filled" at the requested price, recorded, and the ledger debited for
// margin plus costs in the same step.
//
// The drawdown gate measures equity (free capital plus the margin blocked
// in open positions) against the opening balance, so deployed capital does
// not read as a loss. Sizing and the funding check run against free
// capital, the money actually available for the new position. The daily
// loss figure is derived from trades closed on the current UTC day, so the
// gate's window survives restarts.
func (o *OMS) PlaceOrder(ctx context.Context, req OrderRequest) (domain.Trade, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	active, err := o.repo.Active(ctx)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("oms.PlaceOrder: active flag: %w", err)
	}
	if !active {
		return domain.Trade{}, reject(RejectInactive, "engine is not accepting orders")
	}

	ledger, err := o.repo.LoadLedger(ctx)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("oms.PlaceOrder: load ledger: %w", err)
	}
	trades, err := o.repo.Trades(ctx)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("oms.PlaceOrder: load trades: %w", err)
	}

	equity := ledger.Capital + blockedMargin(trades)
	dailyPnL := realizedToday(trades, time.Now().UTC())
	allowed, reason := o.risk.CheckEntryAllowance(equity, ledger.StartCapital, dailyPnL)
	if !allowed {
		o.log.Warn("order blocked by risk gate", "ticker", req.Ticker, "reason", reason)
		return domain.Trade{}, reject(RejectRiskBlock, "%s", reason)
	}

	qty := o.risk.PositionSize(ledger.Capital, req.Price, req.StopLoss)
	if qty == 0 {
		return domain.Trade{}, reject(RejectZeroQuantity,
			"stop %.2f equals entry %.2f, cannot size", req.StopLoss, req.Price)
	}

	cost := o.costs.Calculate(req.Price, qty, req.Direction, req.Instrument)
	notional := req.Price * float64(qty)
	margin := notional * req.Instrument.MarginFactor()
	if margin+cost > ledger.Capital {
		return domain.Trade{}, reject(RejectInsufficientFunds,
			"need %.2f (margin %.2f + costs %.2f), have %.2f", margin+cost, margin, cost, ledger.Capital)
	}

	trade := domain.Trade{
		ID:         uuid.NewString(),
		Ticker:     req.Ticker,
		Direction:  req.Direction,
		EntryPrice: req.Price,
		Quantity:   qty,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
		Instrument: req.Instrument,
		Status:     domain.StatusOpen,
		EntryTime:  time.Now().UTC(),
		EntryCost:  cost,
	}

	ledger.Capital -= margin + cost
	if err := o.repo.RecordOpen(ctx, trade, ledger); err != nil {
		return domain.Trade{}, fmt.Errorf("oms.PlaceOrder: record open: %w", err)
	}

	o.log.Info("order placed",
		"ticker", req.Ticker,
		"direction", req.Direction,
		"qty", qty,
		"price", req.Price,
		"stop", req.StopLoss,
		"cost", cost,
		"trade_id", trade.ID)
	return trade, nil
}

// CloseTrade exits an open position at the given price. Net PnL is the
// raw move minus entry and exit costs; the ledger gets the blocked margin
// back plus the raw move minus the exit cost (the entry cost was already
// debited at open).
func (o *OMS) CloseTrade(ctx context.Context, tradeID string, exitPrice float64) (domain.Trade, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	trade, err := o.findOpen(ctx, tradeID)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("oms.CloseTrade: %w", err)
	}

	exitCost := o.costs.Calculate(exitPrice, trade.Quantity, trade.Direction.Reversed(), trade.Instrument)
	raw := trade.RawPnL(exitPrice)
	net := raw - trade.EntryCost - exitCost

	now := time.Now().UTC()
	trade.Status = domain.StatusClosed
	trade.ExitTime = &now
	trade.ExitPrice = exitPrice
	trade.PnL = net

	ledger, err := o.repo.LoadLedger(ctx)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("oms.CloseTrade: load ledger: %w", err)
	}
	margin := trade.Notional() * trade.Instrument.MarginFactor()
	ledger.Capital += margin + raw - exitCost
	ledger.RealizedPnL += net
	if err := o.repo.RecordClose(ctx, trade, ledger); err != nil {
		return domain.Trade{}, fmt.Errorf("oms.CloseTrade: record close: %w", err)
	}

	o.log.Info("trade closed",
		"ticker", trade.Ticker,
		"exit", exitPrice,
		"raw_pnl", raw,
		"net_pnl", net,
		"trade_id", trade.ID)
	return trade, nil
}

// CheckTrailingStops sweeps open long positions against current quotes and
// ratchets stops upward. Returns how many stops moved. Tickers without a
// quote are skipped, not failed: a stale stop is safer than an aborted
// sweep.
func (o *OMS) CheckTrailingStops(ctx context.Context, quotes map[string]domain.Quote) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	trades, err := o.repo.Trades(ctx)
	if err != nil {
		return 0, fmt.Errorf("oms.CheckTrailingStops: %w", err)
	}

	moved := 0
	for _, t := range trades {
		if t.Status != domain.StatusOpen || t.Direction != domain.DirectionBuy {
			continue
		}
		q, ok := quotes[t.Ticker]
		if !ok || q.Price <= 0 {
			continue
		}

		atr := q.ATR
		if atr <= 0 {
			atr = q.Price * domain.DefaultATRFraction
		}

		newStop := o.risk.TrailingStop(t.EntryPrice, q.Price, t.StopLoss, atr, q.Regime)
		if newStop <= t.StopLoss {
			continue
		}

		old := t.StopLoss
		t.StopLoss = newStop
		if err := o.repo.UpdateTrade(ctx, t); err != nil {
			return moved, fmt.Errorf("oms.CheckTrailingStops: update %s: %w", t.ID, err)
		}
		moved++
		o.log.Info("trailing stop moved",
			"ticker", t.Ticker, "from", old, "to", newStop, "regime", q.Regime)
	}
	return moved, nil
}

// OpenTrades returns the open positions, newest first.
func (o *OMS) OpenTrades(ctx context.Context) ([]domain.Trade, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	trades, err := o.repo.Trades(ctx)
	if err != nil {
		return nil, fmt.Errorf("oms.OpenTrades: %w", err)
	}
	open := trades[:0:0]
	for _, t := range trades {
		if t.Status == domain.StatusOpen {
			open = append(open, t)
		}
	}
	return open, nil
}

// blockedMargin sums the margin held against open positions.
func blockedMargin(trades []domain.Trade) float64 {
	var total float64
	for _, t := range trades {
		if t.Status == domain.StatusOpen {
			total += t.Notional() * t.Instrument.MarginFactor()
		}
	}
	return total
}

// realizedToday sums net PnL of trades closed on the given UTC day.
func realizedToday(trades []domain.Trade, now time.Time) float64 {
	var pnl float64
	for _, t := range trades {
		if t.Status != domain.StatusClosed || t.ExitTime == nil {
			continue
		}
		if sameUTCDay(*t.ExitTime, now) {
			pnl += t.PnL
		}
	}
	return pnl
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (o *OMS) findOpen(ctx context.Context, tradeID string) (domain.Trade, error) {
	trades, err := o.repo.Trades(ctx)
	if err != nil {
		return domain.Trade{}, err
	}
	for _, t := range trades {
		if t.ID != tradeID {
			continue
		}
		if t.Status != domain.StatusOpen {
			return domain.Trade{}, fmt.Errorf("trade %s is %s, not open", tradeID, t.Status)
		}
		return t, nil
	}
	return domain.Trade{}, fmt.Errorf("trade %s not found", tradeID)
}
