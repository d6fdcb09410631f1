// Package evaluator runs the periodic evaluation loop: fetch inputs for
// the ticker universe, synthesize verdicts, publish them, and sweep
// trailing stops on open positions.
package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Jay9714/project-gyan/internal/domain"
	"github.com/Jay9714/project-gyan/internal/oms"
	"github.com/Jay9714/project-gyan/internal/ports"
	"github.com/Jay9714/project-gyan/internal/signal"
)

// Config holds the evaluation loop settings.
type Config struct {
	Interval           time.Duration
	Workers            int // <= 0 picks a CPU-based default
	DryRun             bool
	MomentumPerHorizon bool
}

// DefaultConfig returns production settings.
func DefaultConfig() Config {
	return Config{Interval: 15 * time.Minute}
}

// Evaluator orchestrates the evaluation cycle. The OMS is optional: with
// nil orders the loop is signal-only and skips the trailing sweep.
type Evaluator struct {
	cfg      Config
	feed     ports.Feed
	notifier ports.Notifier
	orders   *oms.OMS
	synth    *signal.Synthesizer
}

// New creates an Evaluator with all dependencies injected.
func New(cfg Config, feed ports.Feed, notifier ports.Notifier, orders *oms.OMS) *Evaluator {
	return &Evaluator{
		cfg:      cfg,
		feed:     feed,
		notifier: notifier,
		orders:   orders,
		synth:    signal.New(signal.Config{MomentumPerHorizon: cfg.MomentumPerHorizon}),
	}
}

// Run executes the evaluation loop until the context is cancelled. With
// DryRun only a single cycle runs.
func (e *Evaluator) Run(ctx context.Context) error {
	slog.Info("evaluator starting",
		"interval", e.cfg.Interval,
		"dry_run", e.cfg.DryRun,
	)

	if err := e.runCycle(ctx); err != nil {
		slog.Error("evaluation cycle failed", "err", err)
		if e.cfg.DryRun {
			return err
		}
	}

	if e.cfg.DryRun {
		return nil
	}

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("evaluator stopped")
			return nil
		case <-ticker.C:
			if err := e.runCycle(ctx); err != nil {
				slog.Error("evaluation cycle failed", "err", err)
			}
		}
	}
}

// RunOnce executes exactly one cycle and returns the verdicts.
func (e *Evaluator) RunOnce(ctx context.Context) ([]domain.MultiHorizonVerdict, error) {
	return e.cycle(ctx)
}

// runCycle runs one full cycle, publishes the results, and sweeps stops.
func (e *Evaluator) runCycle(ctx context.Context) error {
	start := time.Now()

	verdicts, err := e.cycle(ctx)
	if err != nil {
		return err
	}

	if err := e.notifier.Notify(ctx, verdicts); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	if e.orders != nil {
		if err := e.sweepTrailingStops(ctx); err != nil {
			slog.Warn("trailing sweep error", "err", err)
		}
	}

	slog.Info("evaluation cycle complete",
		"tickers", len(verdicts),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// cycle does fetch → synthesize → rank for the whole universe.
func (e *Evaluator) cycle(ctx context.Context) ([]domain.MultiHorizonVerdict, error) {
	tickers, err := e.feed.Tickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("evaluator.cycle: fetch universe: %w", err)
	}

	verdicts := e.evaluateConcurrent(ctx, tickers)
	rankVerdicts(verdicts)
	return verdicts, nil
}

// fetchInput gathers the synthesizer input for one ticker. Features and
// fundamentals are mandatory; the soft signals degrade to neutral values
// when their provider fails.
func (e *Evaluator) fetchInput(ctx context.Context, ticker string) (signal.Input, error) {
	features, err := e.feed.Features(ctx, ticker)
	if err != nil {
		return signal.Input{}, fmt.Errorf("features: %w", err)
	}
	fundamentals, err := e.feed.Fundamentals(ctx, ticker)
	if err != nil {
		return signal.Input{}, fmt.Errorf("fundamentals: %w", err)
	}

	in := signal.Input{
		Ticker:       ticker,
		Features:     features,
		Fundamentals: fundamentals,
	}

	if forecast, err := e.feed.Forecast(ctx, ticker); err == nil {
		in.Forecast = forecast
	} else {
		slog.Debug("forecast unavailable", "ticker", ticker, "err", err)
	}
	if sentiment, err := e.feed.Sentiment(ctx, ticker); err == nil {
		in.Sentiment = sentiment
	} else {
		slog.Debug("sentiment unavailable", "ticker", ticker, "err", err)
	}
	if sector, err := e.feed.Sector(ctx, ticker); err == nil {
		in.Sector = sector
	} else {
		slog.Debug("sector unavailable", "ticker", ticker, "err", err)
	}
	if catalyst, err := e.feed.Catalyst(ctx, ticker); err == nil {
		in.Catalyst = catalyst
	} else {
		slog.Debug("catalyst unavailable", "ticker", ticker, "err", err)
	}

	return in, nil
}

// sweepTrailingStops updates stops on open long positions with current
// quotes from the feed.
func (e *Evaluator) sweepTrailingStops(ctx context.Context) error {
	open, err := e.orders.OpenTrades(ctx)
	if err != nil {
		return err
	}
	if len(open) == 0 {
		return nil
	}

	tickers := make([]string, 0, len(open))
	seen := make(map[string]bool, len(open))
	for _, t := range open {
		if !seen[t.Ticker] {
			seen[t.Ticker] = true
			tickers = append(tickers, t.Ticker)
		}
	}

	quotes, err := e.feed.Quotes(ctx, tickers)
	if err != nil {
		return fmt.Errorf("fetch quotes: %w", err)
	}

	moved, err := e.orders.CheckTrailingStops(ctx, quotes)
	if err != nil {
		return err
	}
	if moved > 0 {
		slog.Info("trailing stops moved", "count", moved)
	}
	return nil
}

// rankVerdicts orders results best-first: short-horizon verdict tier, then
// ticker for a stable display.
func rankVerdicts(verdicts []domain.MultiHorizonVerdict) {
	sort.Slice(verdicts, func(i, j int) bool {
		if verdicts[i].Short.Verdict != verdicts[j].Short.Verdict {
			return verdicts[i].Short.Verdict < verdicts[j].Short.Verdict
		}
		return verdicts[i].Ticker < verdicts[j].Ticker
	})
}
