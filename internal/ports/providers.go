package ports

import (
	"context"

	"github.com/Jay9714/project-gyan/internal/domain"
)

// The provider ports wrap the external subsystems this core consumes:
// indicator computation, fundamental extraction, forecasting, sentiment,
// sector classification, and catalyst detection all live behind these
// interfaces.

// FeatureProvider serves the latest technical indicator bundle per ticker.
type FeatureProvider interface {
	Features(ctx context.Context, ticker string) (domain.FeatureSnapshot, error)
}

// FundamentalsProvider serves fundamental ratios and risk scores,
// typically cached at a daily/quarterly cadence.
type FundamentalsProvider interface {
	Fundamentals(ctx context.Context, ticker string) (domain.FundamentalProfile, error)
}

// ForecastProvider serves the 365-trading-day price forecast per ticker.
type ForecastProvider interface {
	Forecast(ctx context.Context, ticker string) (domain.ForecastCurve, error)
}

// SentimentProvider serves the news-sentiment scalar in [-1, 1].
type SentimentProvider interface {
	Sentiment(ctx context.Context, ticker string) (float64, error)
}

// SectorProvider resolves a ticker to its sector context.
type SectorProvider interface {
	Sector(ctx context.Context, ticker string) (domain.SectorContext, error)
}

// CatalystProvider serves the qualitative override strength in [0, 1];
// 0 means no catalyst.
type CatalystProvider interface {
	Catalyst(ctx context.Context, ticker string) (float64, error)
}

// Feed bundles all provider ports plus the universe of tickers to
// evaluate. The evaluator depends on this single port.
type Feed interface {
	FeatureProvider
	FundamentalsProvider
	ForecastProvider
	SentimentProvider
	SectorProvider
	CatalystProvider

	// Tickers returns the evaluation universe.
	Tickers(ctx context.Context) ([]string, error)

	// Quotes returns the current price context for open-position tickers,
	// used by the trailing-stop sweep.
	Quotes(ctx context.Context, tickers []string) (map[string]domain.Quote, error)
}

// CostModel prices one transaction leg. Treated as a black-box service by
// the OMS.
type CostModel interface {
	Calculate(price float64, quantity int, side domain.Direction, instrument domain.InstrumentType) float64
}

// Notifier publishes evaluation results to a human-facing surface.
type Notifier interface {
	Notify(ctx context.Context, verdicts []domain.MultiHorizonVerdict) error
}
