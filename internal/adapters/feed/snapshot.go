// Package feed implements ports.Feed on a YAML snapshot file: the ticker
// universe with per-ticker indicators, fundamentals, forecasts, and
// per-sector index readings. A snapshot is the offline stand-in for the
// live market-data client and shares its pacing discipline, so swapping
// one for the other changes no caller.
package feed

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/Jay9714/project-gyan/internal/domain"
)

const defaultRatePerSec = 10

// SnapshotFeed serves feed data from an in-memory snapshot, throttled by a
// shared limiter like a real upstream API budget.
type SnapshotFeed struct {
	entries map[string]tickerEntry
	sectors map[string]sectorEntry
	order   []string
	limiter *rate.Limiter
}

type snapshot struct {
	Universe []tickerEntry          `yaml:"universe"`
	Sectors  map[string]sectorEntry `yaml:"sectors"`
}

type tickerEntry struct {
	Ticker       string            `yaml:"ticker"`
	Sector       string            `yaml:"sector"`
	ADX          float64           `yaml:"adx"`
	Sentiment    float64           `yaml:"sentiment"`
	Catalyst     float64           `yaml:"catalyst"`
	Features     featuresEntry     `yaml:"features"`
	Fundamentals fundamentalsEntry `yaml:"fundamentals"`
	Forecast     []float64         `yaml:"forecast"`
}

type featuresEntry struct {
	Price       float64 `yaml:"price"`
	RSI         float64 `yaml:"rsi"`
	MACD        float64 `yaml:"macd"`
	MACDSignal  float64 `yaml:"macd_signal"`
	ATR         float64 `yaml:"atr"`
	EMA20       float64 `yaml:"ema20"`
	EMA50       float64 `yaml:"ema50"`
	EMA200      float64 `yaml:"ema200"`
	VolumeSpike bool    `yaml:"volume_spike"`
	Momentum7   float64 `yaml:"momentum_7d"`
	Support     float64 `yaml:"support"`
	Resistance  float64 `yaml:"resistance"`
}

type fundamentalsEntry struct {
	ROE              float64 `yaml:"roe"`
	DebtToEquity     float64 `yaml:"debt_to_equity"`
	RevenueGrowth    float64 `yaml:"revenue_growth"`
	PERatio          float64 `yaml:"pe_ratio"`
	DividendYield    float64 `yaml:"dividend_yield"`
	InterestCoverage float64 `yaml:"interest_coverage"`
	PledgePct        float64 `yaml:"pledge_pct"`
	PiotroskiF       int     `yaml:"piotroski_f"`
	AltmanZ          float64 `yaml:"altman_z"`
	BeneishM         float64 `yaml:"beneish_m"`
}

// sectorEntry holds the sector-index indicators the trend score reads.
type sectorEntry struct {
	Price  float64 `yaml:"price"`
	SMA50  float64 `yaml:"sma50"`
	SMA200 float64 `yaml:"sma200"`
	RSI    float64 `yaml:"rsi"`
}

// NewSnapshotFeed loads the snapshot at path. ratePerSec <= 0 uses the
// default budget.
func NewSnapshotFeed(path string, ratePerSec float64) (*SnapshotFeed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("feed.NewSnapshotFeed: read %q: %w", path, err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("feed.NewSnapshotFeed: parse %q: %w", path, err)
	}
	if len(snap.Universe) == 0 {
		return nil, fmt.Errorf("feed.NewSnapshotFeed: %q has an empty universe", path)
	}

	if ratePerSec <= 0 {
		ratePerSec = defaultRatePerSec
	}

	f := &SnapshotFeed{
		entries: make(map[string]tickerEntry, len(snap.Universe)),
		sectors: snap.Sectors,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), int(ratePerSec)),
	}
	for _, e := range snap.Universe {
		if e.Ticker == "" {
			return nil, fmt.Errorf("feed.NewSnapshotFeed: %q contains an entry without a ticker", path)
		}
		f.entries[e.Ticker] = e
		f.order = append(f.order, e.Ticker)
	}
	return f, nil
}

// Tickers returns the evaluation universe in file order.
func (f *SnapshotFeed) Tickers(ctx context.Context) ([]string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("feed.Tickers: %w", err)
	}
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out, nil
}

// Features returns the indicator bundle for a ticker.
func (f *SnapshotFeed) Features(ctx context.Context, ticker string) (domain.FeatureSnapshot, error) {
	e, err := f.lookup(ctx, "Features", ticker)
	if err != nil {
		return domain.FeatureSnapshot{}, err
	}
	fe := e.Features
	return domain.FeatureSnapshot{
		Price:       fe.Price,
		RSI:         fe.RSI,
		MACD:        fe.MACD,
		MACDSignal:  fe.MACDSignal,
		ATR:         fe.ATR,
		EMA20:       fe.EMA20,
		EMA50:       fe.EMA50,
		EMA200:      fe.EMA200,
		VolumeSpike: fe.VolumeSpike,
		Momentum7:   fe.Momentum7,
		Support:     fe.Support,
		Resistance:  fe.Resistance,
	}, nil
}

// Fundamentals returns the fundamental profile for a ticker.
func (f *SnapshotFeed) Fundamentals(ctx context.Context, ticker string) (domain.FundamentalProfile, error) {
	e, err := f.lookup(ctx, "Fundamentals", ticker)
	if err != nil {
		return domain.FundamentalProfile{}, err
	}
	fu := e.Fundamentals
	return domain.FundamentalProfile{
		ROE:              fu.ROE,
		DebtToEquity:     fu.DebtToEquity,
		RevenueGrowth:    fu.RevenueGrowth,
		PERatio:          fu.PERatio,
		DividendYield:    fu.DividendYield,
		InterestCoverage: fu.InterestCoverage,
		PledgePct:        fu.PledgePct,
		PiotroskiF:       fu.PiotroskiF,
		AltmanZ:          fu.AltmanZ,
		BeneishM:         fu.BeneishM,
	}, nil
}

// Forecast returns the forecast curve for a ticker.
func (f *SnapshotFeed) Forecast(ctx context.Context, ticker string) (domain.ForecastCurve, error) {
	e, err := f.lookup(ctx, "Forecast", ticker)
	if err != nil {
		return nil, err
	}
	return domain.ForecastCurve(e.Forecast), nil
}

// Sentiment returns the news-sentiment scalar for a ticker.
func (f *SnapshotFeed) Sentiment(ctx context.Context, ticker string) (float64, error) {
	e, err := f.lookup(ctx, "Sentiment", ticker)
	if err != nil {
		return 0, err
	}
	return e.Sentiment, nil
}

// Sector resolves a ticker's sector and derives its trend status from the
// snapshot's sector-index indicators. A sector with no index entry reads
// as neutral.
func (f *SnapshotFeed) Sector(ctx context.Context, ticker string) (domain.SectorContext, error) {
	e, err := f.lookup(ctx, "Sector", ticker)
	if err != nil {
		return domain.SectorContext{}, err
	}

	status := domain.SectorNeutral
	if idx, ok := f.sectors[e.Sector]; ok {
		_, status = domain.SectorTrendScore(idx.Price, idx.SMA50, idx.SMA200, idx.RSI)
	}
	return domain.LookupSector(e.Sector, status), nil
}

// Catalyst returns the qualitative override strength for a ticker.
func (f *SnapshotFeed) Catalyst(ctx context.Context, ticker string) (float64, error) {
	e, err := f.lookup(ctx, "Catalyst", ticker)
	if err != nil {
		return 0, err
	}
	return e.Catalyst, nil
}

// Quotes returns price context for the given tickers. Unknown tickers are
// omitted rather than failing the sweep.
func (f *SnapshotFeed) Quotes(ctx context.Context, tickers []string) (map[string]domain.Quote, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("feed.Quotes: %w", err)
	}

	quotes := make(map[string]domain.Quote, len(tickers))
	for _, ticker := range tickers {
		e, ok := f.entries[ticker]
		if !ok {
			continue
		}
		fe := e.Features
		features := domain.FeatureSnapshot{Price: fe.Price, ATR: fe.ATR}
		quotes[ticker] = domain.Quote{
			Price:  fe.Price,
			ATR:    features.ATROrDefault(),
			Regime: domain.DetectRegime(fe.Price, fe.EMA50, fe.EMA200, e.ADX),
		}
	}
	return quotes, nil
}

func (f *SnapshotFeed) lookup(ctx context.Context, op, ticker string) (tickerEntry, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return tickerEntry{}, fmt.Errorf("feed.%s: %w", op, err)
	}
	e, ok := f.entries[ticker]
	if !ok {
		return tickerEntry{}, fmt.Errorf("feed.%s: unknown ticker %q", op, ticker)
	}
	return e, nil
}
