package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jay9714/project-gyan/config"
	"github.com/Jay9714/project-gyan/internal/adapters/feed"
	"github.com/Jay9714/project-gyan/internal/adapters/notify"
	"github.com/Jay9714/project-gyan/internal/adapters/storage"
	"github.com/Jay9714/project-gyan/internal/costs"
	"github.com/Jay9714/project-gyan/internal/domain"
	"github.com/Jay9714/project-gyan/internal/evaluator"
	"github.com/Jay9714/project-gyan/internal/oms"
	"github.com/Jay9714/project-gyan/internal/risk"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one evaluation cycle and exit")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print the full per-horizon table (default: compact 1-line)")

	start := flag.Bool("start", false, "activate the engine and exit")
	stop := flag.Bool("stop", false, "deactivate the engine and exit")
	status := flag.Bool("status", false, "print ledger + open positions and exit")

	place := flag.String("place", "", "place an order for this ticker and exit")
	closeID := flag.String("close", "", "close the trade with this id and exit")
	price := flag.Float64("price", 0, "entry or exit price for -place / -close")
	stopPrice := flag.Float64("stop-price", 0, "stop-loss price for -place")
	target := flag.Float64("target", 0, "take-profit price for -place")
	side := flag.String("side", "BUY", "order side for -place: BUY|SELL")
	instrument := flag.String("instrument", string(domain.EquityDelivery), "instrument type for -place")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	repo, err := storage.NewSQLiteRepository(cfg.Storage.DSN, cfg.Engine.StartCapital)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer repo.Close()

	riskMgr := risk.New(cfg.Risk.MaxDrawdownPct, cfg.Risk.DailyLossPct, cfg.Risk.RiskPerTrade)
	costModel := costs.Standard{Brokerage: cfg.Engine.Brokerage}
	orders := oms.New(repo, riskMgr, costModel, slog.Default())
	console := notify.NewConsole(*table)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch {
	case *start:
		exitOn(orders.Start(ctx))
	case *stop:
		exitOn(orders.Stop(ctx))
	case *status:
		runStatus(ctx, orders, console)
	case *place != "":
		runPlace(ctx, orders, oms.OrderRequest{
			Ticker:     *place,
			Direction:  domain.Direction(*side),
			Price:      *price,
			StopLoss:   *stopPrice,
			TakeProfit: *target,
			Instrument: domain.InstrumentType(*instrument),
		})
	case *closeID != "":
		runClose(ctx, orders, *closeID, *price)
	default:
		runLoop(ctx, cfg, orders, console, *once)
	}
}

// runLoop runs the evaluation loop until cancelled (or one cycle with
// -once).
func runLoop(ctx context.Context, cfg *config.Config, orders *oms.OMS, console *notify.Console, once bool) {
	slog.Info("gyan starting",
		"interval", cfg.EvalInterval(),
		"snapshot", cfg.Feed.SnapshotPath,
		"once", once,
	)

	marketFeed, err := feed.NewSnapshotFeed(cfg.Feed.SnapshotPath, cfg.Feed.RatePerSec)
	if err != nil {
		slog.Error("failed to load feed snapshot", "err", err)
		os.Exit(1)
	}

	evalCfg := evaluator.Config{
		Interval:           cfg.EvalInterval(),
		Workers:            cfg.Engine.Workers,
		DryRun:             once,
		MomentumPerHorizon: cfg.Engine.MomentumPerHorizon,
	}

	e := evaluator.New(evalCfg, marketFeed, console, orders)
	if err := e.Run(ctx); err != nil {
		slog.Error("evaluator exited with error", "err", err)
		os.Exit(1)
	}
	slog.Info("gyan stopped cleanly")
}

func runStatus(ctx context.Context, orders *oms.OMS, console *notify.Console) {
	st, err := orders.Status(ctx)
	exitOn(err)
	open, err := orders.OpenTrades(ctx)
	exitOn(err)
	console.PrintStatus(st, open)
}

func runPlace(ctx context.Context, orders *oms.OMS, req oms.OrderRequest) {
	if st, err := orders.Status(ctx); err == nil && !feasible(req, st.Ledger.Capital) {
		slog.Warn("instrument is outside the feasible set for current capital",
			"instrument", req.Instrument, "capital", st.Ledger.Capital)
	}

	trade, err := orders.PlaceOrder(ctx, req)
	if err != nil {
		slog.Error("order not placed", "err", err)
		os.Exit(1)
	}
	slog.Info("order filled",
		"trade_id", trade.ID,
		"ticker", trade.Ticker,
		"qty", trade.Quantity,
		"entry", trade.EntryPrice,
	)
}

func runClose(ctx context.Context, orders *oms.OMS, tradeID string, exitPrice float64) {
	trade, err := orders.CloseTrade(ctx, tradeID, exitPrice)
	if err != nil {
		slog.Error("close failed", "err", err)
		os.Exit(1)
	}
	slog.Info("trade closed", "trade_id", trade.ID, "net_pnl", trade.PnL)
}

// feasible reports whether the requested instrument is in the
// capital-gated feasible set. Delivery is always allowed.
func feasible(req oms.OrderRequest, capital float64) bool {
	if req.Instrument == domain.EquityDelivery {
		return true
	}
	for _, it := range costs.FeasibleInstruments(capital, req.Ticker) {
		if it == req.Instrument {
			return true
		}
	}
	return false
}

func exitOn(err error) {
	if err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
