package evaluator

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/Jay9714/project-gyan/internal/domain"
)

// evaluateConcurrent synthesizes verdicts for all tickers using a worker
// pool. Provider pacing is the feed's job (it carries the rate limiter);
// the pool only bounds in-flight work.
//
// workers <= 0 uses runtime.NumCPU() × 2.
func (e *Evaluator) evaluateConcurrent(ctx context.Context, tickers []string) []domain.MultiHorizonVerdict {
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}

	workCh := make(chan string, len(tickers))
	resultCh := make(chan domain.MultiHorizonVerdict, len(tickers))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range workCh {
				in, err := e.fetchInput(ctx, ticker)
				if err != nil {
					slog.Debug("skipping ticker", "ticker", ticker, "err", err)
					continue
				}
				resultCh <- e.synth.Synthesize(in)
			}
		}()
	}

	for _, ticker := range tickers {
		workCh <- ticker
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	verdicts := make([]domain.MultiHorizonVerdict, 0, len(tickers))
	for v := range resultCh {
		verdicts = append(verdicts, v)
	}

	slog.Debug("concurrent evaluation complete",
		"tickers_queued", len(tickers),
		"verdicts", len(verdicts),
		"workers", workers,
	)

	return verdicts
}
