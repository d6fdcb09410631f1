package ports

import (
	"context"

	"github.com/Jay9714/project-gyan/internal/domain"
)

// Repository persists the capital ledger, the trade log, and the engine
// active flag.
//
// Atomicity contract: the OMS serializes its own read-modify-write cycles,
// but each individual call must be atomic and durable: a call that returns
// nil has hit storage. Order admission and close touch both the trade log
// and the ledger, so those pairs go through RecordOpen and RecordClose,
// which must commit both writes or neither. Implementations backed by SQL
// wrap them in one transaction. A failed call is fatal to the OMS operation
// that issued it; the OMS never proceeds with state it could not record.
type Repository interface {
	// LoadLedger returns the current capital ledger, initializing it with
	// the configured opening balance on first use.
	LoadLedger(ctx context.Context) (domain.CapitalLedger, error)

	// SaveLedger overwrites the capital ledger.
	SaveLedger(ctx context.Context, ledger domain.CapitalLedger) error

	// AppendTrade prepends a newly opened trade to the trade log.
	AppendTrade(ctx context.Context, trade domain.Trade) error

	// UpdateTrade rewrites an existing trade (trailing-stop move or close).
	UpdateTrade(ctx context.Context, trade domain.Trade) error

	// RecordOpen appends the trade and saves the debited ledger in one
	// atomic step.
	RecordOpen(ctx context.Context, trade domain.Trade, ledger domain.CapitalLedger) error

	// RecordClose rewrites the closed trade and saves the credited ledger
	// in one atomic step.
	RecordClose(ctx context.Context, trade domain.Trade, ledger domain.CapitalLedger) error

	// Trades returns the trade log, newest first.
	Trades(ctx context.Context) ([]domain.Trade, error)

	// Active reports whether the engine accepts orders.
	Active(ctx context.Context) (bool, error)

	// SetActive flips the engine active flag.
	SetActive(ctx context.Context, active bool) error

	// Close releases the underlying store.
	Close() error
}
