// Package storage persists the capital ledger, the trade log, and the
// engine active flag in SQLite (pure Go driver, no CGo).
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Jay9714/project-gyan/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Single-row capital ledger; id is pinned to 1.
CREATE TABLE IF NOT EXISTS ledger (
    id            INTEGER PRIMARY KEY CHECK (id = 1),
    capital       REAL NOT NULL,
    start_capital REAL NOT NULL,
    realized_pnl  REAL NOT NULL DEFAULT 0
);

-- Full trade log, open and closed. rowid gives insertion order.
CREATE TABLE IF NOT EXISTS trades (
    id          TEXT PRIMARY KEY,
    ticker      TEXT NOT NULL,
    direction   TEXT NOT NULL,
    entry_price REAL NOT NULL,
    quantity    INTEGER NOT NULL,
    stop_loss   REAL NOT NULL,
    take_profit REAL NOT NULL DEFAULT 0,
    instrument  TEXT NOT NULL,
    status      TEXT NOT NULL,
    entry_time  TEXT NOT NULL,
    exit_time   TEXT,
    exit_price  REAL NOT NULL DEFAULT 0,
    entry_cost  REAL NOT NULL DEFAULT 0,
    pnl         REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
CREATE INDEX IF NOT EXISTS idx_trades_ticker ON trades(ticker);

-- Key/value engine state; currently only the active flag.
CREATE TABLE IF NOT EXISTS engine_state (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SQLiteRepository implements ports.Repository on a local SQLite file.
type SQLiteRepository struct {
	db           *sql.DB
	startCapital float64
}

// NewSQLiteRepository opens (or creates) the database at the given path and
// applies the schema. startCapital seeds the ledger on first use only;
// an existing ledger row always wins.
func NewSQLiteRepository(path string, startCapital float64) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteRepository: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteRepository: apply schema: %w", err)
	}

	return &SQLiteRepository{db: db, startCapital: startCapital}, nil
}

// LoadLedger returns the capital ledger, inserting the opening balance on
// first use.
func (s *SQLiteRepository) LoadLedger(ctx context.Context) (domain.CapitalLedger, error) {
	var l domain.CapitalLedger
	err := s.db.QueryRowContext(ctx,
		`SELECT capital, start_capital, realized_pnl FROM ledger WHERE id = 1`,
	).Scan(&l.Capital, &l.StartCapital, &l.RealizedPnL)

	if errors.Is(err, sql.ErrNoRows) {
		l = domain.CapitalLedger{Capital: s.startCapital, StartCapital: s.startCapital}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO ledger (id, capital, start_capital, realized_pnl) VALUES (1, ?, ?, 0)`,
			l.Capital, l.StartCapital,
		); err != nil {
			return domain.CapitalLedger{}, fmt.Errorf("storage.LoadLedger: seed ledger: %w", err)
		}
		return l, nil
	}
	if err != nil {
		return domain.CapitalLedger{}, fmt.Errorf("storage.LoadLedger: %w", err)
	}
	return l, nil
}

// execer is the slice of *sql.DB / *sql.Tx the write helpers need, so the
// same statements serve both the single-call and transactional paths.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SaveLedger overwrites the single ledger row.
func (s *SQLiteRepository) SaveLedger(ctx context.Context, l domain.CapitalLedger) error {
	if err := upsertLedger(ctx, s.db, l); err != nil {
		return fmt.Errorf("storage.SaveLedger: %w", err)
	}
	return nil
}

// AppendTrade inserts a newly opened trade.
func (s *SQLiteRepository) AppendTrade(ctx context.Context, t domain.Trade) error {
	if err := insertTrade(ctx, s.db, t); err != nil {
		return fmt.Errorf("storage.AppendTrade: %s: %w", t.ID, err)
	}
	return nil
}

// UpdateTrade rewrites an existing trade row (trailing-stop move or close).
func (s *SQLiteRepository) UpdateTrade(ctx context.Context, t domain.Trade) error {
	if err := updateTrade(ctx, s.db, t); err != nil {
		return fmt.Errorf("storage.UpdateTrade: %w", err)
	}
	return nil
}

// RecordOpen inserts the trade and saves the debited ledger in one
// transaction: either both land or neither does.
func (s *SQLiteRepository) RecordOpen(ctx context.Context, t domain.Trade, l domain.CapitalLedger) error {
	return s.inTx(ctx, "RecordOpen", func(tx *sql.Tx) error {
		if err := insertTrade(ctx, tx, t); err != nil {
			return fmt.Errorf("trade %s: %w", t.ID, err)
		}
		return upsertLedger(ctx, tx, l)
	})
}

// RecordClose rewrites the closed trade and saves the credited ledger in
// one transaction.
func (s *SQLiteRepository) RecordClose(ctx context.Context, t domain.Trade, l domain.CapitalLedger) error {
	return s.inTx(ctx, "RecordClose", func(tx *sql.Tx) error {
		if err := updateTrade(ctx, tx, t); err != nil {
			return err
		}
		return upsertLedger(ctx, tx, l)
	})
}

func (s *SQLiteRepository) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.%s: begin: %w", op, err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("storage.%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.%s: commit: %w", op, err)
	}
	return nil
}

func upsertLedger(ctx context.Context, ex execer, l domain.CapitalLedger) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO ledger (id, capital, start_capital, realized_pnl) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			capital       = excluded.capital,
			start_capital = excluded.start_capital,
			realized_pnl  = excluded.realized_pnl
	`, l.Capital, l.StartCapital, l.RealizedPnL)
	if err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	return nil
}

func insertTrade(ctx context.Context, ex execer, t domain.Trade) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO trades
			(id, ticker, direction, entry_price, quantity, stop_loss, take_profit,
			 instrument, status, entry_time, exit_time, exit_price, entry_cost, pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.ID, t.Ticker, string(t.Direction), t.EntryPrice, t.Quantity,
		t.StopLoss, t.TakeProfit, string(t.Instrument), string(t.Status),
		t.EntryTime.UTC().Format(time.RFC3339Nano), exitTimeString(t),
		t.ExitPrice, t.EntryCost, t.PnL,
	)
	return err
}

func updateTrade(ctx context.Context, ex execer, t domain.Trade) error {
	res, err := ex.ExecContext(ctx, `
		UPDATE trades SET
			stop_loss   = ?,
			take_profit = ?,
			status      = ?,
			exit_time   = ?,
			exit_price  = ?,
			pnl         = ?
		WHERE id = ?
	`, t.StopLoss, t.TakeProfit, string(t.Status), exitTimeString(t), t.ExitPrice, t.PnL, t.ID)
	if err != nil {
		return fmt.Errorf("trade %s: %w", t.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("trade %s: rows affected: %w", t.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("trade %s not found", t.ID)
	}
	return nil
}

func exitTimeString(t domain.Trade) *string {
	if t.ExitTime == nil {
		return nil
	}
	v := t.ExitTime.UTC().Format(time.RFC3339Nano)
	return &v
}

// Trades returns the full trade log, newest first.
func (s *SQLiteRepository) Trades(ctx context.Context) ([]domain.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ticker, direction, entry_price, quantity, stop_loss, take_profit,
		       instrument, status, entry_time, exit_time, exit_price, entry_cost, pnl
		FROM trades
		ORDER BY rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("storage.Trades: query: %w", err)
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var (
			t                    domain.Trade
			dir, instr, status   string
			entryTime            string
			exitTime             sql.NullString
		)
		if err := rows.Scan(
			&t.ID, &t.Ticker, &dir, &t.EntryPrice, &t.Quantity,
			&t.StopLoss, &t.TakeProfit, &instr, &status,
			&entryTime, &exitTime, &t.ExitPrice, &t.EntryCost, &t.PnL,
		); err != nil {
			return nil, fmt.Errorf("storage.Trades: scan row: %w", err)
		}

		t.Direction = domain.Direction(dir)
		t.Instrument = domain.InstrumentType(instr)
		t.Status = domain.TradeStatus(status)
		if t.EntryTime, err = time.Parse(time.RFC3339Nano, entryTime); err != nil {
			return nil, fmt.Errorf("storage.Trades: entry time of %s: %w", t.ID, err)
		}
		if exitTime.Valid {
			et, err := time.Parse(time.RFC3339Nano, exitTime.String)
			if err != nil {
				return nil, fmt.Errorf("storage.Trades: exit time of %s: %w", t.ID, err)
			}
			t.ExitTime = &et
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// Active reports the engine active flag. A missing row reads as inactive:
// a fresh database never auto-trades.
func (s *SQLiteRepository) Active(ctx context.Context) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM engine_state WHERE key = 'active'`,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage.Active: %w", err)
	}
	return value == "1", nil
}

// SetActive flips the engine active flag.
func (s *SQLiteRepository) SetActive(ctx context.Context, active bool) error {
	value := "0"
	if active {
		value = "1"
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO engine_state (key, value) VALUES ('active', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, value); err != nil {
		return fmt.Errorf("storage.SetActive: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteRepository) Close() error {
	return s.db.Close()
}
