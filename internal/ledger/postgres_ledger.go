package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the ledger needs. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresLedger stores payments in the relational database.
type PostgresLedger struct {
	pool DB
}

// NewPostgresLedger initializes a ledger backed by pgxpool.
func NewPostgresLedger(pool DB) *PostgresLedger {
	if pool == nil {
		panic("ledger: pgx pool required")
	}
	return &PostgresLedger{pool: pool}
}

// RecordPayment inserts a payment row.
func (l *PostgresLedger) RecordPayment(ctx context.Context, payment Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now().UTC()
	}

	query := `
		INSERT INTO bonus_payments (id, account_id, dollars, label, note, date, status, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := l.pool.Exec(ctx, query,
		payment.ID,
		payment.AccountID,
		payment.Dollars,
		payment.Label,
		payment.Note,
		payment.Date,
		payment.Status,
		payment.Currency,
	); err != nil {
		return fmt.Errorf("ledger: insert failed: %w", err)
	}
	return nil
}

// ListByAccount returns all payments recorded for an account, oldest first.
func (l *PostgresLedger) ListByAccount(ctx context.Context, accountID string) ([]Payment, error) {
	query := `
		SELECT id, account_id, dollars, label, note, date, status, currency
		FROM bonus_payments
		WHERE account_id = $1
		ORDER BY date ASC
	`
	rows, err := l.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("ledger: list failed: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Dollars, &p.Label, &p.Note, &p.Date, &p.Status, &p.Currency); err != nil {
			return nil, fmt.Errorf("ledger: scan failed: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: list rows: %w", err)
	}
	return payments, nil
}
