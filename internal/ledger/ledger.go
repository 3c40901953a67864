// Package ledger records reward and bonus payments owed to accounts.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Payment is a single ledger entry.
type Payment struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Dollars   int       `json:"dollars"`
	Label     string    `json:"label"`
	Note      string    `json:"note,omitempty"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Currency  string    `json:"currency"`
}

// Ledger defines the payment recording contract. Callers treat failures
// as best-effort; entries are never updated once written.
type Ledger interface {
	RecordPayment(ctx context.Context, payment Payment) error
	ListByAccount(ctx context.Context, accountID string) ([]Payment, error)
}

// InMemoryLedger is a Ledger backed by a slice, used in development and
// tests when no database is configured.
type InMemoryLedger struct {
	mu       sync.RWMutex
	payments []Payment
}

// NewInMemoryLedger creates a new in-memory ledger
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{}
}

// RecordPayment appends a payment entry.
func (l *InMemoryLedger) RecordPayment(ctx context.Context, payment Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now().UTC()
	}
	l.mu.Lock()
	l.payments = append(l.payments, payment)
	l.mu.Unlock()
	return nil
}

// ListByAccount returns all payments recorded for an account.
func (l *InMemoryLedger) ListByAccount(ctx context.Context, accountID string) ([]Payment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Payment
	for _, p := range l.payments {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	return out, nil
}
