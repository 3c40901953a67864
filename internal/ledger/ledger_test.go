package ledger

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLedger_RecordAndList(t *testing.T) {
	l := NewInMemoryLedger()
	ctx := context.Background()

	err := l.RecordPayment(ctx, Payment{
		AccountID: "acct-1",
		Dollars:   5,
		Label:     "signup bonus",
		Status:    "pending",
		Currency:  "NZD",
	})
	require.NoError(t, err)

	err = l.RecordPayment(ctx, Payment{AccountID: "acct-2", Dollars: 10, Label: "pickup reward"})
	require.NoError(t, err)

	payments, err := l.ListByAccount(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.NotEmpty(t, payments[0].ID, "missing ID should be generated")
	assert.False(t, payments[0].Date.IsZero(), "missing date should default to now")
	assert.Equal(t, 5, payments[0].Dollars)

	none, err := l.ListByAccount(ctx, "acct-3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostgresLedger_RecordPaymentExplicitFields(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	date := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO bonus_payments").
		WithArgs("pay-1", "acct-1", 5, "signup bonus", "", date, "pending", "NZD").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	l := NewPostgresLedger(mock)
	err = l.RecordPayment(context.Background(), Payment{
		ID:        "pay-1",
		AccountID: "acct-1",
		Dollars:   5,
		Label:     "signup bonus",
		Date:      date,
		Status:    "pending",
		Currency:  "NZD",
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
