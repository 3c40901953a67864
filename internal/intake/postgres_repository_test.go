package intake

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/canback/pickup-platform/internal/payout"
)

func testLead() *PickupLead {
	return &PickupLead{
		ID:        "b7a2e3a0-0000-0000-0000-000000000001",
		CreatedAt: time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC),
		Person: Person{
			Name:  "Aroha Smith",
			Email: "aroha@example.co.nz",
			Phone: "0211234567",
		},
		Address: Address{
			Street:   "12 Karangahape Rd",
			Suburb:   "Newton",
			City:     "Auckland",
			Postcode: "1010",
		},
		Pickup: PickupDetails{Type: PickupCans, WeeklyCans: 20},
		Payout: payout.DefaultPreference(),
	}
}

func TestPostgresRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	lead := testLead()
	mock.ExpectExec("INSERT INTO pickup_leads").
		WithArgs(
			lead.ID, lead.Person.Name, lead.Person.Email, lead.Person.Phone, lead.Person.MarketingOptIn,
			lead.Address.Street, lead.Address.Suburb, lead.Address.City, lead.Address.Postcode, lead.Address.AccessNotes,
			pgxmock.AnyArg(), pgxmock.AnyArg(),
			lead.Confirm.ItemsAreClean, lead.Confirm.AcceptedTerms, lead.CreatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPostgresRepository(mock)
	if err := repo.Create(context.Background(), lead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	lead := testLead()
	rows := pgxmock.NewRows([]string{
		"id", "name", "email", "phone", "marketing_opt_in",
		"street", "suburb", "city", "postcode", "access_notes",
		"pickup", "payout", "items_are_clean", "accepted_terms", "created_at",
	}).AddRow(
		lead.ID, lead.Person.Name, lead.Person.Email, lead.Person.Phone, lead.Person.MarketingOptIn,
		lead.Address.Street, lead.Address.Suburb, lead.Address.City, lead.Address.Postcode, lead.Address.AccessNotes,
		[]byte(`{"type":"cans","weekly_cans":20}`), []byte(`{"method":"bank","bank":{"name":"","account_number":""}}`),
		lead.Confirm.ItemsAreClean, lead.Confirm.AcceptedTerms, lead.CreatedAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM pickup_leads").
		WithArgs(lead.ID).
		WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	got, err := repo.GetByID(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Pickup.WeeklyCans != 20 {
		t.Errorf("expected weekly cans round-trip, got %d", got.Pickup.WeeklyCans)
	}
	if got.Payout.Method != payout.MethodBank {
		t.Errorf("expected bank payout method, got %s", got.Payout.Method)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM pickup_leads").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	repo := NewPostgresRepository(mock)
	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrLeadNotFound {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}
