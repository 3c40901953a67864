package intake

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool DB) *PostgresRepository {
	if pool == nil {
		panic("intake: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row. Pickup details and the payout preference are
// stored as JSONB so the variant shape survives round-trips unchanged.
func (r *PostgresRepository) Create(ctx context.Context, lead *PickupLead) error {
	pickupJSON, err := json.Marshal(lead.Pickup)
	if err != nil {
		return fmt.Errorf("intake: marshal pickup: %w", err)
	}
	payoutJSON, err := json.Marshal(lead.Payout)
	if err != nil {
		return fmt.Errorf("intake: marshal payout: %w", err)
	}

	query := `
		INSERT INTO pickup_leads (
			id, name, email, phone, marketing_opt_in,
			street, suburb, city, postcode, access_notes,
			pickup, payout, items_are_clean, accepted_terms, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	if _, err := r.pool.Exec(ctx, query,
		lead.ID,
		lead.Person.Name,
		lead.Person.Email,
		lead.Person.Phone,
		lead.Person.MarketingOptIn,
		lead.Address.Street,
		lead.Address.Suburb,
		lead.Address.City,
		lead.Address.Postcode,
		lead.Address.AccessNotes,
		pickupJSON,
		payoutJSON,
		lead.Confirm.ItemsAreClean,
		lead.Confirm.AcceptedTerms,
		lead.CreatedAt,
	); err != nil {
		return fmt.Errorf("intake: insert failed: %w", err)
	}
	return nil
}

// GetByID fetches a lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*PickupLead, error) {
	query := `
		SELECT id, name, email, phone, marketing_opt_in,
		       street, suburb, city, postcode, access_notes,
		       pickup, payout, items_are_clean, accepted_terms, created_at
		FROM pickup_leads
		WHERE id = $1
	`
	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("intake: select failed: %w", err)
	}
	return lead, nil
}

// List returns leads matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*PickupLead, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, name, email, phone, marketing_opt_in,
		       street, suburb, city, postcode, access_notes,
		       pickup, payout, items_are_clean, accepted_terms, created_at
		FROM pickup_leads
		WHERE ($1 = '' OR pickup->>'type' = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.PickupType, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("intake: list failed: %w", err)
	}
	defer rows.Close()

	var leads []*PickupLead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("intake: scan failed: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("intake: list rows: %w", err)
	}
	return leads, nil
}

func scanLead(row pgx.Row) (*PickupLead, error) {
	var lead PickupLead
	var pickupJSON, payoutJSON []byte
	if err := row.Scan(
		&lead.ID,
		&lead.Person.Name,
		&lead.Person.Email,
		&lead.Person.Phone,
		&lead.Person.MarketingOptIn,
		&lead.Address.Street,
		&lead.Address.Suburb,
		&lead.Address.City,
		&lead.Address.Postcode,
		&lead.Address.AccessNotes,
		&pickupJSON,
		&payoutJSON,
		&lead.Confirm.ItemsAreClean,
		&lead.Confirm.AcceptedTerms,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(pickupJSON, &lead.Pickup); err != nil {
		return nil, fmt.Errorf("unmarshal pickup: %w", err)
	}
	if err := json.Unmarshal(payoutJSON, &lead.Payout); err != nil {
		return nil, fmt.Errorf("unmarshal payout: %w", err)
	}
	return &lead, nil
}
