package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/canback/pickup-platform/internal/payout"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// DB is the subset of pgxpool.Pool the store needs. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore stores accounts in the relational database.
type PostgresStore struct {
	pool DB
}

// NewPostgresStore initializes a store backed by pgxpool.
func NewPostgresStore(pool DB) *PostgresStore {
	if pool == nil {
		panic("accounts: pgx pool required")
	}
	return &PostgresStore{pool: pool}
}

// Create inserts a new account row. The unique index on username turns a
// duplicate registration into ErrUsernameTaken; there is no retry.
func (s *PostgresStore) Create(ctx context.Context, acc NewAccount) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("accounts: hash password: %w", err)
	}

	id := uuid.New().String()
	query := `
		INSERT INTO accounts (id, username, password_hash, email, role, first_name, last_name, payout)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	payoutJSON, err := json.Marshal(payout.DefaultPreference())
	if err != nil {
		return nil, fmt.Errorf("accounts: marshal payout: %w", err)
	}

	var createdAt time.Time
	if err := s.pool.QueryRow(ctx, query,
		id,
		acc.Username,
		string(hash),
		acc.Email,
		acc.Role,
		acc.FirstName,
		acc.LastName,
		payoutJSON,
	).Scan(&createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("accounts: insert failed: %w", err)
	}

	return &Account{
		ID:           id,
		Username:     acc.Username,
		PasswordHash: string(hash),
		Email:        acc.Email,
		Role:         acc.Role,
		FirstName:    acc.FirstName,
		LastName:     acc.LastName,
		Payout:       payout.DefaultPreference(),
		CreatedAt:    createdAt,
	}, nil
}

// UpdateProfile writes the extended profile fields against an existing row.
func (s *PostgresStore) UpdateProfile(ctx context.Context, accountID string, update ProfileUpdate) error {
	payoutJSON, err := json.Marshal(update.Payout)
	if err != nil {
		return fmt.Errorf("accounts: marshal payout: %w", err)
	}

	query := `
		UPDATE accounts
		SET phone = $2, street = $3, suburb = $4, city = $5, postcode = $6,
		    payout = $7, marketing_opt_in = $8
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query,
		accountID,
		update.Phone,
		update.Street,
		update.Suburb,
		update.City,
		update.Postcode,
		payoutJSON,
		update.MarketingOptIn,
	)
	if err != nil {
		return fmt.Errorf("accounts: update profile failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// GetByID fetches an account.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Account, error) {
	return s.get(ctx, "id", id)
}

// GetByUsername fetches an account by username.
func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return s.get(ctx, "username", username)
}

func (s *PostgresStore) get(ctx context.Context, column, value string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT id, username, password_hash, email, role, first_name, last_name,
		       COALESCE(phone, ''), COALESCE(street, ''), COALESCE(suburb, ''),
		       COALESCE(city, ''), COALESCE(postcode, ''), payout, marketing_opt_in, created_at
		FROM accounts
		WHERE %s = $1
	`, column)

	var account Account
	var payoutJSON []byte
	if err := s.pool.QueryRow(ctx, query, value).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.Email,
		&account.Role,
		&account.FirstName,
		&account.LastName,
		&account.Phone,
		&account.Street,
		&account.Suburb,
		&account.City,
		&account.Postcode,
		&payoutJSON,
		&account.MarketingOptIn,
		&account.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("accounts: select failed: %w", err)
	}
	if err := json.Unmarshal(payoutJSON, &account.Payout); err != nil {
		return nil, fmt.Errorf("accounts: unmarshal payout: %w", err)
	}
	return &account, nil
}

// Verify checks a username/password pair.
func (s *PostgresStore) Verify(ctx context.Context, username, password string) (*Account, error) {
	account, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}
