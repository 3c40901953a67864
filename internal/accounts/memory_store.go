package accounts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/canback/pickup-platform/internal/payout"
)

// InMemoryStore is a Store backed by maps, used in development and tests
// when no database is configured.
type InMemoryStore struct {
	mu         sync.RWMutex
	byID       map[string]*Account
	byUsername map[string]string
}

// NewInMemoryStore creates a new in-memory account store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:       make(map[string]*Account),
		byUsername: make(map[string]string),
	}
}

// Create registers a new account. The username check and insert happen
// under one lock, which is the in-memory version of the storage-layer
// uniqueness guarantee.
func (s *InMemoryStore) Create(ctx context.Context, acc NewAccount) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("accounts: hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[acc.Username]; exists {
		return nil, ErrUsernameTaken
	}

	account := &Account{
		ID:           uuid.New().String(),
		Username:     acc.Username,
		PasswordHash: string(hash),
		Email:        acc.Email,
		Role:         acc.Role,
		FirstName:    acc.FirstName,
		LastName:     acc.LastName,
		Payout:       payout.DefaultPreference(),
		CreatedAt:    time.Now().UTC(),
	}
	s.byID[account.ID] = account
	s.byUsername[account.Username] = account.ID

	return cloned(account), nil
}

// UpdateProfile writes the extended profile fields.
func (s *InMemoryStore) UpdateProfile(ctx context.Context, accountID string, update ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byID[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	account.Phone = update.Phone
	account.Street = update.Street
	account.Suburb = update.Suburb
	account.City = update.City
	account.Postcode = update.Postcode
	account.Payout = update.Payout
	account.MarketingOptIn = update.MarketingOptIn
	return nil
}

// GetByID retrieves an account by ID
func (s *InMemoryStore) GetByID(ctx context.Context, id string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byID[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return cloned(account), nil
}

// GetByUsername retrieves an account by username
func (s *InMemoryStore) GetByUsername(ctx context.Context, username string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return cloned(s.byID[id]), nil
}

// Verify checks a username/password pair.
func (s *InMemoryStore) Verify(ctx context.Context, username, password string) (*Account, error) {
	account, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

func cloned(account *Account) *Account {
	copied := *account
	return &copied
}
