package register

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/canback/pickup-platform/internal/accounts"
	"github.com/canback/pickup-platform/internal/ledger"
	"github.com/canback/pickup-platform/internal/observability/metrics"
	"github.com/canback/pickup-platform/internal/payout"
	"github.com/canback/pickup-platform/internal/tokens"
	"github.com/canback/pickup-platform/pkg/logging"
)

var registerTracer = otel.Tracer("canback.internal.register")

// ValidationError carries the full ordered list of violations for a
// rejected registration.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "registration rejected: " + strings.Join(e.Violations, "; ")
}

// WelcomeNotifier greets newly registered accounts. Failures are logged
// and never surfaced to the caller.
type WelcomeNotifier interface {
	Welcome(ctx context.Context, email, firstName string) error
}

// BonusConfig describes the promotional signup bonus. A non-positive
// amount disables it.
type BonusConfig struct {
	Dollars  int
	Status   string
	Currency string
}

// Profile is the public view of an account returned after registration
// or login.
type Profile struct {
	ID             string        `json:"id"`
	Username       string        `json:"username"`
	Email          string        `json:"email"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Phone          string        `json:"phone,omitempty"`
	Street         string        `json:"street,omitempty"`
	Suburb         string        `json:"suburb,omitempty"`
	City           string        `json:"city,omitempty"`
	Postcode       string        `json:"postcode,omitempty"`
	PayoutMethod   payout.Method `json:"payout_method"`
	MarketingOptIn bool          `json:"marketing_opt_in"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Result is returned on successful registration or login.
type Result struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

// Service sequences the registration steps. The sequence is best-effort
// atomic from the caller's point of view: validation failures and
// username conflicts leave no side effects; the profile and bonus writes
// after account creation are best-effort; token issuance failure is fatal
// even though the account exists by then. That last partial-success state
// is deliberate and recoverable by logging in once token issuance is
// healthy again.
type Service struct {
	validator *Validator
	accounts  accounts.Store
	tokens    tokens.Service
	ledger    ledger.Ledger
	notifier  WelcomeNotifier
	bonus     BonusConfig
	metrics   *metrics.IntakeMetrics
	logger    *logging.Logger
}

// NewService creates a registration service.
func NewService(
	validator *Validator,
	store accounts.Store,
	tokenService tokens.Service,
	bonusLedger ledger.Ledger,
	notifier WelcomeNotifier,
	bonus BonusConfig,
	m *metrics.IntakeMetrics,
	logger *logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		validator: validator,
		accounts:  store,
		tokens:    tokenService,
		ledger:    bonusLedger,
		notifier:  notifier,
		bonus:     bonus,
		metrics:   m,
		logger:    logger,
	}
}

// Register runs the full registration sequence.
func (s *Service) Register(ctx context.Context, req *RegistrationRequest) (*Result, error) {
	ctx, span := registerTracer.Start(ctx, "register.Register")
	defer span.End()

	valid, violations := s.validator.ValidateRegistration(req)
	if len(violations) > 0 {
		s.metrics.ObserveRegistration("rejected")
		s.metrics.ObserveValidationFailures("registration", len(violations))
		span.SetAttributes(attribute.Int("register.violations", len(violations)))
		return nil, &ValidationError{Violations: violations}
	}

	account, err := s.createAccount(ctx, valid.Account)
	if err != nil {
		if errors.Is(err, accounts.ErrUsernameTaken) {
			s.metrics.ObserveRegistration("conflict")
			return nil, err
		}
		s.metrics.ObserveRegistration("error")
		return nil, fmt.Errorf("register: create account: %w", err)
	}
	span.SetAttributes(attribute.String("register.account_id", account.ID))

	// Best-effort second write: the account exists even if this fails.
	if err := s.accounts.UpdateProfile(ctx, account.ID, valid.Profile); err != nil {
		s.logger.Warn("profile update failed after account creation",
			"error", err, "account_id", account.ID)
	}

	s.recordBonus(ctx, account.ID)

	token, err := s.issueToken(ctx, account.ID)
	if err != nil {
		// The account exists but has no token; the customer can log in
		// once token issuance recovers.
		s.metrics.ObserveRegistration("error")
		s.logger.Error("token issuance failed for new account",
			"error", err, "account_id", account.ID)
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	profile, err := s.loadProfile(ctx, account.ID)
	if err != nil {
		s.metrics.ObserveRegistration("error")
		return nil, fmt.Errorf("register: load profile: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.Welcome(ctx, profile.Email, profile.FirstName); err != nil {
			s.logger.Warn("welcome email failed", "error", err, "account_id", account.ID)
		}
	}

	s.metrics.ObserveRegistration("accepted")
	s.logger.Info("account registered", "account_id", account.ID, "username", account.Username)

	return &Result{Token: token, Profile: profile}, nil
}

// Login verifies credentials and issues a fresh token.
func (s *Service) Login(ctx context.Context, username, password string) (*Result, error) {
	ctx, span := registerTracer.Start(ctx, "register.Login")
	defer span.End()

	account, err := s.accounts.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("register: verify credentials: %w", err)
	}

	token, err := s.issueToken(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	return &Result{Token: token, Profile: ProfileFromAccount(account)}, nil
}

// Logout revokes the token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := registerTracer.Start(ctx, "register.Logout")
	defer span.End()
	return s.tokens.Revoke(ctx, token)
}

// Profile returns the public profile for an account.
func (s *Service) Profile(ctx context.Context, accountID string) (Profile, error) {
	return s.loadProfile(ctx, accountID)
}

// Payments lists the reward and bonus payments recorded for an account.
func (s *Service) Payments(ctx context.Context, accountID string) ([]ledger.Payment, error) {
	if s.ledger == nil {
		return nil, nil
	}
	return s.ledger.ListByAccount(ctx, accountID)
}

func (s *Service) createAccount(ctx context.Context, acc accounts.NewAccount) (*accounts.Account, error) {
	ctx, span := registerTracer.Start(ctx, "register.createAccount")
	defer span.End()
	return s.accounts.Create(ctx, acc)
}

func (s *Service) issueToken(ctx context.Context, accountID string) (string, error) {
	ctx, span := registerTracer.Start(ctx, "register.issueToken")
	defer span.End()
	return s.tokens.Issue(ctx, accountID)
}

// recordBonus writes the promotional signup bonus. Fire-and-forget: a
// ledger failure never fails the registration.
func (s *Service) recordBonus(ctx context.Context, accountID string) {
	if s.ledger == nil || s.bonus.Dollars <= 0 {
		return
	}
	err := s.ledger.RecordPayment(ctx, ledger.Payment{
		AccountID: accountID,
		Dollars:   s.bonus.Dollars,
		Label:     "signup bonus",
		Note:      "promotional signup bonus",
		Date:      time.Now().UTC(),
		Status:    s.bonus.Status,
		Currency:  s.bonus.Currency,
	})
	if err != nil {
		s.logger.Warn("bonus payment recording failed", "error", err, "account_id", accountID)
	}
}

func (s *Service) loadProfile(ctx context.Context, accountID string) (Profile, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return Profile{}, err
	}
	return ProfileFromAccount(account), nil
}

// ProfileFromAccount maps an account record to its public profile.
func ProfileFromAccount(account *accounts.Account) Profile {
	return Profile{
		ID:             account.ID,
		Username:       account.Username,
		Email:          account.Email,
		FirstName:      account.FirstName,
		LastName:       account.LastName,
		Phone:          account.Phone,
		Street:         account.Street,
		Suburb:         account.Suburb,
		City:           account.City,
		Postcode:       account.Postcode,
		PayoutMethod:   account.Payout.Method,
		MarketingOptIn: account.MarketingOptIn,
		CreatedAt:      account.CreatedAt,
	}
}
