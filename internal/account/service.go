// Package account manages the users collection: registration with role
// derivation, login, and the session lifecycle around both.
package account

import (
	"context"
	"strings"
	"time"

	"jyambere.org/internal/audit"
	"jyambere.org/internal/ids"
	"jyambere.org/internal/kvstore"
	"jyambere.org/internal/obs"
	"jyambere.org/internal/roles"
	"jyambere.org/internal/session"
)

// Service provides account operations over the users collection.
type Service struct {
	store    kvstore.Store
	sessions *session.Manager
	verifier CredentialVerifier
	now      func() time.Time
}

// Option configures Service behavior.
type Option func(*Service)

// WithVerifier overrides the credential verifier.
func WithVerifier(v CredentialVerifier) Option {
	return func(s *Service) {
		if v != nil {
			s.verifier = v
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs the account service.
func NewService(store kvstore.Store, sessions *session.Manager, opts ...Option) *Service {
	s := &Service{
		store:    store,
		sessions: sessions,
		verifier: PlaintextVerifier{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account for a new email, derives its role and
// department from the address, persists the session pointer, and returns the
// session view. Email uniqueness is checked case-insensitively.
func (s *Service) Register(ctx context.Context, email, password, name string) (session.Snapshot, error) {
	accounts, err := kvstore.LoadList[Account](ctx, s.store, kvstore.KeyUsers)
	if err != nil {
		return session.Snapshot{}, err
	}
	for _, acc := range accounts {
		if strings.EqualFold(acc.Email, email) {
			obs.ObserveAccountOp("register", "duplicate")
			return session.Snapshot{}, ErrDuplicateEmail
		}
	}

	stored, err := s.verifier.Hash(password)
	if err != nil {
		return session.Snapshot{}, err
	}

	role, dept := roles.Resolve(email)
	acc := Account{
		ID:        ids.New(),
		Email:     email,
		Password:  stored,
		Name:      name,
		Role:      role,
		CreatedAt: s.now().UTC(),
	}
	if dept != "" {
		acc.Department = &dept
	}

	accounts = append(accounts, acc)
	if err := kvstore.SaveList(ctx, s.store, kvstore.KeyUsers, accounts); err != nil {
		return session.Snapshot{}, err
	}

	snap := snapshotOf(acc)
	if err := s.sessions.Save(ctx, snap); err != nil {
		return session.Snapshot{}, err
	}

	obs.ObserveAccountOp("register", "ok")
	_ = audit.LogEvent(ctx, "account.register", map[string]any{
		"account_id": acc.ID,
		"role":       acc.Role,
	})
	return snap, nil
}

// Login matches email and password against the users collection and persists
// the session pointer on success. Both failure halves surface the same error.
func (s *Service) Login(ctx context.Context, email, password string) (session.Snapshot, error) {
	accounts, err := kvstore.LoadList[Account](ctx, s.store, kvstore.KeyUsers)
	if err != nil {
		return session.Snapshot{}, err
	}
	for _, acc := range accounts {
		if !strings.EqualFold(acc.Email, email) {
			continue
		}
		if s.verifier.Verify(acc.Password, password) != nil {
			continue
		}
		snap := snapshotOf(acc)
		if err := s.sessions.Save(ctx, snap); err != nil {
			return session.Snapshot{}, err
		}
		obs.ObserveAccountOp("login", "ok")
		_ = audit.LogEvent(ctx, "account.login", map[string]any{"account_id": acc.ID})
		return snap, nil
	}
	obs.ObserveAccountOp("login", "failed")
	return session.Snapshot{}, ErrInvalidCredentials
}

// Logout clears the session pointer.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	_ = audit.LogEvent(ctx, "account.logout", nil)
	return nil
}

// RestoreSession reads the persisted session, if any. Called at process start.
func (s *Service) RestoreSession(ctx context.Context) (*session.Snapshot, error) {
	return s.sessions.Restore(ctx)
}

// Accounts returns the full users collection. Admin surfaces use this for
// staff lookup; the password field is stored, so callers must not expose it.
func (s *Service) Accounts(ctx context.Context) ([]Account, error) {
	return kvstore.LoadList[Account](ctx, s.store, kvstore.KeyUsers)
}

// CreateStaff appends a staff account with an explicitly chosen department,
// bypassing role derivation. The admin registry drives this; it does not
// touch the session pointer.
func (s *Service) CreateStaff(ctx context.Context, name, email, password, department string) (Account, error) {
	accounts, err := kvstore.LoadList[Account](ctx, s.store, kvstore.KeyUsers)
	if err != nil {
		return Account{}, err
	}
	for _, acc := range accounts {
		if strings.EqualFold(acc.Email, email) {
			return Account{}, ErrDuplicateEmail
		}
	}

	stored, err := s.verifier.Hash(password)
	if err != nil {
		return Account{}, err
	}
	acc := Account{
		ID:         ids.New(),
		Email:      email,
		Password:   stored,
		Name:       name,
		Role:       roles.RoleStaff,
		Department: &department,
		CreatedAt:  s.now().UTC(),
	}
	accounts = append(accounts, acc)
	if err := kvstore.SaveList(ctx, s.store, kvstore.KeyUsers, accounts); err != nil {
		return Account{}, err
	}
	_ = audit.LogEvent(ctx, "account.create_staff", map[string]any{
		"account_id": acc.ID,
		"department": department,
	})
	return acc, nil
}

func snapshotOf(acc Account) session.Snapshot {
	return session.Snapshot{
		ID:         acc.ID,
		Email:      acc.Email,
		Name:       acc.Name,
		Role:       acc.Role,
		Department: acc.Department,
	}
}
