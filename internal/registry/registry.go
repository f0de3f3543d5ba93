// Package registry manages the department and staff collections the admin
// surfaces operate on.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jyambere.org/internal/account"
	"jyambere.org/internal/audit"
	"jyambere.org/internal/kvstore"
	"jyambere.org/internal/roles"
)

// Department is an organizational unit owning a report category.
type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// StaffRecord mirrors a staff account in the admin staff list. It shares the
// account id.
type StaffRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
}

var (
	ErrInvalidInput        = errors.New("registry: invalid input")
	ErrDuplicateDepartment = errors.New("registry: department already exists")
)

// Registry provides department and staff management.
type Registry struct {
	store    kvstore.Store
	accounts *account.Service
	now      func() time.Time
}

// Option configures Registry behavior.
type Option func(*Registry)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(r *Registry) {
		if fn != nil {
			r.now = fn
		}
	}
}

// New constructs a Registry.
func New(store kvstore.Store, accounts *account.Service, opts ...Option) *Registry {
	r := &Registry{store: store, accounts: accounts, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnsureDefaultDepartments seeds the five fixed departments when the
// collection is empty or absent. Idempotent: repeated calls never re-seed.
func (r *Registry) EnsureDefaultDepartments(ctx context.Context) error {
	existing, err := kvstore.LoadList[Department](ctx, r.store, kvstore.KeyDepartments)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	now := r.now().UTC()
	seeded := make([]Department, 0, 5)
	for i, name := range roles.DefaultDepartments() {
		seeded = append(seeded, Department{
			ID:        strconv.Itoa(i + 1),
			Name:      name,
			Active:    true,
			CreatedAt: now,
		})
	}
	return kvstore.SaveList(ctx, r.store, kvstore.KeyDepartments, seeded)
}

// AddDepartment appends a new department. Duplicate names are rejected
// case-insensitively.
func (r *Registry) AddDepartment(ctx context.Context, name string) (Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Department{}, fmt.Errorf("%w: department name is required", ErrInvalidInput)
	}
	departments, err := kvstore.LoadList[Department](ctx, r.store, kvstore.KeyDepartments)
	if err != nil {
		return Department{}, err
	}
	for _, d := range departments {
		if strings.EqualFold(d.Name, name) {
			return Department{}, ErrDuplicateDepartment
		}
	}
	dept := Department{
		ID:        nextID(departments),
		Name:      name,
		Active:    true,
		CreatedAt: r.now().UTC(),
	}
	departments = append(departments, dept)
	if err := kvstore.SaveList(ctx, r.store, kvstore.KeyDepartments, departments); err != nil {
		return Department{}, err
	}
	_ = audit.LogEvent(ctx, "registry.add_department", map[string]any{"department": dept.Name})
	return dept, nil
}

// AddStaff creates a staff account with the admin-chosen department and the
// matching staff record. The two writes are one logical operation but happen
// sequentially, account first; a failure between them leaves an account
// without a staff record.
func (r *Registry) AddStaff(ctx context.Context, name, email, password, department string) (account.Account, StaffRecord, error) {
	if name == "" || email == "" || password == "" || department == "" {
		return account.Account{}, StaffRecord{}, fmt.Errorf("%w: all staff fields are required", ErrInvalidInput)
	}
	acc, err := r.accounts.CreateStaff(ctx, name, email, password, department)
	if err != nil {
		return account.Account{}, StaffRecord{}, err
	}

	staff, err := kvstore.LoadList[StaffRecord](ctx, r.store, kvstore.KeyStaff)
	if err != nil {
		return account.Account{}, StaffRecord{}, err
	}
	rec := StaffRecord{
		ID:         acc.ID,
		Name:       name,
		Email:      email,
		Department: department,
		Active:     true,
		CreatedAt:  r.now().UTC(),
	}
	staff = append(staff, rec)
	if err := kvstore.SaveList(ctx, r.store, kvstore.KeyStaff, staff); err != nil {
		return account.Account{}, StaffRecord{}, err
	}
	_ = audit.LogEvent(ctx, "registry.add_staff", map[string]any{
		"staff_id":   rec.ID,
		"department": department,
	})
	return acc, rec, nil
}

// Departments returns the department collection.
func (r *Registry) Departments(ctx context.Context) ([]Department, error) {
	return kvstore.LoadList[Department](ctx, r.store, kvstore.KeyDepartments)
}

// Staff returns the staff collection.
func (r *Registry) Staff(ctx context.Context) ([]StaffRecord, error) {
	return kvstore.LoadList[StaffRecord](ctx, r.store, kvstore.KeyStaff)
}

// nextID continues the small numeric id sequence the seed starts. Falls back
// past any non-numeric ids an older store may contain.
func nextID(departments []Department) string {
	max := 0
	for _, d := range departments {
		if n, err := strconv.Atoi(d.ID); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}
