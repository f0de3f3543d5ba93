package registry

import (
	"context"
	"errors"
	"testing"

	"jyambere.org/internal/account"
	"jyambere.org/internal/kvstore"
	"jyambere.org/internal/roles"
	"jyambere.org/internal/session"
)

func newTestRegistry() (*Registry, kvstore.Store) {
	store := kvstore.NewMemory()
	accounts := account.NewService(store, session.NewManager(store))
	return New(store, accounts), store
}

func TestEnsureDefaultDepartmentsIdempotent(t *testing.T) {
	reg, _ := newTestRegistry()
	ctx := context.Background()

	if err := reg.EnsureDefaultDepartments(ctx); err != nil {
		t.Fatal(err)
	}
	if err := reg.EnsureDefaultDepartments(ctx); err != nil {
		t.Fatal(err)
	}

	departments, err := reg.Departments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(departments) != 5 {
		t.Fatalf("expected 5 departments, got %d", len(departments))
	}
	if departments[0].Name != "Sanitation" || departments[0].ID != "1" {
		t.Fatalf("unexpected first department: %#v", departments[0])
	}
	if departments[4].Name != "Water" || departments[4].ID != "5" {
		t.Fatalf("unexpected last department: %#v", departments[4])
	}
	for _, d := range departments {
		if !d.Active {
			t.Fatalf("seeded department inactive: %#v", d)
		}
	}
}

func TestAddDepartment(t *testing.T) {
	reg, _ := newTestRegistry()
	ctx := context.Background()

	if err := reg.EnsureDefaultDepartments(ctx); err != nil {
		t.Fatal(err)
	}
	dept, err := reg.AddDepartment(ctx, "Parks")
	if err != nil {
		t.Fatal(err)
	}
	if dept.ID != "6" || !dept.Active {
		t.Fatalf("unexpected department: %#v", dept)
	}

	if _, err := reg.AddDepartment(ctx, "parks"); !errors.Is(err, ErrDuplicateDepartment) {
		t.Fatalf("expected ErrDuplicateDepartment, got %v", err)
	}
	if _, err := reg.AddDepartment(ctx, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	departments, _ := reg.Departments(ctx)
	if len(departments) != 6 {
		t.Fatalf("expected 6 departments, got %d", len(departments))
	}
}

func TestAddStaffCreatesAccountAndRecord(t *testing.T) {
	reg, store := newTestRegistry()
	ctx := context.Background()

	acc, rec, err := reg.AddStaff(ctx, "Eric", "eric@city.gov", "pw", "Roads")
	if err != nil {
		t.Fatal(err)
	}
	if acc.Role != roles.RoleStaff || acc.Department == nil || *acc.Department != "Roads" {
		t.Fatalf("unexpected account: %#v", acc)
	}
	if rec.ID != acc.ID {
		t.Fatalf("staff record id %q != account id %q", rec.ID, acc.ID)
	}
	if !rec.Active || rec.Department != "Roads" {
		t.Fatalf("unexpected staff record: %#v", rec)
	}

	accounts, _ := kvstore.LoadList[account.Account](ctx, store, kvstore.KeyUsers)
	staff, _ := kvstore.LoadList[StaffRecord](ctx, store, kvstore.KeyStaff)
	if len(accounts) != 1 || len(staff) != 1 {
		t.Fatalf("accounts=%d staff=%d", len(accounts), len(staff))
	}

	if _, _, err := reg.AddStaff(ctx, "Eric", "eric@city.gov", "pw", "Water"); !errors.Is(err, account.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if _, _, err := reg.AddStaff(ctx, "", "x@y.z", "pw", "Water"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
