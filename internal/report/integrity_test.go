package report

import (
	"context"
	"testing"
	"time"

	"jyambere.org/internal/kvstore"
)

func TestCompleteRecordPrefersMaster(t *testing.T) {
	store := kvstore.NewMemory()
	repo := NewRepository(store)
	ctx := context.Background()

	master := Report{ID: "r1", Description: "master copy", Status: StatusPending}
	stale := Report{ID: "r1", Description: "stale copy", Status: StatusPending}
	if err := kvstore.SaveList(ctx, store, kvstore.KeyMasterReports, []Report{master}); err != nil {
		t.Fatal(err)
	}
	if err := kvstore.SaveList(ctx, store, kvstore.KeyReports, []Report{stale}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.CompleteRecord(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Description != "master copy" {
		t.Fatalf("wrong source preferred: %#v", got)
	}

	if _, err := repo.CompleteRecord(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompleteRecordFallsBack(t *testing.T) {
	store := kvstore.NewMemory()
	repo := NewRepository(store)
	ctx := context.Background()

	only := Report{ID: "r2", Description: "citizen copy"}
	if err := kvstore.SaveList(ctx, store, kvstore.KeyReports, []Report{only}); err != nil {
		t.Fatal(err)
	}
	got, err := repo.CompleteRecord(ctx, "r2")
	if err != nil {
		t.Fatal(err)
	}
	if got.Description != "citizen copy" {
		t.Fatalf("fallback failed: %#v", got)
	}
}

func TestSyncFields(t *testing.T) {
	store := kvstore.NewMemory()
	repo := NewRepository(store, WithClock(steppingClock()))
	ctx := context.Background()

	rec, err := repo.Create(ctx, citizen, fullDraft())
	if err != nil {
		t.Fatal(err)
	}

	status := StatusInProgress
	by := "Aline"
	when := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	if err := repo.SyncFields(ctx, rec.ID, Patch{Status: &status, UpdatedBy: &by, UpdatedAt: &when}); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{kvstore.KeyReports, kvstore.KeyAllReports, kvstore.KeyMasterReports} {
		list := loadAll(t, store, key)
		if list[0].Status != StatusInProgress || list[0].UpdatedBy != "Aline" || !list[0].UpdatedAt.Equal(when) {
			t.Fatalf("%s not patched: %#v", key, list[0])
		}
		if list[0].Priority != rec.Priority || list[0].Image == nil {
			t.Fatalf("%s lost untouched fields: %#v", key, list[0])
		}
	}
}

func TestVerifyIntegrityClean(t *testing.T) {
	store := kvstore.NewMemory()
	repo := NewRepository(store, WithClock(steppingClock()))
	ctx := context.Background()

	rec, err := repo.Create(ctx, citizen, fullDraft())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Assign(ctx, rec.ID, "staff-7"); err != nil {
		t.Fatal(err)
	}

	out, err := repo.VerifyIntegrity(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Divergent) != 0 {
		t.Fatalf("clean store flagged divergent: %v", out.Divergent)
	}
	if out.Counts[kvstore.KeyAllReports] != 1 || out.Counts[kvstore.KeyAssignedReports] != 1 {
		t.Fatalf("counts: %v", out.Counts)
	}
	if out.WithPhoto != 1 || out.WithGPS != 1 {
		t.Fatalf("photo/GPS counts: %+v", out)
	}
}

func TestVerifyIntegrityFlagsDivergence(t *testing.T) {
	store := kvstore.NewMemory()
	repo := NewRepository(store, WithClock(steppingClock()))
	ctx := context.Background()

	rec, err := repo.Create(ctx, citizen, fullDraft())
	if err != nil {
		t.Fatal(err)
	}

	// Simulate a propagation interrupted after the citizen collection write.
	list := loadAll(t, store, kvstore.KeyReports)
	list[0].Status = StatusResolved
	if err := kvstore.SaveList(ctx, store, kvstore.KeyReports, list); err != nil {
		t.Fatal(err)
	}

	out, err := repo.VerifyIntegrity(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Divergent) != 1 || out.Divergent[0] != rec.ID {
		t.Fatalf("divergence not flagged: %v", out.Divergent)
	}
}
