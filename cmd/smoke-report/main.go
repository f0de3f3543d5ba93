package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"jyambere.org/internal/account"
	"jyambere.org/internal/kvstore"
	"jyambere.org/internal/registry"
	"jyambere.org/internal/report"
	"jyambere.org/internal/session"
)

// Exercises the whole report lifecycle against an in-memory store:
// register accounts, create a report with photo and GPS, assign it,
// progress it to Resolved, then verify that all four collections agree.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := kvstore.NewMemory()
	sessions := session.NewManager(store)
	accounts := account.NewService(store, sessions)
	reports := report.NewRepository(store)
	reg := registry.New(store, accounts)

	if err := reg.EnsureDefaultDepartments(ctx); err != nil {
		log.Fatalf("seed departments: %v", err)
	}

	citizen, err := accounts.Register(ctx, "mutesi@example.com", "citizen-pass", "Mutesi")
	if err != nil {
		log.Fatalf("register citizen: %v", err)
	}
	if citizen.Role != "citizen" {
		log.Fatalf("unexpected citizen role: %s", citizen.Role)
	}

	staffAcct, staffRec, err := reg.AddStaff(ctx, "Habimana", "habimana@example.com", "staff-pass", "Roads")
	if err != nil {
		log.Fatalf("add staff: %v", err)
	}
	if staffAcct.ID != staffRec.ID {
		log.Fatalf("staff record id %s does not match account id %s", staffRec.ID, staffAcct.ID)
	}

	rec, err := reports.Create(ctx, citizen, report.Draft{
		Category:    "Roads",
		Priority:    "High",
		Location:    "KN 5 Rd, Kigali",
		Description: "Deep pothole near the junction",
		Coordinates: &report.Coordinates{Latitude: -1.9501, Longitude: 30.0588},
		Image:       &report.Image{URI: "file:///tmp/pothole.jpg", Type: "image", FileName: "pothole.jpg"},
	})
	if err != nil {
		log.Fatalf("create report: %v", err)
	}
	if rec.Status != report.StatusPending {
		log.Fatalf("new report status: %s", rec.Status)
	}

	assigned, err := reports.Assign(ctx, rec.ID, staffAcct.ID)
	if err != nil {
		log.Fatalf("assign: %v", err)
	}
	if assigned.AssignedTo != staffAcct.ID {
		log.Fatalf("assigned to %s, want %s", assigned.AssignedTo, staffAcct.ID)
	}

	if _, err := accounts.Login(ctx, "admin@civic.rw", "admin-pass"); err == nil {
		log.Fatalf("login with unknown admin succeeded")
	}

	staffSnap, err := accounts.Login(ctx, "habimana@example.com", "staff-pass")
	if err != nil {
		log.Fatalf("staff login: %v", err)
	}

	if err := reports.UpdateStatus(ctx, rec.ID, report.StatusInProgress, &staffSnap); err != nil {
		log.Fatalf("progress report: %v", err)
	}
	if err := reports.UpdateStatus(ctx, rec.ID, report.StatusResolved, &staffSnap); err != nil {
		log.Fatalf("resolve report: %v", err)
	}
	if err := reports.UpdateStatus(ctx, rec.ID, report.StatusInProgress, &staffSnap); err != report.ErrResolved {
		log.Fatalf("reopening a resolved report: got %v, want ErrResolved", err)
	}

	res, err := reports.VerifyIntegrity(ctx)
	if err != nil {
		log.Fatalf("verify integrity: %v", err)
	}
	if len(res.Divergent) != 0 {
		log.Fatalf("collections diverge: %v", res.Divergent)
	}
	if res.WithPhoto != 1 || res.WithGPS != 1 {
		log.Fatalf("attachment counts: photo=%d gps=%d", res.WithPhoto, res.WithGPS)
	}

	all, err := reports.All(ctx)
	if err != nil {
		log.Fatalf("list all: %v", err)
	}
	stats := report.ComputeStats(all)
	if stats.Resolved != 1 || stats.Total != 1 {
		log.Fatalf("stats: %+v", stats)
	}

	fmt.Printf("✅ report smoke test passed: report=%s staff=%s\n", rec.ID, staffAcct.ID)
}
