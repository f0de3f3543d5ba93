package report

import (
	"context"
	"reflect"
	"sort"
	"time"

	"jyambere.org/internal/kvstore"
	"jyambere.org/internal/obs"
)

// CompleteRecord returns the fullest stored copy of a report. The master
// collection is the most authoritative source; the others are fallbacks for
// stores written before the master copy existed.
func (r *Repository) CompleteRecord(ctx context.Context, reportID string) (Report, error) {
	for _, key := range []string{
		kvstore.KeyMasterReports,
		kvstore.KeyAllReports,
		kvstore.KeyReports,
		kvstore.KeyAssignedReports,
	} {
		list, err := kvstore.LoadList[Report](ctx, r.store, key)
		if err != nil {
			return Report{}, err
		}
		for _, rec := range list {
			if rec.ID == reportID {
				return rec, nil
			}
		}
	}
	return Report{}, ErrNotFound
}

// Patch is a field subset propagated by SyncFields. Nil fields are left
// unchanged in every copy.
type Patch struct {
	Status              *Status
	AssignedTo          *string
	UpdatedBy           *string
	UpdatedByDepartment *string
	UpdatedAt           *time.Time
}

// SyncFields applies the patch to every copy of the report across all four
// collections. Collections that do not hold the report are skipped.
func (r *Repository) SyncFields(ctx context.Context, reportID string, patch Patch) error {
	for _, key := range collectionKeys {
		list, err := kvstore.LoadList[Report](ctx, r.store, key)
		if err != nil {
			return err
		}
		touched := false
		for i := range list {
			if list[i].ID != reportID {
				continue
			}
			applyPatch(&list[i], patch)
			touched = true
		}
		if !touched {
			continue
		}
		if err := kvstore.SaveList(ctx, r.store, key, list); err != nil {
			return err
		}
		obs.ObserveFanoutWrite(key)
	}
	obs.ObserveReportMutation("sync")
	return nil
}

func applyPatch(rec *Report, patch Patch) {
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.AssignedTo != nil {
		rec.AssignedTo = *patch.AssignedTo
	}
	if patch.UpdatedBy != nil {
		rec.UpdatedBy = *patch.UpdatedBy
	}
	if patch.UpdatedByDepartment != nil {
		rec.UpdatedByDepartment = *patch.UpdatedByDepartment
	}
	if patch.UpdatedAt != nil {
		rec.UpdatedAt = *patch.UpdatedAt
	}
}

// IntegrityReport is the result of the manual consistency diagnostic.
type IntegrityReport struct {
	Counts    map[string]int `json:"counts"`
	WithPhoto int            `json:"withPhoto"`
	WithGPS   int            `json:"withGPS"`
	Divergent []string       `json:"divergent"`
}

// VerifyIntegrity compares every copy of every report across the four
// collections and lists the ids whose copies diverge. It is a diagnostic
// only: nothing is repaired, and the mutation path never calls it.
func (r *Repository) VerifyIntegrity(ctx context.Context) (IntegrityReport, error) {
	out := IntegrityReport{Counts: make(map[string]int, len(collectionKeys))}
	byID := make(map[string][]Report)

	for _, key := range collectionKeys {
		list, err := kvstore.LoadList[Report](ctx, r.store, key)
		if err != nil {
			return IntegrityReport{}, err
		}
		out.Counts[key] = len(list)
		for _, rec := range list {
			byID[rec.ID] = append(byID[rec.ID], rec)
		}
		if key == kvstore.KeyAllReports {
			for _, rec := range list {
				if rec.Image != nil {
					out.WithPhoto++
				}
				if rec.Coordinates != nil {
					out.WithGPS++
				}
			}
		}
	}

	for id, copies := range byID {
		for i := 1; i < len(copies); i++ {
			if !equivalent(copies[0], copies[i]) {
				out.Divergent = append(out.Divergent, id)
				break
			}
		}
	}
	sort.Strings(out.Divergent)

	obs.SetIntegrityMismatches(len(out.Divergent))
	return out, nil
}

// equivalent compares two copies of the same report. The assignment
// timestamp only exists on the assignedReports copy, so it is excluded from
// the comparison.
func equivalent(a, b Report) bool {
	a.AssignedAt = nil
	b.AssignedAt = nil
	return reflect.DeepEqual(a, b)
}
