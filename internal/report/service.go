// Package report owns the four redundant report collections and every
// mutation over them. A single logical report is stored as copies in up to
// four lists (citizen view, global view, staff assignment view, master
// audit copy); each mutation re-writes every copy so the collections stay
// field-identical. There is no cross-collection transaction: writes are
// sequential and best-effort, and an interruption can leave the collections
// divergent until VerifyIntegrity surfaces it.
package report

import (
	"context"
	"time"

	"jyambere.org/internal/audit"
	"jyambere.org/internal/ids"
	"jyambere.org/internal/kvstore"
	"jyambere.org/internal/obs"
	"jyambere.org/internal/session"
)

// Collections that can hold a copy of a report, in write order.
var collectionKeys = []string{
	kvstore.KeyReports,
	kvstore.KeyAllReports,
	kvstore.KeyAssignedReports,
	kvstore.KeyMasterReports,
}

// Repository performs all report lifecycle operations.
type Repository struct {
	store kvstore.Store
	now   func() time.Time
}

// Option configures Repository behavior.
type Option func(*Repository)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(r *Repository) {
		if fn != nil {
			r.now = fn
		}
	}
}

// NewRepository constructs the repository over the given store.
func NewRepository(store kvstore.Store, opts ...Option) *Repository {
	r := &Repository{store: store, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create builds the report from the citizen's draft and appends it to the
// citizen, global, and master collections. The assignment collection is not
// touched: a fresh report has no assignee.
func (r *Repository) Create(ctx context.Context, actor session.Snapshot, draft Draft) (Report, error) {
	now := r.now().UTC()
	rec := Report{
		ID:          ids.New(),
		UserID:      actor.ID,
		UserName:    actor.Name,
		UserEmail:   actor.Email,
		Category:    draft.Category,
		Priority:    draft.Priority,
		Location:    draft.Location,
		Description: draft.Description,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Coordinates: draft.Coordinates,
		Image:       draft.Image,
	}

	for _, key := range []string{kvstore.KeyReports, kvstore.KeyAllReports, kvstore.KeyMasterReports} {
		list, err := kvstore.LoadList[Report](ctx, r.store, key)
		if err != nil {
			return Report{}, err
		}
		list = append(list, rec)
		if err := kvstore.SaveList(ctx, r.store, key, list); err != nil {
			return Report{}, err
		}
		obs.ObserveFanoutWrite(key)
	}

	obs.ObserveReportMutation("create")
	_ = audit.LogEvent(ctx, "report.create", map[string]any{
		"report_id": rec.ID,
		"category":  rec.Category,
		"priority":  rec.Priority,
	})
	return rec, nil
}

// UpdateStatus replaces the record in every collection that currently holds
// it with a copy carrying the new status and a fresh updatedAt. Collections
// without the id are left untouched; that is expected, since not every
// collection holds every report. The full record is preserved on rewrite so
// photo and GPS data survive.
func (r *Repository) UpdateStatus(ctx context.Context, reportID string, newStatus Status, actor *session.Snapshot) error {
	if !ValidStatus(newStatus) {
		return ErrInvalidStatus
	}
	current, err := r.CompleteRecord(ctx, reportID)
	if err != nil {
		return err
	}
	if current.Status == StatusResolved {
		return ErrResolved
	}

	now := r.now().UTC()
	found := false
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
			list[i].Status = newStatus
			list[i].UpdatedAt = now
			if actor != nil {
				list[i].UpdatedBy = actor.Name
				if actor.Department != nil {
					list[i].UpdatedByDepartment = *actor.Department
				}
			}
			touched = true
		}
		if !touched {
			continue
		}
		if err := kvstore.SaveList(ctx, r.store, key, list); err != nil {
			return err
		}
		obs.ObserveFanoutWrite(key)
		found = true
	}
	if !found {
		return ErrNotFound
	}

	obs.ObserveReportMutation("update_status")
	_ = audit.LogEvent(ctx, "report.update_status", map[string]any{
		"report_id": reportID,
		"status":    newStatus,
	})
	return nil
}

// Assign copies the full report into the assignment collection with the
// staff id and assignment time, then propagates the Assigned status and
// assignee into the other three collections. The copy is whole-record, never
// a field subset, so the staff view keeps the photo and coordinates.
func (r *Repository) Assign(ctx context.Context, reportID, staffID string) (Report, error) {
	all, err := kvstore.LoadList[Report](ctx, r.store, kvstore.KeyAllReports)
	if err != nil {
		return Report{}, err
	}
	var source *Report
	for i := range all {
		if all[i].ID == reportID {
			source = &all[i]
			break
		}
	}
	if source == nil {
		return Report{}, ErrNotFound
	}

	now := r.now().UTC()
	assigned := *source
	assigned.AssignedTo = staffID
	assigned.AssignedAt = &now
	assigned.Status = StatusAssigned

	assignedList, err := kvstore.LoadList[Report](ctx, r.store, kvstore.KeyAssignedReports)
	if err != nil {
		return Report{}, err
	}
	assignedList = append(assignedList, assigned)
	if err := kvstore.SaveList(ctx, r.store, kvstore.KeyAssignedReports, assignedList); err != nil {
		return Report{}, err
	}
	obs.ObserveFanoutWrite(kvstore.KeyAssignedReports)

	// Status and assignee ripple into the remaining collections. updatedAt is
	// deliberately left alone here: assignment records its own timestamp.
	for _, key := range []string{kvstore.KeyAllReports, kvstore.KeyReports, kvstore.KeyMasterReports} {
		list, err := kvstore.LoadList[Report](ctx, r.store, key)
		if err != nil {
			return Report{}, err
		}
		touched := false
		for i := range list {
			if list[i].ID != reportID {
				continue
			}
			list[i].Status = StatusAssigned
			list[i].AssignedTo = staffID
			touched = true
		}
		if !touched {
			continue
		}
		if err := kvstore.SaveList(ctx, r.store, key, list); err != nil {
			return Report{}, err
		}
		obs.ObserveFanoutWrite(key)
	}

	obs.ObserveReportMutation("assign")
	_ = audit.LogEvent(ctx, "report.assign", map[string]any{
		"report_id": reportID,
		"staff_id":  staffID,
	})
	return assigned, nil
}

// ByUser returns the citizen's own reports.
func (r *Repository) ByUser(ctx context.Context, userID string) ([]Report, error) {
	list, err := kvstore.LoadList[Report](ctx, r.store, kvstore.KeyReports)
	if err != nil {
		return nil, err
	}
	out := list[:0:0]
	for _, rec := range list {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ByDepartment returns global reports whose category belongs to the named
// department. Department names double as category names.
func (r *Repository) ByDepartment(ctx context.Context, department string) ([]Report, error) {
	list, err := kvstore.LoadList[Report](ctx, r.store, kvstore.KeyAllReports)
	if err != nil {
		return nil, err
	}
	out := list[:0:0]
	for _, rec := range list {
		if string(rec.Category) == department {
			out = append(out, rec)
		}
	}
	return out, nil
}

// AssignedTo returns the reports assigned to one staff member.
func (r *Repository) AssignedTo(ctx context.Context, staffID string) ([]Report, error) {
	list, err := kvstore.LoadList[Report](ctx, r.store, kvstore.KeyAssignedReports)
	if err != nil {
		return nil, err
	}
	out := list[:0:0]
	for _, rec := range list {
		if rec.AssignedTo == staffID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// All returns the global report collection.
func (r *Repository) All(ctx context.Context) ([]Report, error) {
	return kvstore.LoadList[Report](ctx, r.store, kvstore.KeyAllReports)
}
