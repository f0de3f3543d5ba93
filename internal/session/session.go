// Package session owns the persisted "current user" pointer. The original
// app kept this in ambient global state; here it is an explicit manager with
// a restore/clear lifecycle so callers never touch the raw storage key.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"jyambere.org/internal/kvstore"
	"jyambere.org/internal/roles"
)

// Snapshot is the session-shaped view of an account. It never carries the
// password; the full record stays in the users collection only.
type Snapshot struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       roles.Role `json:"role"`
	Department *string    `json:"department"`
}

// Manager persists the session pointer.
type Manager struct {
	store kvstore.Store
}

// NewManager wraps the given store.
func NewManager(store kvstore.Store) *Manager {
	return &Manager{store: store}
}

// Save persists snap as the current session.
func (m *Manager) Save(ctx context.Context, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: %s: encode: %v", kvstore.ErrWrite, kvstore.KeySession, err)
	}
	if err := m.store.Put(ctx, kvstore.KeySession, raw); err != nil {
		return fmt.Errorf("%w: %s: %v", kvstore.ErrWrite, kvstore.KeySession, err)
	}
	return nil
}

// Restore reads the persisted session, returning nil when none exists.
// Called once at process start.
func (m *Manager) Restore(ctx context.Context) (*Snapshot, error) {
	raw, ok, err := m.store.Get(ctx, kvstore.KeySession)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kvstore.ErrRead, kvstore.KeySession, err)
	}
	if !ok {
		return nil, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: decode: %v", kvstore.ErrRead, kvstore.KeySession, err)
	}
	return &snap, nil
}

// Clear removes the session pointer.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, kvstore.KeySession); err != nil {
		return fmt.Errorf("%w: %s: %v", kvstore.ErrWrite, kvstore.KeySession, err)
	}
	return nil
}
