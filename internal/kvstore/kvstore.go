// Package kvstore is the persistence layer for the citizen-report core: a
// handful of named keys, each holding one serialized JSON collection. The
// mobile shell that this core was extracted from kept everything in device
// key-value storage, and the on-disk layout here is kept byte-compatible
// with it.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known keys. The unprefixed names mirror the original storage entries.
const (
	KeyUsers           = "users"
	KeySession         = "user"
	KeyReports         = "reports"
	KeyAllReports      = "allReports"
	KeyAssignedReports = "assignedReports"
	KeyMasterReports   = "masterReports"
	KeyDepartments     = "departments"
	KeyStaff           = "staff"
)

var (
	ErrRead  = errors.New("kvstore: read failed")
	ErrWrite = errors.New("kvstore: write failed")
)

// Store describes the key-value persistence operations the core requires.
// A missing key is not an error: Get reports it via the ok flag.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LoadList decodes the JSON array stored under key. A missing key yields an
// empty slice, matching the "starts empty" behavior of the original app.
func LoadList[T any](ctx context.Context, s Store, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, key, err)
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: decode: %v", ErrRead, key, err)
	}
	return out, nil
}

// SaveList encodes the list and writes it back under key.
func SaveList[T any](ctx context.Context, s Store, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: %s: encode: %v", ErrWrite, key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, key, err)
	}
	return nil
}
