package session

import "context"

type snapshotContextKey struct{}

// ContextWithSnapshot attaches the active session to the context so lower
// layers (audit logging in particular) can attribute actions.
func ContextWithSnapshot(ctx context.Context, snap Snapshot) context.Context {
	return context.WithValue(ctx, snapshotContextKey{}, &snap)
}

// SnapshotFromContext extracts the active session from the context.
func SnapshotFromContext(ctx context.Context) (Snapshot, bool) {
	if ctx == nil {
		return Snapshot{}, false
	}
	v, ok := ctx.Value(snapshotContextKey{}).(*Snapshot)
	if !ok || v == nil {
		return Snapshot{}, false
	}
	return *v, true
}
