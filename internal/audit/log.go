package audit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"jyambere.org/internal/obs"
	"jyambere.org/internal/session"
)

// LogEvent writes an audit log entry enriched with the active session. Every
// mutation in the core emits one of these lines; failures to serialize are
// the only way this errors, so callers routinely drop the result.
func LogEvent(ctx context.Context, event string, fields map[string]any) error {
	event = strings.TrimSpace(event)
	if event == "" {
		return errors.New("event name is required")
	}
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"type":  "audit",
		"event": event,
	}
	if snap, ok := session.SnapshotFromContext(ctx); ok {
		entry["user_id"] = snap.ID
		entry["role"] = snap.Role
	}
	if len(fields) > 0 {
		copyFields := make(map[string]any, len(fields))
		for k, v := range fields {
			copyFields[k] = v
		}
		entry["fields"] = copyFields
	} else {
		entry["fields"] = map[string]any{}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	obs.Logger().Println(string(data))
	return nil
}
