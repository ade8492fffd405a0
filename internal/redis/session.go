package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kill-n-keep/api/internal/models"
)

// SessionSnapshot is the cached view of one session's state, written
// through after game events for operational visibility. The in-memory
// store stays authoritative.
type SessionSnapshot struct {
	Session models.Session   `json:"session"`
	Wave    models.WaveState `json:"wave"`
}

// SnapshotTTL bounds how long an idle session stays visible in Redis.
const SnapshotTTL = 24 * time.Hour

// SaveSnapshot stores a session snapshot with TTL and tracks the id in
// the active sessions set.
func (c *Client) SaveSnapshot(ctx context.Context, sess models.Session, wave models.WaveState) error {
	snapshotKey := fmt.Sprintf("session:%s", sess.ID)

	data, err := json.Marshal(SessionSnapshot{Session: sess, Wave: wave})
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}

	if err := c.Set(ctx, snapshotKey, data, SnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to set session snapshot: %w", err)
	}

	if err := c.SAdd(ctx, "active_sessions", sess.ID).Err(); err != nil {
		return fmt.Errorf("failed to add to active sessions: %w", err)
	}

	return nil
}

// Snapshot retrieves a cached session snapshot.
func (c *Client) Snapshot(ctx context.Context, sessionID string) (*SessionSnapshot, error) {
	snapshotKey := fmt.Sprintf("session:%s", sessionID)

	data, err := c.Get(ctx, snapshotKey).Result()
	if err != nil {
		return nil, fmt.Errorf("session snapshot not found: %w", err)
	}

	var snapshot SessionSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
	}

	return &snapshot, nil
}

// ActiveSessionCount returns how many sessions have written snapshots.
func (c *Client) ActiveSessionCount(ctx context.Context) (int64, error) {
	count, err := c.SCard(ctx, "active_sessions").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get active session count: %w", err)
	}
	return count, nil
}
