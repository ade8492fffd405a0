package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kill-n-keep/api/internal/leaderboard"
	"github.com/kill-n-keep/api/internal/models"
)

const leaderboardKey = "leaderboard:global"

// LeaderboardStore is a leaderboard.Store backed by a Redis sorted set.
// Entries are stored as JSON members scored by their points; the set is
// trimmed to the retention cap on every submission. Equal scores order
// by member bytes rather than submission order, which is the one place
// this variant diverges from the in-memory store.
type LeaderboardStore struct {
	client *Client
}

// NewLeaderboardStore creates a Redis-backed leaderboard.
func NewLeaderboardStore(client *Client) *LeaderboardStore {
	return &LeaderboardStore{client: client}
}

// Submit adds the entry and trims everything below the top 100. Both
// steps run in one transactional pipeline so concurrent submissions
// cannot leave the set over the cap.
func (s *LeaderboardStore) Submit(ctx context.Context, entry models.LeaderboardEntry) error {
	member, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(entry.Score),
		Member: string(member),
	})
	pipe.ZRemRangeByRank(ctx, leaderboardKey, 0, int64(-(leaderboard.MaxEntries + 1)))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to submit leaderboard entry: %w", err)
	}
	return nil
}

// Top returns up to n entries, highest score first.
func (s *LeaderboardStore) Top(ctx context.Context, n int) ([]models.RankedEntry, error) {
	if n <= 0 {
		return []models.RankedEntry{}, nil
	}

	members, err := s.client.ZRevRange(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	ranked := make([]models.RankedEntry, 0, len(members))
	for i, member := range members {
		var entry models.LeaderboardEntry
		if err := json.Unmarshal([]byte(member), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal leaderboard entry: %w", err)
		}
		ranked = append(ranked, leaderboard.Rank(entry, i+1))
	}
	return ranked, nil
}

// Size returns the number of stored entries.
func (s *LeaderboardStore) Size(ctx context.Context) (int64, error) {
	count, err := s.client.ZCard(ctx, leaderboardKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get leaderboard size: %w", err)
	}
	return count, nil
}
