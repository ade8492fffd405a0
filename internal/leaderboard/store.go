// Package leaderboard keeps the ranked record of completed sessions,
// capped to the top 100 scores.
package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kill-n-keep/api/internal/models"
)

// MaxEntries is the retention cap: the board never holds more rows.
const MaxEntries = 100

// Store is the leaderboard contract. The in-memory implementation below
// is the engine default; internal/redis provides a ZSET-backed variant.
type Store interface {
	// Submit records a completed session result.
	Submit(ctx context.Context, entry models.LeaderboardEntry) error
	// Top returns up to n entries, best score first, decorated with
	// 1-based ranks. n <= 0 yields an empty slice.
	Top(ctx context.Context, n int) ([]models.RankedEntry, error)
}

// MemoryStore is a process-local Store. A single mutex covers the whole
// list; submissions only sort and truncate a bounded slice, so the
// critical section stays short.
type MemoryStore struct {
	mu      sync.Mutex
	entries []models.LeaderboardEntry
}

// NewMemoryStore creates an empty in-memory leaderboard.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Submit appends the entry, re-sorts descending by score and trims to
// the top 100. The sort is stable so ties keep insertion order.
func (s *MemoryStore) Submit(_ context.Context, entry models.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Score > s.entries[j].Score
	})
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}
	return nil
}

// Top returns the first min(n, size) entries as display rows.
func (s *MemoryStore) Top(_ context.Context, n int) ([]models.RankedEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.entries) {
		n = len(s.entries)
	}
	ranked := make([]models.RankedEntry, 0, max(n, 0))
	for i := 0; i < n; i++ {
		ranked = append(ranked, Rank(s.entries[i], i+1))
	}
	return ranked, nil
}

// Size returns the current number of stored entries.
func (s *MemoryStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Rank decorates an entry for display at the given 1-based rank. The
// display name is synthesized from the rank, not the stored playerId.
func Rank(entry models.LeaderboardEntry, rank int) models.RankedEntry {
	return models.RankedEntry{
		Rank:        rank,
		DisplayName: fmt.Sprintf("Player%d", rank),
		BestScore:   entry.Score,
		BestWave:    entry.Wave,
		Level:       1,
	}
}
