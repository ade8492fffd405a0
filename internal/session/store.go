package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kill-n-keep/api/internal/models"
)

const (
	initialTreasureHealth = 100
	initialPlayerHealth   = 150
)

// state is the single aggregate owning both the session record and its
// wave progress. Keeping them behind one mutex means no event can
// observe the session and wave counters out of sync.
type state struct {
	mu   sync.Mutex
	sess models.Session
	wave models.WaveState
}

// Store holds every active game session. The outer lock guards the map
// itself; each session carries its own lock so updates to different
// sessions never contend.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*state
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*state)}
}

// Create registers a new session for the given nickname and returns its
// id. Ids are random, not clock-derived, so concurrent creates cannot
// collide.
func (s *Store) Create(nickname string) (string, error) {
	if strings.TrimSpace(nickname) == "" {
		return "", &ValidationError{Field: "nickname", Message: "Nickname is required"}
	}

	id := "session_" + uuid.NewString()
	st := &state{
		sess: models.Session{
			ID:             id,
			Nickname:       nickname,
			StartTime:      time.Now(),
			Score:          0,
			Wave:           1,
			TreasureHealth: initialTreasureHealth,
			PlayerHealth:   initialPlayerHealth,
		},
		wave: models.WaveState{
			CurrentWave: 1,
			WaveActive:  false,
		},
	}

	s.mu.Lock()
	s.sessions[id] = st
	s.mu.Unlock()

	return id, nil
}

// Get returns a snapshot of the session and its wave state.
func (s *Store) Get(id string) (models.Session, models.WaveState, error) {
	st, err := s.lookup(id)
	if err != nil {
		return models.Session{}, models.WaveState{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sess, st.wave, nil
}

// Update applies fn to the session aggregate under its lock and returns
// the resulting snapshot. Concurrent updates to the same session are
// serialized; updates to different sessions proceed in parallel.
func (s *Store) Update(id string, fn func(sess *models.Session, wave *models.WaveState)) (models.Session, models.WaveState, error) {
	st, err := s.lookup(id)
	if err != nil {
		return models.Session{}, models.WaveState{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	fn(&st.sess, &st.wave)
	return st.sess, st.wave, nil
}

// Count returns the number of sessions currently held.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) lookup(id string) (*state, error) {
	s.mu.RLock()
	st, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{SessionID: id}
	}
	return st, nil
}
