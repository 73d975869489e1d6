package memory

import (
	"sort"
	"time"

	"project-intake-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds live questioning sessions. Sessions idle for an
// hour are evicted; finished sessions are persisted separately.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Active returns all live sessions, newest first by start time.
func (r *SessionRepository) Active() []*store.Session {
	items := r.cache.Items()
	sessions := make([]*store.Session, 0, len(items))
	for _, item := range items {
		if s, ok := item.Object.(*store.Session); ok {
			sessions = append(sessions, s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions
}
