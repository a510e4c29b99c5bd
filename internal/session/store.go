// Package session keeps composer drafts in process memory, one per writing session.
package session

import (
	"sync"
	"time"

	"noticeboard/internal/composer"
	apperrors "noticeboard/pkg/app_errors"

	"github.com/google/uuid"
)

// Session 單一草稿。Composer 本身不是 thread-safe，所有讀寫都要先 Lock。
type Session struct {
	mu sync.Mutex

	ID         uuid.UUID
	AuthorID   int
	Composer   *composer.Composer
	Submitting bool
	touchedAt  time.Time
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch 更新最後活動時間；呼叫端需持有鎖
func (s *Session) Touch(now time.Time) {
	s.touchedAt = now
}

type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	now      func() time.Time
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		now:      now,
	}
}

func (st *Store) Create(authorID int) *Session {
	s := &Session{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Composer:  composer.New(),
		touchedAt: st.now(),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrDraftNotFound
	}
	return s, nil
}

func (st *Store) Delete(id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return apperrors.ErrDraftNotFound
	}
	delete(st.sessions, id)
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// EvictIdle 移除超過 ttl 沒有活動的草稿；投稿中的草稿不會被移除
func (st *Store) EvictIdle(ttl time.Duration) int {
	cutoff := st.now().Add(-ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	evicted := 0
	for id, s := range st.sessions {
		s.Lock()
		idle := !s.Submitting && s.touchedAt.Before(cutoff)
		s.Unlock()
		if idle {
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}
