package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-pixetale/pkg/state"
)

// SessionStore はセッションIDごとの Controller を TTL 付きで保持するのだ。
// 最後にアクセスされてから TTL が過ぎたセッションは破棄されるのだ。
type SessionStore struct {
	items *cache.Cache
	ttl   time.Duration
}

// NewSessionStore は SessionStore を生成するのだ。
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		items: cache.New(ttl, ttl/2+time.Minute),
		ttl:   ttl,
	}
}

// Create は新しいセッションを登録してIDを返すのだ。
func (s *SessionStore) Create(ctrl *state.Controller) string {
	id := uuid.NewString()
	s.items.Set(id, ctrl, s.ttl)
	return id
}

// Get はセッションを取り出し、期限を延ばすのだ。
func (s *SessionStore) Get(id string) (*state.Controller, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, false
	}
	ctrl, ok := v.(*state.Controller)
	if !ok {
		return nil, false
	}
	s.items.Set(id, ctrl, s.ttl)
	return ctrl, true
}

// Len は保持しているセッション数なのだ。
func (s *SessionStore) Len() int {
	return s.items.ItemCount()
}
