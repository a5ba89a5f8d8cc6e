package user

import (
	"context"
	"sync"
	"time"

	id "registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

// MemoryStore is an in-memory Store for dev and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[id.UserID]*User
	roles map[roleKey]*DomainRole
}

type roleKey struct {
	userID   id.UserID
	domainID id.DomainID
	role     Role
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: map[id.UserID]*User{},
		roles: map[roleKey]*DomainRole{},
	}
}

func (s *MemoryStore) FindByID(_ context.Context, userID id.UserID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *MemoryStore) Save(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *u
	s.users[u.ID] = &clone
	return nil
}

func (s *MemoryStore) Restrict(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	u.Restricted = true
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) GrantManager(ctx context.Context, userID id.UserID, domainID id.DomainID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := roleKey{userID: userID, domainID: domainID, role: RoleManager}
	if _, ok := s.roles[key]; ok {
		return nil
	}
	s.roles[key] = &DomainRole{
		UserID:    userID,
		DomainID:  domainID,
		Role:      RoleManager,
		CreatedAt: requestcontext.Now(ctx),
	}
	return nil
}

// HasManagerRole reports whether the link exists. Test helper.
func (s *MemoryStore) HasManagerRole(userID id.UserID, domainID id.DomainID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roles[roleKey{userID: userID, domainID: domainID, role: RoleManager}]
	return ok
}
