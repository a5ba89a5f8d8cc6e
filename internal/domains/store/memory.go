package store

import (
	"context"
	"strings"
	"sync"

	"registrar/internal/domains/models"
	id "registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

// Memory is the in-memory domain store for dev mode and tests. Name
// uniqueness is case-insensitive, matching the postgres unique index.
type Memory struct {
	mu           sync.RWMutex
	byID         map[id.DomainID]*models.Domain
	byName       map[string]id.DomainID
	infoByDomain map[id.DomainID]*models.DomainInformation
}

func NewMemory() *Memory {
	return &Memory{
		byID:         map[id.DomainID]*models.Domain{},
		byName:       map[string]id.DomainID{},
		infoByDomain: map[id.DomainID]*models.DomainInformation{},
	}
}

func (s *Memory) CreateIfNameAvailable(_ context.Context, d *models.Domain) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(d.Name)
	if _, taken := s.byName[key]; taken {
		return sentinel.ErrAlreadyUsed
	}
	clone := *d
	s.byID[d.ID] = &clone
	s.byName[key] = d.ID
	return nil
}

func (s *Memory) FindByID(_ context.Context, domainID id.DomainID) (*models.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byID[domainID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (s *Memory) FindByName(_ context.Context, name string) (*models.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	domainID, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *s.byID[domainID]
	return &clone, nil
}

func (s *Memory) Update(_ context.Context, d *models.Domain) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[d.ID]; !ok {
		return sentinel.ErrNotFound
	}
	clone := *d
	s.byID[d.ID] = &clone
	return nil
}

func (s *Memory) Delete(_ context.Context, domainID id.DomainID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.byID[domainID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byName, strings.ToLower(d.Name))
	delete(s.byID, domainID)
	delete(s.infoByDomain, domainID)
	return nil
}

func (s *Memory) SaveInformation(_ context.Context, info *models.DomainInformation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *info
	s.infoByDomain[info.DomainID] = &clone
	return nil
}

// FindInformation returns the derived record for a domain. Test helper.
func (s *Memory) FindInformation(_ context.Context, domainID id.DomainID) (*models.DomainInformation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.infoByDomain[domainID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *info
	return &clone, nil
}
