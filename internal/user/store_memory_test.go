package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) TestFindByID() {
	s.Run("returns a saved user", func() {
		u := &User{ID: id.UserID(uuid.New()), Email: "clerk@example.gov"}
		s.Require().NoError(s.store.Save(s.ctx, u))

		found, err := s.store.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal("clerk@example.gov", found.Email)
	})

	s.Run("a missing user is not found", func() {
		_, err := s.store.FindByID(s.ctx, id.UserID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned users do not alias the stored record", func() {
		u := &User{ID: id.UserID(uuid.New()), Email: "clerk@example.gov"}
		s.Require().NoError(s.store.Save(s.ctx, u))

		found, err := s.store.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		found.Restricted = true

		again, err := s.store.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.False(again.Restricted)
	})
}

func (s *MemoryStoreSuite) TestRestrict() {
	s.Run("flags the user", func() {
		u := &User{ID: id.UserID(uuid.New())}
		s.Require().NoError(s.store.Save(s.ctx, u))

		s.Require().NoError(s.store.Restrict(s.ctx, u.ID))

		found, err := s.store.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.True(found.Restricted)
	})

	s.Run("a missing user is not found", func() {
		s.ErrorIs(s.store.Restrict(s.ctx, id.UserID(uuid.New())), sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestGrantManager() {
	userID := id.UserID(uuid.New())
	domainID := id.DomainID(uuid.New())

	s.Require().NoError(s.store.GrantManager(s.ctx, userID, domainID))
	s.True(s.store.HasManagerRole(userID, domainID))

	// Granting twice stays a single role.
	s.Require().NoError(s.store.GrantManager(s.ctx, userID, domainID))
	s.True(s.store.HasManagerRole(userID, domainID))

	s.False(s.store.HasManagerRole(userID, id.DomainID(uuid.New())))
}
