// Package store persists domain requests. Both implementations run the
// persist-boundary rules (yes/no field syncing and organization type
// reconciliation) so callers can never save an inconsistent record.
package store

import (
	"context"
	"sync"
	"time"

	"registrar/internal/request/models"
	id "registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

// prepare applies the persist-boundary rules shared by every implementation.
func prepare(r *models.DomainRequest, prev models.Snapshot, isNew bool, now time.Time) error {
	r.SyncYesNoFields()
	if err := models.ReconcileOrganizationType(r, prev, isNew); err != nil {
		return err
	}
	r.UpdatedAt = now
	return nil
}

// Memory is an in-memory request store for dev and tests.
type Memory struct {
	mu       sync.RWMutex
	requests map[id.RequestID]*models.DomainRequest
}

func NewMemory() *Memory {
	return &Memory{requests: map[id.RequestID]*models.DomainRequest{}}
}

func (s *Memory) Create(ctx context.Context, r *models.DomainRequest) error {
	if err := prepare(r, models.Snapshot{}, true, r.UpdatedAt); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[r.ID]; ok {
		return sentinel.ErrConflict
	}
	s.requests[r.ID] = cloneRequest(r)
	return nil
}

// Get returns the request together with a snapshot of its persisted reason
// and organization-type state. The snapshot is what same-status reason
// change detection and reconciliation compare against.
func (s *Memory) Get(_ context.Context, requestID id.RequestID) (*models.DomainRequest, models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.requests[requestID]
	if !ok {
		return nil, models.Snapshot{}, sentinel.ErrNotFound
	}
	clone := cloneRequest(stored)
	return clone, models.SnapshotOf(stored), nil
}

func (s *Memory) Save(ctx context.Context, r *models.DomainRequest, prev models.Snapshot) (models.Snapshot, error) {
	if err := prepare(r, prev, false, time.Now().UTC()); err != nil {
		return models.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[r.ID]; !ok {
		return models.Snapshot{}, sentinel.ErrNotFound
	}
	s.requests[r.ID] = cloneRequest(r)
	return models.SnapshotOf(r), nil
}

func (s *Memory) ListByCreator(_ context.Context, creator id.UserID) ([]*models.DomainRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.DomainRequest
	for _, r := range s.requests {
		if r.Creator == creator {
			out = append(out, cloneRequest(r))
		}
	}
	return out, nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneRequest deep-copies a request so stored records never alias caller
// memory.
func cloneRequest(r *models.DomainRequest) *models.DomainRequest {
	c := *r
	c.RejectionReason = clonePtr(r.RejectionReason)
	c.RejectionReasonEmail = clonePtr(r.RejectionReasonEmail)
	c.ActionNeededReason = clonePtr(r.ActionNeededReason)
	c.ActionNeededReasonEmail = clonePtr(r.ActionNeededReasonEmail)
	c.FederalAgency = clonePtr(r.FederalAgency)
	c.Portfolio = clonePtr(r.Portfolio)
	c.Investigator = clonePtr(r.Investigator)
	c.GenericOrgType = clonePtr(r.GenericOrgType)
	c.IsElectionBoard = clonePtr(r.IsElectionBoard)
	c.OrganizationType = clonePtr(r.OrganizationType)
	c.FederallyRecognizedTribe = clonePtr(r.FederallyRecognizedTribe)
	c.StateRecognizedTribe = clonePtr(r.StateRecognizedTribe)
	c.TribeName = clonePtr(r.TribeName)
	c.FederalType = clonePtr(r.FederalType)
	c.OrganizationName = clonePtr(r.OrganizationName)
	c.AddressLine1 = clonePtr(r.AddressLine1)
	c.AddressLine2 = clonePtr(r.AddressLine2)
	c.City = clonePtr(r.City)
	c.StateTerritory = clonePtr(r.StateTerritory)
	c.Zipcode = clonePtr(r.Zipcode)
	c.Urbanization = clonePtr(r.Urbanization)
	c.AboutYourOrganization = clonePtr(r.AboutYourOrganization)
	c.SeniorOfficial = clonePtr(r.SeniorOfficial)
	c.RequestedDomain = clonePtr(r.RequestedDomain)
	c.ApprovedDomain = clonePtr(r.ApprovedDomain)
	c.Purpose = clonePtr(r.Purpose)
	c.NoOtherContactsRationale = clonePtr(r.NoOtherContactsRationale)
	c.AnythingElse = clonePtr(r.AnythingElse)
	c.HasAnythingElseText = clonePtr(r.HasAnythingElseText)
	c.CISARepresentativeFirstName = clonePtr(r.CISARepresentativeFirstName)
	c.CISARepresentativeLastName = clonePtr(r.CISARepresentativeLastName)
	c.CISARepresentativeEmail = clonePtr(r.CISARepresentativeEmail)
	c.HasCISARepresentative = clonePtr(r.HasCISARepresentative)
	c.IsPolicyAcknowledged = clonePtr(r.IsPolicyAcknowledged)
	c.FirstSubmittedDate = clonePtr(r.FirstSubmittedDate)
	c.LastSubmittedDate = clonePtr(r.LastSubmittedDate)
	c.LastStatusUpdate = clonePtr(r.LastStatusUpdate)
	c.Notes = clonePtr(r.Notes)
	if r.OtherContacts != nil {
		c.OtherContacts = make([]models.Contact, len(r.OtherContacts))
		copy(c.OtherContacts, r.OtherContacts)
	}
	return &c
}
