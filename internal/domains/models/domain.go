package models

import (
	"time"

	id "registrar/pkg/domain"
)

// State mirrors the external registry's view of a domain. A freshly approved
// domain starts Unknown: it exists locally but nothing has been provisioned
// in the registry yet.
type State string

const (
	StateUnknown   State = "unknown"
	StateDNSNeeded State = "dns needed"
	StateReady     State = "ready"
	StateOnHold    State = "on hold"
	StateDeleted   State = "deleted"
)

// Domain is a locally provisioned domain record backing an approved request.
type Domain struct {
	ID        id.DomainID `json:"id"`
	Name      string      `json:"name"`
	State     State       `json:"state"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// IsActive reports whether the domain is live (or administratively held) in
// the registry. Active domains block re-review of their request.
func (d *Domain) IsActive() bool {
	return d.State == StateReady || d.State == StateOnHold
}

// NewDomain creates a local record for a newly approved name. Registry state
// is Unknown until provisioning reconciles it.
func NewDomain(domainID id.DomainID, name string, now time.Time) *Domain {
	return &Domain{
		ID:        domainID,
		Name:      name,
		State:     StateUnknown,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
