// Package provisioner creates and removes the local records backing an
// approved domain. It is invoked only by the approve transition (create) and
// the cleanup path of transitions leaving Approved (delete).
package provisioner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"registrar/internal/domains/models"
	reqmodels "registrar/internal/request/models"
	id "registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

// Store is the persistence surface the provisioner needs.
type Store interface {
	CreateIfNameAvailable(ctx context.Context, d *models.Domain) error
	FindByID(ctx context.Context, domainID id.DomainID) (*models.Domain, error)
	FindByName(ctx context.Context, name string) (*models.Domain, error)
	Delete(ctx context.Context, domainID id.DomainID) error
	SaveInformation(ctx context.Context, info *models.DomainInformation) error
}

type Provisioner struct {
	store Store
}

func New(store Store) *Provisioner {
	return &Provisioner{store: store}
}

// Exists reports whether a domain with this name is already provisioned.
// The workflow checks this before creating; the store independently enforces
// uniqueness so the check-then-create race still resolves to one winner.
func (p *Provisioner) Exists(ctx context.Context, name string) (bool, error) {
	_, err := p.store.FindByName(ctx, name)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up domain name")
	}
	return true, nil
}

// Create provisions the local record for an approved name.
func (p *Provisioner) Create(ctx context.Context, name string) (*models.Domain, error) {
	d := models.NewDomain(id.DomainID(uuid.New()), name, requestcontext.Now(ctx))
	if err := p.store.CreateIfNameAvailable(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "domain name already in use")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create domain")
	}
	return d, nil
}

// CopyRequestIntoDomainInformation derives the long-lived organizational
// record from an approved request.
func (p *Provisioner) CopyRequestIntoDomainInformation(ctx context.Context, r *reqmodels.DomainRequest, d *models.Domain) error {
	info := models.InformationFromRequest(r, d, requestcontext.Now(ctx))
	if err := p.store.SaveInformation(ctx, info); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to copy request into domain information")
	}
	return nil
}

// Get loads a provisioned domain.
func (p *Provisioner) Get(ctx context.Context, domainID id.DomainID) (*models.Domain, error) {
	d, err := p.store.FindByID(ctx, domainID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "domain not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load domain")
	}
	return d, nil
}

// Delete removes the local record; the information record cascades with it.
func (p *Provisioner) Delete(ctx context.Context, domainID id.DomainID) error {
	if err := p.store.Delete(ctx, domainID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete domain")
	}
	return nil
}
