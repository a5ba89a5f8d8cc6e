package models

import (
	"time"

	reqmodels "registrar/internal/request/models"
	id "registrar/pkg/domain"
)

// DomainInformation is the long-lived organizational record derived from a
// request at approval time. The request keeps its form history; this record
// is what domain management screens read from then on.
type DomainInformation struct {
	DomainID  id.DomainID  `json:"domain_id"`
	RequestID id.RequestID `json:"request_id"`
	Creator   id.UserID    `json:"creator"`

	GenericOrgType   *reqmodels.OrgCategory `json:"generic_org_type,omitempty"`
	IsElectionBoard  *bool                  `json:"is_election_board,omitempty"`
	OrganizationType *reqmodels.OrgType     `json:"organization_type,omitempty"`

	FederalAgency  *string               `json:"federal_agency,omitempty"`
	FederalType    *reqmodels.BranchType `json:"federal_type,omitempty"`
	Portfolio      *string               `json:"portfolio,omitempty"`
	TribeName      *string               `json:"tribe_name,omitempty"`
	SeniorOfficial *id.ContactID         `json:"senior_official,omitempty"`

	OrganizationName *string `json:"organization_name,omitempty"`
	AddressLine1     *string `json:"address_line1,omitempty"`
	AddressLine2     *string `json:"address_line2,omitempty"`
	City             *string `json:"city,omitempty"`
	StateTerritory   *string `json:"state_territory,omitempty"`
	Zipcode          *string `json:"zipcode,omitempty"`
	Urbanization     *string `json:"urbanization,omitempty"`

	AboutYourOrganization *string `json:"about_your_organization,omitempty"`
	Purpose               *string `json:"purpose,omitempty"`
	Notes                 *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// InformationFromRequest copies the organizational answers of an approved
// request onto its new domain.
func InformationFromRequest(r *reqmodels.DomainRequest, d *Domain, now time.Time) *DomainInformation {
	return &DomainInformation{
		DomainID:              d.ID,
		RequestID:             r.ID,
		Creator:               r.Creator,
		GenericOrgType:        r.GenericOrgType,
		IsElectionBoard:       r.IsElectionBoard,
		OrganizationType:      r.OrganizationType,
		FederalAgency:         r.FederalAgency,
		FederalType:           r.FederalType,
		Portfolio:             r.Portfolio,
		TribeName:             r.TribeName,
		SeniorOfficial:        r.SeniorOfficial,
		OrganizationName:      r.OrganizationName,
		AddressLine1:          r.AddressLine1,
		AddressLine2:          r.AddressLine2,
		City:                  r.City,
		StateTerritory:        r.StateTerritory,
		Zipcode:               r.Zipcode,
		Urbanization:          r.Urbanization,
		AboutYourOrganization: r.AboutYourOrganization,
		Purpose:               r.Purpose,
		Notes:                 r.Notes,
		CreatedAt:             now,
	}
}
