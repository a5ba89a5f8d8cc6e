package handler

import (
	"registrar/internal/request/models"
	id "registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
)

// updateFormRequest carries every registrant-editable answer. The endpoint
// has replace semantics: the submitted form becomes the request's answers,
// and omitting a field clears it. Status, reasons, investigator and the
// approved domain are not reachable from here.
type updateFormRequest struct {
	GenericOrgType   *models.OrgCategory `json:"generic_org_type"`
	IsElectionBoard  *bool               `json:"is_election_board"`
	OrganizationType *models.OrgType     `json:"organization_type"`

	FederalAgency *string            `json:"federal_agency"`
	FederalType   *models.BranchType `json:"federal_type"`

	FederallyRecognizedTribe *bool   `json:"federally_recognized_tribe"`
	StateRecognizedTribe     *bool   `json:"state_recognized_tribe"`
	TribeName                *string `json:"tribe_name"`

	OrganizationName *string `json:"organization_name"`
	AddressLine1     *string `json:"address_line1"`
	AddressLine2     *string `json:"address_line2"`
	City             *string `json:"city"`
	StateTerritory   *string `json:"state_territory"`
	Zipcode          *string `json:"zipcode"`
	Urbanization     *string `json:"urbanization"`

	AboutYourOrganization *string `json:"about_your_organization"`
	SeniorOfficial        *string `json:"senior_official"`

	RequestedDomain *string `json:"requested_domain"`
	Purpose         *string `json:"purpose"`

	OtherContacts            []models.Contact `json:"other_contacts"`
	NoOtherContactsRationale *string          `json:"no_other_contacts_rationale"`

	AnythingElse *string `json:"anything_else"`

	CISARepresentativeFirstName *string `json:"cisa_representative_first_name"`
	CISARepresentativeLastName  *string `json:"cisa_representative_last_name"`
	CISARepresentativeEmail     *string `json:"cisa_representative_email"`
	HasCISARepresentative       *bool   `json:"has_cisa_representative"`

	IsPolicyAcknowledged *bool `json:"is_policy_acknowledged"`
}

// applyTo copies the submitted answers onto the request. Organization type
// reconciliation and the yes/no field sync run afterwards at the persist
// boundary.
func (f *updateFormRequest) applyTo(r *models.DomainRequest) error {
	r.GenericOrgType = f.GenericOrgType
	r.IsElectionBoard = f.IsElectionBoard
	r.OrganizationType = f.OrganizationType

	r.FederalAgency = f.FederalAgency
	r.FederalType = f.FederalType

	r.FederallyRecognizedTribe = f.FederallyRecognizedTribe
	r.StateRecognizedTribe = f.StateRecognizedTribe
	r.TribeName = f.TribeName

	r.OrganizationName = f.OrganizationName
	r.AddressLine1 = f.AddressLine1
	r.AddressLine2 = f.AddressLine2
	r.City = f.City
	r.StateTerritory = f.StateTerritory
	r.Zipcode = f.Zipcode
	r.Urbanization = f.Urbanization

	r.AboutYourOrganization = f.AboutYourOrganization
	if f.SeniorOfficial != nil {
		contactID, err := id.ParseContactID(*f.SeniorOfficial)
		if err != nil {
			return dErrors.New(dErrors.CodeBadRequest, "invalid senior official id")
		}
		r.SeniorOfficial = &contactID
	} else {
		r.SeniorOfficial = nil
	}

	r.RequestedDomain = f.RequestedDomain
	r.Purpose = f.Purpose

	r.OtherContacts = f.OtherContacts
	r.NoOtherContactsRationale = f.NoOtherContactsRationale

	r.AnythingElse = f.AnythingElse

	r.CISARepresentativeFirstName = f.CISARepresentativeFirstName
	r.CISARepresentativeLastName = f.CISARepresentativeLastName
	r.CISARepresentativeEmail = f.CISARepresentativeEmail
	r.HasCISARepresentative = f.HasCISARepresentative

	r.IsPolicyAcknowledged = f.IsPolicyAcknowledged
	return nil
}

type assignInvestigatorRequest struct {
	InvestigatorID string `json:"investigator_id"`
}

type actionNeededRequest struct {
	Reason    string  `json:"reason"`
	EmailBody *string `json:"email_body,omitempty"`
}

type rejectRequest struct {
	Reason    string  `json:"reason"`
	EmailBody *string `json:"email_body,omitempty"`
}

type updateReasonRequest struct {
	Reason    string  `json:"reason"`
	EmailBody *string `json:"email_body,omitempty"`
}
