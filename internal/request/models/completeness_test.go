package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "registrar/pkg/domain"
)

type CompletenessSuite struct {
	suite.Suite
}

func TestCompletenessSuite(t *testing.T) {
	suite.Run(t, new(CompletenessSuite))
}

func strPtr(s string) *string { return &s }

// completeCity builds a request that passes every completeness check for a
// city organization.
func completeCity() *DomainRequest {
	official := id.ContactID(uuid.New())
	return &DomainRequest{
		Creator:          id.UserID(uuid.New()),
		GenericOrgType:   categoryPtr(CategoryCity),
		IsElectionBoard:  boolPtr(false),
		OrganizationName: strPtr("City of Example"),
		SeniorOfficial:   &official,
		RequestedDomain:  strPtr("example.gov"),
		Purpose:          strPtr("City services"),
		OtherContacts: []Contact{{
			ID:        id.ContactID(uuid.New()),
			FirstName: "Pat",
			LastName:  "Doe",
			Title:     "Clerk",
			Email:     "pat.doe@example.gov",
			Phone:     "555-0100",
		}},
		HasCISARepresentative: boolPtr(false),
		HasAnythingElseText:   boolPtr(false),
		IsPolicyAcknowledged:  boolPtr(true),
	}
}

func (s *CompletenessSuite) TestCompleteBaseline() {
	s.True(IsComplete(completeCity()))
}

func (s *CompletenessSuite) TestGeneralFormChecks() {
	s.Run("missing creator fails", func() {
		r := completeCity()
		r.Creator = id.UserID{}
		s.False(IsComplete(r))
	})

	s.Run("any address field satisfies the organization section", func() {
		r := completeCity()
		r.OrganizationName = nil
		s.False(IsComplete(r))

		r.Zipcode = strPtr("12345")
		s.True(IsComplete(r))
	})

	s.Run("missing senior official fails", func() {
		r := completeCity()
		r.SeniorOfficial = nil
		s.False(IsComplete(r))
	})

	s.Run("missing requested domain fails", func() {
		r := completeCity()
		r.RequestedDomain = nil
		s.False(IsComplete(r))
	})

	s.Run("unanswered purpose fails but an empty answer passes", func() {
		r := completeCity()
		r.Purpose = nil
		s.False(IsComplete(r))

		r.Purpose = strPtr("")
		s.True(IsComplete(r))
	})

	s.Run("missing policy acknowledgement fails", func() {
		r := completeCity()
		r.IsPolicyAcknowledged = nil
		s.False(IsComplete(r))

		r.IsPolicyAcknowledged = boolPtr(false)
		s.True(IsComplete(r))
	})
}

func (s *CompletenessSuite) TestOtherContacts() {
	s.Run("a malformed contact alone fails", func() {
		r := completeCity()
		r.OtherContacts = []Contact{{FirstName: "Pat"}}
		s.False(IsComplete(r))
	})

	s.Run("one well formed contact among malformed ones passes", func() {
		r := completeCity()
		r.OtherContacts = append([]Contact{{FirstName: "Sam"}}, r.OtherContacts...)
		s.True(IsComplete(r))
	})

	s.Run("no contacts with a rationale passes", func() {
		r := completeCity()
		r.OtherContacts = nil
		r.NoOtherContactsRationale = strPtr("Sole employee")
		s.True(IsComplete(r))
	})

	s.Run("a rationale does not excuse listed but malformed contacts", func() {
		r := completeCity()
		r.OtherContacts = []Contact{{FirstName: "Pat"}}
		r.NoOtherContactsRationale = strPtr("n/a")
		s.False(IsComplete(r))
	})
}

func (s *CompletenessSuite) TestAdditionalDetails() {
	s.Run("undetermined cisa flag fails", func() {
		r := completeCity()
		r.HasCISARepresentative = nil
		s.False(IsComplete(r))
	})

	s.Run("cisa yes requires both names", func() {
		r := completeCity()
		r.HasCISARepresentative = boolPtr(true)
		r.CISARepresentativeFirstName = strPtr("Alex")
		s.False(IsComplete(r))

		r.CISARepresentativeLastName = strPtr("Reyes")
		s.True(IsComplete(r))
	})

	s.Run("anything else yes requires text", func() {
		r := completeCity()
		r.HasAnythingElseText = boolPtr(true)
		s.False(IsComplete(r))

		r.AnythingElse = strPtr("Additional context")
		s.True(IsComplete(r))
	})
}

func (s *CompletenessSuite) TestTypeSpecificSections() {
	s.Run("no organization category is never complete", func() {
		r := completeCity()
		r.GenericOrgType = nil
		s.False(IsComplete(r))
	})

	s.Run("federal needs branch and agency", func() {
		r := completeCity()
		r.GenericOrgType = categoryPtr(CategoryFederal)
		r.IsElectionBoard = nil
		s.False(IsComplete(r))

		branch := BranchExecutive
		r.FederalType = &branch
		r.FederalAgency = strPtr("General Services Administration")
		s.True(IsComplete(r))
	})

	s.Run("interstate needs about your organization", func() {
		r := completeCity()
		r.GenericOrgType = categoryPtr(CategoryInterstate)
		s.False(IsComplete(r))

		r.AboutYourOrganization = strPtr("A multi-state compact")
		s.True(IsComplete(r))
	})

	s.Run("tribal needs tribe name and election answer", func() {
		r := completeCity()
		r.GenericOrgType = categoryPtr(CategoryTribal)
		s.False(IsComplete(r))

		r.TribeName = strPtr("Example Nation")
		s.True(IsComplete(r))
	})

	s.Run("special district needs election answer and about", func() {
		r := completeCity()
		r.GenericOrgType = categoryPtr(CategorySpecialDistrict)
		s.False(IsComplete(r))

		r.AboutYourOrganization = strPtr("Water district")
		s.True(IsComplete(r))
	})

	s.Run("school district has no extra section", func() {
		r := completeCity()
		r.GenericOrgType = categoryPtr(CategorySchoolDistrict)
		r.IsElectionBoard = nil
		s.True(IsComplete(r))
	})

	s.Run("city without an election answer fails", func() {
		r := completeCity()
		r.IsElectionBoard = nil
		s.False(IsComplete(r))
	})
}
