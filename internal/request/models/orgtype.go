package models

import (
	"strings"

	dErrors "registrar/pkg/domain-errors"
)

// OrgCategory is the broad organization category collected early in the
// request flow.
type OrgCategory string

const (
	CategoryFederal          OrgCategory = "federal"
	CategoryInterstate       OrgCategory = "interstate"
	CategoryStateOrTerritory OrgCategory = "state_or_territory"
	CategoryTribal           OrgCategory = "tribal"
	CategoryCounty           OrgCategory = "county"
	CategoryCity             OrgCategory = "city"
	CategorySpecialDistrict  OrgCategory = "special_district"
	CategorySchoolDistrict   OrgCategory = "school_district"
)

var categoryLabels = map[OrgCategory]string{
	CategoryFederal:          "Federal",
	CategoryInterstate:       "Interstate",
	CategoryStateOrTerritory: "State or territory",
	CategoryTribal:           "Tribal",
	CategoryCounty:           "County",
	CategoryCity:             "City",
	CategorySpecialDistrict:  "Special district",
	CategorySchoolDistrict:   "School district",
}

func (c OrgCategory) Label() string { return categoryLabels[c] }

func (c OrgCategory) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// OrgType is the fine-grained organization-type code. It equals the category
// value, or the category's "_election" variant for election offices. Federal,
// Interstate and SchoolDistrict have no election variant.
type OrgType string

const (
	OrgTypeFederal                  OrgType = "federal"
	OrgTypeInterstate               OrgType = "interstate"
	OrgTypeStateOrTerritory         OrgType = "state_or_territory"
	OrgTypeTribal                   OrgType = "tribal"
	OrgTypeCounty                   OrgType = "county"
	OrgTypeCity                     OrgType = "city"
	OrgTypeSpecialDistrict          OrgType = "special_district"
	OrgTypeSchoolDistrict           OrgType = "school_district"
	OrgTypeStateOrTerritoryElection OrgType = "state_or_territory_election"
	OrgTypeTribalElection           OrgType = "tribal_election"
	OrgTypeCountyElection           OrgType = "county_election"
	OrgTypeCityElection             OrgType = "city_election"
	OrgTypeSpecialDistrictElection  OrgType = "special_district_election"
)

// genericToElection maps each category that supports an election variant to
// that variant. Categories absent from the map have no election office form.
var genericToElection = map[OrgCategory]OrgType{
	CategoryStateOrTerritory: OrgTypeStateOrTerritoryElection,
	CategoryTribal:           OrgTypeTribalElection,
	CategoryCounty:           OrgTypeCountyElection,
	CategoryCity:             OrgTypeCityElection,
	CategorySpecialDistrict:  OrgTypeSpecialDistrictElection,
}

// electionToGeneric is the inverse of genericToElection.
var electionToGeneric = map[OrgType]OrgCategory{
	OrgTypeStateOrTerritoryElection: CategoryStateOrTerritory,
	OrgTypeTribalElection:           CategoryTribal,
	OrgTypeCountyElection:           CategoryCounty,
	OrgTypeCityElection:             CategoryCity,
	OrgTypeSpecialDistrictElection:  CategorySpecialDistrict,
}

// IsElectionVariant reports whether t is an "_election" code.
func (t OrgType) IsElectionVariant() bool {
	_, ok := electionToGeneric[t]
	return ok
}

// Generic returns the broad category underlying this type.
func (t OrgType) Generic() OrgCategory {
	if generic, ok := electionToGeneric[t]; ok {
		return generic
	}
	return OrgCategory(t)
}

// Label returns the display label, appending the election suffix for
// election variants.
func (t OrgType) Label() string {
	label := t.Generic().Label()
	if label == "" {
		return ""
	}
	if t.IsElectionVariant() {
		return label + " - Election"
	}
	return label
}

// GenericLabelFromType returns the category label for any type code,
// stripping an election suffix if present. Used by exports where a request
// may carry either form.
func GenericLabelFromType(raw string) string {
	base, _, _ := strings.Cut(raw, "_election")
	return OrgCategory(base).Label()
}

// ReconcileOrganizationType keeps organizationType consistent with
// (genericOrgType, isElectionBoard). It must run at every persist boundary,
// for new and existing records alike.
//
// New records: if both sides are supplied they must agree, otherwise the
// populated side derives the other. Existing records: exactly one side may
// change per save; the changed side drives the other. Changing both sides in
// one save is ambiguous and rejected.
func ReconcileOrganizationType(r *DomainRequest, prev Snapshot, isNew bool) error {
	if isNew {
		return reconcileNew(r)
	}
	return reconcileExisting(r, prev)
}

func reconcileNew(r *DomainRequest) error {
	switch {
	case r.OrganizationType != nil && r.GenericOrgType != nil:
		// Both supplied (fixture loads, copies). Only allowed when they
		// already agree; anything else would silently overwrite data.
		if !orgTypeMatches(*r.OrganizationType, *r.GenericOrgType, r.IsElectionBoard) {
			return dErrors.New(dErrors.CodeReconciliation,
				"cannot set organization type and generic org type simultaneously when their values do not match")
		}
		return nil
	case r.OrganizationType == nil && r.GenericOrgType == nil:
		return nil
	case r.OrganizationType == nil:
		deriveTypeFromGeneric(r)
		return nil
	default:
		deriveGenericFromType(r)
		return nil
	}
}

func reconcileExisting(r *DomainRequest, prev Snapshot) error {
	genericChanged := !orgCategoryPtrEqual(r.GenericOrgType, prev.GenericOrgType)
	electionChanged := !boolPtrEqual(r.IsElectionBoard, prev.IsElectionBoard)
	typeChanged := !orgTypePtrEqual(r.OrganizationType, prev.OrganizationType)

	if typeChanged && (genericChanged || electionChanged) {
		return dErrors.New(dErrors.CodeReconciliation,
			"cannot update organization type and generic org type simultaneously")
	}

	switch {
	case genericChanged || electionChanged:
		deriveTypeFromGeneric(r)
	case typeChanged:
		deriveGenericFromType(r)
	}
	return nil
}

// orgTypeMatches checks that an explicit type agrees with the generic
// category and election flag.
func orgTypeMatches(t OrgType, generic OrgCategory, isElectionBoard *bool) bool {
	if t.Generic() != generic {
		return false
	}
	if t.IsElectionVariant() {
		return isElectionBoard != nil && *isElectionBoard
	}
	return isElectionBoard == nil || !*isElectionBoard
}

func deriveTypeFromGeneric(r *DomainRequest) {
	if r.GenericOrgType == nil {
		r.OrganizationType = nil
		return
	}
	generic := *r.GenericOrgType
	if election, ok := genericToElection[generic]; ok && r.IsElectionBoard != nil && *r.IsElectionBoard {
		r.OrganizationType = &election
		return
	}
	plain := OrgType(generic)
	r.OrganizationType = &plain
}

func deriveGenericFromType(r *DomainRequest) {
	if r.OrganizationType == nil {
		r.GenericOrgType = nil
		return
	}
	t := *r.OrganizationType
	generic := t.Generic()
	isElection := t.IsElectionVariant()
	r.GenericOrgType = &generic
	r.IsElectionBoard = &isElection
}

func orgCategoryPtrEqual(a, b *OrgCategory) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func orgTypePtrEqual(a, b *OrgType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
