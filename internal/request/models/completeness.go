package models

// IsComplete reports whether the request is fully answered for its
// organization type. Pure read-only query; callers use it to decide whether
// to allow submission. A request with no organization category chosen is
// never complete.
func IsComplete(r *DomainRequest) bool {
	return typeSpecificComplete(r) && generalFormComplete(r)
}

func typeSpecificComplete(r *DomainRequest) bool {
	if r.GenericOrgType == nil {
		return false
	}
	switch *r.GenericOrgType {
	case CategoryFederal:
		return isFederalComplete(r)
	case CategoryInterstate:
		return isInterstateComplete(r)
	case CategoryStateOrTerritory:
		return isStateOrTerritoryComplete(r)
	case CategoryTribal:
		return isTribalComplete(r)
	case CategoryCounty:
		return isCountyComplete(r)
	case CategoryCity:
		return isCityComplete(r)
	case CategorySpecialDistrict:
		return isSpecialDistrictComplete(r)
	case CategorySchoolDistrict:
		// School districts have no extra section.
		return true
	default:
		return false
	}
}

func isFederalComplete(r *DomainRequest) bool {
	// Federal branch and federal agency both answered.
	return r.FederalType != nil && r.FederalAgency != nil
}

func isInterstateComplete(r *DomainRequest) bool {
	// "About your organization" answered.
	return r.AboutYourOrganization != nil
}

func isStateOrTerritoryComplete(r *DomainRequest) bool {
	return r.IsElectionBoard != nil
}

func isTribalComplete(r *DomainRequest) bool {
	return r.TribeName != nil && r.IsElectionBoard != nil
}

func isCountyComplete(r *DomainRequest) bool {
	return r.IsElectionBoard != nil
}

func isCityComplete(r *DomainRequest) bool {
	return r.IsElectionBoard != nil
}

func isSpecialDistrictComplete(r *DomainRequest) bool {
	return r.IsElectionBoard != nil && r.AboutYourOrganization != nil
}

func generalFormComplete(r *DomainRequest) bool {
	return isCreatorComplete(r) &&
		isOrganizationNameAndAddressComplete(r) &&
		isSeniorOfficialComplete(r) &&
		isRequestedDomainComplete(r) &&
		isPurposeComplete(r) &&
		isOtherContactsComplete(r) &&
		isAdditionalDetailsComplete(r) &&
		isPolicyAcknowledgementComplete(r)
}

func isCreatorComplete(r *DomainRequest) bool {
	return !r.Creator.IsZero()
}

func isOrganizationNameAndAddressComplete(r *DomainRequest) bool {
	// The address section counts as answered once any of its fields is.
	return !(r.OrganizationName == nil &&
		r.AddressLine1 == nil &&
		r.City == nil &&
		r.StateTerritory == nil &&
		r.Zipcode == nil)
}

func isSeniorOfficialComplete(r *DomainRequest) bool {
	return r.SeniorOfficial != nil
}

func isRequestedDomainComplete(r *DomainRequest) bool {
	return r.RequestedDomain != nil
}

func isPurposeComplete(r *DomainRequest) bool {
	return r.Purpose != nil
}

func hasOtherContactsAndFilled(r *DomainRequest) bool {
	if len(r.OtherContacts) == 0 {
		return false
	}
	for _, c := range r.OtherContacts {
		if c.IsWellFormed() {
			return true
		}
	}
	return false
}

func hasNoOtherContactsGivesRationale(r *DomainRequest) bool {
	return len(r.OtherContacts) == 0 && r.NoOtherContactsRationale != nil
}

func isOtherContactsComplete(r *DomainRequest) bool {
	return hasOtherContactsAndFilled(r) || hasNoOtherContactsGivesRationale(r)
}

// cisaRepCheck: either no CISA representative, or one with both names filled.
// A nil flag is the indeterminate "hasn't clicked yes/no" state and fails.
func cisaRepCheck(r *DomainRequest) bool {
	if r.HasCISARepresentative == nil {
		return false
	}
	if !*r.HasCISARepresentative {
		return true
	}
	return strPtrFilled(r.CISARepresentativeFirstName) && strPtrFilled(r.CISARepresentativeLastName)
}

// anythingElseCheck: either a filled "anything else" answer, or an explicit no.
func anythingElseCheck(r *DomainRequest) bool {
	if r.HasAnythingElseText == nil {
		return false
	}
	if !*r.HasAnythingElseText {
		return true
	}
	return strPtrFilled(r.AnythingElse)
}

func isAdditionalDetailsComplete(r *DomainRequest) bool {
	return cisaRepCheck(r) && anythingElseCheck(r)
}

func isPolicyAcknowledgementComplete(r *DomainRequest) bool {
	return r.IsPolicyAcknowledged != nil
}
