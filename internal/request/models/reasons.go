package models

// RejectionReason explains why a request was rejected.
type RejectionReason string

const (
	RejectionDomainPurpose        RejectionReason = "domain_purpose"
	RejectionRequestorNotEligible RejectionReason = "requestor_not_eligible"
	RejectionOrgHasDomain         RejectionReason = "org_has_domain"
	RejectionContactsNotVerified  RejectionReason = "contacts_not_verified"
	RejectionOrgNotEligible       RejectionReason = "org_not_eligible"
	RejectionNamingRequirements   RejectionReason = "naming_requirements"
	RejectionOther                RejectionReason = "other"
)

var rejectionLabels = map[RejectionReason]string{
	RejectionDomainPurpose:        "Purpose requirements not met",
	RejectionRequestorNotEligible: "Requestor not eligible to make request",
	RejectionOrgHasDomain:         "Org already has a .gov domain",
	RejectionContactsNotVerified:  "Org contacts couldn't be verified",
	RejectionOrgNotEligible:       "Org not eligible for a .gov domain",
	RejectionNamingRequirements:   "Naming requirements not met",
	RejectionOther:                "Other/Unspecified",
}

func (r RejectionReason) Label() string { return rejectionLabels[r] }

func (r RejectionReason) IsValid() bool {
	_, ok := rejectionLabels[r]
	return ok
}

// ActionNeededReason explains why a request needs registrant action.
type ActionNeededReason string

const (
	ActionNeededEligibilityUnclear ActionNeededReason = "eligibility_unclear"
	ActionNeededQuestionableSenior ActionNeededReason = "questionable_senior_official"
	ActionNeededAlreadyHasDomains  ActionNeededReason = "already_has_domains"
	ActionNeededBadName            ActionNeededReason = "bad_name"
	ActionNeededOther              ActionNeededReason = "other"
)

var actionNeededLabels = map[ActionNeededReason]string{
	ActionNeededEligibilityUnclear: "Unclear organization eligibility",
	ActionNeededQuestionableSenior: "Questionable senior official",
	ActionNeededAlreadyHasDomains:  "Already has domains",
	ActionNeededBadName:            "Doesn't meet naming requirements",
	ActionNeededOther:              "Other (no auto-email sent)",
}

func (r ActionNeededReason) Label() string { return actionNeededLabels[r] }

func (r ActionNeededReason) IsValid() bool {
	_, ok := actionNeededLabels[r]
	return ok
}

// ExcludedActionNeededReasons never trigger an automatic reason email.
// "Other" is a free-form bucket with no template behind it.
var ExcludedActionNeededReasons = map[ActionNeededReason]bool{
	ActionNeededOther: true,
}

// ExcludedRejectionReasons is currently empty: every rejection reason with an
// email body sends.
var ExcludedRejectionReasons = map[RejectionReason]bool{}
