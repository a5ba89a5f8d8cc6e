package models

import (
	"regexp"
	"time"

	id "registrar/pkg/domain"
)

// DomainRequest is the aggregate root of the workflow.
//
// Invariants:
//   - OrganizationType is always derivable from (GenericOrgType,
//     IsElectionBoard) and vice versa; ReconcileOrganizationType enforces
//     this at every persist boundary.
//   - ApprovedDomain is non-nil iff Status == StatusApproved.
//   - Status moves only along the edges in the transition table.
//   - At most one reason email is sent per reason value per status.
//
// Nullable form answers use pointers: nil means "not answered yet", which is
// distinct from an empty answer for several completeness checks.
type DomainRequest struct {
	ID     id.RequestID `json:"id"`
	Status Status       `json:"status"`

	RejectionReason         *RejectionReason    `json:"rejection_reason,omitempty"`
	RejectionReasonEmail    *string             `json:"rejection_reason_email,omitempty"`
	ActionNeededReason      *ActionNeededReason `json:"action_needed_reason,omitempty"`
	ActionNeededReasonEmail *string             `json:"action_needed_reason_email,omitempty"`

	FederalAgency *string    `json:"federal_agency,omitempty"`
	Portfolio     *string    `json:"portfolio,omitempty"`
	Creator       id.UserID  `json:"creator"`
	Investigator  *id.UserID `json:"investigator,omitempty"`

	GenericOrgType   *OrgCategory `json:"generic_org_type,omitempty"`
	IsElectionBoard  *bool        `json:"is_election_board,omitempty"`
	OrganizationType *OrgType     `json:"organization_type,omitempty"`

	FederallyRecognizedTribe *bool   `json:"federally_recognized_tribe,omitempty"`
	StateRecognizedTribe     *bool   `json:"state_recognized_tribe,omitempty"`
	TribeName                *string `json:"tribe_name,omitempty"`

	FederalType *BranchType `json:"federal_type,omitempty"`

	OrganizationName *string `json:"organization_name,omitempty"`
	AddressLine1     *string `json:"address_line1,omitempty"`
	AddressLine2     *string `json:"address_line2,omitempty"`
	City             *string `json:"city,omitempty"`
	StateTerritory   *string `json:"state_territory,omitempty"`
	Zipcode          *string `json:"zipcode,omitempty"`
	Urbanization     *string `json:"urbanization,omitempty"`

	AboutYourOrganization *string       `json:"about_your_organization,omitempty"`
	SeniorOfficial        *id.ContactID `json:"senior_official,omitempty"`

	// RequestedDomain holds the not-yet-registered name the organization
	// wants. Required content before submission.
	RequestedDomain *string `json:"requested_domain,omitempty"`
	// ApprovedDomain is set only by approve and cleared whenever the request
	// regresses out of Approved.
	ApprovedDomain *id.DomainID `json:"approved_domain,omitempty"`

	Purpose *string `json:"purpose,omitempty"`

	OtherContacts            []Contact `json:"other_contacts,omitempty"`
	NoOtherContactsRationale *string   `json:"no_other_contacts_rationale,omitempty"`

	AnythingElse        *string `json:"anything_else,omitempty"`
	HasAnythingElseText *bool   `json:"has_anything_else_text,omitempty"`

	CISARepresentativeFirstName *string `json:"cisa_representative_first_name,omitempty"`
	CISARepresentativeLastName  *string `json:"cisa_representative_last_name,omitempty"`
	CISARepresentativeEmail     *string `json:"cisa_representative_email,omitempty"`
	HasCISARepresentative       *bool   `json:"has_cisa_representative,omitempty"`

	IsPolicyAcknowledged *bool `json:"is_policy_acknowledged,omitempty"`

	FirstSubmittedDate *time.Time `json:"first_submitted_date,omitempty"`
	LastSubmittedDate  *time.Time `json:"last_submitted_date,omitempty"`
	LastStatusUpdate   *time.Time `json:"last_status_update,omitempty"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BranchType is the federal government branch.
type BranchType string

const (
	BranchExecutive   BranchType = "executive"
	BranchLegislative BranchType = "legislative"
	BranchJudicial    BranchType = "judicial"
)

// Contact is an additional employee listed on a request.
type Contact struct {
	ID        id.ContactID `json:"id"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Title     string       `json:"title"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
}

// IsWellFormed reports whether every required contact field is present.
func (c Contact) IsWellFormed() bool {
	return c.FirstName != "" && c.LastName != "" && c.Title != "" && c.Email != "" && c.Phone != ""
}

// Snapshot captures the load-time values used to detect same-status reason
// changes and ambiguous org-type edits. Stores take it on load and refresh it
// after every successful save; the service passes it alongside the entity so
// no hidden mutable state rides on the struct itself.
type Snapshot struct {
	Status             Status
	ActionNeededReason *ActionNeededReason
	RejectionReason    *RejectionReason
	GenericOrgType     *OrgCategory
	IsElectionBoard    *bool
	OrganizationType   *OrgType
}

// SnapshotOf captures the reason/org-type state of a request.
func SnapshotOf(r *DomainRequest) Snapshot {
	return Snapshot{
		Status:             r.Status,
		ActionNeededReason: r.ActionNeededReason,
		RejectionReason:    r.RejectionReason,
		GenericOrgType:     r.GenericOrgType,
		IsElectionBoard:    r.IsElectionBoard,
		OrganizationType:   r.OrganizationType,
	}
}

// New creates a request in Started for the given creator.
func New(requestID id.RequestID, creator id.UserID, now time.Time) *DomainRequest {
	return &DomainRequest{
		ID:        requestID,
		Status:    StatusStarted,
		Creator:   creator,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAwaitingReview reports whether the request sits in the analyst queue.
func (r *DomainRequest) IsAwaitingReview() bool {
	return r.Status == StatusSubmitted || r.Status == StatusInReview
}

// IsWithdrawable mirrors the withdraw transition's source set.
func (r *DomainRequest) IsWithdrawable() bool {
	return CanTransition(r.Status, EventWithdraw)
}

// IsFederal answers whether the request is for a federal agency; nil when the
// category question has not been answered.
func (r *DomainRequest) IsFederal() *bool {
	if r.GenericOrgType == nil {
		return nil
	}
	isFederal := *r.GenericOrgType == CategoryFederal
	return &isFederal
}

// SyncYesNoFields derives the tri-state yes/no flags from their backing text
// fields. Runs at the persist boundary so prefilled data keeps the flags
// consistent with the answers.
func (r *DomainRequest) SyncYesNoFields() {
	if r.CISARepresentativeFirstName != nil || r.CISARepresentativeLastName != nil {
		has := strPtrFilled(r.CISARepresentativeFirstName) && strPtrFilled(r.CISARepresentativeLastName)
		r.HasCISARepresentative = &has
	}
	if r.HasCISARepresentative != nil {
		has := strPtrFilled(r.CISARepresentativeFirstName) && strPtrFilled(r.CISARepresentativeLastName)
		r.HasCISARepresentative = &has
	}

	if r.AnythingElse != nil {
		has := *r.AnythingElse != ""
		r.HasAnythingElseText = &has
	}
	if r.HasAnythingElseText != nil {
		has := strPtrFilled(r.AnythingElse)
		r.HasAnythingElseText = &has
	}
}

func strPtrFilled(s *string) bool {
	return s != nil && *s != ""
}

// domainNamePattern accepts a bare second-level .gov-style name: letters,
// digits and hyphens in the label, with an alphanumeric first and last
// character, followed by a dot and a TLD.
var domainNamePattern = regexp.MustCompile(`^(?i:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.[a-z]{2,})$`)

// CouldBeDomainName reports whether name is syntactically usable as a domain
// name. Submission is refused for anything else.
func CouldBeDomainName(name string) bool {
	if len(name) == 0 || len(name) > 253 {
		return false
	}
	return domainNamePattern.MatchString(name)
}
