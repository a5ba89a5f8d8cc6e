package models

// Status is the lifecycle state of a domain request. It changes only through
// workflow transitions; direct writes bypass the guards and are reserved for
// administrative repair.
type Status string

const (
	StatusStarted      Status = "started"
	StatusSubmitted    Status = "submitted"
	StatusInReview     Status = "in review"
	StatusActionNeeded Status = "action needed"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusIneligible   Status = "ineligible"
	StatusWithdrawn    Status = "withdrawn"
)

var statusLabels = map[Status]string{
	StatusStarted:      "Started",
	StatusSubmitted:    "Submitted",
	StatusInReview:     "In review",
	StatusActionNeeded: "Action needed",
	StatusApproved:     "Approved",
	StatusRejected:     "Rejected",
	StatusIneligible:   "Ineligible",
	StatusWithdrawn:    "Withdrawn",
}

// Label returns the display label for a status, or "" for an unknown value.
func (s Status) Label() string { return statusLabels[s] }

// IsValid reports whether s is one of the defined lifecycle states.
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Event names a workflow transition.
type Event string

const (
	EventSubmit              Event = "submit"
	EventInReview            Event = "in_review"
	EventActionNeeded        Event = "action_needed"
	EventApprove             Event = "approve"
	EventWithdraw            Event = "withdraw"
	EventReject              Event = "reject"
	EventRejectWithPrejudice Event = "reject_with_prejudice"
)

// transitionTable maps each event to its legal source states and target.
// Guards and side effects live in the service; this table is only about
// which edges exist.
type transitionRule struct {
	Sources []Status
	Target  Status
}

var transitionTable = map[Event]transitionRule{
	EventSubmit: {
		Sources: []Status{StatusStarted, StatusInReview, StatusActionNeeded, StatusWithdrawn},
		Target:  StatusSubmitted,
	},
	EventInReview: {
		Sources: []Status{StatusSubmitted, StatusActionNeeded, StatusApproved, StatusRejected, StatusIneligible},
		Target:  StatusInReview,
	},
	EventActionNeeded: {
		Sources: []Status{StatusInReview, StatusApproved, StatusRejected, StatusIneligible},
		Target:  StatusActionNeeded,
	},
	EventApprove: {
		Sources: []Status{StatusSubmitted, StatusInReview, StatusActionNeeded, StatusRejected},
		Target:  StatusApproved,
	},
	EventWithdraw: {
		Sources: []Status{StatusSubmitted, StatusInReview, StatusActionNeeded},
		Target:  StatusWithdrawn,
	},
	EventReject: {
		Sources: []Status{StatusInReview, StatusActionNeeded, StatusApproved},
		Target:  StatusRejected,
	},
	EventRejectWithPrejudice: {
		Sources: []Status{StatusInReview, StatusActionNeeded, StatusApproved, StatusRejected},
		Target:  StatusIneligible,
	},
}

// TargetOf returns the destination status of an event.
func TargetOf(event Event) (Status, bool) {
	rule, ok := transitionTable[event]
	return rule.Target, ok
}

// CanTransition reports whether event is legal from the given source status.
// This is a pure edge check; guard conditions are evaluated separately.
func CanTransition(from Status, event Event) bool {
	rule, ok := transitionTable[event]
	if !ok {
		return false
	}
	for _, s := range rule.Sources {
		if s == from {
			return true
		}
	}
	return false
}

// StatusesThatSendEmails lists the statuses whose entry notifies the
// registrant. Ineligible and InReview are deliberately silent.
func StatusesThatSendEmails() []Status {
	return []Status{
		StatusStarted, StatusSubmitted, StatusActionNeeded,
		StatusApproved, StatusRejected, StatusWithdrawn,
	}
}
