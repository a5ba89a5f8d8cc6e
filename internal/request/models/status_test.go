package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		event   Event
		target  Status
		allowed []Status
	}{
		{EventSubmit, StatusSubmitted,
			[]Status{StatusStarted, StatusInReview, StatusActionNeeded, StatusWithdrawn}},
		{EventInReview, StatusInReview,
			[]Status{StatusSubmitted, StatusActionNeeded, StatusApproved, StatusRejected, StatusIneligible}},
		{EventActionNeeded, StatusActionNeeded,
			[]Status{StatusInReview, StatusApproved, StatusRejected, StatusIneligible}},
		{EventApprove, StatusApproved,
			[]Status{StatusSubmitted, StatusInReview, StatusActionNeeded, StatusRejected}},
		{EventWithdraw, StatusWithdrawn,
			[]Status{StatusSubmitted, StatusInReview, StatusActionNeeded}},
		{EventReject, StatusRejected,
			[]Status{StatusInReview, StatusActionNeeded, StatusApproved}},
		{EventRejectWithPrejudice, StatusIneligible,
			[]Status{StatusInReview, StatusActionNeeded, StatusApproved, StatusRejected}},
	}

	allStatuses := []Status{
		StatusStarted, StatusSubmitted, StatusInReview, StatusActionNeeded,
		StatusApproved, StatusRejected, StatusIneligible, StatusWithdrawn,
	}

	for _, tc := range cases {
		t.Run(string(tc.event), func(t *testing.T) {
			target, ok := TargetOf(tc.event)
			assert.True(t, ok)
			assert.Equal(t, tc.target, target)

			allowed := map[Status]bool{}
			for _, from := range tc.allowed {
				allowed[from] = true
			}
			for _, from := range allStatuses {
				assert.Equal(t, allowed[from], CanTransition(from, tc.event),
					"event %s from %s", tc.event, from)
			}
		})
	}
}

func TestTransitionTableEdges(t *testing.T) {
	t.Run("submitted cannot be submitted again", func(t *testing.T) {
		assert.False(t, CanTransition(StatusSubmitted, EventSubmit))
	})

	t.Run("started can only be submitted", func(t *testing.T) {
		assert.True(t, CanTransition(StatusStarted, EventSubmit))
		for _, e := range []Event{EventInReview, EventActionNeeded, EventApprove, EventWithdraw, EventReject, EventRejectWithPrejudice} {
			assert.False(t, CanTransition(StatusStarted, e), "event %s", e)
		}
	})

	t.Run("ineligible is terminal except for review", func(t *testing.T) {
		assert.True(t, CanTransition(StatusIneligible, EventInReview))
		assert.True(t, CanTransition(StatusIneligible, EventActionNeeded))
		for _, e := range []Event{EventSubmit, EventApprove, EventWithdraw, EventReject, EventRejectWithPrejudice} {
			assert.False(t, CanTransition(StatusIneligible, e), "event %s", e)
		}
	})

	t.Run("unknown event never transitions", func(t *testing.T) {
		assert.False(t, CanTransition(StatusStarted, Event("escalate")))
		_, ok := TargetOf(Event("escalate"))
		assert.False(t, ok)
	})
}

func TestCouldBeDomainName(t *testing.T) {
	valid := []string{"city.gov", "my-town.gov", "a.us", "S1.gov"}
	for _, name := range valid {
		assert.True(t, CouldBeDomainName(name), "name %q", name)
	}

	invalid := []string{"", "nodot", "-leading.gov", "trailing-.gov", "two..dots.gov", "spaces in.gov", "city.g"}
	for _, name := range invalid {
		assert.False(t, CouldBeDomainName(name), "name %q", name)
	}
}

func TestIsWithdrawable(t *testing.T) {
	withdrawable := map[Status]bool{
		StatusSubmitted:    true,
		StatusInReview:     true,
		StatusActionNeeded: true,
	}
	for _, status := range []Status{
		StatusStarted, StatusSubmitted, StatusInReview, StatusActionNeeded,
		StatusApproved, StatusRejected, StatusIneligible, StatusWithdrawn,
	} {
		r := &DomainRequest{Status: status}
		assert.Equal(t, withdrawable[status], r.IsWithdrawable(), "status %s", status)
	}
}
