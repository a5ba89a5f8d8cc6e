package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "registrar/pkg/domain"
)

func TestNewRequest(t *testing.T) {
	creator := id.UserID(uuid.New())
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	r := New(id.RequestID(uuid.New()), creator, now)

	assert.Equal(t, StatusStarted, r.Status)
	assert.Equal(t, creator, r.Creator)
	assert.Nil(t, r.FirstSubmittedDate)
	assert.Nil(t, r.LastStatusUpdate)
	assert.Equal(t, now, r.CreatedAt)
}

func TestSyncYesNoFields(t *testing.T) {
	t.Run("anything else text drives the flag", func(t *testing.T) {
		r := &DomainRequest{AnythingElse: strPtr("context")}
		r.SyncYesNoFields()
		assert.NotNil(t, r.HasAnythingElseText)
		assert.True(t, *r.HasAnythingElseText)

		r.AnythingElse = strPtr("")
		r.SyncYesNoFields()
		assert.False(t, *r.HasAnythingElseText)
	})

	t.Run("a stale yes flag is corrected when the text is gone", func(t *testing.T) {
		r := &DomainRequest{HasAnythingElseText: boolPtr(true)}
		r.SyncYesNoFields()
		assert.NotNil(t, r.HasAnythingElseText)
		assert.False(t, *r.HasAnythingElseText)
	})

	t.Run("cisa flag follows the representative names", func(t *testing.T) {
		r := &DomainRequest{
			CISARepresentativeFirstName: strPtr("Alex"),
			CISARepresentativeLastName:  strPtr("Reyes"),
		}
		r.SyncYesNoFields()
		assert.NotNil(t, r.HasCISARepresentative)
		assert.True(t, *r.HasCISARepresentative)

		r.CISARepresentativeLastName = strPtr("")
		r.SyncYesNoFields()
		assert.False(t, *r.HasCISARepresentative)
	})

	t.Run("untouched answers stay indeterminate", func(t *testing.T) {
		r := &DomainRequest{}
		r.SyncYesNoFields()
		assert.Nil(t, r.HasAnythingElseText)
		assert.Nil(t, r.HasCISARepresentative)
	})
}

func TestIsFederal(t *testing.T) {
	r := &DomainRequest{}
	assert.Nil(t, r.IsFederal())

	r.GenericOrgType = categoryPtr(CategoryFederal)
	assert.True(t, *r.IsFederal())

	r.GenericOrgType = categoryPtr(CategoryCity)
	assert.False(t, *r.IsFederal())
}

func TestSnapshotOf(t *testing.T) {
	reason := ActionNeededBadName
	r := &DomainRequest{
		Status:             StatusActionNeeded,
		ActionNeededReason: &reason,
		GenericOrgType:     categoryPtr(CategoryCounty),
	}

	snap := SnapshotOf(r)
	assert.Equal(t, StatusActionNeeded, snap.Status)
	assert.Equal(t, &reason, snap.ActionNeededReason)
	assert.Nil(t, snap.RejectionReason)
	assert.Equal(t, r.GenericOrgType, snap.GenericOrgType)
}
