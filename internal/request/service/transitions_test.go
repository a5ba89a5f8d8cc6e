package service

import (
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"registrar/internal/audit"
	dmodels "registrar/internal/domains/models"
	"registrar/internal/notify"
	"registrar/internal/registry"
	"registrar/internal/request/models"
	id "registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
)

func (s *ServiceSuite) expectStaffInvestigator(r *models.DomainRequest) {
	s.users.EXPECT().FindByID(gomock.Any(), *r.Investigator).Return(s.staffUser(*r.Investigator), nil)
}

func (s *ServiceSuite) TestSubmit() {
	s.Run("first submission stamps dates and sends the confirmation", func() {
		r := newRequest(models.StatusStarted)
		s.expectGet(r)
		s.expectSave(r)
		s.users.EXPECT().FindByID(gomock.Any(), r.Creator).Return(s.registrant(r.Creator), nil)
		s.notifier.EXPECT().
			Send(gomock.Any(), notify.KindSubmissionConfirmation, gomock.Any(), "mayor@example.gov", "").
			Return(nil)

		updated, err := s.service.Submit(s.ctx(r.Creator), r.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusSubmitted, updated.Status)
		s.Require().NotNil(updated.FirstSubmittedDate)
		s.Equal(s.today(), *updated.FirstSubmittedDate)
		s.Equal(s.today(), *updated.LastSubmittedDate)
		s.Equal(s.today(), *updated.LastStatusUpdate)

		s.Require().Len(s.audit.events, 1)
		s.Equal(audit.ActionSubmitted, s.audit.events[0].Action)
		s.Equal(string(models.StatusStarted), s.audit.events[0].FromStatus)
		s.Equal(string(models.StatusSubmitted), s.audit.events[0].ToStatus)
	})

	s.Run("resubmission after action needed keeps the first date and stays quiet", func() {
		r := newRequest(models.StatusActionNeeded)
		first := s.today().AddDate(0, -1, 0)
		r.FirstSubmittedDate = &first
		s.expectGet(r)
		s.expectSave(r)

		updated, err := s.service.Submit(s.ctx(r.Creator), r.ID)
		s.Require().NoError(err)
		s.Equal(first, *updated.FirstSubmittedDate)
		s.Equal(s.today(), *updated.LastSubmittedDate)
	})

	s.Run("an unusable domain name fails the guard", func() {
		r := newRequest(models.StatusStarted)
		r.RequestedDomain = strPtr("not a domain")
		s.expectGet(r)

		_, err := s.service.Submit(s.ctx(r.Creator), r.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("a missing domain name fails the guard", func() {
		r := newRequest(models.StatusStarted)
		r.RequestedDomain = nil
		s.expectGet(r)

		_, err := s.service.Submit(s.ctx(r.Creator), r.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("submitting an already submitted request is an invalid transition", func() {
		r := newRequest(models.StatusSubmitted)
		s.expectGet(r)

		_, err := s.service.Submit(s.ctx(r.Creator), r.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
	})
}

func (s *ServiceSuite) TestMoveToReview() {
	s.Run("requires an assigned investigator", func() {
		r := newRequest(models.StatusSubmitted)
		r.Investigator = nil
		s.expectGet(r)

		_, err := s.service.MoveToReview(s.ctx(r.Creator), r.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("requires the investigator to be staff", func() {
		r := newRequest(models.StatusSubmitted)
		s.expectGet(r)
		s.users.EXPECT().FindByID(gomock.Any(), *r.Investigator).Return(s.registrant(*r.Investigator), nil)

		_, err := s.service.MoveToReview(s.ctx(r.Creator), r.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("moves a submitted request into review", func() {
		r := newRequest(models.StatusSubmitted)
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.expectSave(r)

		updated, err := s.service.MoveToReview(s.ctx(r.Creator), r.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusInReview, updated.Status)
	})

	s.Run("moving away from rejected clears the rejection reason", func() {
		r := newRequest(models.StatusRejected)
		reason := models.RejectionDomainPurpose
		r.RejectionReason = &reason
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.expectSave(r)

		updated, err := s.service.MoveToReview(s.ctx(r.Creator), r.ID)
		s.Require().NoError(err)
		s.Nil(updated.RejectionReason)
	})

	s.Run("an active approved domain blocks the regression", func() {
		r := newRequest(models.StatusApproved)
		domainID := id.DomainID(uuid.New())
		r.ApprovedDomain = &domainID
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.domains.EXPECT().Get(gomock.Any(), domainID).
			Return(&dmodels.Domain{ID: domainID, Name: "example.gov", State: dmodels.StateReady}, nil)

		_, err := s.service.MoveToReview(s.ctx(r.Creator), r.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("moving away from approved tears the inactive domain down", func() {
		r := newRequest(models.StatusApproved)
		domainID := id.DomainID(uuid.New())
		r.ApprovedDomain = &domainID
		d := &dmodels.Domain{ID: domainID, Name: "example.gov", State: dmodels.StateDNSNeeded}
		s.registry.SetState("example.gov", registry.StateDNSNeeded)
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.domains.EXPECT().Get(gomock.Any(), domainID).Return(d, nil).Times(2)
		s.domains.EXPECT().Delete(gomock.Any(), domainID).Return(nil)
		s.expectSave(r)

		updated, err := s.service.MoveToReview(s.ctx(r.Creator), r.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusInReview, updated.Status)
		s.Nil(updated.ApprovedDomain)
		s.Contains(s.registry.Deleted(), "example.gov")
	})
}

func (s *ServiceSuite) TestMarkActionNeeded() {
	s.Run("records the reason and dispatches the reason email", func() {
		r := newRequest(models.StatusInReview)
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.expectSave(r)
		s.users.EXPECT().FindByID(gomock.Any(), r.Creator).Return(s.registrant(r.Creator), nil)
		s.notifier.EXPECT().
			Send(gomock.Any(), notify.KindCustomStatusUpdate, gomock.Any(), "mayor@example.gov", "Please fix the name.").
			Return(nil)

		updated, err := s.service.MarkActionNeeded(s.ctx(r.Creator), r.ID, models.ActionNeededBadName, strPtr("Please fix the name."))
		s.Require().NoError(err)
		s.Equal(models.StatusActionNeeded, updated.Status)
		s.Equal(models.ActionNeededBadName, *updated.ActionNeededReason)
	})

	s.Run("the other reason never emails", func() {
		r := newRequest(models.StatusInReview)
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.expectSave(r)

		_, err := s.service.MarkActionNeeded(s.ctx(r.Creator), r.ID, models.ActionNeededOther, strPtr("free-form note"))
		s.Require().NoError(err)
	})

	s.Run("no email content means no email", func() {
		r := newRequest(models.StatusInReview)
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.expectSave(r)

		_, err := s.service.MarkActionNeeded(s.ctx(r.Creator), r.ID, models.ActionNeededEligibilityUnclear, nil)
		s.Require().NoError(err)
	})

	s.Run("an unknown reason is rejected before any load", func() {
		_, err := s.service.MarkActionNeeded(s.ctx(id.UserID(uuid.New())), id.RequestID(uuid.New()), models.ActionNeededReason("bogus"), nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("moving away from rejected clears the rejection reason", func() {
		r := newRequest(models.StatusRejected)
		reason := models.RejectionOrgHasDomain
		r.RejectionReason = &reason
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.expectSave(r)

		updated, err := s.service.MarkActionNeeded(s.ctx(r.Creator), r.ID, models.ActionNeededEligibilityUnclear, nil)
		s.Require().NoError(err)
		s.Nil(updated.RejectionReason)
	})
}

func (s *ServiceSuite) TestApprove() {
	s.Run("provisions the domain, grants the manager role and notifies", func() {
		r := newRequest(models.StatusSubmitted)
		domainID := id.DomainID(uuid.New())
		d := &dmodels.Domain{ID: domainID, Name: "example.gov", State: dmodels.StateUnknown}
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.domains.EXPECT().Exists(gomock.Any(), "example.gov").Return(false, nil)
		s.domains.EXPECT().Create(gomock.Any(), "example.gov").Return(d, nil)
		s.domains.EXPECT().CopyRequestIntoDomainInformation(gomock.Any(), r, d).Return(nil)
		s.users.EXPECT().GrantManager(gomock.Any(), r.Creator, domainID).Return(nil)
		s.expectSave(r)
		s.users.EXPECT().FindByID(gomock.Any(), r.Creator).Return(s.registrant(r.Creator), nil)
		s.notifier.EXPECT().
			Send(gomock.Any(), notify.KindApproved, gomock.Any(), "mayor@example.gov", "").
			Return(nil)

		updated, err := s.service.Approve(s.ctx(r.Creator), r.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, updated.Status)
		s.Equal(domainID, *updated.ApprovedDomain)
		s.Equal("Non-Federal Agency", *updated.FederalAgency)

		actions := make([]string, 0, len(s.audit.events))
		for _, event := range s.audit.events {
			actions = append(actions, event.Action)
		}
		s.Contains(actions, audit.ActionApproved)
		s.Contains(actions, audit.ActionDomainProvisioned)
	})

	s.Run("a name already in use fails the guard", func() {
		r := newRequest(models.StatusInReview)
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.domains.EXPECT().Exists(gomock.Any(), "example.gov").Return(true, nil)

		_, err := s.service.Approve(s.ctx(r.Creator), r.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("a supplied federal agency is preserved", func() {
		r := newRequest(models.StatusSubmitted)
		r.FederalAgency = strPtr("General Services Administration")
		domainID := id.DomainID(uuid.New())
		d := &dmodels.Domain{ID: domainID, Name: "example.gov", State: dmodels.StateUnknown}
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.domains.EXPECT().Exists(gomock.Any(), "example.gov").Return(false, nil)
		s.domains.EXPECT().Create(gomock.Any(), "example.gov").Return(d, nil)
		s.domains.EXPECT().CopyRequestIntoDomainInformation(gomock.Any(), r, d).Return(nil)
		s.users.EXPECT().GrantManager(gomock.Any(), r.Creator, domainID).Return(nil)
		s.expectSave(r)
		s.users.EXPECT().FindByID(gomock.Any(), r.Creator).Return(s.registrant(r.Creator), nil)
		s.notifier.EXPECT().Send(gomock.Any(), notify.KindApproved, gomock.Any(), "mayor@example.gov", "").Return(nil)

		updated, err := s.service.Approve(s.ctx(r.Creator), r.ID)
		s.Require().NoError(err)
		s.Equal("General Services Administration", *updated.FederalAgency)
	})
}

func (s *ServiceSuite) TestWithdraw() {
	s.Run("withdraws a submitted request and notifies", func() {
		r := newRequest(models.StatusSubmitted)
		s.expectGet(r)
		s.expectSave(r)
		s.users.EXPECT().FindByID(gomock.Any(), r.Creator).Return(s.registrant(r.Creator), nil)
		s.notifier.EXPECT().
			Send(gomock.Any(), notify.KindWithdrawn, gomock.Any(), "mayor@example.gov", "").
			Return(nil)

		updated, err := s.service.Withdraw(s.ctx(r.Creator), r.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusWithdrawn, updated.Status)
	})

	s.Run("a started request cannot be withdrawn", func() {
		r := newRequest(models.StatusStarted)
		s.expectGet(r)

		_, err := s.service.Withdraw(s.ctx(r.Creator), r.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
	})
}

func (s *ServiceSuite) TestReject() {
	s.Run("records the reason and dispatches the reason email", func() {
		r := newRequest(models.StatusInReview)
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.expectSave(r)
		s.users.EXPECT().FindByID(gomock.Any(), r.Creator).Return(s.registrant(r.Creator), nil)
		s.notifier.EXPECT().
			Send(gomock.Any(), notify.KindCustomStatusUpdate, gomock.Any(), "mayor@example.gov", "The purpose does not qualify.").
			Return(nil)

		updated, err := s.service.Reject(s.ctx(r.Creator), r.ID, models.RejectionDomainPurpose, strPtr("The purpose does not qualify."))
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, updated.Status)
		s.Equal(models.RejectionDomainPurpose, *updated.RejectionReason)
	})

	s.Run("rejecting an approved request tears the inactive domain down", func() {
		r := newRequest(models.StatusApproved)
		domainID := id.DomainID(uuid.New())
		r.ApprovedDomain = &domainID
		d := &dmodels.Domain{ID: domainID, Name: "example.gov", State: dmodels.StateDNSNeeded}
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.domains.EXPECT().Get(gomock.Any(), domainID).Return(d, nil).Times(2)
		s.domains.EXPECT().Delete(gomock.Any(), domainID).Return(nil)
		s.expectSave(r)

		updated, err := s.service.Reject(s.ctx(r.Creator), r.ID, models.RejectionOrgNotEligible, nil)
		s.Require().NoError(err)
		s.Nil(updated.ApprovedDomain)
		s.Equal(models.StatusRejected, updated.Status)
	})
}

func (s *ServiceSuite) TestRejectWithPrejudice() {
	s.Run("marks the request ineligible and restricts the creator", func() {
		r := newRequest(models.StatusInReview)
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.expectSave(r)
		s.users.EXPECT().Restrict(gomock.Any(), r.Creator).Return(nil)

		updated, err := s.service.RejectWithPrejudice(s.ctx(r.Creator), r.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusIneligible, updated.Status)

		s.Require().Len(s.audit.events, 1)
		s.Equal(audit.ActionRejectedPrejudice, s.audit.events[0].Action)
	})

	s.Run("a failed restriction does not fail the transition", func() {
		r := newRequest(models.StatusInReview)
		s.expectGet(r)
		s.expectStaffInvestigator(r)
		s.expectSave(r)
		s.users.EXPECT().Restrict(gomock.Any(), r.Creator).
			Return(dErrors.New(dErrors.CodeInternal, "directory unavailable"))

		updated, err := s.service.RejectWithPrejudice(s.ctx(r.Creator), r.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusIneligible, updated.Status)
	})
}
