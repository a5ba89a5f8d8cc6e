package service

import (
	"context"
	"time"

	"registrar/internal/audit"
	"registrar/internal/notify"
	"registrar/internal/registry"
	"registrar/internal/request/models"
	id "registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/requestcontext"
)

// Submit moves a request into the analyst queue. The requested domain must
// look like a registrable name; everything else about completeness is the
// registrant's responsibility.
//
// A confirmation email goes out only when the request comes from Started or
// Withdrawn; resubmissions after review churn stay quiet.
func (s *Service) Submit(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error) {
	ctx, span := s.tracer.Start(ctx, "request.Submit")
	defer span.End()
	start := time.Now()

	r, prev, err := s.load(ctx, requestID)
	if err != nil {
		s.metrics.IncrementTransition("submit", "error")
		return nil, err
	}
	if !models.CanTransition(r.Status, models.EventSubmit) {
		s.metrics.IncrementTransition("submit", "invalid")
		return nil, dErrors.Newf(dErrors.CodeInvalidTransition, "cannot submit a request in status %q", r.Status)
	}
	if r.RequestedDomain == nil {
		return nil, s.guardFailed("submit", "requested_domain", "requested domain is missing")
	}
	if !models.CouldBeDomainName(*r.RequestedDomain) {
		return nil, s.guardFailed("submit", "valid_domain_name", "requested domain is not a valid domain name")
	}

	from := r.Status
	today := requestcontext.Today(ctx)
	if r.FirstSubmittedDate == nil {
		r.FirstSubmittedDate = &today
	}
	r.LastSubmittedDate = &today
	s.setStatus(ctx, r, models.StatusSubmitted)

	if _, err := s.save(ctx, r, prev); err != nil {
		s.metrics.IncrementTransition("submit", "error")
		return nil, err
	}

	if from == models.StatusStarted || from == models.StatusWithdrawn {
		s.sendStatusEmail(ctx, notify.KindSubmissionConfirmation, r, "")
	}
	s.finishTransition(ctx, r, "submit", audit.ActionSubmitted, from, "", start)
	return r, nil
}

// MoveToReview puts a submitted request under active investigation. Moving
// away from Rejected or ActionNeeded clears the old reason; moving away from
// Approved tears the provisioned domain down.
func (s *Service) MoveToReview(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error) {
	ctx, span := s.tracer.Start(ctx, "request.MoveToReview")
	defer span.End()
	start := time.Now()

	r, prev, err := s.load(ctx, requestID)
	if err != nil {
		s.metrics.IncrementTransition("in_review", "error")
		return nil, err
	}
	if !models.CanTransition(r.Status, models.EventInReview) {
		s.metrics.IncrementTransition("in_review", "invalid")
		return nil, dErrors.Newf(dErrors.CodeInvalidTransition, "cannot move a request in status %q to review", r.Status)
	}
	if err := s.guardInvestigatorIsStaff(ctx, "in_review", r); err != nil {
		return nil, err
	}
	if err := s.guardDomainNotActive(ctx, "in_review", r); err != nil {
		return nil, err
	}

	from := r.Status
	switch from {
	case models.StatusApproved:
		s.cleanupDomain(ctx, r, "in_review")
	case models.StatusRejected:
		r.RejectionReason = nil
	case models.StatusActionNeeded:
		r.ActionNeededReason = nil
	}
	s.setStatus(ctx, r, models.StatusInReview)

	if _, err := s.save(ctx, r, prev); err != nil {
		s.metrics.IncrementTransition("in_review", "error")
		return nil, err
	}
	s.finishTransition(ctx, r, "in_review", audit.ActionMovedToReview, from, "", start)
	return r, nil
}

// MarkActionNeeded sends a request back to the registrant with a reason.
// emailBody is the analyst-written text for the reason email; whether it is
// actually sent is decided at the persist boundary, which dedupes by reason.
func (s *Service) MarkActionNeeded(ctx context.Context, requestID id.RequestID, reason models.ActionNeededReason, emailBody *string) (*models.DomainRequest, error) {
	ctx, span := s.tracer.Start(ctx, "request.MarkActionNeeded")
	defer span.End()
	start := time.Now()

	if !reason.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown action needed reason %q", reason)
	}

	r, prev, err := s.load(ctx, requestID)
	if err != nil {
		s.metrics.IncrementTransition("action_needed", "error")
		return nil, err
	}
	if !models.CanTransition(r.Status, models.EventActionNeeded) {
		s.metrics.IncrementTransition("action_needed", "invalid")
		return nil, dErrors.Newf(dErrors.CodeInvalidTransition, "cannot mark a request in status %q as action needed", r.Status)
	}
	if err := s.guardInvestigatorIsStaff(ctx, "action_needed", r); err != nil {
		return nil, err
	}
	if err := s.guardDomainNotActive(ctx, "action_needed", r); err != nil {
		return nil, err
	}

	from := r.Status
	switch from {
	case models.StatusApproved:
		s.cleanupDomain(ctx, r, "action_needed")
	case models.StatusRejected:
		r.RejectionReason = nil
	}
	r.ActionNeededReason = &reason
	r.ActionNeededReasonEmail = emailBody
	s.setStatus(ctx, r, models.StatusActionNeeded)

	if _, err := s.save(ctx, r, prev); err != nil {
		s.metrics.IncrementTransition("action_needed", "error")
		return nil, err
	}
	s.finishTransition(ctx, r, "action_needed", audit.ActionActionNeeded, from, string(reason), start)
	return r, nil
}

// Approve provisions the requested domain, copies the request into the
// long-lived domain information record, grants the creator the manager role
// and notifies them. All writes run in one transaction; the emails go out
// only after it commits.
func (s *Service) Approve(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error) {
	ctx, span := s.tracer.Start(ctx, "request.Approve")
	defer span.End()
	start := time.Now()

	r, prev, err := s.load(ctx, requestID)
	if err != nil {
		s.metrics.IncrementTransition("approve", "error")
		return nil, err
	}
	if !models.CanTransition(r.Status, models.EventApprove) {
		s.metrics.IncrementTransition("approve", "invalid")
		return nil, dErrors.Newf(dErrors.CodeInvalidTransition, "cannot approve a request in status %q", r.Status)
	}
	if err := s.guardInvestigatorIsStaff(ctx, "approve", r); err != nil {
		return nil, err
	}
	if r.RequestedDomain == nil {
		return nil, s.guardFailed("approve", "requested_domain", "requested domain is missing")
	}

	from := r.Status
	name := *r.RequestedDomain

	err = s.runInTx(ctx, func(ctx context.Context) error {
		inUse, err := s.domains.Exists(ctx, name)
		if err != nil {
			return err
		}
		if inUse {
			return dErrors.Newf(dErrors.CodePreconditionFailed, "domain name %q is already in use", name)
		}

		if r.FederalAgency == nil {
			agency := nonFederalAgency
			r.FederalAgency = &agency
		}

		d, err := s.domains.Create(ctx, name)
		if err != nil {
			return err
		}
		r.ApprovedDomain = &d.ID
		if err := s.domains.CopyRequestIntoDomainInformation(ctx, r, d); err != nil {
			return err
		}
		if err := s.users.GrantManager(ctx, r.Creator, d.ID); err != nil {
			return err
		}

		switch from {
		case models.StatusRejected:
			r.RejectionReason = nil
		case models.StatusActionNeeded:
			r.ActionNeededReason = nil
		}
		s.setStatus(ctx, r, models.StatusApproved)

		_, err = s.save(ctx, r, prev)
		return err
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodePreconditionFailed) || dErrors.HasCode(err, dErrors.CodeConflict) {
			s.metrics.IncrementGuardFailure("domain_name_in_use")
			s.metrics.IncrementTransition("approve", "guard_failed")
			return nil, err
		}
		s.metrics.IncrementTransition("approve", "error")
		return nil, err
	}

	s.sendStatusEmail(ctx, notify.KindApproved, r, "")
	s.publishAudit(ctx, r, audit.ActionDomainProvisioned, "", "", name)
	if s.onApproved != nil {
		s.onApproved()
	}
	s.finishTransition(ctx, r, "approve", audit.ActionApproved, from, "", start)
	return r, nil
}

// Withdraw takes a request out of the queue at the registrant's ask. No
// guards beyond the edge check; the registrant can always back out before a
// decision.
func (s *Service) Withdraw(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error) {
	ctx, span := s.tracer.Start(ctx, "request.Withdraw")
	defer span.End()
	start := time.Now()

	r, prev, err := s.load(ctx, requestID)
	if err != nil {
		s.metrics.IncrementTransition("withdraw", "error")
		return nil, err
	}
	if !models.CanTransition(r.Status, models.EventWithdraw) {
		s.metrics.IncrementTransition("withdraw", "invalid")
		return nil, dErrors.Newf(dErrors.CodeInvalidTransition, "cannot withdraw a request in status %q", r.Status)
	}

	from := r.Status
	s.setStatus(ctx, r, models.StatusWithdrawn)

	if _, err := s.save(ctx, r, prev); err != nil {
		s.metrics.IncrementTransition("withdraw", "error")
		return nil, err
	}
	s.sendStatusEmail(ctx, notify.KindWithdrawn, r, "")
	s.finishTransition(ctx, r, "withdraw", audit.ActionWithdrawn, from, "", start)
	return r, nil
}

// Reject declines a request with a reason. The reason email, if any, is
// dispatched by the persist boundary check.
func (s *Service) Reject(ctx context.Context, requestID id.RequestID, reason models.RejectionReason, emailBody *string) (*models.DomainRequest, error) {
	ctx, span := s.tracer.Start(ctx, "request.Reject")
	defer span.End()
	start := time.Now()

	if !reason.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown rejection reason %q", reason)
	}

	r, prev, err := s.load(ctx, requestID)
	if err != nil {
		s.metrics.IncrementTransition("reject", "error")
		return nil, err
	}
	if !models.CanTransition(r.Status, models.EventReject) {
		s.metrics.IncrementTransition("reject", "invalid")
		return nil, dErrors.Newf(dErrors.CodeInvalidTransition, "cannot reject a request in status %q", r.Status)
	}
	if err := s.guardInvestigatorIsStaff(ctx, "reject", r); err != nil {
		return nil, err
	}
	if err := s.guardDomainNotActive(ctx, "reject", r); err != nil {
		return nil, err
	}

	from := r.Status
	if from == models.StatusApproved {
		s.cleanupDomain(ctx, r, "reject")
	}
	r.RejectionReason = &reason
	r.RejectionReasonEmail = emailBody
	s.setStatus(ctx, r, models.StatusRejected)

	if _, err := s.save(ctx, r, prev); err != nil {
		s.metrics.IncrementTransition("reject", "error")
		return nil, err
	}
	s.finishTransition(ctx, r, "reject", audit.ActionRejected, from, string(reason), start)
	return r, nil
}

// RejectWithPrejudice marks the request ineligible and restricts the creator
// from making further requests. No email goes out.
func (s *Service) RejectWithPrejudice(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error) {
	ctx, span := s.tracer.Start(ctx, "request.RejectWithPrejudice")
	defer span.End()
	start := time.Now()

	r, prev, err := s.load(ctx, requestID)
	if err != nil {
		s.metrics.IncrementTransition("reject_with_prejudice", "error")
		return nil, err
	}
	if !models.CanTransition(r.Status, models.EventRejectWithPrejudice) {
		s.metrics.IncrementTransition("reject_with_prejudice", "invalid")
		return nil, dErrors.Newf(dErrors.CodeInvalidTransition, "cannot reject a request in status %q with prejudice", r.Status)
	}
	if err := s.guardInvestigatorIsStaff(ctx, "reject_with_prejudice", r); err != nil {
		return nil, err
	}
	if err := s.guardDomainNotActive(ctx, "reject_with_prejudice", r); err != nil {
		return nil, err
	}

	from := r.Status
	if from == models.StatusApproved {
		s.cleanupDomain(ctx, r, "reject_with_prejudice")
	}
	s.setStatus(ctx, r, models.StatusIneligible)

	if _, err := s.save(ctx, r, prev); err != nil {
		s.metrics.IncrementTransition("reject_with_prejudice", "error")
		return nil, err
	}

	if err := s.users.Restrict(ctx, r.Creator); err != nil {
		// The request is already ineligible; a failed restriction is an
		// operational follow-up, not a reason to fail the transition.
		s.logger.ErrorContext(ctx, "failed to restrict creator",
			"request_id", r.ID.String(),
			"creator", r.Creator.String(),
			"error", err,
		)
	}

	s.finishTransition(ctx, r, "reject_with_prejudice", audit.ActionRejectedPrejudice, from, "", start)
	return r, nil
}

// guardInvestigatorIsStaff requires an assigned investigator with the staff
// flag. No decision is possible without one.
func (s *Service) guardInvestigatorIsStaff(ctx context.Context, event string, r *models.DomainRequest) error {
	if r.Investigator == nil {
		return s.guardFailed(event, "investigator", "no investigator assigned")
	}
	investigator, err := s.users.FindByID(ctx, *r.Investigator)
	if err != nil || !investigator.IsStaff {
		return s.guardFailed(event, "investigator", "investigator is not a staff user")
	}
	return nil
}

// guardDomainNotActive refuses to regress a request whose approved domain is
// live in the registry.
func (s *Service) guardDomainNotActive(ctx context.Context, event string, r *models.DomainRequest) error {
	if r.ApprovedDomain == nil {
		return nil
	}
	d, err := s.domains.Get(ctx, *r.ApprovedDomain)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil
		}
		return err
	}
	if d.IsActive() {
		return s.guardFailed(event, "domain_active", "approved domain is active and must be deleted first")
	}
	return nil
}

func (s *Service) guardFailed(event, guard, message string) error {
	s.metrics.IncrementGuardFailure(guard)
	s.metrics.IncrementTransition(event, "guard_failed")
	return dErrors.New(dErrors.CodePreconditionFailed, message)
}

// setStatus records the new status and stamps the change date.
func (s *Service) setStatus(ctx context.Context, r *models.DomainRequest, status models.Status) {
	r.Status = status
	today := requestcontext.Today(ctx)
	r.LastStatusUpdate = &today
}

// cleanupDomain tears down the domain provisioned by an earlier approval:
// delete from the registry when it exists there, then drop the local records.
// Failures are logged and swallowed so a review transition never wedges on
// registry trouble.
func (s *Service) cleanupDomain(ctx context.Context, r *models.DomainRequest, calledFrom string) {
	if r.ApprovedDomain == nil {
		return
	}
	d, err := s.domains.Get(ctx, *r.ApprovedDomain)
	if err != nil {
		s.logger.ErrorContext(ctx, "cannot load approved domain for cleanup",
			"request_id", r.ID.String(),
			"called_from", calledFrom,
			"error", err,
		)
		return
	}

	state, err := s.registry.State(ctx, d.Name)
	if err != nil {
		s.logger.ErrorContext(ctx, "cannot query registry state for cleanup",
			"request_id", r.ID.String(),
			"domain", d.Name,
			"called_from", calledFrom,
			"error", err,
		)
		return
	}
	if state != registry.StateUnknown {
		if err := s.registry.Delete(ctx, d.Name); err != nil {
			s.logger.ErrorContext(ctx, "registry deletion failed during cleanup",
				"request_id", r.ID.String(),
				"domain", d.Name,
				"called_from", calledFrom,
				"error", err,
			)
			return
		}
	}

	if err := s.domains.Delete(ctx, d.ID); err != nil {
		s.logger.ErrorContext(ctx, "cannot delete approved domain during cleanup",
			"request_id", r.ID.String(),
			"domain", d.Name,
			"called_from", calledFrom,
			"error", err,
		)
		return
	}
	r.ApprovedDomain = nil
	s.publishAudit(ctx, r, audit.ActionDomainDeprovisioned, "", "", d.Name)
}

// maybeSendReasonEmail dispatches the analyst-written reason email after a
// save, when the request sits in a status that supports one. The email goes
// out only when the reason changed since load or none was recorded before,
// which caps delivery at one email per reason per status.
func (s *Service) maybeSendReasonEmail(ctx context.Context, r *models.DomainRequest, cached models.Snapshot) {
	var (
		reason, cachedReason *string
		body                 *string
		excluded             bool
	)
	switch r.Status {
	case models.StatusActionNeeded:
		reason = actionNeededReasonPtr(r.ActionNeededReason)
		cachedReason = actionNeededReasonPtr(cached.ActionNeededReason)
		body = r.ActionNeededReasonEmail
		excluded = r.ActionNeededReason != nil && models.ExcludedActionNeededReasons[*r.ActionNeededReason]
	case models.StatusRejected:
		reason = rejectionReasonPtr(r.RejectionReason)
		cachedReason = rejectionReasonPtr(cached.RejectionReason)
		body = r.RejectionReasonEmail
		excluded = r.RejectionReason != nil && models.ExcludedRejectionReasons[*r.RejectionReason]
	default:
		return
	}

	if reason == nil || excluded {
		return
	}
	if body == nil || *body == "" {
		s.logger.WarnContext(ctx, "reason email skipped, no email content",
			"request_id", r.ID.String(),
			"status", string(r.Status),
		)
		return
	}
	if cachedReason != nil && *cachedReason == *reason {
		return
	}

	s.sendStatusEmail(ctx, notify.KindCustomStatusUpdate, r, *body)
	s.metrics.IncrementReasonEmail(string(r.Status))
}

func actionNeededReasonPtr(r *models.ActionNeededReason) *string {
	if r == nil {
		return nil
	}
	v := string(*r)
	return &v
}

func rejectionReasonPtr(r *models.RejectionReason) *string {
	if r == nil {
		return nil
	}
	v := string(*r)
	return &v
}

// sendStatusEmail notifies the creator, best-effort. A missing creator email
// downgrades to a log line.
func (s *Service) sendStatusEmail(ctx context.Context, kind notify.Kind, r *models.DomainRequest, content string) {
	creator, err := s.users.FindByID(ctx, r.Creator)
	if err != nil || creator.Email == "" {
		s.logger.WarnContext(ctx, "cannot send status email, no creator email address",
			"kind", string(kind),
			"request_id", r.ID.String(),
		)
		return
	}
	if err := s.notifier.Send(ctx, kind, r, creator.Email, content); err != nil {
		s.logger.WarnContext(ctx, "failed to send status email",
			"kind", string(kind),
			"request_id", r.ID.String(),
			"error", err,
		)
	}
}

func (s *Service) publishAudit(ctx context.Context, r *models.DomainRequest, action, from, to, reason string) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		Timestamp:     requestcontext.Now(ctx).UTC(),
		RequestID:     r.ID,
		ActorID:       requestcontext.ActorID(ctx),
		Action:        action,
		FromStatus:    from,
		ToStatus:      to,
		Reason:        reason,
		CorrelationID: requestcontext.RequestID(ctx),
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}

// finishTransition records the bookkeeping shared by every successful
// transition.
func (s *Service) finishTransition(ctx context.Context, r *models.DomainRequest, event, action string, from models.Status, reason string, start time.Time) {
	s.publishAudit(ctx, r, action, string(from), string(r.Status), reason)
	s.metrics.IncrementTransition(event, "ok")
	s.metrics.ObserveTransitionLatency(event, time.Since(start))
	s.logger.InfoContext(ctx, "request status changed",
		"request_id", r.ID.String(),
		"from", string(from),
		"to", string(r.Status),
	)
}
