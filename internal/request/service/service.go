// Package service implements the domain request workflow: lifecycle
// transitions with their guards and side effects, plus the registrant-facing
// CRUD operations around them.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"registrar/internal/audit"
	dmodels "registrar/internal/domains/models"
	"registrar/internal/notify"
	"registrar/internal/registry"
	"registrar/internal/request/metrics"
	"registrar/internal/request/models"
	"registrar/internal/user"
	id "registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

// nonFederalAgency is the catch-all agency recorded when a non-federal
// request reaches approval without one.
const nonFederalAgency = "Non-Federal Agency"

// Store persists requests. Get returns a snapshot of the persisted reason and
// organization-type state; Save compares against it and returns the refreshed
// one.
type Store interface {
	Create(ctx context.Context, r *models.DomainRequest) error
	Get(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, models.Snapshot, error)
	Save(ctx context.Context, r *models.DomainRequest, prev models.Snapshot) (models.Snapshot, error)
	ListByCreator(ctx context.Context, creator id.UserID) ([]*models.DomainRequest, error)
}

// DomainProvisioner creates and removes the records backing approved domains.
type DomainProvisioner interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string) (*dmodels.Domain, error)
	CopyRequestIntoDomainInformation(ctx context.Context, r *models.DomainRequest, d *dmodels.Domain) error
	Get(ctx context.Context, domainID id.DomainID) (*dmodels.Domain, error)
	Delete(ctx context.Context, domainID id.DomainID) error
}

// Notifier delivers registrant-facing status emails.
type Notifier interface {
	Send(ctx context.Context, kind notify.Kind, r *models.DomainRequest, recipient, content string) error
}

// UserDirectory reads accounts and applies the account-level side effects of
// transitions.
type UserDirectory interface {
	FindByID(ctx context.Context, userID id.UserID) (*user.User, error)
	Restrict(ctx context.Context, userID id.UserID) error
	GrantManager(ctx context.Context, userID id.UserID, domainID id.DomainID) error
}

// TxRunner runs fn atomically. The default runner is a pass-through for
// stores without transaction support.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// Service orchestrates the request lifecycle.
type Service struct {
	store      Store
	domains    DomainProvisioner
	registry   registry.Client
	notifier   Notifier
	users      UserDirectory
	runInTx    TxRunner
	logger     *slog.Logger
	audit      audit.Publisher
	metrics    *metrics.Metrics
	tracer     trace.Tracer
	onCreated  func()
	onApproved func()
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithAuditPublisher wires lifecycle events to an audit sink.
func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.audit = publisher }
}

// WithMetrics wires workflow metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTxRunner makes multi-write transitions atomic. Approve uses this to
// keep domain creation and the request save in one transaction.
func WithTxRunner(run TxRunner) Option {
	return func(s *Service) { s.runInTx = run }
}

// WithCreatedHook registers a callback fired after each successful create.
func WithCreatedHook(fn func()) Option {
	return func(s *Service) { s.onCreated = fn }
}

// WithApprovedHook registers a callback fired after each successful approval.
func WithApprovedHook(fn func()) Option {
	return func(s *Service) { s.onApproved = fn }
}

func New(store Store, domains DomainProvisioner, reg registry.Client, notifier Notifier, users UserDirectory, opts ...Option) *Service {
	s := &Service{
		store:    store,
		domains:  domains,
		registry: reg,
		notifier: notifier,
		users:    users,
		runInTx:  func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) },
		logger:   slog.Default(),
		tracer:   otel.Tracer("registrar/request"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new request for the authenticated user.
func (s *Service) Create(ctx context.Context) (*models.DomainRequest, error) {
	ctx, span := s.tracer.Start(ctx, "request.Create")
	defer span.End()

	creator := requestcontext.ActorID(ctx)
	if creator.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "no authenticated user")
	}

	r := models.New(id.RequestID(uuid.New()), creator, requestcontext.Now(ctx).UTC())
	if err := s.store.Create(ctx, r); err != nil {
		if dErrors.HasCode(err, dErrors.CodeReconciliation) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create request")
	}

	if s.onCreated != nil {
		s.onCreated()
	}
	s.logger.InfoContext(ctx, "request created",
		"request_id", r.ID.String(),
		"creator", creator.String(),
	)
	return r, nil
}

// Get loads a request.
func (s *Service) Get(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error) {
	r, _, err := s.load(ctx, requestID)
	return r, err
}

// ListMine returns the authenticated user's requests.
func (s *Service) ListMine(ctx context.Context) ([]*models.DomainRequest, error) {
	creator := requestcontext.ActorID(ctx)
	if creator.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "no authenticated user")
	}
	out, err := s.store.ListByCreator(ctx, creator)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list requests")
	}
	return out, nil
}

// editableStatuses are the states in which the registrant can change form
// answers.
var editableStatuses = map[models.Status]bool{
	models.StatusStarted:      true,
	models.StatusActionNeeded: true,
	models.StatusWithdrawn:    true,
}

// Update applies a form edit to an editable request and persists it. The
// persist boundary reconciles organization type fields and may send a reason
// email when an analyst changed a reason on a request sitting in action
// needed or rejected.
func (s *Service) Update(ctx context.Context, requestID id.RequestID, mutate func(r *models.DomainRequest) error) (*models.DomainRequest, error) {
	ctx, span := s.tracer.Start(ctx, "request.Update")
	defer span.End()

	r, prev, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !editableStatuses[r.Status] {
		return nil, dErrors.Newf(dErrors.CodePreconditionFailed, "request is not editable in status %q", r.Status)
	}

	if err := mutate(r); err != nil {
		return nil, err
	}

	if _, err := s.save(ctx, r, prev); err != nil {
		return nil, err
	}
	return r, nil
}

// AssignInvestigator attaches the analyst responsible for review. Review
// transitions require the investigator to be staff, so assignment enforces
// it up front.
func (s *Service) AssignInvestigator(ctx context.Context, requestID id.RequestID, investigatorID id.UserID) (*models.DomainRequest, error) {
	ctx, span := s.tracer.Start(ctx, "request.AssignInvestigator")
	defer span.End()

	investigator, err := s.users.FindByID(ctx, investigatorID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "investigator not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load investigator")
	}
	if !investigator.IsStaff {
		return nil, dErrors.New(dErrors.CodeValidation, "investigator must be a staff user")
	}

	r, prev, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	r.Investigator = &investigatorID
	if _, err := s.save(ctx, r, prev); err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateReason revises the recorded reason on a request sitting in action
// needed or rejected, without re-running the transition. The persist boundary
// dedupes the reason email, so revising to the same reason sends nothing.
func (s *Service) UpdateReason(ctx context.Context, requestID id.RequestID, reason string, emailBody *string) (*models.DomainRequest, error) {
	ctx, span := s.tracer.Start(ctx, "request.UpdateReason")
	defer span.End()

	r, prev, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}

	switch r.Status {
	case models.StatusActionNeeded:
		v := models.ActionNeededReason(reason)
		if !v.IsValid() {
			return nil, dErrors.Newf(dErrors.CodeValidation, "unknown action needed reason %q", reason)
		}
		r.ActionNeededReason = &v
		r.ActionNeededReasonEmail = emailBody
	case models.StatusRejected:
		v := models.RejectionReason(reason)
		if !v.IsValid() {
			return nil, dErrors.Newf(dErrors.CodeValidation, "unknown rejection reason %q", reason)
		}
		r.RejectionReason = &v
		r.RejectionReasonEmail = emailBody
	default:
		return nil, dErrors.Newf(dErrors.CodePreconditionFailed, "a request in status %q carries no reason", r.Status)
	}

	if _, err := s.save(ctx, r, prev); err != nil {
		return nil, err
	}
	return r, nil
}

// IsComplete reports whether the request form could be submitted as-is.
func (s *Service) IsComplete(ctx context.Context, requestID id.RequestID) (bool, error) {
	r, _, err := s.load(ctx, requestID)
	if err != nil {
		return false, err
	}
	return models.IsComplete(r), nil
}

func (s *Service) load(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, models.Snapshot, error) {
	r, snap, err := s.store.Get(ctx, requestID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, models.Snapshot{}, dErrors.New(dErrors.CodeNotFound, "request not found")
	}
	if err != nil {
		return nil, models.Snapshot{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load request")
	}
	return r, snap, nil
}

// save persists the request and runs the post-save reason email check.
func (s *Service) save(ctx context.Context, r *models.DomainRequest, prev models.Snapshot) (models.Snapshot, error) {
	next, err := s.store.Save(ctx, r, prev)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeReconciliation) {
			return models.Snapshot{}, err
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Snapshot{}, dErrors.New(dErrors.CodeNotFound, "request not found")
		}
		return models.Snapshot{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save request")
	}
	s.maybeSendReasonEmail(ctx, r, prev)
	return next, nil
}
