package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"registrar/internal/audit"
	"registrar/internal/registry"
	"registrar/internal/request/models"
	"registrar/internal/request/service/mocks"
	"registrar/internal/user"
	id "registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/requestcontext"
)

// capturingPublisher records emitted audit events for assertions.
type capturingPublisher struct {
	events []audit.Event
}

func (p *capturingPublisher) Emit(_ context.Context, event audit.Event) error {
	p.events = append(p.events, event)
	return nil
}

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	domains  *mocks.MockDomainProvisioner
	notifier *mocks.MockNotifier
	users    *mocks.MockUserDirectory
	registry *registry.MockClient
	audit    *capturingPublisher
	service  *Service

	now time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.domains = mocks.NewMockDomainProvisioner(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)
	s.users = mocks.NewMockUserDirectory(s.ctrl)
	s.registry = registry.NewMockClient(0)
	s.audit = &capturingPublisher{}
	s.now = time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)

	s.service = New(s.store, s.domains, s.registry, s.notifier, s.users,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(s.audit),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// ctx returns a context carrying an actor and a frozen clock.
func (s *ServiceSuite) ctx(actor id.UserID) context.Context {
	ctx := requestcontext.WithActorID(context.Background(), actor)
	return requestcontext.WithTime(ctx, s.now)
}

func (s *ServiceSuite) today() time.Time {
	return s.now.UTC().Truncate(24 * time.Hour)
}

func strPtr(v string) *string { return &v }

// newRequest builds a request in the given status with an assigned staff
// investigator and a plausible requested domain.
func newRequest(status models.Status) *models.DomainRequest {
	investigator := id.UserID(uuid.New())
	return &models.DomainRequest{
		ID:              id.RequestID(uuid.New()),
		Status:          status,
		Creator:         id.UserID(uuid.New()),
		Investigator:    &investigator,
		RequestedDomain: strPtr("example.gov"),
	}
}

func (s *ServiceSuite) expectGet(r *models.DomainRequest) {
	s.store.EXPECT().Get(gomock.Any(), r.ID).Return(r, models.SnapshotOf(r), nil)
}

func (s *ServiceSuite) expectSave(r *models.DomainRequest) {
	s.store.EXPECT().Save(gomock.Any(), r, gomock.Any()).
		DoAndReturn(func(_ context.Context, saved *models.DomainRequest, _ models.Snapshot) (models.Snapshot, error) {
			return models.SnapshotOf(saved), nil
		})
}

func (s *ServiceSuite) staffUser(userID id.UserID) *user.User {
	return &user.User{ID: userID, Email: "analyst@example.gov", IsStaff: true}
}

func (s *ServiceSuite) registrant(userID id.UserID) *user.User {
	return &user.User{ID: userID, Email: "mayor@example.gov"}
}

func (s *ServiceSuite) TestCreate() {
	s.Run("creates a started request for the actor", func() {
		actor := id.UserID(uuid.New())
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		r, err := s.service.Create(s.ctx(actor))
		s.Require().NoError(err)
		s.Equal(models.StatusStarted, r.Status)
		s.Equal(actor, r.Creator)
	})

	s.Run("without an actor returns unauthorized", func() {
		_, err := s.service.Create(context.Background())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *ServiceSuite) TestUpdate() {
	s.Run("rejects edits outside editable statuses", func() {
		r := newRequest(models.StatusSubmitted)
		s.expectGet(r)

		_, err := s.service.Update(s.ctx(r.Creator), r.ID, func(*models.DomainRequest) error { return nil })
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("applies the mutation and saves", func() {
		r := newRequest(models.StatusStarted)
		s.expectGet(r)
		s.expectSave(r)

		updated, err := s.service.Update(s.ctx(r.Creator), r.ID, func(m *models.DomainRequest) error {
			m.Purpose = strPtr("City services")
			return nil
		})
		s.Require().NoError(err)
		s.Equal("City services", *updated.Purpose)
	})
}

func (s *ServiceSuite) TestAssignInvestigator() {
	s.Run("refuses a non-staff investigator", func() {
		investigatorID := id.UserID(uuid.New())
		s.users.EXPECT().FindByID(gomock.Any(), investigatorID).Return(s.registrant(investigatorID), nil)

		_, err := s.service.AssignInvestigator(s.ctx(investigatorID), id.RequestID(uuid.New()), investigatorID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("attaches a staff investigator", func() {
		r := newRequest(models.StatusSubmitted)
		investigatorID := id.UserID(uuid.New())
		s.users.EXPECT().FindByID(gomock.Any(), investigatorID).Return(s.staffUser(investigatorID), nil)
		s.expectGet(r)
		s.expectSave(r)

		updated, err := s.service.AssignInvestigator(s.ctx(investigatorID), r.ID, investigatorID)
		s.Require().NoError(err)
		s.Equal(investigatorID, *updated.Investigator)
	})
}

func (s *ServiceSuite) TestUpdateReason() {
	s.Run("revising to a new reason sends the email once", func() {
		r := newRequest(models.StatusRejected)
		reason := models.RejectionDomainPurpose
		r.RejectionReason = &reason
		s.expectGet(r)
		s.expectSave(r)
		s.users.EXPECT().FindByID(gomock.Any(), r.Creator).Return(s.registrant(r.Creator), nil)
		s.notifier.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), "mayor@example.gov", "updated explanation").
			Return(nil)

		_, err := s.service.UpdateReason(s.ctx(r.Creator), r.ID, string(models.RejectionNamingRequirements), strPtr("updated explanation"))
		s.Require().NoError(err)
	})

	s.Run("revising to the same reason sends nothing", func() {
		r := newRequest(models.StatusRejected)
		reason := models.RejectionDomainPurpose
		r.RejectionReason = &reason
		r.RejectionReasonEmail = strPtr("original explanation")
		s.expectGet(r)
		s.expectSave(r)

		_, err := s.service.UpdateReason(s.ctx(r.Creator), r.ID, string(models.RejectionDomainPurpose), strPtr("original explanation"))
		s.Require().NoError(err)
	})

	s.Run("refuses statuses that carry no reason", func() {
		r := newRequest(models.StatusInReview)
		s.expectGet(r)

		_, err := s.service.UpdateReason(s.ctx(r.Creator), r.ID, string(models.RejectionOther), nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})
}
