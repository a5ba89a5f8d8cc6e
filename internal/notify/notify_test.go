package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"registrar/internal/request/models"
	id "registrar/pkg/domain"
)

// recordingSender captures messages instead of delivering them.
type recordingSender struct {
	messages []Message
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	s.messages = append(s.messages, msg)
	return nil
}

type DispatcherSuite struct {
	suite.Suite
	sender *recordingSender
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.sender = &recordingSender{}
}

func (s *DispatcherSuite) SetupSubTest() {
	s.sender = &recordingSender{}
}

func (s *DispatcherSuite) dispatcher(isProduction bool) *Dispatcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDispatcher(s.sender, "help@get.gov", isProduction, logger)
}

func (s *DispatcherSuite) newRequest() *models.DomainRequest {
	r := models.New(id.RequestID(uuid.New()), id.UserID(uuid.New()), time.Now().UTC())
	requested := "rivertown.gov"
	r.RequestedDomain = &requested
	return r
}

func (s *DispatcherSuite) TestSend() {
	s.Run("addresses the message and derives the recipient name", func() {
		err := s.dispatcher(false).Send(context.Background(), KindSubmissionConfirmation, s.newRequest(), "jane.doe@rivertown.gov", "")
		s.Require().NoError(err)

		s.Require().Len(s.sender.messages, 1)
		msg := s.sender.messages[0]
		s.Equal("jane.doe@rivertown.gov", msg.To)
		s.Equal("We received your .gov domain request", msg.Subject)
		s.Contains(msg.Body, "rivertown.gov")
		s.Equal("Jane", msg.FirstName)
		s.Equal("Doe", msg.LastName)
	})

	s.Run("BCCs the help desk only in production", func() {
		r := s.newRequest()
		s.Require().NoError(s.dispatcher(true).Send(context.Background(), KindApproved, r, "jane@rivertown.gov", ""))
		s.Require().NoError(s.dispatcher(false).Send(context.Background(), KindApproved, r, "jane@rivertown.gov", ""))

		s.Require().Len(s.sender.messages, 2)
		s.Equal("help@get.gov", s.sender.messages[0].Bcc)
		s.Empty(s.sender.messages[1].Bcc)
	})

	s.Run("a custom status update carries the analyst body verbatim", func() {
		err := s.dispatcher(false).Send(context.Background(), KindCustomStatusUpdate, s.newRequest(), "jane@rivertown.gov", "Your senior official needs to confirm their role.")
		s.Require().NoError(err)

		s.Require().Len(s.sender.messages, 1)
		s.Equal("An update on your .gov domain request", s.sender.messages[0].Subject)
		s.Equal("Your senior official needs to confirm their role.", s.sender.messages[0].Body)
	})

	s.Run("a missing recipient is an error", func() {
		err := s.dispatcher(false).Send(context.Background(), KindApproved, s.newRequest(), "", "")
		s.Require().Error(err)
		s.Empty(s.sender.messages)
	})

	s.Run("an unknown kind is an error", func() {
		err := s.dispatcher(false).Send(context.Background(), Kind("carrier pigeon"), s.newRequest(), "jane@rivertown.gov", "")
		s.Require().Error(err)
		s.Empty(s.sender.messages)
	})
}
