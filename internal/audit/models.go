package audit

import (
	"context"
	"time"

	id "registrar/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time    `json:"timestamp"`
	RequestID id.RequestID `json:"request_id"`
	// ActorID tracks who performed the action (analyst or registrant).
	ActorID id.UserID `json:"actor_id"`
	Action  string    `json:"action"`
	// FromStatus/ToStatus record the lifecycle edge for status changes.
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status,omitempty"`
	Reason     string `json:"reason,omitempty"`
	// CorrelationID is the HTTP request ID when the event came from a handler.
	CorrelationID string `json:"correlation_id,omitempty"`
}

// Lifecycle actions.
const (
	ActionSubmitted           = "request_submitted"
	ActionMovedToReview       = "request_in_review"
	ActionActionNeeded        = "request_action_needed"
	ActionApproved            = "request_approved"
	ActionWithdrawn           = "request_withdrawn"
	ActionRejected            = "request_rejected"
	ActionRejectedPrejudice   = "request_rejected_with_prejudice"
	ActionDomainProvisioned   = "domain_provisioned"
	ActionDomainDeprovisioned = "domain_deprovisioned"
)

// Publisher accepts events from domain logic. Implementations must be
// best-effort: a failed emit never blocks the transition that produced it.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Store persists events for later inspection.
type Store interface {
	Append(ctx context.Context, event Event) error
}
