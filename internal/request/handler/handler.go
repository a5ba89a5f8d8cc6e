// Package handler exposes the request workflow over HTTP. Registrant routes
// require authentication; decision routes additionally require the staff
// claim.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"registrar/internal/platform/middleware"
	"registrar/internal/request/models"
	id "registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
)

// Service is the workflow surface the handler depends on.
type Service interface {
	Create(ctx context.Context) (*models.DomainRequest, error)
	Get(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error)
	ListMine(ctx context.Context) ([]*models.DomainRequest, error)
	Update(ctx context.Context, requestID id.RequestID, mutate func(r *models.DomainRequest) error) (*models.DomainRequest, error)
	IsComplete(ctx context.Context, requestID id.RequestID) (bool, error)
	AssignInvestigator(ctx context.Context, requestID id.RequestID, investigatorID id.UserID) (*models.DomainRequest, error)
	Submit(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error)
	Withdraw(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error)
	MoveToReview(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error)
	MarkActionNeeded(ctx context.Context, requestID id.RequestID, reason models.ActionNeededReason, emailBody *string) (*models.DomainRequest, error)
	UpdateReason(ctx context.Context, requestID id.RequestID, reason string, emailBody *string) (*models.DomainRequest, error)
	Approve(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error)
	Reject(ctx context.Context, requestID id.RequestID, reason models.RejectionReason, emailBody *string) (*models.DomainRequest, error)
	RejectWithPrejudice(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error)
}

// Handler handles domain request endpoints.
type Handler struct {
	logger        *slog.Logger
	requests      Service
	jwtSigningKey string
}

// New creates a request Handler.
func New(requests Service, logger *slog.Logger, jwtSigningKey string) *Handler {
	return &Handler{
		logger:        logger,
		requests:      requests,
		jwtSigningKey: jwtSigningKey,
	}
}

// Register mounts the request routes on the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.RequireAuth(h.jwtSigningKey, h.logger))

	router.Post("/requests", h.handleCreate)
	router.Get("/requests", h.handleList)
	router.Get("/requests/{requestID}", h.handleGet)
	router.Put("/requests/{requestID}/form", h.handleUpdateForm)
	router.Get("/requests/{requestID}/completeness", h.handleCompleteness)
	router.Post("/requests/{requestID}/submit", h.handleSubmit)
	router.Post("/requests/{requestID}/withdraw", h.handleWithdraw)

	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireStaff)
		staff.Put("/requests/{requestID}/investigator", h.handleAssignInvestigator)
		staff.Post("/requests/{requestID}/review", h.handleMoveToReview)
		staff.Post("/requests/{requestID}/action-needed", h.handleActionNeeded)
		staff.Put("/requests/{requestID}/reason", h.handleUpdateReason)
		staff.Post("/requests/{requestID}/approve", h.handleApprove)
		staff.Post("/requests/{requestID}/reject", h.handleReject)
		staff.Post("/requests/{requestID}/reject-with-prejudice", h.handleRejectWithPrejudice)
	})

	r.Mount("/", router)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	created, err := h.requests.Create(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "create request", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.requests.ListMine(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "list requests", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Requests: list})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestID(w, r)
	if !ok {
		return
	}
	req, err := h.requests.Get(ctx, requestID)
	if err != nil {
		h.writeServiceError(ctx, w, "get request", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestID(w, r)
	if !ok {
		return
	}

	var form updateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, err := h.requests.Update(ctx, requestID, form.applyTo)
	if err != nil {
		h.writeServiceError(ctx, w, "update request", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleCompleteness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestID(w, r)
	if !ok {
		return
	}
	complete, err := h.requests.IsComplete(ctx, requestID)
	if err != nil {
		h.writeServiceError(ctx, w, "check completeness", err)
		return
	}
	writeJSON(w, http.StatusOK, completenessResponse{Complete: complete})
}

func (h *Handler) handleAssignInvestigator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestID(w, r)
	if !ok {
		return
	}

	var body assignInvestigatorRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	investigatorID, err := id.ParseUserID(body.InvestigatorID)
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid investigator id"))
		return
	}

	updated, err := h.requests.AssignInvestigator(ctx, requestID, investigatorID)
	if err != nil {
		h.writeServiceError(ctx, w, "assign investigator", err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponseOf(updated))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "submit", h.requests.Submit)
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "withdraw", h.requests.Withdraw)
}

func (h *Handler) handleMoveToReview(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "move to review", h.requests.MoveToReview)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "approve", h.requests.Approve)
}

func (h *Handler) handleRejectWithPrejudice(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "reject with prejudice", h.requests.RejectWithPrejudice)
}

func (h *Handler) handleActionNeeded(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestID(w, r)
	if !ok {
		return
	}

	var body actionNeededRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, err := h.requests.MarkActionNeeded(ctx, requestID, models.ActionNeededReason(body.Reason), body.EmailBody)
	if err != nil {
		h.writeServiceError(ctx, w, "mark action needed", err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponseOf(updated))
}

func (h *Handler) handleUpdateReason(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestID(w, r)
	if !ok {
		return
	}

	var body updateReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, err := h.requests.UpdateReason(ctx, requestID, body.Reason, body.EmailBody)
	if err != nil {
		h.writeServiceError(ctx, w, "update reason", err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponseOf(updated))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestID(w, r)
	if !ok {
		return
	}

	var body rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, err := h.requests.Reject(ctx, requestID, models.RejectionReason(body.Reason), body.EmailBody)
	if err != nil {
		h.writeServiceError(ctx, w, "reject request", err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponseOf(updated))
}

// transition runs a body-less transition endpoint.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request, name string, fn func(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, error)) {
	ctx := r.Context()
	requestID, ok := h.requestID(w, r)
	if !ok {
		return
	}
	updated, err := fn(ctx, requestID)
	if err != nil {
		h.writeServiceError(ctx, w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponseOf(updated))
}

func (h *Handler) requestID(w http.ResponseWriter, r *http.Request) (id.RequestID, bool) {
	requestID, err := id.ParseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request id"))
		return id.RequestID{}, false
	}
	return requestID, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, "":
		h.logger.ErrorContext(ctx, "request operation failed", "op", op, "error", err)
	default:
		h.logger.WarnContext(ctx, "request operation refused", "op", op, "error", err)
	}
	writeError(w, err)
}
