package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"registrar/internal/request/models"
	dErrors "registrar/pkg/domain-errors"
)

type listResponse struct {
	Requests []*models.DomainRequest `json:"requests"`
}

type completenessResponse struct {
	Complete bool `json:"complete"`
}

// statusResponse is the compact view returned by transition endpoints.
type statusResponse struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	StatusLabel      string     `json:"status_label"`
	ApprovedDomain   *string    `json:"approved_domain,omitempty"`
	LastStatusUpdate *time.Time `json:"last_status_update,omitempty"`
}

func statusResponseOf(r *models.DomainRequest) statusResponse {
	resp := statusResponse{
		ID:               r.ID.String(),
		Status:           string(r.Status),
		StatusLabel:      r.Status.Label(),
		LastStatusUpdate: r.LastStatusUpdate,
	}
	if r.ApprovedDomain != nil {
		domainID := r.ApprovedDomain.String()
		resp.ApprovedDomain = &domainID
	}
	return resp
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain error codes onto HTTP statuses. Transition edge
// violations surface as conflicts; failed guards and reconciliation problems
// as unprocessable entities.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := http.StatusInternalServerError
	message := "internal error"

	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		status = http.StatusBadRequest
		message = err.Error()
	case dErrors.CodeUnauthorized:
		status = http.StatusUnauthorized
		message = err.Error()
	case dErrors.CodeForbidden:
		status = http.StatusForbidden
		message = err.Error()
	case dErrors.CodeNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case dErrors.CodeConflict, dErrors.CodeInvalidTransition:
		status = http.StatusConflict
		message = err.Error()
	case dErrors.CodePreconditionFailed, dErrors.CodeReconciliation:
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case dErrors.CodeTimeout:
		status = http.StatusGatewayTimeout
		message = err.Error()
	}

	writeJSON(w, status, errorResponse{Error: string(code), Message: message})
}
