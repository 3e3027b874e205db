package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mateusmacedo/go-mediator/internal/user/application"
	pkgApp "github.com/mateusmacedo/go-mediator/pkg/application"
)

const dispatchTimeout = 10 * time.Second

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type UserHTTPHandler struct {
	mediator pkgApp.Mediator
	logger   pkgApp.AppLogger
}

func NewUserHTTPHandler(mediator pkgApp.Mediator, logger pkgApp.AppLogger) *UserHTTPHandler {
	return &UserHTTPHandler{
		mediator: mediator,
		logger:   logger,
	}
}

func (h *UserHTTPHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var command application.CreateUserCommand
	if err := json.NewDecoder(r.Body).Decode(&command); err != nil {
		h.writeError(w, r, pkgApp.NewError("INVALID_REQUEST_BODY", "request body is not valid JSON", http.StatusBadRequest))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dispatchTimeout)
	defer cancel()

	result, err := h.mediator.Send(ctx, command)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, map[string]interface{}{"data": result.Data})
}

func (h *UserHTTPHandler) HandleRenameUser(w http.ResponseWriter, r *http.Request) {
	var command application.RenameUserCommand
	if err := json.NewDecoder(r.Body).Decode(&command); err != nil {
		h.writeError(w, r, pkgApp.NewError("INVALID_REQUEST_BODY", "request body is not valid JSON", http.StatusBadRequest))
		return
	}
	command.UserID = chi.URLParam(r, "userID")

	ctx, cancel := context.WithTimeout(r.Context(), dispatchTimeout)
	defer cancel()

	result, err := h.mediator.Send(ctx, command)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{"data": result.Data})
}

func (h *UserHTTPHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	query := application.GetUserQuery{
		UserID: chi.URLParam(r, "userID"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), dispatchTimeout)
	defer cancel()

	result, err := h.mediator.Send(ctx, query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{"data": result.Data})
}

func (h *UserHTTPHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	query := application.ListUsersQuery{
		Offset: offset,
		Limit:  limit,
	}

	ctx, cancel := context.WithTimeout(r.Context(), dispatchTimeout)
	defer cancel()

	result, err := h.mediator.Send(ctx, query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{"data": result.Data})
}

func (h *UserHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Post("/users", h.HandleCreateUser)
	router.Get("/users", h.HandleListUsers)
	router.Get("/users/{userID}", h.HandleGetUser)
	router.Patch("/users/{userID}/name", h.HandleRenameUser)
}

func (h *UserHTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetReqID(r.Context())

	var validationErr *pkgApp.ValidationFailure
	if errors.As(err, &validationErr) {
		h.writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Error: errorDetail{
			Code:      pkgApp.CodeValidationError,
			Message:   "request validation failed",
			Details:   validationErr.Fields,
			RequestID: requestID,
		}})
		return
	}

	var appErr *pkgApp.Error
	if errors.As(err, &appErr) {
		var details any
		if len(appErr.Details) > 0 {
			details = appErr.Details
		}
		h.writeJSON(w, r, appErr.Status, errorResponse{Error: errorDetail{
			Code:      appErr.Code,
			Message:   appErr.Message,
			Details:   details,
			RequestID: requestID,
		}})
		return
	}

	h.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: errorDetail{
		Code:      pkgApp.CodeInternalError,
		Message:   "An unexpected error occurred",
		RequestID: requestID,
	}})
}

func (h *UserHTTPHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		pkgApp.LogError(r.Context(), h.logger, "failed to encode response", err, nil)
	}
}
