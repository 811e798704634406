// Package httpapi exposes the weekly shift engine over HTTP. One request
// computes one employee's week; there is no partial response — the caller
// gets either the full structure or an error envelope.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-select/pkg/core/services"
	"github.com/jakechorley/shift-select/pkg/db"
)

// Store combines the database operations both endpoints need.
type Store interface {
	services.WeeklyShiftsStore
	services.SubmitStore
	services.AvailabilityStore
}

// Handler serves the selection API.
type Handler struct {
	tokens db.TokenResolver
	store  Store
	logger *zap.Logger
}

// NewHandler creates a Handler. tokens may be the DB itself or a cache in
// front of it.
func NewHandler(tokens db.TokenResolver, store Store, logger *zap.Logger) *Handler {
	return &Handler{tokens: tokens, store: store, logger: logger}
}

// Register mounts the API routes.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/weekly-shifts", h.handleWeeklyShifts)
	mux.HandleFunc("POST /api/availability", h.handleAvailability)
	mux.HandleFunc("POST /api/submit", h.handleSubmit)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

type weeklyShiftsRequest struct {
	Token string `json:"token"`
}

type submitRequest struct {
	Token    string   `json:"token"`
	ShiftIDs []string `json:"shiftIds"`
}

type availabilityRequest struct {
	Token               string                             `json:"token"`
	Windows             []services.AvailabilityWindowInput `json:"windows"`
	OptionalMorningDays []int                              `json:"optionalMorningDays"`
}

// errorResponse is the failure envelope: a stable error code plus an
// optional human-readable message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) handleWeeklyShifts(w http.ResponseWriter, r *http.Request) {
	var req weeklyShiftsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "token is required")
		return
	}

	result, err := services.GetWeeklyShifts(r.Context(), h.tokens, h.store, h.logger, req.Token)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "token is required")
		return
	}

	result, err := services.SubmitAvailability(r.Context(), h.tokens, h.store, h.logger, req.Token, req.Windows, req.OptionalMorningDays)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "token is required")
		return
	}

	result, err := services.SubmitSelections(r.Context(), h.tokens, h.store, h.logger, req.Token, req.ShiftIDs)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// writeServiceError translates the service error taxonomy onto HTTP. Token
// failures are "not found/expired"; everything else is an opaque internal
// error.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrTokenNotFound):
		h.writeError(w, http.StatusNotFound, "token_not_found", "selection link is invalid")
	case errors.Is(err, services.ErrTokenExpired):
		h.writeError(w, http.StatusNotFound, "token_expired", "selection link has expired")
	default:
		h.logger.Error("Request failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
