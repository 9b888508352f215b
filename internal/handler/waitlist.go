package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/contentbicarus/7k-mobile-waitlist/internal/service"
)

// WaitlistHandler handles waitlist signup requests.
type WaitlistHandler struct {
	svc    *service.Waitlist
	logger *slog.Logger
}

// NewWaitlistHandler creates a new WaitlistHandler.
func NewWaitlistHandler(svc *service.Waitlist, logger *slog.Logger) *WaitlistHandler {
	return &WaitlistHandler{
		svc:    svc,
		logger: logger,
	}
}

// SignupRequest is the POST body. Timestamp is optional.
type SignupRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

// Signup handles POST /api/waitlist (also mounted at POST /).
func (h *WaitlistHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.svc.Signup(r.Context(), service.SignupInput{
		Email:     req.Email,
		Username:  req.Username,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("signup_accepted",
		slog.String("signup_id", result.ID),
		slog.Bool("duplicate", result.Duplicate),
	)

	writeJSON(w, http.StatusOK, SignupResponse{
		Success: true,
		Message: "Data saved successfully",
	})
}

// handleServiceError maps pipeline errors to HTTP responses. Missing
// fields are the caller's fault (400); everything past validation is a
// 500 carrying the classified message plus the raw upstream detail.
func (h *WaitlistHandler) handleServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrMissingFields) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Email and username are required"})
		return
	}

	var perr *service.Error
	if errors.As(err, &perr) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   perr.Message,
			Details: perr.Detail(),
		})
		return
	}

	h.logger.Error("internal_error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "Failed to save data",
		Details: err.Error(),
	})
}
