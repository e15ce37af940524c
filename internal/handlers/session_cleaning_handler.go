package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionCleaner removes catalog sessions that were not used for a given time.
type SessionCleaner interface {
	// Method CleanSessions evict idle in-memory sessions and delete stored snapshots older than "ttl".
	//
	// The number of deleted snapshots is returned.
	CleanSessions(ctx context.Context, ttl time.Duration) (int, error)
}

// SessionCleaningHandler handles session cleaning requests
type SessionCleaningHandler struct {
	BaseHandler
	cleaner    SessionCleaner
	sessionTTL time.Duration
}

// NewSessionCleaningHandler creates a new session cleaning handler
func NewSessionCleaningHandler(cleaner SessionCleaner, logger *zap.Logger, sessionTTL time.Duration) *SessionCleaningHandler {
	return &SessionCleaningHandler{
		BaseHandler: BaseHandler{logger: logger},
		cleaner:     cleaner,
		sessionTTL:  sessionTTL,
	}
}

// RegisterRoutes registers session cleaning handler routes
func (h *SessionCleaningHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/clean", h.CleanSessions)
}

// CleanSessions handles GET /api/v1/sessions/clean
// @Summary Clean idle sessions
// @Description Removes catalog sessions not used for longer than the configured session TTL
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]any "Session cleaning completed successfully"
// @Failure 401 {object} map[string]string "Invalid or missing API key"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sessions/clean [get]
func (h *SessionCleaningHandler) CleanSessions(w http.ResponseWriter, r *http.Request) {
	deletedCount, err := h.cleaner.CleanSessions(r.Context(), h.sessionTTL)
	if err != nil {
		h.logger.Error("failed to clean sessions", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to clean sessions")
		return
	}

	// 0 deleted rows is not an error
	h.logger.Info("session cleaning completed successfully", zap.Int("deletedCount", deletedCount))
	h.respondJSON(w, http.StatusOK, map[string]any{
		"message":      "session cleaning completed successfully",
		"deletedCount": deletedCount,
	})
}
