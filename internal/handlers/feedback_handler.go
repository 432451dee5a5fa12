package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/models"
	"github.com/ternarybob/deckcheck/internal/services/feedback"
)

// FeedbackHandler handles feedback capture and listing
type FeedbackHandler struct {
	feedbackService *feedback.Service
	logger          arbor.ILogger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService *feedback.Service, logger arbor.ILogger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// FeedbackHandler handles POST (record) and GET (list) on /api/feedback
func (h *FeedbackHandler) FeedbackHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.recordFeedback(w, r)
	case http.MethodGet:
		h.listFeedback(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *FeedbackHandler) recordFeedback(w http.ResponseWriter, r *http.Request) {
	var entry models.FeedbackEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode feedback request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.feedbackService.Record(r.Context(), &entry); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to record feedback")
		WriteError(w, http.StatusBadRequest, "Failed to record feedback: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      entry.ID,
	})
}

func (h *FeedbackHandler) listFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := h.feedbackService.List(r.Context(), GetLimitParam(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list feedback")
		WriteError(w, http.StatusInternalServerError, "Failed to list feedback")
		return
	}

	WriteData(w, entries)
}
