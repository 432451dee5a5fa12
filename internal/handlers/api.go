package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/common"
	"github.com/ternarybob/deckcheck/internal/interfaces"
)

// APIHandler serves the health, version and status endpoints
type APIHandler struct {
	config      *common.Config
	textModel   interfaces.TextModel
	visionModel interfaces.VisionModel
	logger      arbor.ILogger
	startTime   time.Time
}

// NewAPIHandler creates a new API handler. Either model may be nil when the
// corresponding pass is disabled.
func NewAPIHandler(config *common.Config, textModel interfaces.TextModel, visionModel interfaces.VisionModel, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		config:      config,
		textModel:   textModel,
		visionModel: visionModel,
		logger:      logger,
		startTime:   time.Now(),
	}
}

// HealthHandler reports basic liveness
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "deckcheck",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// VersionHandler reports build information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version": common.GetVersion(),
		"build":   common.Build,
		"commit":  common.GitCommit,
	})
}

// StatusHandler reports service uptime and the reachability of each model
// backend. Probes run with a short timeout so a hung endpoint cannot stall
// the handler.
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	status := map[string]interface{}{
		"service":     "deckcheck",
		"version":     common.GetVersion(),
		"environment": h.config.Environment,
		"uptime":      time.Since(h.startTime).Round(time.Second).String(),
		"textModel":   h.probeText(ctx),
		"visionModel": h.probeVision(ctx),
	}

	WriteData(w, status)
}

func (h *APIHandler) probeText(ctx context.Context) map[string]interface{} {
	if h.textModel == nil {
		return map[string]interface{}{"enabled": false}
	}
	result := map[string]interface{}{
		"enabled": true,
		"model":   h.config.Claude.Model,
		"healthy": true,
	}
	if err := h.textModel.HealthCheck(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Text model health check failed")
		result["healthy"] = false
		result["error"] = err.Error()
	}
	return result
}

func (h *APIHandler) probeVision(ctx context.Context) map[string]interface{} {
	if h.visionModel == nil {
		return map[string]interface{}{"enabled": false}
	}
	result := map[string]interface{}{
		"enabled": true,
		"model":   h.config.Gemini.Model,
		"healthy": true,
	}
	if err := h.visionModel.HealthCheck(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Vision model health check failed")
		result["healthy"] = false
		result["error"] = err.Error()
	}
	return result
}

// NotFoundHandler returns a JSON 404 for unknown routes
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}
