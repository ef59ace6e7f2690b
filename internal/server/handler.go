package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/xolan/mood/internal/insight"
)

const maxBodyBytes = 64 << 10

// InsightHandler serves POST /api/insight.
type InsightHandler struct {
	insights insight.Insighter
	logger   *slog.Logger
}

// NewInsightHandler creates an InsightHandler.
func NewInsightHandler(insights insight.Insighter, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{insights: insights, logger: logger}
}

func (h *InsightHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req insight.InsightRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, insight.MsgInputRequired)
		return
	}
	if err := insight.CheckInput(req.Scale, req.Description); err != nil {
		writeError(w, http.StatusBadRequest, insight.MsgInputRequired)
		return
	}

	text, err := h.insights.Insight(r.Context(), req.Scale, req.Description)
	if err != nil {
		var reqErr *insight.RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusBadRequest {
			writeError(w, http.StatusBadRequest, reqErr.Message)
			return
		}
		h.logger.ErrorContext(r.Context(), "insight request failed",
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, insight.MsgFailed)
		return
	}

	writeJSON(w, http.StatusOK, insight.InsightResponse{Insight: text})
}

// HealthResponse is the JSON response for /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// health always reports ok with the build version.
func health(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: version})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, insight.ErrorResponse{Error: msg})
}
