package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
	"github.com/Mayank06R/our-voice-rights/internal/platform/middleware"
	dErrors "github.com/Mayank06R/our-voice-rights/pkg/domain-errors"
)

// QueryService is the read surface the handler delegates to.
type QueryService interface {
	ListDistricts(ctx context.Context, state string) ([]models.District, error)
	GetPerformance(ctx context.Context, state, district string) (*models.Performance, error)
	GetHistory(ctx context.Context, state, district string) (*models.History, error)
}

// Pinger reports store connectivity for the health endpoint. *sql.DB
// satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler is the thin HTTP layer over the query service. It owns JSON
// shaping and status mapping and nothing else.
type Handler struct {
	query       QueryService
	db          Pinger
	targetState string
	logger      *slog.Logger
}

// New creates the API handler. The district list is always scoped to
// targetState; the other endpoints take state from the query string.
func New(query QueryService, db Pinger, targetState string, logger *slog.Logger) *Handler {
	return &Handler{
		query:       query,
		db:          db,
		targetState: targetState,
		logger:      logger,
	}
}

// Register mounts the API routes on the given chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/v1/districts", h.handleDistricts)
	r.Get("/api/v1/performance", h.handlePerformance)
	r.Get("/api/v1/history", h.handleHistory)
	r.Get("/healthz", h.handleHealth)
}

func (h *Handler) handleDistricts(w http.ResponseWriter, r *http.Request) {
	list, err := h.query.ListDistricts(r.Context(), h.targetState)
	if err != nil {
		h.logError(r, "districts", err)
		h.writeError(w, err, "error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handlePerformance(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	district := r.URL.Query().Get("district")

	perf, err := h.query.GetPerformance(r.Context(), state, district)
	if err != nil {
		h.logError(r, "performance", err)
		h.writeError(w, err, "error")
		return
	}
	writeJSON(w, http.StatusOK, perf)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	district := r.URL.Query().Get("district")

	history, err := h.query.GetHistory(r.Context(), state, district)
	if err != nil {
		h.logError(r, "history", err)
		// The history endpoint reports every failure under "message".
		h.writeError(w, err, "message")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "db": "connected"}
	code := http.StatusOK
	if h.db == nil {
		status["status"] = "error"
		status["db"] = "not_configured"
		code = http.StatusServiceUnavailable
	} else if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "health check db ping failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		status["status"] = "error"
		status["db"] = "connection_error"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

// writeError translates a coded domain error into the endpoint's JSON
// envelope. Not-found bodies always use the "message" key; other
// failures use errKey, which differs between endpoints.
func (h *Handler) writeError(w http.ResponseWriter, err error, errKey string) {
	code := dErrors.CodeOf(err)
	key := errKey
	if code == dErrors.CodeNotFound {
		key = "message"
	}
	writeJSON(w, dErrors.HTTPStatus(code), map[string]string{key: dErrors.MessageOf(err)})
}

func (h *Handler) logError(r *http.Request, operation string, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeNotFound || code == dErrors.CodeBadRequest {
		// Expected outcomes; request logging already covers them.
		return
	}
	h.logger.ErrorContext(r.Context(), "query operation failed",
		"request_id", middleware.GetRequestID(r.Context()),
		"operation", operation,
		"error", err.Error(),
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
