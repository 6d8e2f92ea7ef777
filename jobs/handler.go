package jobs

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/routeledger/routeledger/internal/platform/httpx"
)

// Handler exposes job observability and the cached compliance scan result.
type Handler struct {
	inspector *asynq.Inspector
	cache     *redis.Client
	logger    *slog.Logger
}

func NewHandler(inspector *asynq.Inspector, cache *redis.Client, logger *slog.Logger) *Handler {
	return &Handler{inspector: inspector, cache: cache, logger: logger}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/health", h.health)
	r.Get("/compliance/expiring", h.complianceExpiring)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	info, err := h.inspector.GetQueueInfo(QueueDefault)
	if err != nil {
		h.logger.Warn("jobs health", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Service Unavailable", "job queue unreachable")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"queue": info.Queue, "pending": info.Pending})
}

// complianceExpiring serves the latest compliance scan. An empty list with
// scanned=false means the scan has not run yet.
func (h *Handler) complianceExpiring(w http.ResponseWriter, r *http.Request) {
	data, err := h.cache.Get(r.Context(), ComplianceCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			httpx.JSON(w, http.StatusOK, map[string]any{"scanned": false, "expiring": []ExpiringDoc{}})
			return
		}
		h.logger.Error("read compliance cache", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	var docs []ExpiringDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		h.logger.Error("decode compliance cache", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"scanned": true, "expiring": docs})
}
