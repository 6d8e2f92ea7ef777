package trips

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/routeledger/routeledger/internal/platform/httpx"
	"github.com/routeledger/routeledger/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{tripID}", h.Get)
	r.Put("/{tripID}", h.Update)
	r.Post("/{tripID}/complete", h.Complete)
	r.Post("/{tripID}/revert", h.Revert)
}

type tripRequest struct {
	Date          time.Time `json:"date"`
	ClientID      int64     `json:"client_id"`
	VehicleNo     string    `json:"vehicle_no"`
	DriverID      string    `json:"driver_id"`
	TransporterID int64     `json:"transporter_id"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Rate          float64   `json:"rate"`
	Weight        float64   `json:"weight"`
	Halting       float64   `json:"halting"`
	Advance       *float64  `json:"advance"`
	Status        Status    `json:"status"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	filters := shared.ListFilters{Page: page, Limit: limit, Search: r.URL.Query().Get("search")}

	result, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list trips", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"trips":      result,
		"pagination": shared.NewPagination(page, limit, total),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.service.Get(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, trip)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	trip, err := h.service.Create(r.Context(), CreateInput{
		Date: req.Date, ClientID: req.ClientID, VehicleNo: req.VehicleNo, DriverID: req.DriverID,
		TransporterID: req.TransporterID, Origin: req.Origin, Destination: req.Destination,
		Rate: req.Rate, Weight: req.Weight, Halting: req.Halting, Advance: req.Advance, Status: req.Status,
	})
	if err != nil {
		h.logger.Error("create trip", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, trip)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	trip, err := h.service.Update(r.Context(), chi.URLParam(r, "tripID"), UpdateInput{
		Date: req.Date, ClientID: req.ClientID, VehicleNo: req.VehicleNo, DriverID: req.DriverID,
		TransporterID: req.TransporterID, Origin: req.Origin, Destination: req.Destination,
		Rate: req.Rate, Weight: req.Weight, Halting: req.Halting, Advance: req.Advance, Status: req.Status,
	})
	if err != nil {
		h.logger.Error("update trip", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, trip)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	if err := h.service.Complete(r.Context(), tripID); err != nil {
		h.logger.Error("complete trip", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"trip_id": tripID, "status": string(StatusCompleted)})
}

func (h *Handler) Revert(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	if err := h.service.Revert(r.Context(), tripID); err != nil {
		h.logger.Error("revert trip", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"trip_id": tripID, "status": string(StatusInTransit)})
}
