package expenses

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/routeledger/routeledger/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/trip-expenses", func(r chi.Router) {
		r.Get("/", h.ListTripExpenses)
		r.Post("/", h.CreateTripExpense)
	})
	r.Route("/maintenance", func(r chi.Router) {
		r.Get("/", h.ListMaintenance)
		r.Post("/", h.CreateMaintenance)
		r.Get("/{id}", h.GetMaintenance)
		r.Post("/{id}/pay", h.PayMaintenance)
	})
}

func (h *Handler) ListTripExpenses(w http.ResponseWriter, r *http.Request) {
	tripID := r.URL.Query().Get("trip")
	result, err := h.service.ListTripExpenses(r.Context(), tripID)
	if err != nil {
		h.logger.Error("list trip expenses", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"trip_expenses": result})
}

func (h *Handler) CreateTripExpense(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TripID           string    `json:"trip_id"`
		Date             time.Time `json:"date"`
		CategoryID       int64     `json:"category_id"`
		Amount           float64   `json:"amount"`
		PaidViaAccountID *int64    `json:"paid_via_account_id"`
		Description      string    `json:"description"`
		BillNo           string    `json:"bill_no"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	created, err := h.service.RecordTripExpense(r.Context(), TripExpenseInput{
		TripID:           body.TripID,
		Date:             body.Date,
		CategoryID:       body.CategoryID,
		Amount:           body.Amount,
		PaidViaAccountID: body.PaidViaAccountID,
		Description:      body.Description,
		BillNo:           body.BillNo,
	})
	if err != nil {
		h.logger.Error("record trip expense", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	unpaidOnly := r.URL.Query().Get("unpaid") == "true"
	result, err := h.service.ListMaintenance(r.Context(), r.URL.Query().Get("vehicle"), unpaidOnly)
	if err != nil {
		h.logger.Error("list maintenance expenses", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"maintenance_expenses": result})
}

func (h *Handler) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	expense, err := h.service.GetMaintenance(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, expense)
}

func (h *Handler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date             time.Time  `json:"date"`
		VehicleNo        string     `json:"vehicle_no"`
		WorkshopID       int64      `json:"workshop_id"`
		CategoryID       int64      `json:"category_id"`
		Description      string     `json:"description"`
		Shop             string     `json:"shop"`
		Amount           float64    `json:"amount"`
		IsPaid           bool       `json:"is_paid"`
		PaymentDate      *time.Time `json:"payment_date"`
		PaidViaAccountID *int64     `json:"paid_via_account_id"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	created, err := h.service.RecordMaintenance(r.Context(), MaintenanceInput{
		Date:             body.Date,
		VehicleNo:        body.VehicleNo,
		WorkshopID:       body.WorkshopID,
		CategoryID:       body.CategoryID,
		Description:      body.Description,
		Shop:             body.Shop,
		Amount:           body.Amount,
		IsPaid:           body.IsPaid,
		PaymentDate:      body.PaymentDate,
		PaidViaAccountID: body.PaidViaAccountID,
	})
	if err != nil {
		h.logger.Error("record maintenance expense", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) PayMaintenance(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	var body struct {
		AccountID   int64     `json:"account_id"`
		Date        time.Time `json:"date"`
		Description string    `json:"description"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	entry, err := h.service.PayMaintenance(r.Context(), id, body.AccountID, body.Date, body.Description)
	if err != nil {
		h.logger.Error("pay maintenance expense", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}
