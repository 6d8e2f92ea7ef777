package ledger

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
	r.Post("/entries", h.PostEntry)
	r.Post("/transfers", h.Transfer)
	r.Get("/accounts/{id}/balance", h.Balance)
	r.Get("/accounts/{id}/ledger", h.Ledger)
}

type postEntryRequest struct {
	Kind                 Kind      `json:"kind" validate:"required"`
	Date                 time.Time `json:"date" validate:"required"`
	Description          string    `json:"description"`
	FromAccountID        *int64    `json:"from_account_id"`
	ToAccountID          *int64    `json:"to_account_id"`
	Withdrawal           float64   `json:"withdrawal"`
	Deposit              float64   `json:"deposit"`
	RelatedTripID        *string   `json:"related_trip_id"`
	RelatedMaintenanceID *int64    `json:"related_maintenance_id"`
}

func (h *Handler) PostEntry(w http.ResponseWriter, r *http.Request) {
	var req postEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	entry, err := h.service.Post(r.Context(), PostingInput{
		Kind:                 req.Kind,
		Date:                 req.Date,
		Description:          req.Description,
		FromAccountID:        req.FromAccountID,
		ToAccountID:          req.ToAccountID,
		Withdrawal:           req.Withdrawal,
		Deposit:              req.Deposit,
		RelatedTripID:        req.RelatedTripID,
		RelatedMaintenanceID: req.RelatedMaintenanceID,
	})
	if err != nil {
		h.logger.Error("post ledger entry", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

type transferRequest struct {
	FromAccountID int64     `json:"from_account_id" validate:"required"`
	ToAccountID   int64     `json:"to_account_id" validate:"required"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	Date          time.Time `json:"date" validate:"required"`
	Description   string    `json:"description"`
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	entry, err := h.service.Transfer(r.Context(), TransferInput{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Date:          req.Date,
		Description:   req.Description,
	})
	if err != nil {
		h.logger.Error("account transfer", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var asOf *time.Time
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "as_of must be YYYY-MM-DD")
			return
		}
		asOf = &parsed
	}

	balance, err := h.service.BalanceAsOf(r.Context(), id, asOf)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"account_id": id, "balance": balance})
}

func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	lines, finalBalance, err := h.service.Ledger(r.Context(), id)
	if err != nil {
		h.logger.Error("account ledger", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"account_id":    id,
		"entries":       lines,
		"final_balance": finalBalance,
	})
}
