package settlement

import (
	"log/slog"
	"net/http"
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
	r.Get("/{tripID}/financials", h.Financials)
	r.Get("/{tripID}/pnl", h.ProfitLoss)
	r.Post("/{tripID}/advances", h.RecordAdvance)
	r.Post("/{tripID}/settle", h.Settle)
}

func (h *Handler) Financials(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.Financials(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, f)
}

func (h *Handler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	pl, err := h.service.ProfitLoss(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, pl)
}

func (h *Handler) RecordAdvance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AccountID int64     `json:"account_id"`
		Amount    float64   `json:"amount"`
		Date      time.Time `json:"date"`
		Remarks   string    `json:"remarks"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	entry, err := h.service.RecordAdvance(r.Context(), chi.URLParam(r, "tripID"), body.AccountID, body.Amount, body.Date, body.Remarks)
	if err != nil {
		h.logger.Error("record trip advance", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReceivedAmount float64   `json:"received_amount"`
		ShortageDamage float64   `json:"shortage_damage"`
		AccountID      int64     `json:"account_id"`
		Date           time.Time `json:"date"`
		Remarks        string    `json:"remarks"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	result, err := h.service.Settle(r.Context(), chi.URLParam(r, "tripID"), SettleInput{
		ReceivedAmount: body.ReceivedAmount,
		ShortageDamage: body.ShortageDamage,
		AccountID:      body.AccountID,
		Date:           body.Date,
		Remarks:        body.Remarks,
	})
	if err != nil {
		h.logger.Error("settle trip", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
