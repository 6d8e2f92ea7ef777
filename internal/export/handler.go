package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"github.com/routeledger/routeledger/internal/platform/httpx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/accounts/{id}/ledger.xlsx", h.AccountLedger)
	r.Get("/trips/{tripID}/pnl.xlsx", h.TripProfitLoss)
}

func (h *Handler) AccountLedger(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	f, err := h.service.AccountLedger(r.Context(), id)
	if err != nil {
		h.logger.Error("export account ledger", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.send(w, f, fmt.Sprintf("account-%d-ledger.xlsx", id))
}

func (h *Handler) TripProfitLoss(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	f, err := h.service.TripProfitLoss(r.Context(), tripID)
	if err != nil {
		h.logger.Error("export trip pnl", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.send(w, f, fmt.Sprintf("%s-pnl.xlsx", tripID))
}

func (h *Handler) send(w http.ResponseWriter, f *excelize.File, filename string) {
	defer f.Close()
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := f.WriteTo(w); err != nil {
		h.logger.Error("write workbook", slog.Any("error", err))
	}
}
