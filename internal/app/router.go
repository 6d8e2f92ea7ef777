package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/routeledger/routeledger/internal/auth"
	"github.com/routeledger/routeledger/internal/expenses"
	"github.com/routeledger/routeledger/internal/export"
	"github.com/routeledger/routeledger/internal/ledger"
	"github.com/routeledger/routeledger/internal/masterdata/accounts"
	"github.com/routeledger/routeledger/internal/masterdata/categories"
	"github.com/routeledger/routeledger/internal/masterdata/dockets"
	"github.com/routeledger/routeledger/internal/masterdata/drivers"
	"github.com/routeledger/routeledger/internal/masterdata/parties"
	"github.com/routeledger/routeledger/internal/masterdata/vehicles"
	"github.com/routeledger/routeledger/internal/settlement"
	"github.com/routeledger/routeledger/internal/trips"
	"github.com/routeledger/routeledger/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AuthService *auth.Service

	AuthHandler       *auth.Handler
	VehiclesHandler   *vehicles.Handler
	DriversHandler    *drivers.Handler
	PartiesHandler    *parties.Handler
	CategoriesHandler *categories.Handler
	AccountsHandler   *accounts.Handler
	DocketsHandler    *dockets.Handler
	TripsHandler      *trips.Handler
	ExpensesHandler   *expenses.Handler
	LedgerHandler     *ledger.Handler
	SettlementHandler *settlement.Handler
	ExportHandler     *export.Handler
	JobsHandler       *jobs.Handler
}

// NewRouter builds the chi router. Everything under /api/v1 except /auth
// requires a bearer token.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(params.AuthService))

			r.Route("/vehicles", params.VehiclesHandler.MountRoutes)
			r.Route("/drivers", params.DriversHandler.MountRoutes)
			r.Route("/parties", params.PartiesHandler.MountRoutes)
			r.Route("/categories", params.CategoriesHandler.MountRoutes)
			r.Route("/accounts", params.AccountsHandler.MountRoutes)
			r.Route("/dockets", params.DocketsHandler.MountRoutes)
			r.Route("/trips", params.TripsHandler.MountRoutes)
			r.Route("/expenses", params.ExpensesHandler.MountRoutes)
			r.Route("/ledger", params.LedgerHandler.MountRoutes)
			r.Route("/settlement", params.SettlementHandler.MountRoutes)
			r.Route("/export", params.ExportHandler.MountRoutes)
			if params.JobsHandler != nil {
				r.Route("/jobs", params.JobsHandler.MountRoutes)
			}
		})
	})

	return r
}
