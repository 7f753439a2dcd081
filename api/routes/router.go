package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hospinv/hospinv-backend/api/controllers"
	"github.com/hospinv/hospinv-backend/api/middleware"
	"github.com/hospinv/hospinv-backend/internal/export"
	"github.com/hospinv/hospinv-backend/internal/inventory"
	"github.com/hospinv/hospinv-backend/internal/maintenance"
	"github.com/hospinv/hospinv-backend/internal/stats"
	"github.com/hospinv/hospinv-backend/internal/upload"
	"github.com/hospinv/hospinv-backend/pkg/config"
	"github.com/hospinv/hospinv-backend/pkg/db"
	"github.com/hospinv/hospinv-backend/pkg/logger"
	"github.com/hospinv/hospinv-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Inventory   inventory.Service
	Maintenance maintenance.Service
	Stats       stats.Service
	Uploads     *upload.Service
	Excel       *export.ExcelExporter
	PDF         *export.PDFExporter
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Get("/", controllers.StatusPage(cfg, deps.DB, logg))
	r.Get("/health", controllers.StatusPage(cfg, deps.DB, logg))

	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/inventory", func(r chi.Router) {
		r.Get("/", controllers.InventoryList(deps.Inventory, logg))
		r.Get("/search", controllers.InventorySearch(deps.Inventory, logg))
		r.Post("/", controllers.InventoryCreate(deps.Inventory, deps.Uploads, logg))
		r.Get("/{id}", controllers.InventoryGet(deps.Inventory, logg))
		r.Put("/{id}", controllers.InventoryUpdate(deps.Inventory, deps.Uploads, logg))
		r.Delete("/{id}", controllers.InventoryDelete(deps.Inventory, logg))
	})

	r.Route("/api/maintenance", func(r chi.Router) {
		r.Get("/item/{itemId}", controllers.MaintenanceListByItem(deps.Maintenance, logg))
		r.Get("/pdf/{itemId}", controllers.ExportPDF(deps.PDF, logg))
		r.Post("/", controllers.MaintenanceCreate(deps.Maintenance, logg))
		r.Delete("/{id}", controllers.MaintenanceDelete(deps.Maintenance, logg))
	})

	r.Get("/api/export/excel", controllers.ExportExcel(deps.Excel, logg))

	r.Route("/api/stats", func(r chi.Router) {
		r.Get("/general", controllers.StatsGeneral(deps.Stats, logg))
		r.Get("/recent", controllers.StatsRecent(deps.Stats, logg))
	})

	// Locally stored item images are served straight off disk.
	uploadsDir := http.Dir(cfg.Uploads.Dir)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadsDir)))

	return r
}
