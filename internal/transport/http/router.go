// Package httptransport is the thin HTTP layer over the back-office services.
// Handlers delegate to domain services without embedding business logic so
// transport concerns remain isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"greenlight/internal/audit"
	"greenlight/internal/backup"
	"greenlight/internal/catalog"
	platformmw "greenlight/internal/platform/middleware"
	"greenlight/internal/session"
)

// Handler bundles the services the admin API exposes.
type Handler struct {
	catalog  *catalog.Service
	auditLog *audit.Log
	backups  *backup.Manager
	sessions *session.Service
	logger   *slog.Logger
}

func NewHandler(catalogSvc *catalog.Service, auditLog *audit.Log, backups *backup.Manager, sessions *session.Service, logger *slog.Logger) *Handler {
	return &Handler{
		catalog:  catalogSvc,
		auditLog: auditLog,
		backups:  backups,
		sessions: sessions,
		logger:   logger,
	}
}

// NewRouter wires all admin endpoints. Everything except health, metrics and
// login sits behind session authentication.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(platformmw.RequestID)
	r.Use(platformmw.RequestTime)
	r.Use(platformmw.RequestLogger(h.logger))

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/session/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(platformmw.RequireSession(h.sessions, h.logger))

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.handleListProjects)
			r.Post("/", h.handleCreateProject)
			r.Get("/{id}", h.handleGetProject)
			r.Patch("/{id}", h.handleUpdateProject)
			r.Delete("/{id}", h.handleDeleteProject)
			r.Post("/{id}/archive", h.handleArchiveProject)
		})

		r.Route("/merchandise", func(r chi.Router) {
			r.Get("/", h.handleListMerchandise)
			r.Post("/", h.handleCreateMerchandise)
			r.Get("/{id}", h.handleGetMerchandise)
			r.Patch("/{id}", h.handleUpdateMerchandise)
			r.Delete("/{id}", h.handleDeleteMerchandise)
		})

		r.Route("/perks", func(r chi.Router) {
			r.Get("/", h.handleListPerks)
			r.Post("/", h.handleCreatePerk)
			r.Get("/{id}", h.handleGetPerk)
			r.Patch("/{id}", h.handleUpdatePerk)
			r.Delete("/{id}", h.handleDeletePerk)
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/", h.handleListMedia)
			r.Post("/", h.handleCreateMedia)
			r.Get("/{id}", h.handleGetMedia)
			r.Patch("/{id}", h.handleUpdateMedia)
			r.Delete("/{id}", h.handleDeleteMedia)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.handleListUsers)
			r.Post("/", h.handleCreateUser)
			r.Get("/{id}", h.handleGetUser)
			r.Post("/{id}/status", h.handleUserStatus)
		})

		r.Get("/audit", h.handleQueryAudit)

		r.Route("/backups", func(r chi.Router) {
			r.Get("/", h.handleListBackups)
			r.Post("/", h.handleCreateBackup)
			r.Post("/{id}/restore", h.handleRestoreBackup)
		})
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
