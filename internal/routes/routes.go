package routes

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AnshRaj112/mindfulspace-backend/internal/config"
	"github.com/AnshRaj112/mindfulspace-backend/internal/handlers"
	"github.com/AnshRaj112/mindfulspace-backend/internal/metrics"
	"github.com/AnshRaj112/mindfulspace-backend/internal/middleware"
	"github.com/AnshRaj112/mindfulspace-backend/internal/services"
	"github.com/AnshRaj112/mindfulspace-backend/internal/store"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Config   *config.Config
	Store    store.Store
	Sessions *services.SessionManager
	Logger   *zap.Logger
	Metrics  *metrics.Metrics // optional
}

// NewRouter wires middleware, API routes and static pages.
func NewRouter(d Deps) *chi.Mux {
	return SetupRoutes(handlers.New(d.Store, d.Sessions, d.Logger, d.Config), d)
}

// SetupRoutes builds the router around an existing Handler.
func SetupRoutes(h *handlers.Handler, d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger, d.Metrics))
	r.Use(middleware.Recoverer(d.Logger))
	r.Use(middleware.CORS(d.Config.AllowedOrigins))
	if d.Config.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
	}

	r.Get("/health", h.Health)
	if d.Metrics != nil {
		r.Method("GET", "/metrics", d.Metrics.Handler())
	}

	// Auth routes
	r.Post("/api/signup", h.Signup)
	r.Post("/api/login", h.Login)
	r.Post("/api/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(d.Sessions, d.Logger))

		// User routes
		r.Get("/api/user", h.GetUser)
		r.Put("/api/user/profile", h.UpdateProfile)
		r.Put("/api/user/password", h.ChangePassword)
		r.Get("/api/user/stats", h.GetStats)

		// Mood and gratitude routes
		r.Post("/api/mood", h.SaveMood)
		r.Get("/api/moods", h.ListMoods)
		r.Post("/api/gratitude", h.AddGratitude)
		r.Get("/api/gratitude", h.ListGratitude)

		// Journaling routes
		r.Post("/api/journal", h.CreateJournalEntry)
		r.Get("/api/journal", h.ListJournalEntries)
		r.Delete("/api/journal/{id}", h.DeleteJournalEntry)
		r.Get("/api/public-journal", h.ListPublicJournal)
		r.Post("/api/journal/{id}/like", h.LikeJournalEntry)
		r.Get("/api/journal/{id}/comments", h.ListComments)
		r.Post("/api/journal/{id}/comments", h.AddComment)

		// Connection routes
		r.Get("/api/users", h.ListCandidates)
		r.Post("/api/connection-request", h.SendConnectionRequest)
		r.Get("/api/connection-requests", h.ListConnectionRequests)
		r.Post("/api/connection-request/{id}/accept", h.AcceptConnectionRequest)
		r.Post("/api/connection-request/{id}/reject", h.RejectConnectionRequest)
		r.Get("/api/connections", h.ListConnections)
		r.Delete("/api/connection/{id}", h.RemoveConnection)
	})

	// Static pages
	r.Get("/", h.Page("login.html"))
	for _, page := range handlers.Pages {
		r.Get("/"+page, h.Page(page))
	}
	r.Get("/*", h.Static())

	// unmatched methods get the same 404 as unmatched paths
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)
	return r
}
