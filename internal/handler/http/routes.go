package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer, h.withCORS())
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/", h.getStatus)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withAuthRateLimit)
		r.Post("/api/auth/signup", h.signup)
		r.Post("/api/auth/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/me", h.me)

		r.Get("/api/user/profile", h.getProfile)
		r.Put("/api/user/profile", h.updateProfile)
		r.Delete("/api/user/profile", h.deleteProfile)

		r.Post("/api/tasks", h.createTask)
		r.Get("/api/tasks", h.listTasks)
		r.Get("/api/tasks/{id}", h.getTask)
		r.Put("/api/tasks/{id}", h.updateTask)
		r.Delete("/api/tasks/{id}", h.deleteTask)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
