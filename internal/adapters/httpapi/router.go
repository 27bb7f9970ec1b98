package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the API HTTP router.
//
// This is intentionally a thin adapter: it wires routes/middleware and
// delegates everything else to the Server's handlers.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware (minimal but useful).
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s))

	// Health endpoint for infra checks; not part of the public API.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.createUser)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getUser)
			r.Put("/", s.updateUser)
			r.Delete("/", s.deleteUser)
		})
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", s.listPosts)
		r.Post("/", s.createPost)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getPost)
			r.Put("/", s.updatePost)
			r.Delete("/", s.deletePost)
		})
	})

	return r
}

func requestLogger(s *Server) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			s.Log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
