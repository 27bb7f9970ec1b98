package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"inkwell-backend/internal/app/apperr"
	"inkwell-backend/internal/app/posts"
	"inkwell-backend/internal/app/users"
)

// Server is the HTTP adapter over the user and post services.
type Server struct {
	Users *users.Service
	Posts *posts.Service
	Log   *log.Logger
}

func NewServer(usersSvc *users.Service, postsSvc *posts.Service, logger *log.Logger) *Server {
	return &Server{
		Users: usersSvc,
		Posts: postsSvc,
		Log:   logger,
	}
}

// decodePayload parses the body as a JSON object. A body that is not an
// object at all (null, array, scalar, malformed JSON, empty) is a shape
// error handled here; per-field problems are the validation layer's job.
func decodePayload(r *http.Request) (map[string]any, error) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errors.New("body must be a JSON object")
	}
	return payload, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error any `json:"error"`
}

// writeBadBody reports a request whose body never made it to validation.
// Logged because it usually means a broken client, not a user mistake.
func (s *Server) writeBadBody(w http.ResponseWriter, r *http.Request, err error) {
	s.Log.Warn("invalid request body",
		"err", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
}

// writeError renders an apperr.Error as its status and body. Anything else
// is unexpected: it is logged with full detail and masked as a bare 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		body := errorBody{Error: ae.Message}
		if ae.Details != nil {
			body.Error = ae.Details
		}
		writeJSON(w, ae.Status, body)
		return
	}
	s.Log.Error("internal error",
		"err", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	w.WriteHeader(http.StatusInternalServerError)
}
