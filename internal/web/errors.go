package web

// errors.go provides unified error response handling for the web layer.
// Handlers call respondError with whatever the service returned; the
// sentinel errors from the blogger package map to their HTTP statuses
// here and nowhere else.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blogrank/blogrank/internal/blogger"
	"github.com/blogrank/blogrank/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError logs the technical error server-side and returns a
// sanitized message with the status the sentinel maps to.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	logger := logging.FromContext(r.Context())
	logger.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	message := clientMessage(err, status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// statusFor maps service errors to HTTP status codes. The import
// endpoint only distinguishes 401 and 403; a bad sheet URL, a failed
// export fetch, and a missing source are all 500s, matching the
// contract the frontend was built against.
func statusFor(err error) int {
	switch {
	case errors.Is(err, blogger.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, blogger.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, blogger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, blogger.ErrHandleTaken):
		return http.StatusConflict
	case errors.Is(err, blogger.ErrMissingFields):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage picks the response body message. Import source and
// fetch failures surface their sentinel message even at 500; any other
// internal error is sanitized so database and fetch internals never
// reach clients.
func clientMessage(err error, status int) string {
	if status != http.StatusInternalServerError {
		return err.Error()
	}
	for _, sentinel := range []error{
		blogger.ErrInvalidSource,
		blogger.ErrFetch,
		blogger.ErrNoSource,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal server error"
}

// writeJSON encodes v as JSON with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent, log and move on
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}

// badRequest reports a malformed request body or parameter.
func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, message string) {
	logging.FromContext(r.Context()).Warn("bad request",
		"path", r.URL.Path,
		"method", r.Method,
		"reason", message,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
