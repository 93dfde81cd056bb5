package common

import (
	"errors"
	"net/http"

	"github.com/blubolt/blubolt-centra-frontend/pkg/common/jsoncompat"
	"go.uber.org/zap"
)

// HttpError carries the status a handler error should be answered with.
type HttpError struct {
	Status int
	Err    error
}

func (e *HttpError) Error() string {
	return e.Err.Error()
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func BadRequest(err error) error {
	return &HttpError{Status: http.StatusBadRequest, Err: err}
}

func NotFound(err error) error {
	return &HttpError{Status: http.StatusNotFound, Err: err}
}

func StatusOf(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError answers with the error's status and a json body. Internal errors are logged
// and not echoed to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		zap.S().Errorf("Error handling request: %v", err)
		message = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	jsoncompat.NewEncoder(w).Encode(errorResponse{Error: message})
}

func JsonHandler(trk SessionTracker, fn func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)
		w.Header().Set("Content-Type", "application/json")
		if err := fn(w, r, sessionId, jsoncompat.NewEncoder(w)); err != nil {
			WriteError(w, err)
		}
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
