package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bastiangx/wordindex/pkg/suggest"
)

var (
	// ErrBatchTooLarge is returned when a bulk request holds more terms than allowed.
	ErrBatchTooLarge = errors.New("batch too large")

	// ErrNoVocabulary is returned by reload when no vocabulary files are configured.
	ErrNoVocabulary = errors.New("no vocabulary configured")
)

// ErrorResponse represents a standard JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// WriteJSONError writes a JSON error response with the given status code and message
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// statusFor maps known errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, suggest.ErrInvalidTerm), errors.Is(err, suggest.ErrInvalidScore):
		return http.StatusBadRequest
	case errors.Is(err, ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrNoVocabulary):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	WriteJSONError(w, statusFor(err), err.Error())
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
