package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
)

type APIError struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Status int    `json:"status"`
}

// Failure taxonomy. Services wrap these with fmt.Errorf("%w: ...") and Wrap
// maps them to status codes; anything unrecognized is a fetch failure (500).
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, err error, reason string) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	WriteJSON(w, APIError{Error: err.Error(), Reason: reason, Status: status}, status)
}

func Decode[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, errors.Join(ErrValidation, err)
	}
	return v, nil
}

// Wrap adapts error-returning handlers to http.Handler, translating the
// sentinel taxonomy into status codes.
func Wrap(h func(http.ResponseWriter, *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, ErrUnauthorized):
			WriteError(w, http.StatusUnauthorized, err, "unauthorized")
		case errors.Is(err, ErrValidation):
			WriteError(w, http.StatusBadRequest, err, "validation")
		case errors.Is(err, ErrNotFound):
			WriteError(w, http.StatusNotFound, err, "not_found")
		case errors.Is(err, ErrForbidden):
			WriteError(w, http.StatusForbidden, err, "forbidden")
		default:
			WriteError(w, http.StatusInternalServerError, err, "internal")
		}
	})
}
