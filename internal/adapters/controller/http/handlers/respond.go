// Package handlers contains the chi HTTP handlers that translate
// requests and responses to and from the service layer.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// statusFor maps domain errors onto HTTP statuses. Unknown errors are
// treated as internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errorz.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errorz.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errorz.ErrAlreadyRegistered),
		errors.Is(err, errorz.ErrAlreadyExists),
		errors.Is(err, errorz.ErrAlreadyFinished):
		return http.StatusConflict
	case errors.Is(err, errorz.ErrInvalidTransition),
		errors.Is(err, errorz.ErrInvalidStatus),
		errors.Is(err, errorz.ErrRegistrationClosed),
		errors.Is(err, errorz.ErrCapacityExceeded),
		errors.Is(err, errorz.ErrCheckInLimitReached),
		errors.Is(err, errorz.ErrEventNotInProgress),
		errors.Is(err, errorz.ErrRegistrationNotApproved),
		errors.Is(err, errorz.ErrNotEligible),
		errors.Is(err, errorz.ErrInvalidToken):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errorz.ErrInvalidRating):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status with the domain error text,
// hiding internals behind a generic message.
func respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
