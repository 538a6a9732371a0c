package handlers

import (
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger(r.Context()).WithError(err).WithField("path", r.URL.Path).Error("encode response failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg, Retryable: status >= http.StatusInternalServerError})
}

// writeServiceError maps business rule violations to 4xx responses and
// everything else to a retryable 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrStopNotInRoute):
		writeError(w, r, http.StatusNotFound, rootMessage(err))
	case errors.Is(err, domain.ErrLastStop):
		writeError(w, r, http.StatusUnprocessableEntity, rootMessage(err))
	case errors.Is(err, domain.ErrNotCashOnDelivery):
		writeError(w, r, http.StatusConflict, rootMessage(err))
	case errors.Is(err, domain.ErrEmptySelection), errors.Is(err, domain.ErrInvalidStatus):
		writeError(w, r, http.StatusBadRequest, rootMessage(err))
	default:
		obs.Logger(r.Context()).WithError(err).WithField("op", op).Error("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func rootMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrOrderNotFound,
		domain.ErrStopNotInRoute,
		domain.ErrLastStop,
		domain.ErrNotCashOnDelivery,
		domain.ErrEmptySelection,
		domain.ErrInvalidStatus,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// decodeJSON reads exactly one JSON object into dst and validates it.
// It writes the 400 response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, r, http.StatusBadRequest, "invalid field: "+verrs[0].Field()+" ("+verrs[0].Tag()+")")
			return false
		}
		writeError(w, r, http.StatusBadRequest, "invalid request")
		return false
	}

	return true
}
