// Package handler provides HTTP handlers for the FleetRent API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/service"
)

// requiredMsg is the message attached to each missing required field.
const requiredMsg = "This field is required."

// fieldErrors maps field names to validation messages, the shape all
// 400 responses use.
type fieldErrors map[string][]string

// add appends a message for a field.
func (fe fieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeFieldErrors writes a 400 response with a field-error map.
func writeFieldErrors(w http.ResponseWriter, fe fieldErrors) {
	writeJSON(w, http.StatusBadRequest, fe)
}

// writeDetail writes a response with a single "detail" message.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeServiceError translates service and domain errors into HTTP
// responses. Anything unrecognized becomes a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrVehicleNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrAgreementNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTokenNotFound):
		writeDetail(w, http.StatusNotFound, "Not found.")

	case errors.Is(err, domain.ErrVehicleInUse),
		errors.Is(err, domain.ErrCustomerInUse),
		errors.Is(err, domain.ErrUserOwnsRecords):
		writeDetail(w, http.StatusConflict, err.Error())

	case errors.Is(err, domain.ErrInvalidCustomerRef):
		writeFieldErrors(w, fieldErrors{"customer": {"Invalid customer reference."}})

	case errors.Is(err, domain.ErrInvalidVehicleRef):
		writeFieldErrors(w, fieldErrors{"vehicle": {"Invalid vehicle reference."}})

	case errors.Is(err, domain.ErrUserAlreadyExists):
		writeFieldErrors(w, fieldErrors{"email": {"A user with that email already exists."}})

	case errors.Is(err, domain.ErrEmailRequired):
		writeFieldErrors(w, fieldErrors{"email": {requiredMsg}})

	case errors.Is(err, service.ErrInvalidEmail):
		writeFieldErrors(w, fieldErrors{"email": {"Enter a valid email address."}})

	case errors.Is(err, service.ErrInvalidPassword):
		writeFieldErrors(w, fieldErrors{"password": {"Ensure this field has at least 5 characters."}})

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserInactive):
		writeFieldErrors(w, fieldErrors{"non_field_errors": {"Unable to authenticate with provided credentials."}})

	default:
		log.Error().Err(err).Msg("unhandled service error")
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
	}
}

// writeInvalidBody writes the 400 for an unparseable JSON body.
func writeInvalidBody(w http.ResponseWriter) {
	writeFieldErrors(w, fieldErrors{"non_field_errors": {"Invalid JSON body."}})
}
