package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dogcafe6ix/dogcafe-api/shared/payload"
)

var errInvalidBody = errors.New("invalid request body")

func respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, payload.ErrorResponse{Message: message})
}

// decodeAndValidate decodes the JSON body into v and checks its validate
// tags. The returned error message is safe to surface to the caller.
func decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}

	return payload.Validate(v)
}
