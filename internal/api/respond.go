package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/leylaiskandarli/average-squares/internal/errors"
)

// writeJSON encodes v before sending the status so an encoding failure can
// still be reported as a 500.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps input errors to 400 and everything else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch kind := apperrors.KindOf(err); kind {
	case apperrors.ErrorTypeInvalidArgument, apperrors.ErrorTypeFormat:
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": err.Error(),
			"kind":  string(kind),
		})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
