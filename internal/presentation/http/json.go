package httppresentation

import (
	"encoding/json"
	"net/http"

	"cartpay/internal/apperr"
)

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeAppError maps the service error taxonomy onto HTTP statuses. The
// mapping is the only place transport learns about error kinds.
func writeAppError(w http.ResponseWriter, err error) {
	writeError(w, httpStatus(apperr.KindOf(err)), err)
}

func httpStatus(kind apperr.Kind) int {
	switch kind {
	case apperr.InvalidArgument:
		return http.StatusBadRequest
	case apperr.FailedPrecondition:
		return http.StatusPreconditionFailed
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
