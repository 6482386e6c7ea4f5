package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"finsight/internal/core"
	"finsight/internal/log"
	"finsight/internal/ports"
	"finsight/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError maps domain errors onto status codes. Client errors are
// logged at debug; anything unexpected is logged and hidden behind a 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, errType := classify(err)
	ctx := r.Context()
	if status == http.StatusInternalServerError {
		log.NewStructuredLogger(log.FromContext(ctx)).LogError(ctx, "Request failed", err, errType, op)
		writeError(w, status, "internal error")
		return
	}
	log.FromContext(ctx).DebugContext(ctx, "Request rejected",
		log.NewFields().WithOperation(op).WithError(err).With(log.FieldErrorType, errType)...)
	writeError(w, status, err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyID):
		return http.StatusUnprocessableEntity, log.ErrorTypeValidation
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound, log.ErrorTypeNotFound
	case errors.Is(err, errBadPeriod), errors.Is(err, services.ErrInvalidPeriod):
		return http.StatusBadRequest, log.ErrorTypeValidation
	default:
		return http.StatusInternalServerError, log.ErrorTypeInternal
	}
}
