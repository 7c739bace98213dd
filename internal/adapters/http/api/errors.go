package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/matchscope/internal/adapters/provider/statsbomb"
	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/pkg/logger"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// API error codes.
const (
	codeBadRequest    = "bad_request"
	codeNotFound      = "not_found"
	codeProviderError = "provider_error"
	codeTimeout       = "timeout"
	codeInternal      = "internal_error"
)

// StatusFor maps a service error to an HTTP status and API error code.
// Not-found is checked first: a missing provider file is both.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidSelection):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, service.ErrNotFound), errors.Is(err, statsbomb.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, codeTimeout
	case errors.Is(err, statsbomb.ErrProvider):
		return http.StatusBadGateway, codeProviderError
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// writeServiceError logs and writes err with its mapped status.
func writeServiceError(ctx context.Context, log logger.Logger, w http.ResponseWriter, op string, err error) {
	status, code := StatusFor(err)
	fields := []logger.Field{logger.String("op", op), logger.String("code", code), logger.Error(err)}
	if id := RequestID(ctx); id != "" {
		fields = append(fields, logger.String("request_id", id))
	}
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", fields...)
	} else {
		log.Warn(ctx, "request rejected", fields...)
	}
	w.Header().Set(errorCodeHeader, code)
	writeError(w, status, code, err)
}
