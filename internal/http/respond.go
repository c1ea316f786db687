package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	httpapierr "github.com/Shoaib-Asghar/electronics-store-api/internal/http/apierr"
	"github.com/Shoaib-Asghar/electronics-store-api/pkg/zerror"
)

// responder writes JSON responses and maps errors to the API error contract.
// It is embedded in every handler.
type responder struct {
	logger *slog.Logger
}

func (rp *responder) respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		rp.logger.ErrorContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}

func (rp *responder) respondError(w http.ResponseWriter, r *http.Request, err error) {
	res := httpapierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	rp.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		rp.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}

// respondDomainError passes typed domain errors through and folds anything
// unexpected into the generic server error.
func (rp *responder) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		rp.respondError(w, r, err)
		return
	}
	rp.respondError(w, r, apperr.ServerErr.WrapParent(err))
}
