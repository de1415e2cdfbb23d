// Package handler holds the HTTP transport layer: thin adapters that parse
// and validate requests, delegate to the chat pipeline, cost estimator, and
// sandbox store, and render JSON responses.
package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, logger *zap.Logger, status int, msg string, err error) {
	body := errorBody{Error: msg}
	if err != nil {
		if status >= http.StatusInternalServerError {
			logger.Error(msg, zap.Error(err))
		} else {
			logger.Debug(msg, zap.Error(err))
			body.Detail = err.Error()
		}
	}
	respondJSON(w, status, body)
}
