// Package httputil centralizes the JSON result envelope every endpoint
// returns, so the transport layer never needs per-endpoint error mapping.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "exptrack/pkg/domain-errors"
)

// Envelope is the uniform success/error wrapper. Message and Data are
// omitted when absent rather than serialized as null.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Status  int    `json:"status"`
}

// Success wraps data with status 200.
func Success(data any) Envelope {
	return Envelope{Success: true, Data: data, Status: http.StatusOK}
}

// Created wraps data with status 201.
func Created(data any) Envelope {
	return Envelope{Success: true, Data: data, Status: http.StatusCreated}
}

// WithStatus wraps data with an arbitrary 2xx status.
func WithStatus(data any, status int) Envelope {
	return Envelope{Success: true, Data: data, Status: status}
}

// Error builds a failure envelope with an explicit status.
func Error(message string, status int) Envelope {
	return Envelope{Success: false, Message: message, Status: status}
}

// FromError converts any error into a failure envelope. Domain errors map
// through their code; everything else is treated as an internal failure with
// the underlying message passed through for operability.
func FromError(err error) Envelope {
	return Envelope{
		Success: false,
		Message: dErrors.MessageOf(err),
		Status:  dErrors.ToHTTPStatus(dErrors.CodeOf(err)),
	}
}

// Write serializes the envelope, mirroring its status onto the HTTP response.
func (e Envelope) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}
