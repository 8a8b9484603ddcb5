package utils

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Response is the envelope every endpoint answers with. Data is set on
// success, Errors carries per-field validation messages.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func writeResponse(w http.ResponseWriter, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func success(w http.ResponseWriter, code int, message string, data any) {
	writeResponse(w, code, Response{Status: true, Message: message, Data: data})
}

func failure(w http.ResponseWriter, code int, message string, errs any) {
	writeResponse(w, code, Response{Status: false, Message: message, Errors: errs})
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	success(w, http.StatusOK, message, data)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	success(w, http.StatusCreated, message, data)
}

// ResponseBadRequest answers 400; errs is usually the field map of a validation failure.
func ResponseBadRequest(w http.ResponseWriter, message string, errs any) {
	failure(w, http.StatusBadRequest, message, errs)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	failure(w, http.StatusNotFound, message, nil)
}

func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	failure(w, http.StatusTooManyRequests, message, nil)
}

// ResponseInternalError answers 500. Callers pass a generic message, never the cause.
func ResponseInternalError(w http.ResponseWriter, message string) {
	failure(w, http.StatusInternalServerError, message, nil)
}
