package handler

// RESPONSE ENVELOPE:
// Every response from the API uses one of three shapes:
//
//	{"status":"success","data":...}        2xx
//	{"status":"fail","message":"..."}      4xx, single message
//	{"status":"fail","data":[{field,message},...]}  400, per-field validation
//	{"status":"error","message":"..."}     5xx
//
// writeError is the single place domain errors become status codes. The
// service layer returns apperror/validate errors with no HTTP knowledge;
// this file owns the mapping.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/photoapp/photoapp/internal/apperror"
	"github.com/photoapp/photoapp/internal/validate"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// authRequiredMessage is shared by every 401 - unauthenticated and
// ownership-mismatch responses are deliberately indistinguishable.
const authRequiredMessage = "Authorization required"

// storeFailureMessage is the catch-all 500 body. Raw store errors never
// reach the client; they may contain SQL fragments or file paths.
const storeFailureMessage = "An unexpected database error occurred"

type successResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type failResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type failDataResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// writeJSON sends a JSON body with the given status code.
// Headers and status must be written before the body - once Encode writes,
// they're on the wire.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeSuccess sends {"status":"success","data":...}. Data may be nil,
// which encodes as an explicit "data":null (delete/link acknowledgements).
func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successResponse{Status: statusSuccess, Data: data})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, failResponse{Status: statusFail, Message: message})
}

// writeValidationErrors sends the 400 per-field shape.
func writeValidationErrors(w http.ResponseWriter, errs validate.Errors) {
	writeJSON(w, http.StatusBadRequest, failDataResponse{Status: statusFail, Data: errs})
}

// writeError maps a domain error to the appropriate HTTP response.
func writeError(w http.ResponseWriter, err error) {
	// Multi-field validation failures carry their own structured data.
	var fieldErrs validate.Errors
	if errors.As(err, &fieldErrs) {
		writeValidationErrors(w, fieldErrs)
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			if appErr.Field != "" {
				writeValidationErrors(w, validate.Errors{
					{Field: appErr.Field, Message: appErr.Message},
				})
				return
			}
			writeFail(w, http.StatusBadRequest, appErr.Message)
			return
		case errors.Is(err, apperror.ErrUnauthorized):
			// Ownership mismatches reuse the unauthenticated body on purpose.
			writeFail(w, http.StatusUnauthorized, authRequiredMessage)
			return
		case errors.Is(err, apperror.ErrNotFound):
			writeFail(w, http.StatusNotFound, appErr.Message)
			return
		}
	}

	writeJSON(w, http.StatusInternalServerError, failResponse{
		Status:  statusError,
		Message: storeFailureMessage,
	})
}
