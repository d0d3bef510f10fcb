package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/utafrali/ProfileGo/internal/service"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
	"github.com/utafrali/ProfileGo/pkg/validator"
)

// --- Shared response helpers ---

type response struct {
	Data  any            `json:"data,omitempty"`
	Error *errorResponse `json:"error,omitempty"`
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Codes   []string          `json:"codes,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

func writeAppError(w http.ResponseWriter, _ *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Status, response{
			Error: &errorResponse{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	code := "INTERNAL_ERROR"
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		code = "NOT_FOUND"
		message = "resource not found"
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrAlreadyExists):
		code = "ALREADY_EXISTS"
		message = "resource already exists"
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidInput):
		code = "INVALID_INPUT"
		message = err.Error()
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrUserNotFound):
		code = "UNAUTHORIZED"
		message = "invalid credentials"
		status = http.StatusUnauthorized
	}

	writeJSON(w, status, response{
		Error: &errorResponse{Code: code, Message: message},
	})
}

func writeValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "request validation failed",
				Fields:  valErr.Fields(),
			},
		})
		return
	}

	writeJSON(w, http.StatusBadRequest, response{
		Error: &errorResponse{Code: "INVALID_INPUT", Message: err.Error()},
	})
}

// writeLifecycleErrors maps accumulated password lifecycle error codes to an
// HTTP response. Unknown-account codes become 404, everything else 400.
func writeLifecycleErrors(w http.ResponseWriter, resp *service.Response) {
	status := http.StatusBadRequest
	if resp.HasErrorCode(service.CodeInvalidCustomer) || resp.HasErrorCode(service.CodeEmailNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, response{
		Error: &errorResponse{
			Code:    "LIFECYCLE_ERROR",
			Message: "request could not be processed",
			Codes:   resp.ErrorCodes(),
		},
	})
}

func writeInvalidBody(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, response{
		Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
	})
}

func writeUnauthenticated(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, response{
		Error: &errorResponse{Code: "UNAUTHORIZED", Message: "customer not authenticated"},
	})
}
