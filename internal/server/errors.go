package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/commitgraph/pkg/errors"
)

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Code    errors.Code `json:"code,omitempty"`
	Message string      `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch {
	case code == "":
		return http.StatusInternalServerError
	case code.IsConflict():
		return http.StatusConflict
	case code.IsRejected():
		return http.StatusUnprocessableEntity
	}
	switch code {
	case errors.ErrCodeBranchNotFound, errors.ErrCodeCommitNotFound, errors.ErrCodeInvalidImport:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRefName, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidTemplate, errors.ErrCodeInvalidScript, errors.ErrCodeInvalidPath,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
