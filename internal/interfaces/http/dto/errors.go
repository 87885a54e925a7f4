package dto

import (
	"net/http"

	"github.com/contable/backoffice/internal/domain/shared"
)

// General error codes
const (
	ErrCodeInternal   = "ERR_INTERNAL"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	ErrCodeNotFound   = "ERR_NOT_FOUND"
	ErrCodeConflict   = "ERR_CONFLICT"
)

// statusByCode maps domain error codes to HTTP status codes. Validation
// and reference-data problems are client errors; imbalance is a 422
// because the request was well-formed but the resulting voucher is not
// acceptable.
var statusByCode = map[string]int{
	ErrCodeBadRequest:              http.StatusBadRequest,
	ErrCodeNotFound:                http.StatusNotFound,
	ErrCodeConflict:                http.StatusConflict,
	ErrCodeInternal:                http.StatusInternalServerError,
	shared.CodeValidation:          http.StatusBadRequest,
	shared.CodeMissingParameter:    http.StatusUnprocessableEntity,
	shared.CodeInstitutionNotFound: http.StatusUnprocessableEntity,
	shared.CodeAccountNotFound:     http.StatusUnprocessableEntity,
	shared.CodeImbalance:           http.StatusUnprocessableEntity,
	"NOT_FOUND":                    http.StatusNotFound,
	"ALREADY_EXISTS":               http.StatusConflict,
	"ALREADY_CENTRALIZED":          http.StatusConflict,
	"NOTHING_TO_CENTRALIZE":        http.StatusUnprocessableEntity,
	"EMPTY_VOUCHER":                http.StatusUnprocessableEntity,
	"INVALID_INPUT":                http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status for a domain or API error code,
// defaulting to 500 for anything unrecognized
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
