package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrNothingToCentralize = NewDomainError("NOTHING_TO_CENTRALIZE", "No records to centralize for the period")
	ErrAlreadyCentralized  = NewDomainError("ALREADY_CENTRALIZED", "Period has already been centralized")
)

// Error codes carried by the structured errors below. The HTTP layer maps
// these to status codes; batch callers use them to decide per-record skip
// versus whole-operation abort.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeMissingParameter    = "MISSING_PARAMETER"
	CodeInstitutionNotFound = "INSTITUTION_NOT_FOUND"
	CodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	CodeImbalance           = "IMBALANCE"
)

// ValidationError reports a malformed single record (bad identifier,
// non-numeric amount). Always recoverable: reject the record, continue.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for a named field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// MissingParameterError reports a required period parameter that is absent
// from the reference tables. Fatal to the single computation; the value is
// never defaulted.
type MissingParameterError struct {
	Name   string `json:"name"`
	Period string `json:"period"`
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("parameter %q not defined for period %s", e.Name, e.Period)
}

// NewMissingParameterError creates a MissingParameterError
func NewMissingParameterError(name, period string) *MissingParameterError {
	return &MissingParameterError{Name: name, Period: period}
}

// InstitutionNotFoundError reports an unresolvable pension fund or health
// provider reference on an employee record.
type InstitutionNotFoundError struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func (e *InstitutionNotFoundError) Error() string {
	return fmt.Sprintf("%s institution %s not found", e.Kind, e.ID)
}

// NewInstitutionNotFoundError creates an InstitutionNotFoundError
func NewInstitutionNotFoundError(kind, id string) *InstitutionNotFoundError {
	return &InstitutionNotFoundError{Kind: kind, ID: id}
}

// AccountNotFoundError reports a chart-of-accounts name that could not be
// resolved during voucher synthesis. It names the missing account so the
// caller can present an actionable message.
type AccountNotFoundError struct {
	Name string `json:"name"`
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %q not found in chart of accounts", e.Name)
}

// NewAccountNotFoundError creates an AccountNotFoundError
func NewAccountNotFoundError(name string) *AccountNotFoundError {
	return &AccountNotFoundError{Name: name}
}

// ImbalanceError reports a violated double-entry invariant. It is always
// fatal; vouchers are never auto-corrected with plug entries.
type ImbalanceError struct {
	DebitTotal  int64 `json:"debit_total"`
	CreditTotal int64 `json:"credit_total"`
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("voucher does not balance: debits %d, credits %d (delta %d)",
		e.DebitTotal, e.CreditTotal, e.Delta())
}

// Delta returns debits minus credits
func (e *ImbalanceError) Delta() int64 {
	return e.DebitTotal - e.CreditTotal
}

// NewImbalanceError creates an ImbalanceError from the computed totals
func NewImbalanceError(debitTotal, creditTotal int64) *ImbalanceError {
	return &ImbalanceError{DebitTotal: debitTotal, CreditTotal: creditTotal}
}

// ErrorCode extracts the domain error code from any of the structured
// errors above, or an empty string for unrecognized errors.
func ErrorCode(err error) string {
	switch e := err.(type) {
	case *DomainError:
		return e.Code
	case *ValidationError:
		return CodeValidation
	case *MissingParameterError:
		return CodeMissingParameter
	case *InstitutionNotFoundError:
		return CodeInstitutionNotFound
	case *AccountNotFoundError:
		return CodeAccountNotFound
	case *ImbalanceError:
		return CodeImbalance
	default:
		return ""
	}
}
