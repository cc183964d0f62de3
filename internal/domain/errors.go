package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Not found errors (*_NOT_FOUND)
	ErrorCodeShopAccountNotFound  ErrorCode = "SHOP_ACCOUNT_NOT_FOUND"
	ErrorCodePeriodNotFound       ErrorCode = "PERIOD_NOT_FOUND"
	ErrorCodeActivePeriodNotFound ErrorCode = "ACTIVE_PERIOD_NOT_FOUND"
	ErrorCodeTxnNotFound          ErrorCode = "TXN_NOT_FOUND"

	// Conflict errors
	ErrorCodeShopAccountExists   ErrorCode = "SHOP_ACCOUNT_EXISTS"
	ErrorCodePeriodAlreadyActive ErrorCode = "PERIOD_ALREADY_ACTIVE"

	// Invariant errors (illegal state transitions and write gating)
	ErrorCodePeriodInvalidState    ErrorCode = "PERIOD_INVALID_STATE"
	ErrorCodePeriodReleased        ErrorCode = "PERIOD_RELEASED"
	ErrorCodePeriodCorrectionsOnly ErrorCode = "PERIOD_CORRECTIONS_ONLY"
	ErrorCodeTxnInvalidState       ErrorCode = "TXN_INVALID_STATE"
	ErrorCodeTxnDirectionMismatch  ErrorCode = "TXN_DIRECTION_MISMATCH"

	// Validation errors (VALIDATION_*)
	ErrorCodeValidationFailed        ErrorCode = "VALIDATION_FAILED"
	ErrorCodeValidationMissingField  ErrorCode = "VALIDATION_MISSING_FIELD"
	ErrorCodeValidationAmountInvalid ErrorCode = "VALIDATION_AMOUNT_INVALID"
	ErrorCodeValidationInvalidID     ErrorCode = "VALIDATION_INVALID_ID"

	// Internal errors (INTERNAL_*)
	ErrorCodeDatabaseError ErrorCode = "INTERNAL_DATABASE_ERROR"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Errorf creates a new domain error with a formatted message
func Errorf(code ErrorCode, format string, args ...interface{}) *DomainError {
	return NewDomainError(code, fmt.Sprintf(format, args...))
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsNotFoundError checks if an error represents a "not found" condition
func IsNotFoundError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeShopAccountNotFound ||
		code == ErrorCodePeriodNotFound ||
		code == ErrorCodeActivePeriodNotFound ||
		code == ErrorCodeTxnNotFound
}

// IsConflictError checks if an error is a uniqueness conflict the caller may retry
func IsConflictError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeShopAccountExists ||
		code == ErrorCodePeriodAlreadyActive
}

// IsInvariantError checks if an error is an illegal state transition or gated write
func IsInvariantError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodePeriodInvalidState ||
		code == ErrorCodePeriodReleased ||
		code == ErrorCodePeriodCorrectionsOnly ||
		code == ErrorCodeTxnInvalidState ||
		code == ErrorCodeTxnDirectionMismatch
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeValidationFailed ||
		code == ErrorCodeValidationMissingField ||
		code == ErrorCodeValidationAmountInvalid ||
		code == ErrorCodeValidationInvalidID
}
