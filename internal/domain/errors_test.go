package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Error(t *testing.T) {
	err := Errorf(ErrorCodePeriodNotFound, "settlement period %s not found", "abc")
	assert.Equal(t, "PERIOD_NOT_FOUND: settlement period abc not found", err.Error())

	wrapped := WrapError(ErrorCodeValidationFailed, "invalid transaction type", errors.New("unknown transaction type \"X\""))
	assert.Equal(t, "VALIDATION_FAILED: invalid transaction type: unknown transaction type \"X\"", wrapped.Error())
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(ErrorCodeDatabaseError, "failed", cause)
	assert.ErrorIs(t, err, cause)
}

func TestGetErrorCode_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", Errorf(ErrorCodeTxnInvalidState, "nope"))
	assert.Equal(t, ErrorCodeTxnInvalidState, GetErrorCode(err))
	assert.True(t, IsDomainError(err, ErrorCodeTxnInvalidState))
	assert.False(t, IsDomainError(err, ErrorCodeTxnNotFound))

	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetErrorCode(nil))
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		code       ErrorCode
		notFound   bool
		conflict   bool
		invariant  bool
		validation bool
	}{
		{code: ErrorCodeShopAccountNotFound, notFound: true},
		{code: ErrorCodePeriodNotFound, notFound: true},
		{code: ErrorCodeActivePeriodNotFound, notFound: true},
		{code: ErrorCodeTxnNotFound, notFound: true},
		{code: ErrorCodeShopAccountExists, conflict: true},
		{code: ErrorCodePeriodAlreadyActive, conflict: true},
		{code: ErrorCodePeriodInvalidState, invariant: true},
		{code: ErrorCodePeriodReleased, invariant: true},
		{code: ErrorCodePeriodCorrectionsOnly, invariant: true},
		{code: ErrorCodeTxnInvalidState, invariant: true},
		{code: ErrorCodeTxnDirectionMismatch, invariant: true},
		{code: ErrorCodeValidationFailed, validation: true},
		{code: ErrorCodeValidationMissingField, validation: true},
		{code: ErrorCodeValidationAmountInvalid, validation: true},
		{code: ErrorCodeValidationInvalidID, validation: true},
		{code: ErrorCodeDatabaseError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := NewDomainError(tt.code, "msg")
			assert.Equal(t, tt.notFound, IsNotFoundError(err))
			assert.Equal(t, tt.conflict, IsConflictError(err))
			assert.Equal(t, tt.invariant, IsInvariantError(err))
			assert.Equal(t, tt.validation, IsValidationError(err))
		})
	}
}

func TestDomainError_WithDetail(t *testing.T) {
	err := Errorf(ErrorCodeTxnNotFound, "missing").WithDetail("transaction_id", "t-1")
	require.NotNil(t, err.Details)
	assert.Equal(t, "t-1", err.Details["transaction_id"])
}
