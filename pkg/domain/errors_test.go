package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantKind ErrorKind
		wantCode string
	}{
		{
			name:     "entity not found",
			err:      NewEntityNotFound("User", "abc"),
			wantKind: ErrorKindNotFound,
			wantCode: "ENTITY_NOT_FOUND",
		},
		{
			name:     "aggregate not found",
			err:      NewAggregateNotFound("Order", 42),
			wantKind: ErrorKindNotFound,
			wantCode: "AGGREGATE_NOT_FOUND",
		},
		{
			name:     "business rule violation",
			err:      NewBusinessRuleViolation("max_seats", "no seats left"),
			wantKind: ErrorKindBusinessRule,
			wantCode: "BUSINESS_RULE_VIOLATION",
		},
		{
			name:     "domain validation",
			err:      NewDomainValidation("email", "", "must not be empty"),
			wantKind: ErrorKindValidation,
			wantCode: "DOMAIN_VALIDATION_ERROR",
		},
		{
			name:     "invalid operation",
			err:      NewInvalidOperation("close", "already closed"),
			wantKind: ErrorKindInvalidOperation,
			wantCode: "INVALID_OPERATION",
		},
		{
			name:     "duplicate entity",
			err:      NewDuplicateEntity("User", "email", "a@b.c"),
			wantKind: ErrorKindConflict,
			wantCode: "DUPLICATE_ENTITY",
		},
		{
			name:     "version mismatch",
			err:      NewVersionMismatch("User", "abc", 3, 5),
			wantKind: ErrorKindConflict,
			wantCode: "AGGREGATE_VERSION_MISMATCH",
		},
		{
			name:     "authentication",
			err:      NewAuthentication("bad credentials"),
			wantKind: ErrorKindAuthentication,
			wantCode: "AUTHENTICATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.err.Kind)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestErrorDetails(t *testing.T) {
	err := NewEntityNotFound("User", "abc-123")

	require.NotNil(t, err.Details)
	assert.Equal(t, "User", err.Details["entity_type"])
	assert.Equal(t, "abc-123", err.Details["entity_id"])
}

func TestVersionMismatchDetails(t *testing.T) {
	err := NewVersionMismatch("User", "abc", 3, 5)

	assert.Equal(t, "3", err.Details["expected_version"])
	assert.Equal(t, "5", err.Details["actual_version"])
	assert.Contains(t, err.Message, "Expected: 3")
	assert.Contains(t, err.Message, "Actual: 5")
}

func TestWithDetailChains(t *testing.T) {
	err := NewError(ErrorKindBusinessRule, "SOME_RULE", "broken").
		WithDetail("a", "1").
		WithDetail("b", "2")

	assert.Equal(t, "1", err.Details["a"])
	assert.Equal(t, "2", err.Details["b"])
}
