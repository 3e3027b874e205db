package domain

import "fmt"

// ErrorKind buckets domain errors for translation at the dispatch boundary.
// Kinds deliberately say nothing about transport status codes; that mapping
// belongs to the application layer.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindNotFound
	ErrorKindBusinessRule
	ErrorKindValidation
	ErrorKindConflict
	ErrorKindAuthentication
	ErrorKindInvalidOperation
)

// Error is an expected domain failure: a business rule refused the operation,
// an entity was missing, a version check lost a race. It carries a stable
// machine-readable code and optional structured details.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds a domain error with an explicit kind and code.
func NewError(kind ErrorKind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// WithDetail attaches a detail entry and returns the same error for chaining.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// NewEntityNotFound reports a missing entity.
func NewEntityNotFound(entityType string, entityID any) *Error {
	return NewError(ErrorKindNotFound, "ENTITY_NOT_FOUND",
		fmt.Sprintf("%s with id '%v' not found", entityType, entityID)).
		WithDetail("entity_type", entityType).
		WithDetail("entity_id", fmt.Sprint(entityID))
}

// NewAggregateNotFound reports a missing aggregate root.
func NewAggregateNotFound(aggregateType string, aggregateID any) *Error {
	return NewError(ErrorKindNotFound, "AGGREGATE_NOT_FOUND",
		fmt.Sprintf("%s aggregate with id '%v' not found", aggregateType, aggregateID)).
		WithDetail("aggregate_type", aggregateType).
		WithDetail("aggregate_id", fmt.Sprint(aggregateID))
}

// NewBusinessRuleViolation reports a violated business rule.
func NewBusinessRuleViolation(rule, message string) *Error {
	return NewError(ErrorKindBusinessRule, "BUSINESS_RULE_VIOLATION",
		fmt.Sprintf("business rule '%s' violated: %s", rule, message)).
		WithDetail("rule", rule)
}

// NewDomainValidation reports a value that failed domain-level validation.
func NewDomainValidation(field string, value any, message string) *Error {
	return NewError(ErrorKindValidation, "DOMAIN_VALIDATION_ERROR",
		fmt.Sprintf("validation failed for %s: %s", field, message)).
		WithDetail("field", field).
		WithDetail("value", fmt.Sprint(value))
}

// NewInvalidOperation reports an operation the current state disallows.
func NewInvalidOperation(operation, reason string) *Error {
	return NewError(ErrorKindInvalidOperation, "INVALID_OPERATION",
		fmt.Sprintf("operation '%s' is invalid: %s", operation, reason)).
		WithDetail("operation", operation)
}

// NewDuplicateEntity reports an entity that already exists.
func NewDuplicateEntity(entityType, identifierField string, identifierValue any) *Error {
	return NewError(ErrorKindConflict, "DUPLICATE_ENTITY",
		fmt.Sprintf("%s with %s '%v' already exists", entityType, identifierField, identifierValue)).
		WithDetail("entity_type", entityType).
		WithDetail("identifier_field", identifierField).
		WithDetail("identifier_value", fmt.Sprint(identifierValue))
}

// NewVersionMismatch reports a lost optimistic-concurrency race. Callers may
// re-read and retry; the dispatch engine never retries on its own.
func NewVersionMismatch(aggregateType string, aggregateID any, expected, actual int64) *Error {
	return NewError(ErrorKindConflict, "AGGREGATE_VERSION_MISMATCH",
		fmt.Sprintf("%s with id '%v' version mismatch. Expected: %d, Actual: %d",
			aggregateType, aggregateID, expected, actual)).
		WithDetail("aggregate_type", aggregateType).
		WithDetail("aggregate_id", fmt.Sprint(aggregateID)).
		WithDetail("expected_version", fmt.Sprint(expected)).
		WithDetail("actual_version", fmt.Sprint(actual))
}

// NewAuthentication reports a failed authentication check.
func NewAuthentication(message string) *Error {
	return NewError(ErrorKindAuthentication, "AUTHENTICATION_ERROR", message)
}
