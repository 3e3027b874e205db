package application

import "github.com/mateusmacedo/go-mediator/pkg/domain"

// StructuralValidator checks a request's declared shape and constraints. The
// dispatch engine consumes only the verdict, never the validation algorithm.
type StructuralValidator interface {
	Validate(request domain.Request) []FieldError
}
