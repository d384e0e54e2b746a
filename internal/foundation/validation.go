package foundation

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/doccheck/internal/foundation/errors"
)

// Validator represents a validation function.
type Validator[T any] func(T) ValidationResult

// ValidationResult contains the result of a validation operation.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// FieldError is one rejected configuration field. Field is the dotted YAML
// path, e.g. "site.ignore_warnings[2].pattern".
type FieldError struct {
	Field   string
	Code    string // required, min, one_of, regexp, duration
	Message string
	Value   any
}

// Error implements the error interface.
func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("field '%s': %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// Valid creates a successful validation result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid creates a failed validation result with errors.
func Invalid(errors ...FieldError) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: errors,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(field, code, message string) FieldError {
	return FieldError{
		Field:   field,
		Code:    code,
		Message: message,
	}
}

// Combine merges multiple validation results.
func (vr ValidationResult) Combine(other ValidationResult) ValidationResult {
	if vr.Valid && other.Valid {
		return Valid()
	}

	var allErrors []FieldError
	allErrors = append(allErrors, vr.Errors...)
	allErrors = append(allErrors, other.Errors...)

	return Invalid(allErrors...)
}

// ToError folds all field errors into one validation-category error, or nil.
func (vr ValidationResult) ToError() error {
	if vr.Valid {
		return nil
	}
	messages := make([]string, 0, len(vr.Errors))
	fields := make([]string, 0, len(vr.Errors))
	for _, fe := range vr.Errors {
		messages = append(messages, fe.Error())
		fields = append(fields, fe.Field)
	}
	return errors.ValidationError("invalid configuration: "+strings.Join(messages, "; ")).
		WithContext("fields", strings.Join(fields, ",")).
		Build()
}

// ValidatorChain allows chaining multiple validators.
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain.
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Validate runs all validators in the chain.
func (vc *ValidatorChain[T]) Validate(value T) ValidationResult {
	result := Valid()

	for _, validator := range vc.validators {
		result = result.Combine(validator(value))
	}

	return result
}

// Prefixed returns a copy of the result whose field names are prefixed with prefix.
func (vr ValidationResult) Prefixed(prefix string) ValidationResult {
	if vr.Valid {
		return vr
	}
	out := make([]FieldError, 0, len(vr.Errors))
	for _, fe := range vr.Errors {
		fe.Field = prefix + fe.Field
		out = append(out, fe)
	}
	return Invalid(out...)
}

// StringNotEmpty validates that a string is not blank.
func StringNotEmpty(field string) Validator[string] {
	return func(value string) ValidationResult {
		if strings.TrimSpace(value) == "" {
			return Invalid(NewValidationError(field, "required", "field is required"))
		}
		return Valid()
	}
}

// IntAtLeast validates that an integer is not below minimum.
func IntAtLeast(field string, minimum int) Validator[int] {
	return func(value int) ValidationResult {
		if value < minimum {
			fe := NewValidationError(field, "min", fmt.Sprintf("must be at least %d", minimum))
			fe.Value = value
			return Invalid(fe)
		}
		return Valid()
	}
}

// OneOf validates that a value is in a set of allowed values.
func OneOf[T comparable](field string, allowed []T) Validator[T] {
	allowedSet := make(map[T]bool, len(allowed))
	for _, item := range allowed {
		allowedSet[item] = true
	}

	return func(value T) ValidationResult {
		if !allowedSet[value] {
			return Invalid(NewValidationError(
				field,
				"one_of",
				fmt.Sprintf("field must be one of: %v", allowed),
			))
		}
		return Valid()
	}
}
