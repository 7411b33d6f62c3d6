package common

import (
	"strings"
	"unicode/utf8"
)

// ValidationError is a rule failure whose Message is safe to show callers.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Validator provides validation utilities
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		errors: make([]ValidationError, 0),
	}
}

// Field validates a field and collects errors. Rules run in order; a field
// stops at its first failing rule.
func (v *Validator) Field(fieldName string, value interface{}, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if err := rule(fieldName, value); err != nil {
			v.errors = append(v.errors, *err)
			break
		}
	}
	return v
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Error returns the first failure as an AppError, or nil.
func (v *Validator) Error() error {
	if !v.HasErrors() {
		return nil
	}
	first := v.errors[0]
	return NewAppError(CodeValidation, first.Message, ErrValidation)
}

// ValidationRule represents a single validation rule
type ValidationRule func(fieldName string, value interface{}) *ValidationError

func asString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", true
		}
		return *v, true
	}
	return "", false
}

// Required fails on nil or whitespace-only strings.
func Required(message string) ValidationRule {
	return func(fieldName string, value interface{}) *ValidationError {
		str, ok := asString(value)
		if value == nil || (ok && strings.TrimSpace(str) == "") {
			return &ValidationError{Field: fieldName, Value: value, Message: message}
		}
		return nil
	}
}

// MinWords fails when a string has fewer than min whitespace-delimited words.
func MinWords(min int, message string) ValidationRule {
	return func(fieldName string, value interface{}) *ValidationError {
		str, ok := asString(value)
		if !ok {
			return nil
		}
		if len(strings.Fields(str)) < min {
			return &ValidationError{Field: fieldName, Value: len(strings.Fields(str)), Message: message}
		}
		return nil
	}
}

// MaxLength fails when a string has more than max characters.
func MaxLength(max int, message string) ValidationRule {
	return func(fieldName string, value interface{}) *ValidationError {
		str, ok := asString(value)
		if !ok {
			return nil
		}
		if n := utf8.RuneCountInString(str); n > max {
			return &ValidationError{Field: fieldName, Value: n, Message: message}
		}
		return nil
	}
}
