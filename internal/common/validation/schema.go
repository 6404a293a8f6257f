package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrValidationFailed wraps every document that does not satisfy its schema.
var ErrValidationFailed = errors.New("validation failed")

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Err converts an invalid result to an error wrapping ErrValidationFailed.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(msgs, "; "))
}

// Validator holds a compiled JSON schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles schemaJSON.
func NewValidator(schemaJSON string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// MustValidator is NewValidator for package-level schemas known to be valid.
func MustValidator(schemaJSON string) *Validator {
	v, err := NewValidator(schemaJSON)
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateBytes validates a raw JSON document.
func (v *Validator) ValidateBytes(document []byte) *ValidationResult {
	return v.validate(gojsonschema.NewBytesLoader(document))
}

// ValidateGo validates an already decoded value.
func (v *Validator) ValidateGo(value interface{}) *ValidationResult {
	return v.validate(gojsonschema.NewGoLoader(value))
}

func (v *Validator) validate(loader gojsonschema.JSONLoader) *ValidationResult {
	result, err := v.schema.Validate(loader)
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: err.Error(),
				Code:    "INVALID_JSON",
			}},
		}
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return &ValidationResult{Valid: false, Errors: errs}
}
