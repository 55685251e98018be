package errors

import (
	"github.com/vortex-fintech/agenda/validator"
)

// FromViolations adapts validator violations into a validation error.
// describe renders the per-field text placed in the "errors" object; the
// violation order is kept.
func FromViolations(vs []validator.Violation, describe func(validator.Violation) string) ErrorResponse {
	out := make([]FieldViolation, 0, len(vs))
	for _, v := range vs {
		d := ""
		if describe != nil {
			d = describe(v)
		}
		out = append(out, FieldViolation{
			Field:       v.Field,
			Reason:      v.Code,
			Description: d,
		})
	}
	return ValidationViolations(out)
}
