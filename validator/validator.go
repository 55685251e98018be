// Package validator wraps go-playground/validator with the tags and field
// naming used by contact payloads.
//
// Fields are reported by their JSON names, so violations line up with the
// wire contract ("nome", "celular", ...).
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vortex-fintech/agenda/phone"
)

var v *validator.Validate

func init() {
	v = validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	mustRegister("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister("mobile", func(fl validator.FieldLevel) bool {
		return phone.IsMobile(fl.Field().String())
	})
	mustRegister("landline", func(fl validator.FieldLevel) bool {
		return phone.IsLandline(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}

func Instance() *validator.Validate {
	return v
}

// Violation is one failed rule on one field.
type Violation struct {
	Field string // JSON path without the root type, e.g. "celular"
	Tag   string // failed tag, e.g. "max"
	Param string // tag parameter, e.g. "100"
	Code  string // stable reason code, e.g. "too_long"
}

// Check validates i and returns the violations in struct field order.
// A value that cannot be validated yields a single "_error" violation.
func Check(i any) []Violation {
	err := v.Struct(i)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []Violation{{Field: "_error", Tag: "", Code: "validation_failed"}}
	}

	out := make([]Violation, 0, len(errs))
	for _, e := range errs {
		out = append(out, Violation{
			Field: fieldPath(e),
			Tag:   e.Tag(),
			Param: e.Param(),
			Code:  mapTagToCode(e.Tag()),
		})
	}
	return out
}

// Validate is the map form of Check: field -> reason code.
func Validate(i any) map[string]string {
	vs := Check(i)
	if len(vs) == 0 {
		return nil
	}
	out := make(map[string]string, len(vs))
	for _, x := range vs {
		if _, seen := out[x.Field]; !seen {
			out[x.Field] = x.Code
		}
	}
	return out
}

// fieldPath drops the root type from the namespace: "Contact.celular" -> "celular".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 && i+1 < len(ns) {
		return ns[i+1:]
	}
	return e.Field()
}
