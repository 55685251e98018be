package contact

import (
	"fmt"
	"strings"

	"github.com/vortex-fintech/agenda/validator"
)

// Wire field names.
const (
	FieldName     = "nome"
	FieldEmail    = "email"
	FieldMobile   = "celular"
	FieldLandline = "telefone"
	FieldFavorite = "favorito"
	FieldActive   = "ativo"
)

var fieldLabels = map[string]string{
	FieldName:     "Nome",
	FieldEmail:    "Email",
	FieldMobile:   "Celular",
	FieldLandline: "Telefone",
	FieldFavorite: "Favorito",
	FieldActive:   "Ativo",
}

// Label is the human name of a wire field; unknown fields map to themselves.
func Label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// FormMessage is the message shown next to an invalid form field.
func FormMessage(v validator.Violation) string {
	switch v.Tag {
	case "required", "notblank":
		return "Este campo é obrigatório"
	case "email":
		return "Email inválido"
	case "max":
		return fmt.Sprintf("Máximo de %s caracteres", v.Param)
	case "mobile":
		return "Celular deve ter 11 dígitos (ex: 11999999999)"
	case "landline":
		return "Telefone deve ter 10 dígitos (ex: 1133333333)"
	default:
		return "Campo inválido"
	}
}

// ServerMessage is the message the backend reports for a violation.
func ServerMessage(v validator.Violation) string {
	label := Label(v.Field)
	switch v.Tag {
	case "required", "notblank":
		return label + " é obrigatório"
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", label, v.Param)
	case "email":
		return "Email deve ser válido"
	case "mobile":
		return "Celular deve ter 11 dígitos"
	case "landline":
		return "Telefone deve ter 10 dígitos"
	default:
		return "Campo inválido"
	}
}

// Summary renders violations as "Label: message; Label: message".
func Summary(vs []validator.Violation) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, Label(v.Field)+": "+ServerMessage(v))
	}
	return strings.Join(parts, "; ")
}
