package validator

var tagMap = map[string]string{
	"required":  "required",
	"notblank":  "required",
	"omitempty": "optional",
	"email":     "invalid_email",
	"mobile":    "invalid_mobile",
	"landline":  "invalid_landline",
	"max":       "too_long",
	"min":       "too_short",
	"gt":        "too_small",
	"gte":       "too_small_or_equal",
	"len":       "invalid_length",
	"numeric":   "only_numbers_allowed",
	"oneof":     "invalid_choice",
}

func mapTagToCode(tag string) string {
	if code, ok := tagMap[tag]; ok {
		return code
	}
	return "invalid"
}
