package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the registered struct validations
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

var tagMessages = map[string]string{
	"required": "is required",
	"oneof":    "must be one of: %s",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
}

// FormatFirstError renders the first validation failure as a short
// operator-facing message.
func FormatFirstError(err error) string {
	if err == nil {
		return "invalid request"
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "invalid request"
	}

	first := validationErrors[0]
	field := strings.ToLower(first.Field())
	msg, ok := tagMessages[first.Tag()]
	if !ok {
		msg = "is invalid"
	}
	if strings.Contains(msg, "%s") {
		param := first.Param()
		if first.Tag() == "oneof" {
			param = strings.Join(strings.Fields(param), ", ")
		}
		msg = strings.Replace(msg, "%s", param, 1)
	}
	return field + " " + msg
}
