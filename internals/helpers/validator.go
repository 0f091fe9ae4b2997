package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs the shared validator instance on a tagged struct.
func Validate(s any) error {
	return validate.Struct(s)
}

// ValidationErrorsToMap converts validator errors to a field → messages map
// for JsonValidationError.
func ValidationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		msg := "is invalid (" + fe.Tag() + ")"
		out[field] = append(out[field], msg)
	}
	return out
}
