// Package validator wraps go-playground struct validation and flattens
// the result into a field -> tag map for the error envelope's details.
package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the `validate` tags on v. A nil return means the value
// passed; otherwise the map holds one failed tag per offending field.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	} else {
		fields["_"] = err.Error()
	}
	return fields
}
