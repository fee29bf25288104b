package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"notblank": "{field} must not be blank",
		"unique":   "{field} must not contain duplicates",
	}

	// list bounds count items rather than compare values
	listMessages = map[string]string{
		"min": "{field} must contain at least {param} items",
		"max": "{field} must contain at most {param} items",
	}
)

func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		tmpl := messages[valErr.Tag()]

		if kind := valErr.Kind(); kind == reflect.Slice || kind == reflect.Array {
			if listTmpl, ok := listMessages[valErr.Tag()]; ok {
				tmpl = listTmpl
			}
		}

		if tmpl != "" {
			return strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(tmpl)
		}
	}

	return valErrors.Error()
}
