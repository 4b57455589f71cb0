package apiutil

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sportsbase/roster/pkg/errors"
)

// RegisterJSONTagNames makes gin's validator report field names by their
// json/form tag instead of the Go struct field name.
func RegisterJSONTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "" {
			tag = fld.Tag.Get("form")
		}
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// TranslateBindingError converts a gin binding failure into the
// Unprocessable error kind with per-field details.
func TranslateBindingError(err error) *errors.Error {
	validationErr := errors.Unprocessable.Explain("request validation failed").Wrap(err)
	var fieldsError validator.ValidationErrors
	if errors.As(err, &fieldsError) {
		for _, fieldErr := range fieldsError {
			validationErr = validationErr.WithField(fieldErr.Tag(), fieldErr.Field(), fieldErr.Param())
		}
	}
	return validationErr
}
