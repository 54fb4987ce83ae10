// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules defined in
// struct tags and converts validation errors into field errors
// the client can understand.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON names so field errors match
// what the client actually sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s against its `validate` tags. It is what payload types
// call from their Validate method.
func Struct(s any) error {
	return validate.Struct(s)
}
