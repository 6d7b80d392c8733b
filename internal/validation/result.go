// Package validation checks submitted fields for each entity and reports
// problems as a field-name to message mapping.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Result is the outcome of a single validation step. A field carries at
// most one message: the first rule it fails.
type Result struct {
	Errors map[string]string
}

// IsValid reports whether no field failed.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *Result) add(field, message string) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	if _, exists := r.Errors[field]; !exists {
		r.Errors[field] = message
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		registerValidators(validate)
	})
	return validate
}

// check runs the struct tags on data and converts every failure through
// messages, keyed by "field.tag". Unlisted tags fall back to "field".
func check(data any, messages map[string]string) Result {
	var res Result
	err := instance().Struct(data)
	if err == nil {
		return res
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		res.add("error", err.Error())
		return res
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg, ok = messages[field]
		}
		if !ok {
			msg = "Invalid value"
		}
		res.add(field, msg)
	}
	return res
}
