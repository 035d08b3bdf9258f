package definition

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Problem is one invalid field of a definition file.
type Problem struct {
	// Field is the path of the field, e.g. "enums[1].name".
	Field string

	// Message describes what is wrong with it.
	Message string
}

// ValidationError reports every problem found in a definition file.
type ValidationError struct {
	File     string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Field + ": " + p.Message
	}
	prefix := "invalid definition"
	if e.File != "" {
		prefix = e.File + ": " + prefix
	}
	return prefix + ": " + strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateEnum, Enum{})
	return v
}

// validateEnum checks constraints that span fields of one Enum.
func validateEnum(sl validator.StructLevel) {
	e := sl.Current().Interface().(Enum)
	if len(e.EnumNames) > len(e.Enum) {
		sl.ReportError(e.EnumNames, "enumNames", "EnumNames", "enumnames_len", fmt.Sprint(len(e.Enum)))
	}
	for i, v := range e.Enum {
		if _, err := Normalize(v); err != nil {
			sl.ReportError(e.Enum, fmt.Sprintf("enum[%d]", i), "Enum", "scalar", "")
		}
	}
}

// Validate checks f against the definition file rules.
func Validate(f *File) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	verr := &ValidationError{File: f.Path}
	for _, fe := range valErrs {
		verr.Problems = append(verr.Problems, Problem{
			Field:   fieldPath(fe),
			Message: formatValidationError(fe),
		})
	}
	return verr
}

// fieldPath strips the root struct name from the error namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "enumnames_len":
		return fmt.Sprintf("must have at most %s entries, one per enum value", fe.Param())
	case "scalar":
		return "must be a string, number, boolean or null"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
