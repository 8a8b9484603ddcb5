package utils

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"
	"unicode"

	"filmorate/internal/data/entity"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

var validate = newValidator()

// now is replaced in tests.
var now = time.Now

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	mustRegister(v, "notblank", notBlank)
	mustRegister(v, "nowhitespace", noWhitespace)
	mustRegister(v, "releasedate", notBeforeFirstScreening)
	mustRegister(v, "notfuture", notInFuture)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func noWhitespace(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

// Unparseable dates pass; the datetime tag reports them.
func notBeforeFirstScreening(fl validator.FieldLevel) bool {
	d, err := time.Parse(DateLayout, fl.Field().String())
	if err != nil {
		return true
	}
	return !d.Before(entity.EarliestReleaseDate)
}

func notInFuture(fl validator.FieldLevel) bool {
	d, err := time.Parse(DateLayout, fl.Field().String())
	if err != nil {
		return true
	}
	return !d.After(now())
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "notblank":
		return "Must not be blank"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", err.Param())
	case "datetime":
		return fmt.Sprintf("Must be a date in %s format", err.Param())
	case "nowhitespace":
		return "Must not contain whitespace"
	case "releasedate":
		return "Release date must not be earlier than " + entity.EarliestReleaseDate.Format(DateLayout)
	case "notfuture":
		return "Must not be in the future"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for _, field := range slices.Sorted(maps.Keys(errors)) {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errors[field]))
	}
	return strings.Join(msgs, "; ")
}
