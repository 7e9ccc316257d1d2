// ABOUTME: Struct validation for models using go-playground/validator.
// ABOUTME: Translates validator field errors into ValidationError with JSON field names.
package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks the coffee's name, attribute ranges and commerce fields.
func (c *Coffee) Validate() error {
	return validateStruct(c)
}

// Validate checks that all six answers are present and drawn from their enumerations.
func (p *TasteProfile) Validate() error {
	if p == nil {
		return &ValidationError{Fields: []FieldError{{Field: "profile", Message: "is required"}}}
	}
	return validateStruct(p)
}

// Validate checks the user's email address.
func (u *User) Validate() error {
	return validateStruct(u)
}

func validateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "http_url":
		return "must be an http or https URL"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
