package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/student-records/internal/apperror"
)

// MsgMissingFields is the status text for any empty required field.
const MsgMissingFields = "Please enter all the fields"

// RegisterInput is the signup form.
type RegisterInput struct {
	Username string `form:"username" validate:"required,max=80"`
	Password string `form:"password" validate:"required,max=120"`
}

// LoginInput is the login form.
type LoginInput struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// StudentInput is the new/edit student form. PostalCode is optional.
// The max lengths match the students table column widths.
type StudentInput struct {
	Name       string `form:"name"        validate:"required,max=100"`
	City       string `form:"city"        validate:"required,max=50"`
	Address    string `form:"address"     validate:"required,max=200"`
	PostalCode string `form:"postal_code" validate:"max=10"`
}

// normalize trims surrounding whitespace so "   " counts as empty.
func (in *StudentInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.Address = strings.TrimSpace(in.Address)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
}

// validate is shared by all services. validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form name ("postal_code"), not the Go name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateInput checks in against its validate tags and converts the first
// failure into an apperror.ValidationFailed.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validating input: %w", err)
	}

	// A missing field wins over a too-long one: the form shows one message.
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return apperror.ValidationFailed(fe.Field(), MsgMissingFields)
		}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "max":
		return apperror.ValidationFailed(fe.Field(),
			fmt.Sprintf("%s must be %s characters or less", fieldLabel(fe.Field()), fe.Param()))
	default:
		return apperror.ValidationFailed(fe.Field(),
			fmt.Sprintf("%s is invalid", fieldLabel(fe.Field())))
	}
}

// fieldLabel turns "postal_code" into "Postal code".
func fieldLabel(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
