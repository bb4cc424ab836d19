package store

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PhoneDigits is the number of digits a volunteer phone must normalize to
const PhoneDigits = 10

type volunteerInput struct {
	Name  string `validate:"required"`
	Phone string `validate:"len=10,numeric"`
}

var validate = validator.New()

// NormalizePhone strips every non-digit character
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validateVolunteer normalizes name and phone and checks them
func validateVolunteer(name, phone string) (volunteerInput, error) {
	in := volunteerInput{
		Name:  strings.TrimSpace(name),
		Phone: NormalizePhone(phone),
	}

	err := validate.Struct(in)
	if err == nil {
		return in, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return in, err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Name":
			verr.Fields = append(verr.Fields, FieldError{Field: "name", Reason: "is required"})
		case "Phone":
			verr.Fields = append(verr.Fields, FieldError{Field: "phone", Reason: "must have exactly 10 digits"})
		default:
			verr.Fields = append(verr.Fields, FieldError{Field: strings.ToLower(fe.Field()), Reason: "failed " + fe.Tag()})
		}
	}
	return in, verr
}
