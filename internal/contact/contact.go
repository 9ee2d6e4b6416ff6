// Package contact validates the trusted contact and builds the call and
// message links for it and for the help lines.
package contact

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrIncomplete   = errors.New("contact incomplete")
	ErrInvalidPhone = errors.New("invalid phone number")
)

var phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

// Contact is the single trusted contact.
type Contact struct {
	Name  string `validate:"required"`
	Phone string `validate:"required,phone"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register phone validation: %v", err))
	}
	return v
}

// Validate reports ErrIncomplete when either field is empty, otherwise
// ErrInvalidPhone when the phone is not 10 to 15 digits.
func (c Contact) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return ErrIncomplete
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidPhone, c.Phone)
}

// Empty reports whether no contact is set.
func (c Contact) Empty() bool { return c.Name == "" && c.Phone == "" }

func (c Contact) CallURI() string { return CallURI(c.Phone) }

// WhatsAppURI opens a chat with the contact prefilled with a request for help.
func (c Contact) WhatsAppURI() string {
	return WhatsAppURI(c.Phone, fmt.Sprintf("Hola %s, necesito hablar contigo. Estoy pasando por un momento difícil.", c.Name))
}

func CallURI(phone string) string { return "tel:" + phone }

// WhatsAppURI builds a wa.me link with text percent-encoded.
func WhatsAppURI(phone, text string) string {
	if text == "" {
		return "https://wa.me/" + phone
	}
	return "https://wa.me/" + phone + "?text=" + encodeComponent(text)
}

// encodeComponent escapes spaces as %20 rather than '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
