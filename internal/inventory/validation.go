package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is returned when the controller rejects input before
// reaching storage.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New(validator.WithRequiredStructEnabled())

// newItemInput holds the fields checked before an item is created.
type newItemInput struct {
	Name     string `validate:"required"`
	Quantity int    `validate:"gt=0"`
}

// registrationInput holds the fields checked before a user is created.
type registrationInput struct {
	Username    string `validate:"required"`
	Password    string `validate:"required"`
	PhoneNumber string `validate:"required,numeric,len=10"`
}

// check validates v and wraps failures in ErrInvalidInput.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("%s failed %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(messages, ", "))
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
