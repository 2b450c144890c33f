package entities

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct tag validation on a request entity.
func Validate(v interface{}) error {
	return validate.Struct(v)
}
