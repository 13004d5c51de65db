package domain

import (
	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validator returns the shared validator so sibling packages validate with
// the same configuration.
func Validator() *validator.Validate { return validate }
