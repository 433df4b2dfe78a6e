package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates request payloads tagged with `validate:"..."` and folds
// failures into the validation sentinel so handlers answer 400.
func Struct(s any) error {
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return nil
}
