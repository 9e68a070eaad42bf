package usecases

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidUpdate = errors.New("invalid update")

// ValidateUpdate checks an outgoing update against its validate tags.
func ValidateUpdate(v *validator.Validate, update any) error {
	if err := v.Struct(update); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %q", ErrInvalidUpdate, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}
	return nil
}
