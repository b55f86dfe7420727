package devmate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator instance
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// requireFields checks the named struct fields against their validate tags.
// Only the listed fields are checked, so one payload type can carry
// different requirements per operation
func requireFields(payload any, fields ...string) error {
	err := getValidator().StructPartial(payload, fields...)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrIllegalArgument, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fe.Field()+" is required")
		case "gt":
			problems = append(problems, fe.Field()+" must be greater than "+fe.Param())
		default:
			problems = append(problems, fe.Field()+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", ErrIllegalArgument, strings.Join(problems, ", "))
}

// requirePositiveID rejects ids the API can never hold
func requirePositiveID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s must be greater than 0, got %d", ErrIllegalArgument, name, id)
	}
	return nil
}
