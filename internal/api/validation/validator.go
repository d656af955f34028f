package validation

import (
	"time"

	"github.com/persimmonlabs/hercules-gym-log-sub005/pkg/problem"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var equipmentValues = map[string]bool{
	"barbell":        true,
	"smith_machine":  true,
	"trap_bar":       true,
	"dumbbell":       true,
	"kettlebell":     true,
	"cable":          true,
	"machine":        true,
	"bench":          true,
	"bodyweight":     true,
	"bands":          true,
	"cardio_machine": true,
}

func init() {
	validate = validator.New()

	// Register custom timezone validator
	validate.RegisterValidation("timezone", func(fl validator.FieldLevel) bool {
		tz := fl.Field().String()
		_, err := time.LoadLocation(tz)
		return err == nil
	})

	// Register custom equipment validator
	validate.RegisterValidation("equipment", func(fl validator.FieldLevel) bool {
		return equipmentValues[fl.Field().String()]
	})
}

// Validate validates a struct and returns field errors
func Validate(s interface{}) []problem.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors []problem.FieldError
	for _, err := range err.(validator.ValidationErrors) {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   toSnakeCase(err.Field()),
			Message: getValidationMessage(err),
		})
	}
	return fieldErrors
}

func getValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + err.Param()
	case "max":
		return "must be at most " + err.Param()
	case "oneof":
		return "must be one of: " + err.Param()
	case "gtfield":
		return "must be greater than " + toSnakeCase(err.Param())
	case "timezone":
		return "must be a valid IANA timezone"
	case "equipment":
		return "must be a known equipment class"
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
	var result []byte
	for i, c := range s {
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				result = append(result, '_')
			}
			result = append(result, byte(c+'a'-'A'))
		} else {
			result = append(result, byte(c))
		}
	}
	return string(result)
}
