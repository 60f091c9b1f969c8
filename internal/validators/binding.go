package validators

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/homeservices/internal/domain/booking"
)

// Register installs the custom tags on gin's validator engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("hhmm", validateHHMM)
}

// hhmm: 24 hour clock, H:MM or HH:MM.
func validateHHMM(fl validator.FieldLevel) bool {
	return booking.ValidStartTime(fl.Field().String())
}

// Translate turns binding errors into one readable sentence.
func Translate(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "Invalid request body"
	}

	messages := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "email":
			messages = append(messages, "invalid email format")
		case "min":
			messages = append(messages, field+" must be at least "+fe.Param())
		case "max":
			messages = append(messages, field+" must be at most "+fe.Param())
		case "gte":
			messages = append(messages, field+" must be greater than or equal to "+fe.Param())
		case "lte":
			messages = append(messages, field+" must be less than or equal to "+fe.Param())
		case "hhmm":
			messages = append(messages, field+" must be in HH:MM format (e.g., 14:00)")
		case "oneof":
			messages = append(messages, field+" must be one of: "+fe.Param())
		case "uuid":
			messages = append(messages, field+" must be a valid id")
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return strings.Join(messages, ", ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
