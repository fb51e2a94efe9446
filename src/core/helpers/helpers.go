package helpers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Initialize a validator instance using go-playground's validator package
var Validator = validator.New()

// Validate checks the struct fields against the specified validation tags.
func Validate(val interface{}) error {
	return Validator.Struct(val)
}

// HandleSuccess sends the uniform success envelope.
func HandleSuccess(context *fiber.Ctx, statusCode int, data interface{}) error {
	return context.Status(statusCode).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// HandleError sends the uniform error envelope. A non-nil err is appended
// to the message; status-carrying failures pass nil so the message stands
// alone.
func HandleError(context *fiber.Ctx, statusCode int, message string, err error) error {
	if err != nil {
		message = message + ": " + err.Error()
	}
	return context.Status(statusCode).JSON(fiber.Map{
		"statusCode": statusCode,
		"message":    message,
	})
}
