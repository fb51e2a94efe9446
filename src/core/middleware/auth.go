package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Arawerawer/RouteLink/src/core/config"
	"github.com/Arawerawer/RouteLink/src/core/helpers"
)

// Protected middleware for validating JWT tokens
func Protected() fiber.Handler {
	jwtSecret := config.Config("SUPABASE_JWT_SECRET")
	if jwtSecret == "" {
		panic("SUPABASE_JWT_SECRET is not set in the environment variables") // Panic to prevent startup
	}

	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(jwtSecret)},
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			// Extract user claims and attach user_id to the context
			user := c.Locals("user").(*jwt.Token)
			claims := user.Claims.(jwt.MapClaims)
			if userID, ok := claims["sub"].(string); ok && userID != "" {
				c.Locals("user_id", userID)
				return c.Next()
			}
			return helpers.HandleError(c, fiber.StatusUnauthorized, "User ID missing in token", nil)
		},
	})
}

// jwtError handles JWT-related errors. Every failure is a 401 so the
// handler chain never runs without a resolved identity.
func jwtError(c *fiber.Ctx, err error) error {
	return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing JWT", nil)
}
