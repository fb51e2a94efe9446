package health

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Arawerawer/RouteLink/src/core/helpers"
)

// Check reports database connectivity with a trivial probe query. It is
// the only unauthenticated endpoint; failures are a 503 carrying the
// underlying error, never a 500.
func Check(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var probe struct {
			CurrentTime string
		}
		if err := db.Raw("SELECT CURRENT_TIMESTAMP AS current_time").Scan(&probe).Error; err != nil {
			return helpers.HandleError(c, fiber.StatusServiceUnavailable, "Database unavailable", err)
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"db":        "connected",
			"timestamp": probe.CurrentTime,
		})
	}
}
