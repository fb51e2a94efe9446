package locations

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Arawerawer/RouteLink/src/core/helpers"
	"github.com/Arawerawer/RouteLink/src/core/models"
)

type locationRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// List returns every location owned by the caller, newest first.
func List(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing user_id", nil)
		}

		rows := make([]models.Location, 0)
		if result := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows); result.Error != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch locations", result.Error)
		}

		return helpers.HandleSuccess(c, fiber.StatusOK, rows)
	}
}

// Create inserts a location owned by the caller and returns the new row.
func Create(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing user_id", nil)
		}

		body := new(locationRequest)
		if err := c.BodyParser(body); err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
		}
		if err := helpers.Validate(body); err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Missing required fields: name, address", nil)
		}

		location := models.Location{
			UserID:  userID,
			Name:    body.Name,
			Address: body.Address,
		}
		if result := db.Create(&location); result.Error != nil {
			log.Printf("Error creating location: %v\n", result.Error)
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to create location", result.Error)
		}

		return helpers.HandleSuccess(c, fiber.StatusCreated, location)
	}
}

// Update rewrites the caller's location name and address. A zero-row
// update means the id is missing or owned by someone else; both collapse
// to the same 404.
func Update(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing user_id", nil)
		}

		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid location id", nil)
		}

		body := new(locationRequest)
		if err := c.BodyParser(body); err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
		}
		if err := helpers.Validate(body); err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Missing required fields: name, address", nil)
		}

		result := db.Model(&models.Location{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]interface{}{"name": body.Name, "address": body.Address})
		if result.Error != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update location", result.Error)
		}
		if result.RowsAffected == 0 {
			return helpers.HandleError(c, fiber.StatusNotFound, "Location not found", nil)
		}

		var location models.Location
		if err := db.Where("id = ? AND user_id = ?", id, userID).First(&location).Error; err != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update location", err)
		}

		return helpers.HandleSuccess(c, fiber.StatusOK, location)
	}
}

// Delete removes the caller's location and returns the removed row.
func Delete(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing user_id", nil)
		}

		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid location id", nil)
		}

		var location models.Location
		err = db.Where("id = ? AND user_id = ?", id, userID).First(&location).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Location not found", nil)
		}
		if err != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to delete location", err)
		}

		if result := db.Delete(&location); result.Error != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to delete location", result.Error)
		}

		return helpers.HandleSuccess(c, fiber.StatusOK, location)
	}
}

// callerID resolves the authenticated user id attached by the JWT
// middleware. The owner always comes from the token, never the request.
func callerID(c *fiber.Ctx) (uuid.UUID, error) {
	userId, ok := c.Locals("user_id").(string)
	if !ok || userId == "" {
		log.Println("Invalid or missing userID")
		return uuid.Nil, errors.New("missing user_id")
	}
	return uuid.Parse(userId)
}
