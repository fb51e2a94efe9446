package schedules

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Arawerawer/RouteLink/src/core/helpers"
	"github.com/Arawerawer/RouteLink/src/core/models"
)

type createScheduleRequest struct {
	LocationID string  `json:"location_id" validate:"required"`
	Note       *string `json:"note"`
}

type updateScheduleRequest struct {
	Completed *bool   `json:"completed"`
	Note      *string `json:"note"`
}

// List returns the caller's schedules joined with their location's name
// and address, oldest first.
func List(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing user_id", nil)
		}

		rows := make([]models.ScheduleWithLocation, 0)
		result := db.Table("schedules").
			Select("schedules.id, schedules.location_id, schedules.note, schedules.completed, schedules.created_at, locations.name, locations.address").
			Joins("JOIN locations ON schedules.location_id = locations.id").
			Where("schedules.user_id = ?", userID).
			Order("schedules.created_at ASC").
			Scan(&rows)
		if result.Error != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch schedules", result.Error)
		}

		return helpers.HandleSuccess(c, fiber.StatusOK, rows)
	}
}

// Create inserts a schedule for the caller. The note is optional and
// stored as NULL when absent.
func Create(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing user_id", nil)
		}

		body := new(createScheduleRequest)
		if err := c.BodyParser(body); err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
		}
		if err := helpers.Validate(body); err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Missing required field: location_id", nil)
		}

		locationID, err := uuid.Parse(body.LocationID)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid location_id", nil)
		}

		schedule := models.Schedule{
			UserID:     userID,
			LocationID: locationID,
			Note:       body.Note,
		}
		if result := db.Create(&schedule); result.Error != nil {
			log.Printf("Error creating schedule: %v\n", result.Error)
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to create schedule", result.Error)
		}

		return helpers.HandleSuccess(c, fiber.StatusCreated, schedule)
	}
}

// Update changes exactly one field of the caller's schedule: the
// completed flag when present in the body, otherwise the note. The two
// can never change in the same call; an absent note clears the column.
func Update(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing user_id", nil)
		}

		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid schedule id", nil)
		}

		body := new(updateScheduleRequest)
		if err := c.BodyParser(body); err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
		}

		query := db.Model(&models.Schedule{}).Where("id = ? AND user_id = ?", id, userID)
		var result *gorm.DB
		if body.Completed != nil {
			result = query.Update("completed", *body.Completed)
		} else {
			result = query.Update("note", body.Note)
		}
		if result.Error != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update schedule", result.Error)
		}
		if result.RowsAffected == 0 {
			return helpers.HandleError(c, fiber.StatusNotFound, "Schedule not found", nil)
		}

		var schedule models.Schedule
		if err := db.Where("id = ? AND user_id = ?", id, userID).First(&schedule).Error; err != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update schedule", err)
		}

		return helpers.HandleSuccess(c, fiber.StatusOK, schedule)
	}
}

// Delete removes the caller's schedule and returns the removed row.
func Delete(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing user_id", nil)
		}

		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid schedule id", nil)
		}

		var schedule models.Schedule
		err = db.Where("id = ? AND user_id = ?", id, userID).First(&schedule).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Schedule not found", nil)
		}
		if err != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to delete schedule", err)
		}

		if result := db.Delete(&schedule); result.Error != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to delete schedule", result.Error)
		}

		return helpers.HandleSuccess(c, fiber.StatusOK, schedule)
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
