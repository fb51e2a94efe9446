package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Schedule struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	LocationID uuid.UUID `gorm:"column:location_id;type:uuid;not null" json:"location_id"`
	Note       *string   `gorm:"column:note" json:"note"`
	Completed  bool      `gorm:"column:completed;not null;default:false" json:"completed"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Schedule) TableName() string {
	return "schedules"
}

// BeforeCreate assigns the id so the model works on databases without a
// uuid default.
func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ScheduleWithLocation is the read model for the schedules list: each
// schedule joined with its location's display fields.
type ScheduleWithLocation struct {
	ID         uuid.UUID `json:"id"`
	LocationID uuid.UUID `json:"location_id"`
	Note       *string   `json:"note"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"created_at"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
}
