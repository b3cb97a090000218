package entity

import (
	"time"

	"github.com/google/uuid"
)

// Day-of-week names accepted for availability slots
var DaysOfWeek = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Availability is a weekly consultation window for a doctor.
// Overlap between slots of the same doctor is not validated.
type Availability struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DayOfWeek string    `gorm:"type:varchar(10);not null" json:"day_of_week"`
	StartTime string    `gorm:"type:time;not null" json:"start_time"`
	EndTime   string    `gorm:"type:time;not null" json:"end_time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Availability) TableName() string {
	return "availability_slots"
}
