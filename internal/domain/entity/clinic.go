package entity

import (
	"time"

	"github.com/google/uuid"
)

// Clinic is a practice location belonging to exactly one doctor
type Clinic struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ClinicName string    `gorm:"type:varchar(255);not null" json:"clinic_name"`
	Address    string    `gorm:"type:text" json:"address,omitempty"`
	City       string    `gorm:"type:varchar(100);index" json:"city,omitempty"`
	State      string    `gorm:"type:varchar(100)" json:"state,omitempty"`
	Country    string    `gorm:"type:varchar(100)" json:"country,omitempty"`
	PostalCode string    `gorm:"type:varchar(20)" json:"postal_code,omitempty"`
	Phone      string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Clinic) TableName() string {
	return "clinics"
}
