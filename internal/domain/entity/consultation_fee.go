package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Consultation modes
const (
	ConsultationModeInPerson = "In-person"
	ConsultationModeOnline   = "Online"
)

// ConsultationFee is the price of one consultation mode for a doctor
type ConsultationFee struct {
	ID        int             `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Mode      string          `gorm:"type:varchar(20);not null" json:"mode"`
	Fee       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"fee"`
	Currency  string          `gorm:"type:char(3);not null" json:"currency"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ConsultationFee) TableName() string {
	return "consultation_fees"
}
