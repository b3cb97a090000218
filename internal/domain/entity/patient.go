package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender constants
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// Blood group constants
const (
	BloodGroupAPos  = "A_POS"
	BloodGroupANeg  = "A_NEG"
	BloodGroupBPos  = "B_POS"
	BloodGroupBNeg  = "B_NEG"
	BloodGroupABPos = "AB_POS"
	BloodGroupABNeg = "AB_NEG"
	BloodGroupOPos  = "O_POS"
	BloodGroupONeg  = "O_NEG"
)

// Patient is a dependent managed by a plain-user account. Patients are
// created and updated independently of the owning account; deletion is
// not supported.
type Patient struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string    `gorm:"type:varchar(255);not null" json:"name"`
	DateOfBirth      time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender           string    `gorm:"type:varchar(10);not null" json:"gender"`
	BloodGroup       string    `gorm:"type:varchar(10)" json:"blood_group,omitempty"`
	Address          string    `gorm:"type:text" json:"address,omitempty"`
	PhoneNumber      string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	EmergencyContact string    `gorm:"type:varchar(255)" json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
