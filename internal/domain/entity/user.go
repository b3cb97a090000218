package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus is the administrative lifecycle status of an account
type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusBlocked UserStatus = "BLOCKED"
)

// User represents the centralized account table for admins, doctors and
// plain users. Self-registered accounts start unverified and are promoted
// once the emailed verification code is confirmed; accounts created by an
// administrator are verified immediately.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID       int        `gorm:"not null;index" json:"role_id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"type:text;not null" json:"-"`
	FullName     string     `gorm:"type:varchar(255);not null" json:"full_name"`
	PhoneNumber  string     `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	ProfileImage *string    `gorm:"type:text" json:"profile_image,omitempty"`
	IsVerified   bool       `gorm:"not null;default:false" json:"is_verified"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role          Role           `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DoctorProfile *DoctorProfile `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
	Patients      []Patient      `gorm:"foreignKey:UserID" json:"patients,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsBlocked checks if the account has been blocked by an administrator
func (u *User) IsBlocked() bool {
	return u.Status == UserStatusBlocked
}

// Block sets the account status to BLOCKED. Blocking an already blocked
// account is a no-op.
func (u *User) Block() {
	u.Status = UserStatusBlocked
}

// Unblock restores the account status to ACTIVE
func (u *User) Unblock() {
	u.Status = UserStatusActive
}
