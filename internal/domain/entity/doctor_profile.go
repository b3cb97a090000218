package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// StringArray is a jsonb-backed ordered list of strings
type StringArray []string

// Value returns json value, implement driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan scans a jsonb value into StringArray, implements sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := []string{}
	err := json.Unmarshal(bytes, &result)
	*a = StringArray(result)
	return err
}

// HospitalStint is one entry of a doctor's work history
type HospitalStint struct {
	Hospital string `json:"hospital"`
	Period   string `json:"period"` // e.g. "2015-2019"
}

// HospitalStints is a jsonb-backed ordered work history
type HospitalStints []HospitalStint

// Value returns json value, implement driver.Valuer interface
func (s HospitalStints) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan scans a jsonb value into HospitalStints, implements sql.Scanner interface
func (s *HospitalStints) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := []HospitalStint{}
	err := json.Unmarshal(bytes, &result)
	*s = HospitalStints(result)
	return err
}

// DoctorProfile represents doctor-specific professional data. The three
// child collections (clinics, availability, consultation fees) are never
// empty after registration and are replaced wholesale on update.
type DoctorProfile struct {
	UserID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Biography       string         `gorm:"type:text" json:"biography,omitempty"`
	Languages       StringArray    `gorm:"type:jsonb" json:"languages,omitempty"`
	Specializations StringArray    `gorm:"type:jsonb" json:"specializations,omitempty"`
	ExpertiseAreas  StringArray    `gorm:"type:jsonb" json:"expertise_areas,omitempty"`
	Degree          string         `gorm:"type:varchar(100)" json:"degree,omitempty"`
	Institution     string         `gorm:"type:varchar(255)" json:"institution,omitempty"`
	GraduationYear  int            `gorm:"type:int" json:"graduation_year,omitempty"`
	HospitalStints  HospitalStints `gorm:"type:jsonb" json:"hospital_stints,omitempty"`

	// Relationships
	User             User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Clinics          []Clinic          `gorm:"foreignKey:DoctorID" json:"clinics,omitempty"`
	Availability     []Availability    `gorm:"foreignKey:DoctorID" json:"availability,omitempty"`
	ConsultationFees []ConsultationFee `gorm:"foreignKey:DoctorID" json:"consultation_fees,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
