package models

import (
	"time"

	"gorm.io/gorm"
)

// Inquiry is a stored consultation request.
type Inquiry struct {
	ID        uint   `gorm:"primaryKey"`
	Reference string `gorm:"type:text;not null;uniqueIndex"`
	SessionID string `gorm:"type:text;index"`

	// Contact
	FirstName string `gorm:"type:text;not null"`
	LastName  string `gorm:"type:text;not null"`
	Email     string `gorm:"type:text;not null;index"`
	Phone     string `gorm:"type:text;not null"`

	// Request
	StudentGrade   string `gorm:"type:text;not null"`
	TargetSchools  string `gorm:"type:text"`
	Message        string `gorm:"type:text"`
	AgreeToContact bool   `gorm:"not null"`

	// Timestamps
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
