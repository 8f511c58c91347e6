package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the local record for an identity-provider subject. It is created on
// the first authenticated request and only its email is ever updated.
type User struct {
	ID          uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	Subject     string           `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Email       string           `gorm:"size:255;index" json:"email"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Profile     *UserProfile     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Preferences *UserPreferences `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"preferences,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type UserProfile struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	DisplayName   string    `gorm:"size:100" json:"display_name"`
	HouseholdSize int       `gorm:"not null" json:"household_size"`
	AvatarKey     string    `gorm:"size:255" json:"-"`
	AvatarURL     string    `gorm:"-" json:"avatar_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.HouseholdSize == 0 {
		p.HouseholdSize = 1
	}
	return nil
}
