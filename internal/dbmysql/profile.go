package dbmysql

import (
	"time"
)

// Profile is a registered user, client or prestataire.
type Profile struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	FullName     string `gorm:"size:255;not null"`
	AvatarURL    string `gorm:"size:512"`
	Phone        string `gorm:"size:32"`
	Location     string `gorm:"size:255"`
	Bio          string `gorm:"type:text"`
	Role         string `gorm:"size:20;not null;index"`
	Featured     bool   `gorm:"not null"`
	IsAdmin      bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate holds the fields a user edits on their own profile.
type ProfileUpdate struct {
	FullName string
	Phone    string
	Location string
	Bio      string
}

// ProviderFilter narrows the prestataire directory. A nil IDs does not filter; an empty,
// non-nil IDs matches nobody.
type ProviderFilter struct {
	Location     string
	IDs          []string
	FeaturedOnly bool
}
