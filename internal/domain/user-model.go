package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `json:"-"`
	DisplayName  string  `json:"display_name"`
	Phone        *string `json:"phone,omitempty"`
	// ProfileAssetKey is the blob-store key of the current profile image, nil
	// until the first successful upload. The public URL is derived from the key
	// by the blob store, never stored.
	ProfileAssetKey *string `json:"profile_asset_key,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
