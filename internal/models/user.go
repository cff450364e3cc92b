package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the public user row. Its id is the identity provider's user id.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Username  *string   `gorm:"size:50;uniqueIndex" json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "users"
}

// Credential is the login record kept by the local identity provider
type Credential struct {
	ID           uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Credential) TableName() string {
	return "auth_users"
}

func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
