package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a pantry item owned by a user. Recipe lines live in
// RecipeIngredient; the two are separate record kinds.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Quantity  Quantity  `gorm:"size:100;not null" json:"quantity"`
	Unit      string    `gorm:"size:50;not null" json:"unit"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
