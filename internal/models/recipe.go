package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Instructions string    `gorm:"type:text;not null" json:"instructions"`
	Taste        string    `gorm:"size:100" json:"taste"`
	CuisineType  string    `gorm:"size:100" json:"cuisine_type"`
	PrepTime     int       `json:"prep_time"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient is an ingredient line belonging to a recipe
type RecipeIngredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Quantity Quantity  `gorm:"size:100" json:"quantity"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

func (i *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
