package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

func (s *IngredientService) ListIngredients(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	ingredients := []models.Ingredient{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *IngredientService) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	return s.db.WithContext(ctx).Create(ingredient).Error
}
