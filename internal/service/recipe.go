package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *RecipeService) LatestRecipe(ctx context.Context, userID uuid.UUID) (*models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Limit(1).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return &recipes[0], nil
}

// CreateRecipe stores the recipe and its ingredient lines in one transaction.
// The recipe id is assigned before the ingredients are linked to it.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if len(ingredients) == 0 {
			return nil
		}
		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
		}
		return tx.Create(&ingredients).Error
	})
}
