package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockRecipeStore is a mock implementation of the RecipeStore interface
type MockRecipeStore struct {
	mock.Mock
}

func (m *MockRecipeStore) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) LatestRecipe(ctx context.Context, userID uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) CreateRecipe(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient) error {
	args := m.Called(ctx, recipe, ingredients)
	return args.Error(0)
}

// MockIngredientStore is a mock implementation of the IngredientStore interface
type MockIngredientStore struct {
	mock.Mock
}

func (m *MockIngredientStore) ListIngredients(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientStore) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

// MockRecipeParser is a mock implementation of the RecipeParser interface
type MockRecipeParser struct {
	mock.Mock
}

func (m *MockRecipeParser) ParseRecipeText(ctx context.Context, text string) (*service.ParsedRecipe, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ParsedRecipe), args.Error(1)
}
