package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

// IdentityProvider registers users, issues sessions and resolves access tokens
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*types.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*types.Session, error)
	// GetUser returns the user owning the token, or an error when the token is invalid or expired
	GetUser(ctx context.Context, token string) (*types.User, error)
}

// ProfileStore updates the public user rows
type ProfileStore interface {
	UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error
}

// IngredientStore persists pantry ingredients
type IngredientStore interface {
	ListIngredients(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error
}

// RecipeStore persists recipes and their ingredient lines
type RecipeStore interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	// LatestRecipe returns the most recently created recipe of the user, or nil when there is none
	LatestRecipe(ctx context.Context, userID uuid.UUID) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient) error
}

// RecipeParser turns free recipe text into a structured recipe
type RecipeParser interface {
	ParseRecipeText(ctx context.Context, text string) (*ParsedRecipe, error)
}
