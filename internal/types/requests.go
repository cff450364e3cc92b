package types

import (
	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/models"
)

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
}

// SignupResponse is returned once the identity provider has created the user
type SignupResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
}

// LoginRequest represents the request body for a password login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the access token of the new session
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// AddIngredientRequest represents the request body for adding a pantry ingredient
type AddIngredientRequest struct {
	Name     string          `json:"name" binding:"required"`
	Quantity models.Quantity `json:"quantity" binding:"required"`
	Unit     string          `json:"unit" binding:"required"`
}

// AddIngredientResponse is returned after a pantry ingredient has been stored
type AddIngredientResponse struct {
	Message      string    `json:"message"`
	IngredientID uuid.UUID `json:"ingredient_id"`
}

// AddRecipeRequest carries a free-text recipe to import
type AddRecipeRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddRecipeResponse is returned after an imported recipe has been stored
type AddRecipeResponse struct {
	Message  string    `json:"message"`
	RecipeID uuid.UUID `json:"recipe_id"`
}

// ErrorResponse is the body of every JSON error
type ErrorResponse struct {
	Error string `json:"error"`
}
