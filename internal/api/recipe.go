package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
	"go.uber.org/zap"
)

type RecipeHandler struct {
	store  service.RecipeStore
	parser service.RecipeParser
	log    *zap.Logger
}

func NewRecipeHandler(store service.RecipeStore, parser service.RecipeParser, log *zap.Logger) *RecipeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecipeHandler{
		store:  store,
		parser: parser,
		log:    log,
	}
}

// ListRecipes returns every recipe
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.store.ListRecipes(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list recipes", zap.Error(err))
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	c.JSON(http.StatusOK, recipes)
}

// DailyRecipe returns the most recent recipe created by the user in the path
func (h *RecipeHandler) DailyRecipe(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	recipe, err := h.store.LatestRecipe(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("failed to load daily recipe", zap.String("user_id", userID.String()), zap.Error(err))
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if recipe == nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// AddRecipe structures free recipe text and stores it for the authenticated user
func (h *RecipeHandler) AddRecipe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, middleware.ErrUnauthorized.Error())
		return
	}

	var req types.AddRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	parsed, err := h.parser.ParseRecipeText(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, http.StatusInternalServerError, service.ErrRecipeParse.Error())
		return
	}

	recipe, lines, ok := BuildRecipe(parsed, user.ID)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid recipe data")
		return
	}

	if err := h.store.CreateRecipe(c.Request.Context(), recipe, lines); err != nil {
		h.log.Error("failed to add recipe", zap.String("user_id", user.ID.String()), zap.Error(err))
		respondError(c, http.StatusBadRequest, errorMessage(err, "Failed to add recipe"))
		return
	}

	h.log.Info("recipe added",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.Int("ingredients", len(lines)),
	)
	c.JSON(http.StatusCreated, types.AddRecipeResponse{
		Message:  "Recipe added successfully",
		RecipeID: recipe.ID,
	})
}

// BuildRecipe maps a parsed recipe onto the stored records. It reports false
// when the name or instructions are empty or the ingredients are not a list.
func BuildRecipe(parsed *service.ParsedRecipe, createdBy uuid.UUID) (*models.Recipe, []models.RecipeIngredient, bool) {
	if parsed == nil {
		return nil, nil, false
	}
	ingredients, isList := parsed.Ingredients()
	name := strings.TrimSpace(parsed.Name)
	if name == "" || parsed.Instructions == "" || !isList {
		return nil, nil, false
	}

	recipe := &models.Recipe{
		Name:         name,
		Instructions: string(parsed.Instructions),
		Taste:        parsed.Taste,
		CuisineType:  parsed.CuisineType,
		PrepTime:     int(parsed.PrepTime),
		CreatedBy:    createdBy,
	}

	lines := make([]models.RecipeIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		lines = append(lines, models.RecipeIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
		})
	}
	return recipe, lines, true
}
