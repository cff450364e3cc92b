package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
	"go.uber.org/zap"
)

type IngredientHandler struct {
	store service.IngredientStore
	log   *zap.Logger
}

func NewIngredientHandler(store service.IngredientStore, log *zap.Logger) *IngredientHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &IngredientHandler{store: store, log: log}
}

// ListIngredients returns the pantry of the authenticated user
func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, middleware.ErrUnauthorized.Error())
		return
	}

	ingredients, err := h.store.ListIngredients(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("failed to list ingredients", zap.String("user_id", user.ID.String()), zap.Error(err))
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}

	c.JSON(http.StatusOK, ingredients)
}

// AddIngredient stores a pantry ingredient owned by the authenticated user
func (h *IngredientHandler) AddIngredient(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, middleware.ErrUnauthorized.Error())
		return
	}

	var req types.AddIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input. Name, quantity, and unit are required.")
		return
	}

	ingredient := models.Ingredient{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		UserID:   user.ID,
	}
	if err := h.store.CreateIngredient(c.Request.Context(), &ingredient); err != nil {
		h.log.Error("failed to add ingredient", zap.String("user_id", user.ID.String()), zap.Error(err))
		respondError(c, http.StatusBadRequest, errorMessage(err, "Failed to add ingredient"))
		return
	}

	c.JSON(http.StatusCreated, types.AddIngredientResponse{
		Message:      "Ingredient added successfully",
		IngredientID: ingredient.ID,
	})
}
