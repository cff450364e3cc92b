package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"go.uber.org/zap"
)

// Deps are the collaborators the routes are built from
type Deps struct {
	Identity    service.IdentityProvider
	Profiles    service.ProfileStore
	Ingredients service.IngredientStore
	Recipes     service.RecipeStore
	Parser      service.RecipeParser
	// ImportLimiter is optional; recipe imports are unlimited without it
	ImportLimiter  *middleware.RateLimiter
	AllowedOrigins []string
	Log            *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(deps Deps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(deps.AllowedOrigins))

	authHandler := api.NewAuthHandler(deps.Identity, deps.Profiles, log)
	ingredientHandler := api.NewIngredientHandler(deps.Ingredients, log)
	recipeHandler := api.NewRecipeHandler(deps.Recipes, deps.Parser, log)

	requireUser := middleware.RequireUser(deps.Identity)

	router.GET("/health", api.HealthCheck)

	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)

	router.POST("/ingredients", requireUser, ingredientHandler.ListIngredients)
	router.POST("/ingredients/add", requireUser, ingredientHandler.AddIngredient)

	addRecipe := []gin.HandlerFunc{requireUser}
	if deps.ImportLimiter != nil {
		addRecipe = append(addRecipe, deps.ImportLimiter.RateLimitMiddleware())
	}
	addRecipe = append(addRecipe, recipeHandler.AddRecipe)

	router.GET("/recipes", recipeHandler.ListRecipes)
	router.POST("/recipes/add", addRecipe...)
	router.GET("/recipes/daily/:userId", recipeHandler.DailyRecipe)

	// Unknown paths and unknown methods on known paths both land here
	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	})

	return router
}
