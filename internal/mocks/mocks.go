// Package mocks holds testify mocks of the service interfaces used by the handlers.
package mocks

import "github.com/pageza/recipebox/backend/internal/service"

var (
	_ service.IdentityProvider = (*MockIdentityProvider)(nil)
	_ service.ProfileStore     = (*MockProfileStore)(nil)
	_ service.IngredientStore  = (*MockIngredientStore)(nil)
	_ service.RecipeStore      = (*MockRecipeStore)(nil)
	_ service.RecipeParser     = (*MockRecipeParser)(nil)
)
