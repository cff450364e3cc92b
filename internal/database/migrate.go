package database

import (
	"fmt"

	"github.com/pageza/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

// Models lists every table owned by the backend, in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.Credential{},
		&models.Profile{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Ingredient{},
	}
}

// Migrate creates or updates the schema with gorm auto-migration.
// Production postgres schemas are managed by cmd/migrate instead.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate %s schema: %w", db.Dialector.Name(), err)
	}
	return nil
}
