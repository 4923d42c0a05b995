package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/model"
)

// RunMigrations creates or updates the recipes table
func RunMigrations(db *gorm.DB) error {
	logging.Info().Str("dialect", db.Dialector.Name()).Msg("Running auto-migration")
	if err := db.AutoMigrate(&model.Recipe{}); err != nil {
		return fmt.Errorf("failed to migrate recipes: %w", err)
	}
	return nil
}
