package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// ErrRecipeNotFound is returned when no recipe has the requested id
var ErrRecipeNotFound = errors.New("recipe not found")

// ValidationError reports a required recipe field that is missing or malformed
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("recipe validation failed: %s is required", e.Field)
}

// RecipeService handles recipe persistence
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe validates and inserts a recipe. The id and upload date are
// assigned by the model hook.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// ListRecipes returns every recipe in storage order
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	if recipes == nil {
		recipes = []*model.Recipe{}
	}
	return recipes, nil
}

// UpdateRecipe overwrites the supplied fields and returns the stored result.
// Concurrent updates to the same recipe are last-write-wins.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes := req.Changes(); len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(recipe).Updates(changes).Error; err != nil {
			return nil, fmt.Errorf("failed to update recipe: %w", err)
		}
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe permanently removes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

func validateRecipe(r *model.Recipe) error {
	required := []struct {
		field   string
		present bool
	}{
		{"recipeName", r.Name != ""},
		{"ingredients", r.Ingredients != ""},
		{"instructions", r.Instructions != ""},
		{"difficulty", r.Difficulty != ""},
		{"category", r.Category != ""},
	}
	for _, f := range required {
		if !f.present {
			return &ValidationError{Field: f.field}
		}
	}
	return nil
}
