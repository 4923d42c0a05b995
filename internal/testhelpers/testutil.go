package testhelpers

import (
	"github.com/pageza/recipe-catalog/backend/internal/model"
)

// NewRecipe returns a recipe with every required field populated
func NewRecipe(name string) *model.Recipe {
	return &model.Recipe{
		Name:         name,
		Description:  "A test recipe",
		Ingredients:  "water, salt",
		Instructions: "boil the water, add salt",
		Difficulty:   "easy",
		Servings:     2,
		CookTime:     20,
		PrepTime:     5,
		Language:     "en",
		Category:     "soup",
		Status:       "published",
	}
}

// RecipeForm returns form values for a valid create request
func RecipeForm(name string) map[string]string {
	return map[string]string{
		"recipeName":   name,
		"description":  "A test recipe",
		"ingredients":  "water, salt",
		"instructions": "boil the water, add salt",
		"difficulty":   "easy",
		"servings":     "2",
		"cookTime":     "20",
		"prepTime":     "5",
		"language":     "en",
		"category":     "soup",
		"status":       "published",
	}
}
