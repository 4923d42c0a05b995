package types

import (
	"github.com/pageza/recipe-catalog/backend/internal/model"
)

// CreateRecipeRequest is bound from multipart, urlencoded or JSON bodies.
// Numeric fields are pointers so that "required" means present, not non-zero.
type CreateRecipeRequest struct {
	Name         string   `form:"recipeName" json:"recipeName" binding:"required"`
	Description  string   `form:"description" json:"description"`
	Ingredients  string   `form:"ingredients" json:"ingredients" binding:"required"`
	Instructions string   `form:"instructions" json:"instructions" binding:"required"`
	Difficulty   string   `form:"difficulty" json:"difficulty" binding:"required"`
	Servings     *int     `form:"servings" json:"servings" binding:"required"`
	CookTime     *float64 `form:"cookTime" json:"cookTime" binding:"required"`
	PrepTime     *float64 `form:"prepTime" json:"prepTime" binding:"required"`
	YoutubeLink  string   `form:"youtubeLink" json:"youtubeLink"`
	Language     string   `form:"language" json:"language"`
	Category     string   `form:"category" json:"category" binding:"required"`
	Status       string   `form:"status" json:"status"`
}

// Recipe builds the entity to persist. image is the served path of an
// uploaded file, or nil.
func (r *CreateRecipeRequest) Recipe(image *string) *model.Recipe {
	return &model.Recipe{
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Difficulty:   r.Difficulty,
		Servings:     *r.Servings,
		CookTime:     *r.CookTime,
		PrepTime:     *r.PrepTime,
		YoutubeLink:  r.YoutubeLink,
		Language:     r.Language,
		Category:     r.Category,
		Status:       r.Status,
		Image:        image,
	}
}

// UpdateRecipeRequest carries a partial update. A nil field is left untouched.
type UpdateRecipeRequest struct {
	Name         *string  `form:"recipeName" json:"recipeName"`
	Description  *string  `form:"description" json:"description"`
	Ingredients  *string  `form:"ingredients" json:"ingredients"`
	Instructions *string  `form:"instructions" json:"instructions"`
	Difficulty   *string  `form:"difficulty" json:"difficulty"`
	Servings     *int     `form:"servings" json:"servings"`
	CookTime     *float64 `form:"cookTime" json:"cookTime"`
	PrepTime     *float64 `form:"prepTime" json:"prepTime"`
	YoutubeLink  *string  `form:"youtubeLink" json:"youtubeLink"`
	Language     *string  `form:"language" json:"language"`
	Category     *string  `form:"category" json:"category"`
	Status       *string  `form:"status" json:"status"`

	// Image is set by the handler from an uploaded file, never from the body.
	Image *string `form:"-" json:"-"`
}

// Changes returns the column updates for the fields that were supplied
func (r *UpdateRecipeRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	for column, v := range map[string]*string{
		"name":         r.Name,
		"description":  r.Description,
		"ingredients":  r.Ingredients,
		"instructions": r.Instructions,
		"difficulty":   r.Difficulty,
		"youtube_link": r.YoutubeLink,
		"language":     r.Language,
		"category":     r.Category,
		"status":       r.Status,
		"image":        r.Image,
	} {
		if v != nil {
			changes[column] = *v
		}
	}
	if r.Servings != nil {
		changes["servings"] = *r.Servings
	}
	if r.CookTime != nil {
		changes["cook_time"] = *r.CookTime
	}
	if r.PrepTime != nil {
		changes["prep_time"] = *r.PrepTime
	}
	return changes
}
