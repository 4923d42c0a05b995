package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is the only persisted entity. JSON names match the form field
// names clients post.
type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"recipeName"`
	Description  string    `gorm:"type:text" json:"description"`
	Ingredients  string    `gorm:"type:text;not null" json:"ingredients"`
	Instructions string    `gorm:"type:text;not null" json:"instructions"`
	Difficulty   string    `gorm:"size:50;not null" json:"difficulty"`
	Servings     int       `gorm:"not null" json:"servings"`
	CookTime     float64   `gorm:"not null" json:"cookTime"`
	PrepTime     float64   `gorm:"not null" json:"prepTime"`
	YoutubeLink  string    `gorm:"size:512" json:"youtubeLink"`
	Language     string    `gorm:"size:50" json:"language"`
	Category     string    `gorm:"size:100;not null" json:"category"`
	Status       string    `gorm:"size:50" json:"status"`
	Image        *string   `gorm:"size:512" json:"image"`
	UploadDate   time.Time `gorm:"not null" json:"uploadDate"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the identifier and upload timestamp when the caller
// has not set them.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.UploadDate.IsZero() {
		r.UploadDate = time.Now().UTC()
	}
	return nil
}
