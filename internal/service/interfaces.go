package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	ListRecipes(ctx context.Context) ([]*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
}

// ImageStore persists uploaded recipe images and reads them back by stored name
type ImageStore interface {
	// Save writes the upload and returns the stored file name
	Save(ctx context.Context, originalName string, r io.Reader, size int64) (string, error)
	// Open returns the stored bytes, or ErrImageNotFound
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Backend names the implementation for logs and metrics
	Backend() string
}
