package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
)

func TestParseDefaultRecipes(t *testing.T) {
	recipes, err := parseRecipes(defaultRecipes)
	require.NoError(t, err)
	require.NotEmpty(t, recipes)
	for _, r := range recipes {
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.Category)
	}
}

func TestParseRecipesMissingNumbers(t *testing.T) {
	_, err := parseRecipes([]byte(`[{"recipeName":"Toast","servings":1}]`))
	assert.Error(t, err)

	_, err = parseRecipes([]byte(`{"not":"a list"}`))
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewRecipeService(db)
	recipes, err := parseRecipes(defaultRecipes)
	require.NoError(t, err)

	created, err := seed(context.Background(), db, svc, recipes)
	require.NoError(t, err)
	assert.Equal(t, len(recipes), created)

	created, err = seed(context.Background(), db, svc, recipes)
	require.NoError(t, err)
	assert.Zero(t, created)

	all, err := svc.ListRecipes(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(recipes))
}
