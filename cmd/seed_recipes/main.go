package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

//go:embed recipes.json
var defaultRecipes []byte

func main() {
	file := flag.String("file", "", "JSON file with recipes to seed (defaults to the built-in set)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	data := defaultRecipes
	if *file != "" {
		if data, err = os.ReadFile(*file); err != nil {
			logging.Fatal().Err(err).Str("file", *file).Msg("Failed to read seed file")
		}
	}

	recipes, err := parseRecipes(data)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to parse seed recipes")
	}

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}

	created, err := seed(context.Background(), db, service.NewRecipeService(db), recipes)
	if err != nil {
		logging.Fatal().Err(err).Msg("Seeding failed")
	}
	logging.Info().Int("created", created).Int("total", len(recipes)).Msg("Seeding complete")
}

func parseRecipes(data []byte) ([]types.CreateRecipeRequest, error) {
	var recipes []types.CreateRecipeRequest
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, err
	}
	for i, r := range recipes {
		if r.Servings == nil || r.CookTime == nil || r.PrepTime == nil {
			return nil, fmt.Errorf("recipe %d (%q): servings, cookTime and prepTime are required", i, r.Name)
		}
	}
	return recipes, nil
}

// seed inserts every recipe whose name is not already stored
func seed(ctx context.Context, db *gorm.DB, recipes service.IRecipeService, reqs []types.CreateRecipeRequest) (int, error) {
	created := 0
	for i := range reqs {
		req := &reqs[i]

		var count int64
		if err := db.WithContext(ctx).Model(&model.Recipe{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
			return created, fmt.Errorf("failed to check recipe %q: %w", req.Name, err)
		}
		if count > 0 {
			logging.Debug().Str("recipe", req.Name).Msg("Recipe already exists, skipping")
			continue
		}

		recipe, err := recipes.CreateRecipe(ctx, req.Recipe(nil))
		if err != nil {
			return created, fmt.Errorf("failed to create recipe %q: %w", req.Name, err)
		}
		logging.Info().Str("recipe", recipe.Name).Str("id", recipe.ID.String()).Msg("Created recipe")
		created++
	}
	return created, nil
}
