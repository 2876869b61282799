// Seeds the tag and ingredient catalogs from JSON files.
//
//	go run ./cmd/seed -tags data/tags.json -ingredients data/ingredients.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/config"
	"github.com/d60-Lab/recipehub/internal/repository"
	"github.com/d60-Lab/recipehub/internal/service"
	"github.com/d60-Lab/recipehub/pkg/database"
	"github.com/d60-Lab/recipehub/pkg/logger"
)

type tagRecord struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
	Slug  string `json:"slug" validate:"required,lowercase"`
}

type ingredientRecord struct {
	Name            string `json:"name" validate:"required"`
	MeasurementUnit string `json:"measurement_unit" validate:"required"`
}

func main() {
	tagsPath := flag.String("tags", "", "path to tags JSON")
	ingredientsPath := flag.String("ingredients", "", "path to ingredients JSON")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.InitDB(cfg)
	if err != nil {
		panic(err)
	}

	tagRepo := repository.NewTagRepository(db)
	ingRepo := repository.NewIngredientRepository(db)
	catalog := service.NewCatalogService(cfg, tagRepo, ingRepo, nil)

	validate := validator.New()
	ctx := context.Background()

	if *tagsPath != "" {
		var records []tagRecord
		loadJSON(*tagsPath, &records)
		created := 0
		for _, rec := range records {
			if err := validate.Struct(rec); err != nil {
				logger.Warn("skipping invalid tag", zap.String("name", rec.Name), zap.Error(err))
				continue
			}
			_, err := catalog.CreateTag(ctx, rec.Name, rec.Color, rec.Slug)
			switch {
			case err == nil:
				created++
			case errors.Is(err, gorm.ErrDuplicatedKey):
				// already seeded
			default:
				logger.Warn("tag not created", zap.String("name", rec.Name), zap.Error(err))
			}
		}
		logger.Info("tags seeded", zap.Int("created", created), zap.Int("total", len(records)))
	}

	if *ingredientsPath != "" {
		var records []ingredientRecord
		loadJSON(*ingredientsPath, &records)
		created := 0
		for _, rec := range records {
			if err := validate.Struct(rec); err != nil {
				logger.Warn("skipping invalid ingredient", zap.String("name", rec.Name), zap.Error(err))
				continue
			}
			if _, err := catalog.CreateIngredient(ctx, rec.Name, rec.MeasurementUnit); err != nil {
				logger.Warn("ingredient not created", zap.String("name", rec.Name), zap.Error(err))
				continue
			}
			created++
		}
		logger.Info("ingredients seeded", zap.Int("created", created), zap.Int("total", len(records)))
	}
}

func loadJSON(path string, out any) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		panic(err)
	}
}
