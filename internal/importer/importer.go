// Package importer loads free-text recipe files in bulk through the same
// conversion and storage path as POST /recipes/add.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/service"
	"go.uber.org/zap"
)

var (
	ErrEmptyFile     = errors.New("recipe file is empty")
	ErrInvalidRecipe = errors.New("Invalid recipe data")
)

// Result describes the outcome for one file
type Result struct {
	Path     string
	RecipeID uuid.UUID
	Err      error
}

type Importer struct {
	parser service.RecipeParser
	store  service.RecipeStore
	log    *zap.Logger
}

func New(parser service.RecipeParser, store service.RecipeStore, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{parser: parser, store: store, log: log}
}

// ImportText converts and stores one recipe for the user
func (im *Importer) ImportText(ctx context.Context, userID uuid.UUID, text string) (uuid.UUID, error) {
	if strings.TrimSpace(text) == "" {
		return uuid.Nil, ErrEmptyFile
	}

	parsed, err := im.parser.ParseRecipeText(ctx, text)
	if err != nil {
		return uuid.Nil, err
	}

	recipe, lines, ok := api.BuildRecipe(parsed, userID)
	if !ok {
		return uuid.Nil, ErrInvalidRecipe
	}

	if err := im.store.CreateRecipe(ctx, recipe, lines); err != nil {
		return uuid.Nil, fmt.Errorf("failed to store recipe: %w", err)
	}
	return recipe.ID, nil
}

// ImportFiles imports each file in order. A failing file does not stop the others.
func (im *Importer) ImportFiles(ctx context.Context, userID uuid.UUID, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		if ctx.Err() != nil {
			results = append(results, Result{Path: path, Err: ctx.Err()})
			continue
		}

		res := Result{Path: path}
		data, err := os.ReadFile(path)
		if err != nil {
			res.Err = err
		} else {
			res.RecipeID, res.Err = im.ImportText(ctx, userID, string(data))
		}

		if res.Err != nil {
			im.log.Warn("recipe import failed", zap.String("file", path), zap.Error(res.Err))
		} else {
			im.log.Info("recipe imported", zap.String("file", path), zap.String("recipe_id", res.RecipeID.String()))
		}
		results = append(results, res)
	}
	return results
}

// Collect expands directories into their *.txt files, sorted by name
func Collect(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(arg, "*.txt"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}
