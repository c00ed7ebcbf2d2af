// Package seed loads a catalog file and writes its reference ingredients and
// recipes into a catalog store.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/model"
	"github.com/cookmate/cookmate/backend/internal/service"
	"github.com/cookmate/cookmate/backend/internal/store"
)

// File is the YAML layout of a seed catalog.
type File struct {
	Author      Author       `yaml:"author"`
	Users       []Author     `yaml:"users"`
	Ingredients []Ingredient `yaml:"ingredients"`
	Recipes     []Recipe     `yaml:"recipes"`
}

// Author owns every seeded recipe. The account is created on first use.
// Users are extra demo accounts with the same shape.
type Author struct {
	Email    string `yaml:"email"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Ingredient struct {
	Name        string   `yaml:"name"`
	Unit        string   `yaml:"unit"`
	Substitutes []string `yaml:"substitutes"`
}

type Recipe struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Ingredients []struct {
		Name   string  `yaml:"name"`
		Amount float64 `yaml:"amount"`
	} `yaml:"ingredients"`
	PreparationSteps string         `yaml:"preparation_steps"`
	CookingTime      string         `yaml:"cooking_time"`
	PrepTime         string         `yaml:"prep_time"`
	ServingSize      string         `yaml:"serving_size"`
	Categories       []string       `yaml:"categories"`
	Difficulty       string         `yaml:"difficulty"`
	Draft            bool           `yaml:"draft"`
	Calories         model.Nutrient `yaml:"calories"`
	Fat              model.Nutrient `yaml:"fat"`
	Carbs            model.Nutrient `yaml:"carbs"`
	Protein          model.Nutrient `yaml:"protein"`
}

// Result counts what a seed run wrote and skipped.
type Result struct {
	UsersCreated       int
	UsersSkipped       int
	IngredientsCreated int
	IngredientsSkipped int
	RecipesCreated     int
	RecipesSkipped     int
}

// Load reads and decodes a seed file. Unknown keys are rejected so typos do
// not silently drop data.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// NewRecipe converts a seed entry to service input.
func (r Recipe) NewRecipe() service.NewRecipe {
	lines := make([]catalog.IngredientLine, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		lines = append(lines, catalog.IngredientLine{Name: ing.Name, Amount: ing.Amount})
	}
	return service.NewRecipe{
		Title:             r.Title,
		Ingredients:       lines,
		PreparationSteps:  r.PreparationSteps,
		CookingTime:       r.CookingTime,
		PrepTime:          r.PrepTime,
		ServingSize:       r.ServingSize,
		Categories:        r.Categories,
		Difficulty:        model.Difficulty(r.Difficulty),
		IsDraft:           r.Draft,
		RecipeDescription: r.Description,
		Calories:          r.Calories,
		Fat:               r.Fat,
		Carbs:             r.Carbs,
		Protein:           r.Protein,
	}
}

// Validate checks every recipe of f against the submission rules, resolving
// ingredients against the file's own reference list. It reports all failing
// recipes.
func Validate(f *File) error {
	reference := make([]model.Ingredient, 0, len(f.Ingredients))
	for _, ing := range f.Ingredients {
		reference = append(reference, model.Ingredient{Name: ing.Name, Unit: ing.Unit, Substitutes: ing.Substitutes})
	}

	var errs []error
	for i, r := range f.Recipes {
		in := r.NewRecipe()
		candidate := model.Recipe{
			Title:            strings.TrimSpace(in.Title),
			Ingredients:      catalog.ResolveIngredients(in.Ingredients, reference),
			PreparationSteps: in.PreparationSteps,
			CookingTime:      in.CookingTime,
			PrepTime:         in.PrepTime,
			ServingSize:      in.ServingSize,
			Categories:       in.Categories,
			Difficulty:       in.Difficulty,
		}
		if err := catalog.ValidateRecipeSubmission(candidate); err != nil {
			errs = append(errs, fmt.Errorf("recipe %d (%q): %w", i+1, r.Title, err))
		}
	}
	return errors.Join(errs...)
}

// Seeder writes a seed file through the services so recipes get the same
// resolution and validation as user submissions.
type Seeder struct {
	store    store.CatalogStore
	identity service.IdentityProvider
	recipes  service.IRecipeService
	log      *zap.Logger
}

func NewSeeder(s store.CatalogStore, identity service.IdentityProvider, recipes service.IRecipeService, log *zap.Logger) *Seeder {
	return &Seeder{store: s, identity: identity, recipes: recipes, log: log.Named("seed")}
}

// Apply is idempotent: ingredients already present (by case-insensitive name)
// and recipes the author already has (by title) are skipped.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result

	existing, err := s.recipes.ListIngredients(ctx)
	if err != nil {
		return res, err
	}
	known := make(map[string]bool, len(existing))
	for _, ing := range existing {
		known[strings.ToLower(ing.Name)] = true
	}
	for _, ing := range f.Ingredients {
		key := strings.ToLower(strings.TrimSpace(ing.Name))
		if key == "" || known[key] {
			res.IngredientsSkipped++
			continue
		}
		subs := ing.Substitutes
		if subs == nil {
			subs = []string{}
		}
		fields := catalog.IngredientToFields(model.Ingredient{
			Name:        strings.TrimSpace(ing.Name),
			Unit:        ing.Unit,
			Substitutes: subs,
		})
		if _, err := s.store.Create(ctx, store.CollectionIngredients, fields); err != nil {
			return res, fmt.Errorf("failed to create ingredient %q: %w", ing.Name, err)
		}
		known[key] = true
		res.IngredientsCreated++
	}

	for _, u := range f.Users {
		created, err := s.ensureUser(ctx, u)
		if err != nil {
			return res, err
		}
		if created {
			res.UsersCreated++
		} else {
			res.UsersSkipped++
		}
	}

	if len(f.Recipes) == 0 {
		return res, nil
	}

	authorID, err := s.author(ctx, f.Author)
	if err != nil {
		return res, err
	}
	own, err := s.recipes.ListRecipes(ctx, authorID, catalog.Criteria{AuthorID: authorID, IncludeDrafts: true})
	if err != nil {
		return res, err
	}
	titles := make(map[string]bool, len(own))
	for _, r := range own {
		titles[r.Title] = true
	}

	for _, r := range f.Recipes {
		title := strings.TrimSpace(r.Title)
		if titles[title] {
			res.RecipesSkipped++
			continue
		}
		created, err := s.recipes.CreateRecipe(ctx, authorID, r.NewRecipe())
		if err != nil {
			return res, fmt.Errorf("failed to create recipe %q: %w", r.Title, err)
		}
		titles[created.Title] = true
		res.RecipesCreated++
		s.log.Debug("seeded recipe", zap.String("id", created.ID), zap.String("title", created.Title))
	}

	s.log.Info("seed applied",
		zap.Int("users_created", res.UsersCreated),
		zap.Int("ingredients_created", res.IngredientsCreated),
		zap.Int("ingredients_skipped", res.IngredientsSkipped),
		zap.Int("recipes_created", res.RecipesCreated),
		zap.Int("recipes_skipped", res.RecipesSkipped))
	return res, nil
}

// author returns the id of the seed author, creating the account when it
// does not exist yet.
func (s *Seeder) author(ctx context.Context, a Author) (string, error) {
	if _, err := s.ensureUser(ctx, a); err != nil {
		return "", err
	}
	userID, _, err := s.identity.SignIn(ctx, a.Email, a.Password)
	if err != nil {
		return "", fmt.Errorf("failed to sign in seed author: %w", err)
	}
	return userID, nil
}

// ensureUser signs a up unless an account with the same email already
// exists. It reports whether an account was created.
func (s *Seeder) ensureUser(ctx context.Context, a Author) (bool, error) {
	userID, err := s.identity.SignUp(ctx, a.Email, a.Password, a.Username)
	if errors.Is(err, catalog.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create account %s: %w", a.Email, err)
	}
	s.log.Info("created account", zap.String("user_id", userID), zap.String("username", a.Username))
	return true, nil
}
