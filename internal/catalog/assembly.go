package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/cookmate/cookmate/backend/internal/model"
)

// Stored field names of a recipe document.
const (
	FieldTitle             = "title"
	FieldIngredients       = "ingredients"
	FieldPreparationSteps  = "preparationSteps"
	FieldCookingTime       = "cookingTime"
	FieldPrepTime          = "prepTime"
	FieldServingSize       = "servingSize"
	FieldCategories        = "categories"
	FieldDifficulty        = "difficulty"
	FieldIsDraft           = "isDraft"
	FieldAuthorID          = "authorId"
	FieldImageReference    = "imageReference"
	FieldRating            = "rating"
	FieldRecipeDescription = "recipeDescription"
	FieldCalories          = "calories"
	FieldFat               = "fat"
	FieldCarbs             = "carbs"
	FieldProtein           = "protein"
)

// Stored field names of user and favorite documents.
const (
	FieldUserID          = "userId"
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldAuthLevel       = "authLevel"
	FieldCreatedRecipes  = "createdRecipes"
	FieldFavoriteRecipes = "favoriteRecipes"
	FieldRecipe          = "recipe"
	FieldTimestamp       = "timestamp"
)

// FieldFavoriteTitle is the dotted path used to look favorites up by title.
const FieldFavoriteTitle = FieldRecipe + "." + FieldTitle

// Older documents stored the image under one of these keys.
var legacyImageFields = []string{"imageRes", "localImagePath"}

const (
	UnitKilocalories = "kcal"
	UnitGrams        = "g"
)

// FromStoredFields builds a Recipe from a raw document body. It never fails:
// every missing or mistyped field takes its default. The document id is not
// part of fields; callers set Recipe.ID themselves.
func FromStoredFields(fields map[string]any) model.Recipe {
	r := model.Recipe{
		Title:             stringField(fields, FieldTitle),
		Ingredients:       ingredientsField(fields[FieldIngredients]),
		PreparationSteps:  stringField(fields, FieldPreparationSteps),
		CookingTime:       stringField(fields, FieldCookingTime),
		PrepTime:          stringField(fields, FieldPrepTime),
		ServingSize:       stringField(fields, FieldServingSize),
		Categories:        stringsValue(fields[FieldCategories]),
		Difficulty:        model.Difficulty(stringField(fields, FieldDifficulty)),
		IsDraft:           boolValue(fields[FieldIsDraft]),
		AuthorID:          stringField(fields, FieldAuthorID),
		ImageReference:    stringField(fields, FieldImageReference),
		Rating:            floatValue(fields[FieldRating]),
		RecipeDescription: stringField(fields, FieldRecipeDescription),
		Calories:          nutrientValue(fields[FieldCalories], UnitKilocalories),
		Fat:               nutrientValue(fields[FieldFat], UnitGrams),
		Carbs:             nutrientValue(fields[FieldCarbs], UnitGrams),
		Protein:           nutrientValue(fields[FieldProtein], UnitGrams),
	}
	if r.ImageReference == "" {
		for _, key := range legacyImageFields {
			if v := stringField(fields, key); v != "" {
				r.ImageReference = v
				break
			}
		}
	}
	return r
}

// ToStoredFields is the inverse of FromStoredFields. Values are plain JSON
// shapes ([]any, map[string]any, float64) so every store keeps them as is.
// An absent difficulty or image is left out of the map.
func ToStoredFields(r model.Recipe) map[string]any {
	ingredients := make([]any, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, IngredientToFields(ing))
	}
	fields := map[string]any{
		FieldTitle:             r.Title,
		FieldIngredients:       ingredients,
		FieldPreparationSteps:  r.PreparationSteps,
		FieldCookingTime:       r.CookingTime,
		FieldPrepTime:          r.PrepTime,
		FieldServingSize:       r.ServingSize,
		FieldCategories:        anySlice(r.Categories),
		FieldIsDraft:           r.IsDraft,
		FieldAuthorID:          r.AuthorID,
		FieldRating:            r.Rating,
		FieldRecipeDescription: r.RecipeDescription,
		FieldCalories:          nutrientToFields(r.Calories),
		FieldFat:               nutrientToFields(r.Fat),
		FieldCarbs:             nutrientToFields(r.Carbs),
		FieldProtein:           nutrientToFields(r.Protein),
	}
	if r.Difficulty != "" {
		fields[FieldDifficulty] = string(r.Difficulty)
	}
	if r.ImageReference != "" {
		fields[FieldImageReference] = r.ImageReference
	}
	return fields
}

// IngredientFromFields builds an Ingredient with the same defaulting rules as
// recipes: zero amount, empty unit and name, no substitutes.
func IngredientFromFields(fields map[string]any) model.Ingredient {
	return model.Ingredient{
		Amount:      floatValue(fields["amount"]),
		Unit:        stringField(fields, "unit"),
		Name:        stringField(fields, "name"),
		Substitutes: stringsValue(fields["substitutes"]),
	}
}

func IngredientToFields(ing model.Ingredient) map[string]any {
	return map[string]any{
		"amount":      ing.Amount,
		"unit":        ing.Unit,
		"name":        ing.Name,
		"substitutes": anySlice(ing.Substitutes),
	}
}

// UserFromFields reads a profile document. Profiles written before the
// authLevel field existed are treated as plain users.
func UserFromFields(fields map[string]any) model.User {
	u := model.User{
		ID:              stringField(fields, FieldUserID),
		DisplayName:     stringField(fields, FieldUsername),
		Email:           stringField(fields, FieldEmail),
		AuthLevel:       stringField(fields, FieldAuthLevel),
		CreatedRecipes:  stringsValue(fields[FieldCreatedRecipes]),
		FavoriteRecipes: stringsValue(fields[FieldFavoriteRecipes]),
	}
	if u.AuthLevel == "" {
		u.AuthLevel = model.AuthLevelUser
	}
	return u
}

func UserToStoredFields(u model.User) map[string]any {
	level := u.AuthLevel
	if level == "" {
		level = model.AuthLevelUser
	}
	return map[string]any{
		FieldUserID:          u.ID,
		FieldUsername:        u.DisplayName,
		FieldEmail:           u.Email,
		FieldAuthLevel:       level,
		FieldCreatedRecipes:  anySlice(u.CreatedRecipes),
		FieldFavoriteRecipes: anySlice(u.FavoriteRecipes),
	}
}

// FavoriteFromFields reads a favorites document. The timestamp may be a
// time.Time, an RFC 3339 string or unix milliseconds.
func FavoriteFromFields(fields map[string]any) model.FavoriteEntry {
	var snapshot model.Recipe
	if m, ok := fields[FieldRecipe].(map[string]any); ok {
		snapshot = FromStoredFields(m)
	} else {
		snapshot = FromStoredFields(nil)
	}
	return model.FavoriteEntry{
		UserID:    stringField(fields, FieldUserID),
		Recipe:    snapshot,
		Timestamp: timeValue(fields[FieldTimestamp]),
	}
}

func FavoriteToStoredFields(e model.FavoriteEntry) map[string]any {
	return map[string]any{
		FieldUserID:    e.UserID,
		FieldRecipe:    ToStoredFields(e.Recipe),
		FieldTimestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

func stringField(fields map[string]any, key string) string {
	return stringValue(fields[key])
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int, int32, int64:
		return strconv.FormatInt(toInt64(s), 10)
	}
	return ""
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	}
	return 0
}

func floatValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err == nil {
			return f
		}
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

func boolValue(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	}
	return false
}

// stringsValue always returns a non-nil slice. Non-string elements are
// dropped.
func stringsValue(v any) []string {
	out := make([]string, 0)
	switch list := v.(type) {
	case []string:
		out = append(out, list...)
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func ingredientsField(v any) []model.Ingredient {
	out := make([]model.Ingredient, 0)
	switch list := v.(type) {
	case []any:
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, IngredientFromFields(m))
			}
		}
	case []map[string]any:
		for _, m := range list {
			out = append(out, IngredientFromFields(m))
		}
	}
	return out
}

// nutrientValue accepts {amount, unit}, the mobile client's {first, second}
// pair or a bare number.
func nutrientValue(v any, defaultUnit string) model.Nutrient {
	n := model.Nutrient{Unit: defaultUnit}
	switch val := v.(type) {
	case map[string]any:
		if amount, ok := val["amount"]; ok {
			n.Amount = floatValue(amount)
			if unit := stringValue(val["unit"]); unit != "" {
				n.Unit = unit
			}
		} else {
			n.Amount = floatValue(val["first"])
			if unit := stringValue(val["second"]); unit != "" {
				n.Unit = unit
			}
		}
	case nil:
	default:
		n.Amount = floatValue(val)
	}
	return n
}

func nutrientToFields(n model.Nutrient) map[string]any {
	return map[string]any{"amount": n.Amount, "unit": n.Unit}
}

func timeValue(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err == nil {
			return parsed
		}
	default:
		if ms := floatValue(v); ms > 0 {
			return time.UnixMilli(int64(ms)).UTC()
		}
	}
	return time.Time{}
}

func anySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
