package catalog

import (
	"strings"

	"github.com/cookmate/cookmate/backend/internal/model"
)

// DefaultIngredientUnit is used for ingredient lines that match nothing in the
// reference list.
const DefaultIngredientUnit = "units"

// IngredientLine is a free-text ingredient entry as typed by a user.
type IngredientLine struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ResolveIngredient matches name case-insensitively against reference and
// fills in unit and substitutes from the first match. The caller's name and
// amount are kept. A miss is not an error: the result gets the default unit
// and no substitutes.
func ResolveIngredient(name string, amount float64, reference []model.Ingredient) model.Ingredient {
	for _, ref := range reference {
		if strings.EqualFold(ref.Name, name) {
			subs := make([]string, len(ref.Substitutes))
			copy(subs, ref.Substitutes)
			return model.Ingredient{
				Amount:      amount,
				Unit:        ref.Unit,
				Name:        name,
				Substitutes: subs,
			}
		}
	}
	return model.Ingredient{
		Amount:      amount,
		Unit:        DefaultIngredientUnit,
		Name:        name,
		Substitutes: []string{},
	}
}

// ResolveIngredients resolves lines in order. Lines with a blank name are
// dropped, the way empty rows of the create form were.
func ResolveIngredients(lines []IngredientLine, reference []model.Ingredient) []model.Ingredient {
	out := make([]model.Ingredient, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			continue
		}
		out = append(out, ResolveIngredient(name, line.Amount, reference))
	}
	return out
}
