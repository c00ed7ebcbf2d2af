package model

// Difficulty is the closed set of recipe difficulty levels. The zero value
// means the recipe has no difficulty set.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the valid difficulty levels in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// Nutrient is a single nutrition fact, e.g. 250 kcal or 12 g.
type Nutrient struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Ingredient is a line item of a recipe or an entry of the reference list.
type Ingredient struct {
	Amount      float64  `json:"amount"`
	Unit        string   `json:"unit"`
	Name        string   `json:"name"`
	Substitutes []string `json:"substitutes"`
}

// Recipe is a published or draft catalog entry. ID is assigned by the store
// and is not part of the stored field map.
type Recipe struct {
	ID                string       `json:"id,omitempty"`
	Title             string       `json:"title"`
	Ingredients       []Ingredient `json:"ingredients"`
	PreparationSteps  string       `json:"preparation_steps"`
	CookingTime       string       `json:"cooking_time"`
	PrepTime          string       `json:"prep_time"`
	ServingSize       string       `json:"serving_size"`
	Categories        []string     `json:"categories"`
	Difficulty        Difficulty   `json:"difficulty,omitempty"`
	IsDraft           bool         `json:"is_draft"`
	AuthorID          string       `json:"author_id"`
	ImageReference    string       `json:"image_reference,omitempty"`
	Rating            float64      `json:"rating"`
	RecipeDescription string       `json:"recipe_description"`
	Calories          Nutrient     `json:"calories"`
	Fat               Nutrient     `json:"fat"`
	Carbs             Nutrient     `json:"carbs"`
	Protein           Nutrient     `json:"protein"`
}

// Clone returns a deep copy of the recipe.
func (r Recipe) Clone() Recipe {
	c := r
	if r.Ingredients != nil {
		c.Ingredients = make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			c.Ingredients[i] = ing.Clone()
		}
	}
	if r.Categories != nil {
		c.Categories = append([]string(nil), r.Categories...)
	}
	return c
}

// Clone returns a deep copy of the ingredient.
func (i Ingredient) Clone() Ingredient {
	c := i
	if i.Substitutes != nil {
		c.Substitutes = append([]string(nil), i.Substitutes...)
	}
	return c
}
