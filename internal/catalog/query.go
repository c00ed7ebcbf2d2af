package catalog

import (
	"strings"

	"github.com/cookmate/cookmate/backend/internal/model"
)

// Criteria selects recipes. Every unset field passes all recipes.
type Criteria struct {
	TextQuery     string
	Categories    []string
	Difficulty    model.Difficulty
	AuthorID      string
	IncludeDrafts bool
}

// Query returns the recipes of all that satisfy every predicate in c, in input
// order. Stores return documents newest-first or oldest-first as they see fit
// and that order is the display order, so nothing is re-sorted here.
func Query(all []model.Recipe, c Criteria) []model.Recipe {
	text := strings.ToLower(strings.TrimSpace(c.TextQuery))
	cats := lowerSet(c.Categories)

	out := make([]model.Recipe, 0, len(all))
	for _, r := range all {
		if !c.IncludeDrafts && r.IsDraft {
			continue
		}
		if c.AuthorID != "" && r.AuthorID != c.AuthorID {
			continue
		}
		if len(cats) > 0 && !anyCategoryIn(r.Categories, cats) {
			continue
		}
		if c.Difficulty != "" && r.Difficulty != c.Difficulty {
			continue
		}
		if text != "" && !matchesText(r, text) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func anyCategoryIn(categories []string, set map[string]struct{}) bool {
	for _, c := range categories {
		if _, ok := set[strings.ToLower(c)]; ok {
			return true
		}
	}
	return false
}

// matchesText expects text to be lower-cased already.
func matchesText(r model.Recipe, text string) bool {
	if strings.Contains(strings.ToLower(r.Title), text) {
		return true
	}
	for _, c := range r.Categories {
		if strings.Contains(strings.ToLower(c), text) {
			return true
		}
	}
	return false
}
