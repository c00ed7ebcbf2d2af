package catalog

import (
	"fmt"
	"time"

	"github.com/cookmate/cookmate/backend/internal/model"
)

// Favorites decides favorite additions and removals over a snapshot of the
// favorites collection. It does no I/O; the caller persists the outcome.
//
// Entries are keyed by (user id, recipe title). Uniqueness is only checked
// here, so concurrent adds against the same snapshot can both succeed.
type Favorites struct {
	entries []model.FavoriteEntry
}

// NewFavorites wraps entries, which must be in store order.
func NewFavorites(entries []model.FavoriteEntry) *Favorites {
	return &Favorites{entries: entries}
}

// Find returns the first entry for userID whose snapshot has the given title.
func (f *Favorites) Find(userID, title string) (model.FavoriteEntry, bool) {
	for _, e := range f.entries {
		if e.UserID == userID && e.Recipe.Title == title {
			return e, true
		}
	}
	return model.FavoriteEntry{}, false
}

// Add returns a new entry holding a deep copy of recipe, or ErrAlreadyExists
// when the user already has a favorite with that title. The new entry is also
// appended to the snapshot so a second Add in the same pass is rejected.
func (f *Favorites) Add(userID string, recipe model.Recipe, now time.Time) (model.FavoriteEntry, error) {
	if _, ok := f.Find(userID, recipe.Title); ok {
		return model.FavoriteEntry{}, fmt.Errorf("favorite %q: %w", recipe.Title, ErrAlreadyExists)
	}
	entry := model.FavoriteEntry{
		UserID:    userID,
		Recipe:    recipe.Clone(),
		Timestamp: now,
	}
	f.entries = append(f.entries, entry)
	return entry, nil
}

// Remove returns the first entry matching (userID, title) and drops it from
// the snapshot, or ErrNotFound. Duplicates beyond the first are left alone.
func (f *Favorites) Remove(userID, title string) (model.FavoriteEntry, error) {
	for i, e := range f.entries {
		if e.UserID == userID && e.Recipe.Title == title {
			f.entries = append(f.entries[:i:i], f.entries[i+1:]...)
			return e, nil
		}
	}
	return model.FavoriteEntry{}, fmt.Errorf("favorite %q: %w", title, ErrNotFound)
}

// List returns the recipe snapshots favorited by userID in store order.
func (f *Favorites) List(userID string) []model.Recipe {
	out := make([]model.Recipe, 0)
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e.Recipe.Clone())
		}
	}
	return out
}
