package model

const (
	AuthLevelUser  = "User"
	AuthLevelAdmin = "Admin"
)

// User is the profile attached to an identity issued by the identity provider.
// FavoriteRecipes is a legacy denormalized field; favorites live in their own
// collection.
type User struct {
	ID              string   `json:"id"`
	DisplayName     string   `json:"display_name"`
	Email           string   `json:"email,omitempty"`
	AuthLevel       string   `json:"auth_level"`
	CreatedRecipes  []string `json:"created_recipes"`
	FavoriteRecipes []string `json:"favorite_recipes"`
}

// IsAdmin reports whether the user has the admin auth level.
func (u User) IsAdmin() bool {
	return u.AuthLevel == AuthLevelAdmin
}
