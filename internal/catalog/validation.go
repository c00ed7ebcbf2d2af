package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cookmate/cookmate/backend/internal/model"
)

// MinPasswordLength is the shortest password accepted at sign-up and sign-in.
const MinPasswordLength = 6

// emailPattern is the address pattern the mobile client validated against.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9+._%\-]{1,256}@[a-zA-Z0-9][a-zA-Z0-9\-]{0,64}(\.[a-zA-Z0-9][a-zA-Z0-9\-]{0,25})+$`)

// Submission error messages, in the order they are reported.
const (
	MsgTitleRequired       = "Title is required"
	MsgStepsRequired       = "Preparation steps are required"
	MsgCookingTimeRequired = "Cooking time is required"
	MsgPrepTimeRequired    = "Prep time is required"
	MsgServingRequired     = "Serving size is required"
	MsgIngredientRequired  = "At least one ingredient is required"
	MsgDifficultyRequired  = "Difficulty level is required"
	MsgCategoryRequired    = "At least one category is required"
)

// ValidateEmail reports whether s is a well-formed email address. Empty is
// invalid.
func ValidateEmail(s string) bool {
	if s == "" {
		return false
	}
	return emailPattern.MatchString(s)
}

// ValidatePassword reports whether s has at least MinPasswordLength
// characters.
func ValidatePassword(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength
}

// ValidateUsername reports whether s has any non-space character.
func ValidateUsername(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidateSignUp checks the three sign-up form fields and reports every
// failing one.
func ValidateSignUp(email, password, username string) error {
	var msgs []string
	if !ValidateUsername(username) {
		msgs = append(msgs, "Username cannot be empty")
	}
	if !ValidateEmail(email) {
		msgs = append(msgs, "Invalid email address")
	}
	if !ValidatePassword(password) {
		msgs = append(msgs, fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// ValidateRecipeSubmission runs every submission check and returns a
// *ValidationError listing all violations, or nil. Drafts are held to the same
// rules as published recipes.
func ValidateRecipeSubmission(r model.Recipe) error {
	var msgs []string
	if blank(r.Title) {
		msgs = append(msgs, MsgTitleRequired)
	}
	if blank(r.PreparationSteps) {
		msgs = append(msgs, MsgStepsRequired)
	}
	if blank(r.CookingTime) {
		msgs = append(msgs, MsgCookingTimeRequired)
	}
	if blank(r.PrepTime) {
		msgs = append(msgs, MsgPrepTimeRequired)
	}
	if blank(r.ServingSize) {
		msgs = append(msgs, MsgServingRequired)
	}
	if len(r.Ingredients) == 0 {
		msgs = append(msgs, MsgIngredientRequired)
	}
	if r.Difficulty == "" {
		msgs = append(msgs, MsgDifficultyRequired)
	}
	if len(r.Categories) == 0 {
		msgs = append(msgs, MsgCategoryRequired)
	}

	if r.Difficulty != "" && !r.Difficulty.Valid() {
		msgs = append(msgs, fmt.Sprintf("Difficulty must be one of Easy, Medium or Hard, got %q", r.Difficulty))
	}
	for i, ing := range r.Ingredients {
		if blank(ing.Name) {
			msgs = append(msgs, fmt.Sprintf("Ingredient %d has no name", i+1))
			continue
		}
		if ing.Amount <= 0 {
			msgs = append(msgs, fmt.Sprintf("Ingredient %q must have an amount greater than zero", ing.Name))
		}
	}

	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
