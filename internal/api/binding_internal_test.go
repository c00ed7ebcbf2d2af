package api

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidatorsDifficulty(t *testing.T) {
	require.NotPanics(t, RegisterValidators)
	require.NotPanics(t, RegisterValidators)

	type query struct {
		Difficulty string `form:"difficulty" binding:"omitempty,difficulty"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(&query{Difficulty: "Hard"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&query{}))

	err := binding.Validator.ValidateStruct(&query{Difficulty: "Impossible"})
	require.Error(t, err)
	assert.Equal(t, []string{"difficulty must be one of Easy, Medium, Hard"}, bindingMessages(err))
}
