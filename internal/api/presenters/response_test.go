package presenters

import (
	"errors"
	"fmt"
	"testing"

	"Foodgram-Backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatusFromError(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want int
	}{
		{domain.ErrRecipeNotFound, fiber.StatusNotFound},
		{domain.ErrUserNotFound, fiber.StatusNotFound},
		{domain.ErrTagNotFound, fiber.StatusNotFound},
		{domain.ErrIngredientNotFound, fiber.StatusNotFound},
		{domain.ErrNotRecipeAuthor, fiber.StatusForbidden},
		{domain.ErrUserNotAllowed, fiber.StatusForbidden},
		{domain.ErrUnauthenticated, fiber.StatusUnauthorized},
		{domain.ErrTokenExpired, fiber.StatusUnauthorized},
		{domain.ErrTokenInvalid, fiber.StatusUnauthorized},
		{domain.ErrUserAlreadyExists, fiber.StatusConflict},
		{domain.ErrAlreadySubscribed, fiber.StatusConflict},
		{domain.ErrAlreadyFavorited, fiber.StatusConflict},
		{domain.ErrAlreadyInCart, fiber.StatusConflict},
		{gorm.ErrDuplicatedKey, fiber.StatusConflict},
		{domain.ErrNotFavorited, fiber.StatusBadRequest},
		{errors.New("something else"), fiber.StatusBadRequest},
	} {
		assert.Equalf(t, tc.want, StatusFromError(tc.err), "error: %v", tc.err)
	}
}

func TestStatusFromErrorUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("loading recipe: %w", domain.ErrRecipeNotFound)
	assert.Equal(t, fiber.StatusNotFound, StatusFromError(wrapped))
}

func TestViolationsFromValidationError(t *testing.T) {
	verr := domain.NewValidationError("tags", "at least one tag is required").
		Add("cooking_time", "must be between 1 and 32000")

	violations := violationsFromError(verr)
	require.Len(t, violations, 2)
	assert.Equal(t, "tags", violations[0].Field)
	assert.Equal(t, "cooking_time", violations[1].Field)
}

func TestViolationsFromUnknownError(t *testing.T) {
	assert.Nil(t, violationsFromError(errors.New("boom")))
}
