package domain

import (
	"errors"
	"time"
)

// Bounds shared by cooking_time and ingredient amounts. The lower bound is
// the interesting one; the upper bound keeps smallint-scale sanity on input.
const (
	MinCookingTime      = 1
	MaxCookingTime      = 32000
	MinIngredientAmount = 1
	MaxIngredientAmount = 32000
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddFavorite     = "recipe added to favorites"
	MessageSuccessRemoveFavorite  = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"
	MessageSuccessGetShoppingList = "success get shopping list"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddFavorite     = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite  = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"
	MessageFailedGetShoppingList = "failed to get shopping list"

	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrNotRecipeAuthor  = errors.New("only the author or staff may modify this recipe")
	ErrAlreadyFavorited = errors.New("recipe already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
	ErrAlreadyInCart    = errors.New("recipe already in shopping cart")
	ErrNotInCart        = errors.New("recipe is not in shopping cart")
)

type (
	RecipeIngredientWrite struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required"`
	}

	RecipeWriteRequest struct {
		Name        string                  `json:"name" validate:"required,max=200"`
		Text        string                  `json:"text" validate:"required"`
		CookingTime int                     `json:"cooking_time" validate:"required"`
		Image       string                  `json:"image" validate:"omitempty"`
		Tags        []string                `json:"tags"`
		Ingredients []RecipeIngredientWrite `json:"ingredients"`
	}

	// RecipeFilter carries the AND-combined listing filters. FavoritedOnly
	// and InCartOnly are ignored for anonymous callers.
	RecipeFilter struct {
		TagSlugs      []string
		AuthorID      string
		FavoritedOnly bool
		InCartOnly    bool
	}

	RecipeIngredientRead struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               string                 `json:"id"`
		Name             string                 `json:"name"`
		Text             string                 `json:"text"`
		CookingTime      int                    `json:"cooking_time"`
		ImageURL         string                 `json:"image_url,omitempty"`
		Author           UserProfileResponse    `json:"author"`
		Tags             []TagResponse          `json:"tags"`
		Ingredients      []RecipeIngredientRead `json:"ingredients"`
		IsFavorited      bool                   `json:"is_favorited"`
		IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
		CreatedAt        time.Time              `json:"created_at"`
	}

	RecipeListResponse struct {
		Recipes []RecipeResponse `json:"recipes"`
		Total   int64            `json:"total"`
	}

	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}
)
