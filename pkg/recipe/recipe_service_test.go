package recipe

import (
	"errors"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWriteRequest() domain.RecipeWriteRequest {
	return domain.RecipeWriteRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 15,
		Image:       "data:image/png;base64,aGVsbG8=",
		Tags:        []string{uuid.NewString()},
		Ingredients: []domain.RecipeIngredientWrite{
			{ID: uuid.NewString(), Amount: 200},
		},
	}
}

func violationFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestValidateRecipeWriteAcceptsValidRequest(t *testing.T) {
	assert.NoError(t, ValidateRecipeWrite(validWriteRequest(), true))
}

func TestValidateRecipeWriteCookingTimeBounds(t *testing.T) {
	for _, tc := range []struct {
		name        string
		cookingTime int
		wantErr     bool
	}{
		{"below minimum", 0, true},
		{"at minimum", domain.MinCookingTime, false},
		{"at maximum", domain.MaxCookingTime, false},
		{"above maximum", domain.MaxCookingTime + 1, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := validWriteRequest()
			req.CookingTime = tc.cookingTime

			err := ValidateRecipeWrite(req, true)
			if tc.wantErr {
				assert.Contains(t, violationFields(t, err), "cooking_time")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRecipeWriteIngredientAmountBounds(t *testing.T) {
	req := validWriteRequest()
	req.Ingredients[0].Amount = 0
	assert.Contains(t, violationFields(t, ValidateRecipeWrite(req, true)), "ingredients")

	req = validWriteRequest()
	req.Ingredients[0].Amount = domain.MaxIngredientAmount + 1
	assert.Contains(t, violationFields(t, ValidateRecipeWrite(req, true)), "ingredients")
}

func TestValidateRecipeWriteRejectsDuplicateTags(t *testing.T) {
	req := validWriteRequest()
	req.Tags = append(req.Tags, req.Tags[0])

	assert.Contains(t, violationFields(t, ValidateRecipeWrite(req, true)), "tags")
}

func TestValidateRecipeWriteRejectsDuplicateIngredients(t *testing.T) {
	req := validWriteRequest()
	req.Ingredients = append(req.Ingredients, req.Ingredients[0])

	assert.Contains(t, violationFields(t, ValidateRecipeWrite(req, true)), "ingredients")
}

func TestValidateRecipeWriteRejectsEmptySets(t *testing.T) {
	req := validWriteRequest()
	req.Tags = nil
	req.Ingredients = nil

	fields := violationFields(t, ValidateRecipeWrite(req, true))
	assert.Contains(t, fields, "tags")
	assert.Contains(t, fields, "ingredients")
}

func TestValidateRecipeWriteImageRequiredOnlyOnCreate(t *testing.T) {
	req := validWriteRequest()
	req.Image = ""

	assert.Contains(t, violationFields(t, ValidateRecipeWrite(req, true)), "image")
	assert.NoError(t, ValidateRecipeWrite(req, false))
}

func TestValidateRecipeWriteCollectsAllViolations(t *testing.T) {
	req := validWriteRequest()
	req.CookingTime = 0
	req.Tags = nil
	req.Image = ""

	fields := violationFields(t, ValidateRecipeWrite(req, true))
	assert.Contains(t, fields, "cooking_time")
	assert.Contains(t, fields, "tags")
	assert.Contains(t, fields, "image")
}

func TestCanModifyRecipe(t *testing.T) {
	authorID := uuid.New()
	recipe := &entities.Recipe{AuthorID: authorID}

	assert.True(t, CanModifyRecipe(recipe, authorID.String(), domain.RoleUser))
	assert.True(t, CanModifyRecipe(recipe, uuid.NewString(), domain.RoleStaff))
	assert.False(t, CanModifyRecipe(recipe, uuid.NewString(), domain.RoleUser))
}

func TestAggregateShoppingListSumsPerIngredient(t *testing.T) {
	flour := &entities.Ingredient{ID: uuid.New(), Name: "flour", MeasurementUnit: "g"}
	egg := &entities.Ingredient{ID: uuid.New(), Name: "egg", MeasurementUnit: "pc"}

	rows := []*entities.RecipeIngredient{
		{Ingredient: flour, Amount: 200},
		{Ingredient: egg, Amount: 2},
		{Ingredient: flour, Amount: 300},
	}

	items := AggregateShoppingList(rows)
	require.Len(t, items, 2)
	assert.Equal(t, domain.ShoppingListItem{Name: "egg", MeasurementUnit: "pc", Amount: 2}, items[0])
	assert.Equal(t, domain.ShoppingListItem{Name: "flour", MeasurementUnit: "g", Amount: 500}, items[1])
}

func TestAggregateShoppingListKeepsUnitsApart(t *testing.T) {
	gram := &entities.Ingredient{ID: uuid.New(), Name: "milk", MeasurementUnit: "g"}
	milliliter := &entities.Ingredient{ID: uuid.New(), Name: "milk", MeasurementUnit: "ml"}

	items := AggregateShoppingList([]*entities.RecipeIngredient{
		{Ingredient: milliliter, Amount: 100},
		{Ingredient: gram, Amount: 50},
	})

	require.Len(t, items, 2)
	assert.Equal(t, "g", items[0].MeasurementUnit)
	assert.Equal(t, "ml", items[1].MeasurementUnit)
}

func TestAggregateShoppingListEmptyCart(t *testing.T) {
	assert.Empty(t, AggregateShoppingList(nil))
}
