package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, rows []*entities.RecipeIngredient, tags []*entities.Tag) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, rows []*entities.RecipeIngredient, tags []*entities.Tag) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, actingUserID uuid.UUID, page, limit int) ([]*entities.Recipe, int64, error)
		DeleteRecipe(ctx context.Context, id uuid.UUID) (int64, error)

		AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
		RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) (int64, error)
		AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error
		RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) (int64, error)
		GetUserRecipeMarks(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, map[uuid.UUID]bool, error)

		GetCartIngredients(ctx context.Context, userID uuid.UUID) ([]*entities.RecipeIngredient, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe writes the recipe, its ingredient rows and its tag links in
// one transaction: either the whole recipe commits or none of it does.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, rows []*entities.RecipeIngredient, tags []*entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}

		for _, row := range rows {
			row.RecipeID = recipe.ID
		}
		if len(rows) > 0 {
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}

		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
}

// UpdateRecipe replaces the ingredient and tag sets wholesale: old
// ingredient rows are deleted and the new set inserted, tag links re-set.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, rows []*entities.RecipeIngredient, tags []*entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for _, row := range rows {
			row.RecipeID = recipe.ID
		}
		if len(rows) > 0 {
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}

		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, actingUserID uuid.UUID, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.applyFilter(ctx, filter, actingUserID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.applyFilter(ctx, filter, actingUserID).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Offset(offset).
		Limit(limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) applyFilter(ctx context.Context, filter domain.RecipeFilter, actingUserID uuid.UUID) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if len(filter.TagSlugs) > 0 {
		query = query.Where("recipes.id IN (?)", r.db.
			Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs))
	}
	if filter.AuthorID != "" {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.FavoritedOnly {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", actingUserID)
	}
	if filter.InCartOnly {
		query = query.
			Joins("JOIN carts ON carts.recipe_id = recipes.id").
			Where("carts.user_id = ?", actingUserID)
	}

	return query
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) (int64, error) {
	// dependent rows (ingredient rows, favorites, carts, tag links) go
	// with the recipe via ON DELETE CASCADE
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{})
	return res.RowsAffected, res.Error
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entities.Favorite{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{})
	return res.RowsAffected, res.Error
}

func (r *recipeRepository) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entities.Cart{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

func (r *recipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Cart{})
	return res.RowsAffected, res.Error
}

// GetUserRecipeMarks resolves is_favorited / is_in_shopping_cart for a
// whole page of recipes with one membership query per set instead of two
// existence queries per recipe.
func (r *recipeRepository) GetUserRecipeMarks(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, map[uuid.UUID]bool, error) {
	favorites := make(map[uuid.UUID]bool, len(recipeIDs))
	carts := make(map[uuid.UUID]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return favorites, carts, nil
	}

	var favoriteIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &favoriteIDs).Error; err != nil {
		return nil, nil, err
	}
	for _, id := range favoriteIDs {
		favorites[id] = true
	}

	var cartIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Cart{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &cartIDs).Error; err != nil {
		return nil, nil, err
	}
	for _, id := range cartIDs {
		carts[id] = true
	}

	return favorites, carts, nil
}

func (r *recipeRepository) GetCartIngredients(ctx context.Context, userID uuid.UUID) ([]*entities.RecipeIngredient, error) {
	var rows []*entities.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Joins("JOIN carts ON carts.recipe_id = recipe_ingredients.recipe_id").
		Where("carts.user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
