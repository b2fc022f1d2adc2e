package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRecipeRepository lets service tests script repository outcomes
// without a database.
type fakeRecipeRepository struct {
	createRecipe   func(recipe *entities.Recipe) error
	getByID        func(id string) (*entities.Recipe, error)
	getRecipes     func(filter domain.RecipeFilter, actingUserID uuid.UUID) ([]*entities.Recipe, int64, error)
	addFavorite    func(userID, recipeID uuid.UUID) error
	removeFavorite func(userID, recipeID uuid.UUID) (int64, error)
	addToCart      func(userID, recipeID uuid.UUID) error
	removeFromCart func(userID, recipeID uuid.UUID) (int64, error)
}

func (f *fakeRecipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, rows []*entities.RecipeIngredient, tags []*entities.Tag) error {
	if f.createRecipe != nil {
		return f.createRecipe(recipe)
	}
	return nil
}

func (f *fakeRecipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, rows []*entities.RecipeIngredient, tags []*entities.Tag) error {
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	return f.getByID(id)
}

func (f *fakeRecipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, actingUserID uuid.UUID, page, limit int) ([]*entities.Recipe, int64, error) {
	return f.getRecipes(filter, actingUserID)
}

func (f *fakeRecipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) (int64, error) {
	return 1, nil
}

func (f *fakeRecipeRepository) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return f.addFavorite(userID, recipeID)
}

func (f *fakeRecipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) (int64, error) {
	return f.removeFavorite(userID, recipeID)
}

func (f *fakeRecipeRepository) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return f.addToCart(userID, recipeID)
}

func (f *fakeRecipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) (int64, error) {
	return f.removeFromCart(userID, recipeID)
}

func (f *fakeRecipeRepository) GetUserRecipeMarks(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, map[uuid.UUID]bool, error) {
	return map[uuid.UUID]bool{}, map[uuid.UUID]bool{}, nil
}

func (f *fakeRecipeRepository) GetCartIngredients(ctx context.Context, userID uuid.UUID) ([]*entities.RecipeIngredient, error) {
	return nil, nil
}

// fakeAuthorRepository satisfies user.UserRepository for response building.
type fakeAuthorRepository struct{}

func (f *fakeAuthorRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return nil
}

func (f *fakeAuthorRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthorRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthorRepository) GetUsers(ctx context.Context, page, limit int) ([]*entities.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeAuthorRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return nil
}

func (f *fakeAuthorRepository) CreateFollow(ctx context.Context, follow *entities.Follow) error {
	return nil
}

func (f *fakeAuthorRepository) DeleteFollow(ctx context.Context, followerID, followeeID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeAuthorRepository) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeAuthorRepository) GetFollowedAuthorIDs(ctx context.Context, followerID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return map[uuid.UUID]bool{}, nil
}

func (f *fakeAuthorRepository) GetFollowees(ctx context.Context, followerID uuid.UUID, page, limit int) ([]*entities.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeAuthorRepository) GetAuthorRecipes(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error) {
	return nil, nil
}

func (f *fakeAuthorRepository) CountAuthorRecipes(ctx context.Context, authorID uuid.UUID) (int64, error) {
	return 0, nil
}

// fakeCatalogRepository resolves every requested tag/ingredient id.
type fakeCatalogRepository struct{}

func (f *fakeCatalogRepository) GetTags(ctx context.Context) ([]*entities.Tag, error) {
	return nil, nil
}

func (f *fakeCatalogRepository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalogRepository) GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	tags := make([]*entities.Tag, 0, len(ids))
	for _, id := range ids {
		tags = append(tags, &entities.Tag{ID: id, Name: "tag", Slug: id.String()})
	}
	return tags, nil
}

func (f *fakeCatalogRepository) GetOrCreateTag(ctx context.Context, name, color, slug string) (*entities.Tag, bool, error) {
	return nil, false, nil
}

func (f *fakeCatalogRepository) GetIngredients(ctx context.Context, filter domain.IngredientFilter) ([]*entities.Ingredient, error) {
	return nil, nil
}

func (f *fakeCatalogRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalogRepository) GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	ingredients := make([]*entities.Ingredient, 0, len(ids))
	for _, id := range ids {
		ingredients = append(ingredients, &entities.Ingredient{ID: id, Name: "ingredient", MeasurementUnit: "g"})
	}
	return ingredients, nil
}

func (f *fakeCatalogRepository) GetOrCreateIngredient(ctx context.Context, name, unit string) (*entities.Ingredient, bool, error) {
	return nil, false, nil
}

// fakeMediaStore records uploads and deletions.
type fakeMediaStore struct {
	uploaded []string
	deleted  []string
}

func (f *fakeMediaStore) UploadBase64(fileName string, payload string, dir string, allowedExt ...string) (string, error) {
	key := dir + "/" + fileName + ".png"
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeMediaStore) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeMediaStore) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

func (f *fakeMediaStore) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://cdn.test/")
}

func serviceWith(repo RecipeRepository) RecipeService {
	return NewRecipeService(repo, &fakeCatalogRepository{}, &fakeAuthorRepository{}, &fakeMediaStore{})
}

func TestGetRecipesClearsPerUserFiltersForAnonymous(t *testing.T) {
	var seen domain.RecipeFilter
	repo := &fakeRecipeRepository{
		getRecipes: func(filter domain.RecipeFilter, actingUserID uuid.UUID) ([]*entities.Recipe, int64, error) {
			seen = filter
			assert.Equal(t, uuid.Nil, actingUserID)
			return nil, 0, nil
		},
	}

	filter := domain.RecipeFilter{FavoritedOnly: true, InCartOnly: true, AuthorID: "someone"}
	_, err := serviceWith(repo).GetRecipes(context.Background(), filter, 1, 20, "")
	require.NoError(t, err)

	assert.False(t, seen.FavoritedOnly)
	assert.False(t, seen.InCartOnly)
	assert.Equal(t, "someone", seen.AuthorID)
}

func TestGetRecipesKeepsPerUserFiltersForAuthedCaller(t *testing.T) {
	actingID := uuid.New()
	var seen domain.RecipeFilter
	repo := &fakeRecipeRepository{
		getRecipes: func(filter domain.RecipeFilter, actingUserID uuid.UUID) ([]*entities.Recipe, int64, error) {
			seen = filter
			assert.Equal(t, actingID, actingUserID)
			return nil, 0, nil
		},
	}

	filter := domain.RecipeFilter{FavoritedOnly: true, InCartOnly: true}
	_, err := serviceWith(repo).GetRecipes(context.Background(), filter, 1, 20, actingID.String())
	require.NoError(t, err)

	assert.True(t, seen.FavoritedOnly)
	assert.True(t, seen.InCartOnly)
}

func TestCreateRecipeCleansUpImageWhenPersistFails(t *testing.T) {
	repo := &fakeRecipeRepository{
		createRecipe: func(recipe *entities.Recipe) error { return errors.New("insert failed") },
	}
	media := &fakeMediaStore{}
	svc := NewRecipeService(repo, &fakeCatalogRepository{}, &fakeAuthorRepository{}, media)

	_, err := svc.CreateRecipe(context.Background(), validWriteRequest(), uuid.NewString())
	require.Error(t, err)

	require.Len(t, media.uploaded, 1)
	assert.Equal(t, media.uploaded, media.deleted)
}

func TestUpdateRecipeRejectsNonAuthor(t *testing.T) {
	repo := &fakeRecipeRepository{
		getByID: func(id string) (*entities.Recipe, error) {
			return &entities.Recipe{ID: uuid.New(), AuthorID: uuid.New()}, nil
		},
	}

	_, err := serviceWith(repo).UpdateRecipe(
		context.Background(), uuid.NewString(), validWriteRequest(), uuid.NewString(), domain.RoleUser,
	)
	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)
}

func TestDeleteRecipeUnknownID(t *testing.T) {
	repo := &fakeRecipeRepository{
		getByID: func(id string) (*entities.Recipe, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	err := serviceWith(repo).DeleteRecipe(context.Background(), uuid.NewString(), uuid.NewString(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestAddFavoriteDuplicate(t *testing.T) {
	recipe := &entities.Recipe{ID: uuid.New(), AuthorID: uuid.New()}
	repo := &fakeRecipeRepository{
		getByID:     func(id string) (*entities.Recipe, error) { return recipe, nil },
		addFavorite: func(userID, recipeID uuid.UUID) error { return gorm.ErrDuplicatedKey },
	}

	_, err := serviceWith(repo).AddFavorite(context.Background(), recipe.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
}

func TestAddFavoriteReturnsPreview(t *testing.T) {
	recipe := &entities.Recipe{ID: uuid.New(), AuthorID: uuid.New(), Name: "Borscht", CookingTime: 90}
	repo := &fakeRecipeRepository{
		getByID:     func(id string) (*entities.Recipe, error) { return recipe, nil },
		addFavorite: func(userID, recipeID uuid.UUID) error { return nil },
	}

	preview, err := serviceWith(repo).AddFavorite(context.Background(), recipe.ID.String(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, recipe.ID.String(), preview.ID)
	assert.Equal(t, "Borscht", preview.Name)
	assert.Equal(t, 90, preview.CookingTime)
}

func TestRemoveFavoriteAbsent(t *testing.T) {
	recipe := &entities.Recipe{ID: uuid.New(), AuthorID: uuid.New()}
	repo := &fakeRecipeRepository{
		getByID:        func(id string) (*entities.Recipe, error) { return recipe, nil },
		removeFavorite: func(userID, recipeID uuid.UUID) (int64, error) { return 0, nil },
	}

	err := serviceWith(repo).RemoveFavorite(context.Background(), recipe.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFavorited)
}

func TestCartConflictAndAbsent(t *testing.T) {
	recipe := &entities.Recipe{ID: uuid.New(), AuthorID: uuid.New()}
	repo := &fakeRecipeRepository{
		getByID:        func(id string) (*entities.Recipe, error) { return recipe, nil },
		addToCart:      func(userID, recipeID uuid.UUID) error { return gorm.ErrDuplicatedKey },
		removeFromCart: func(userID, recipeID uuid.UUID) (int64, error) { return 0, nil },
	}
	svc := serviceWith(repo)

	_, err := svc.AddToCart(context.Background(), recipe.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrAlreadyInCart)

	err = svc.RemoveFromCart(context.Background(), recipe.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotInCart)
}
