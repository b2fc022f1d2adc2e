package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/catalog"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int, userID string) (domain.RecipeListResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.RecipeWriteRequest, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeWriteRequest, userID string, role string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string, role string) error

		AddFavorite(ctx context.Context, recipeID string, userID string) (domain.RecipePreview, error)
		RemoveFavorite(ctx context.Context, recipeID string, userID string) error
		AddToCart(ctx context.Context, recipeID string, userID string) (domain.RecipePreview, error)
		RemoveFromCart(ctx context.Context, recipeID string, userID string) error
		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		userRepository    user.UserRepository
		s3                storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	catalogRepository catalog.CatalogRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		userRepository:    userRepository,
		s3:                s3,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int, userID string) (domain.RecipeListResponse, error) {
	actingUUID := uuid.Nil
	if userID != "" {
		parsed, err := uuid.Parse(userID)
		if err != nil {
			return domain.RecipeListResponse{}, domain.ErrParseUUID
		}
		actingUUID = parsed
	} else {
		// per-user filters mean nothing for anonymous callers
		filter.FavoritedOnly = false
		filter.InCartOnly = false
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, actingUUID, page, limit)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	responses, err := s.buildResponses(ctx, recipes, actingUUID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	return domain.RecipeListResponse{
		Recipes: responses,
		Total:   count,
	}, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	actingUUID := uuid.Nil
	if userID != "" {
		parsed, err := uuid.Parse(userID)
		if err != nil {
			return domain.RecipeResponse{}, domain.ErrParseUUID
		}
		actingUUID = parsed
	}

	responses, err := s.buildResponses(ctx, []*entities.Recipe{recipe}, actingUUID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return responses[0], nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeWriteRequest, userID string) (domain.RecipeResponse, error) {
	if err := ValidateRecipeWrite(req, true); err != nil {
		return domain.RecipeResponse{}, err
	}

	authorUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	tags, rows, err := s.resolveAssociations(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	objectKey, err := s.s3.UploadBase64(recipe.ID.String(), req.Image, "recipes", storage.AllowImage...)
	if err != nil {
		return domain.RecipeResponse{}, domain.NewValidationError("image", err.Error())
	}
	recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, rows, tags); err != nil {
		// the image was uploaded before the transaction; do not orphan it
		_ = s.s3.DeleteFile(objectKey)
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeWriteRequest, userID string, role string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if !CanModifyRecipe(recipe, userID, role) {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	if err := ValidateRecipeWrite(req, false); err != nil {
		return domain.RecipeResponse{}, err
	}

	tags, rows, err := s.resolveAssociations(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime

	if req.Image != "" {
		if recipe.ImageURL != "" {
			existingKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
			_ = s.s3.DeleteFile(existingKey)
		}
		objectKey, uploadErr := s.s3.UploadBase64(recipe.ID.String(), req.Image, "recipes", storage.AllowImage...)
		if uploadErr != nil {
			return domain.RecipeResponse{}, domain.NewValidationError("image", uploadErr.Error())
		}
		recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	// preloaded associations must not be re-saved alongside the update
	recipe.Tags = nil
	recipe.Ingredients = nil

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, rows, tags); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string, role string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if !CanModifyRecipe(recipe, userID, role) {
		return domain.ErrNotRecipeAuthor
	}

	if recipe.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
		_ = s.s3.DeleteFile(objectKey)
	}

	_, err = s.recipeRepository.DeleteRecipe(ctx, recipe.ID)
	return err
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID string, userID string) (domain.RecipePreview, error) {
	recipe, actingUUID, err := s.recipeAndUser(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipePreview{}, err
	}

	if err := s.recipeRepository.AddFavorite(ctx, actingUUID, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipePreview{}, domain.ErrAlreadyFavorited
		}
		return domain.RecipePreview{}, err
	}

	return previewOf(recipe), nil
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID string, userID string) error {
	recipe, actingUUID, err := s.recipeAndUser(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	affected, err := s.recipeRepository.RemoveFavorite(ctx, actingUUID, recipe.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFavorited
	}
	return nil
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID string, userID string) (domain.RecipePreview, error) {
	recipe, actingUUID, err := s.recipeAndUser(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipePreview{}, err
	}

	if err := s.recipeRepository.AddToCart(ctx, actingUUID, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipePreview{}, domain.ErrAlreadyInCart
		}
		return domain.RecipePreview{}, err
	}

	return previewOf(recipe), nil
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID string, userID string) error {
	recipe, actingUUID, err := s.recipeAndUser(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	affected, err := s.recipeRepository.RemoveFromCart(ctx, actingUUID, recipe.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

func (s *recipeService) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	actingUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	rows, err := s.recipeRepository.GetCartIngredients(ctx, actingUUID)
	if err != nil {
		return nil, err
	}

	return AggregateShoppingList(rows), nil
}

// AggregateShoppingList consolidates the cart: amounts are summed per
// (ingredient name, measurement unit) pair and the result is ordered
// alphabetically by ingredient name.
func AggregateShoppingList(rows []*entities.RecipeIngredient) []domain.ShoppingListItem {
	type key struct {
		name string
		unit string
	}

	totals := make(map[key]int)
	for _, row := range rows {
		if row.Ingredient == nil {
			continue
		}
		k := key{name: row.Ingredient.Name, unit: row.Ingredient.MeasurementUnit}
		totals[k] += row.Amount
	}

	items := make([]domain.ShoppingListItem, 0, len(totals))
	for k, total := range totals {
		items = append(items, domain.ShoppingListItem{
			Name:            k.name,
			MeasurementUnit: k.unit,
			Amount:          total,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items
}

// ValidateRecipeWrite enforces the cross-field write rules: non-empty tag
// and ingredient sets without duplicates, bounds on cooking time and
// amounts, and a required image on create. All violations are collected
// and reported together.
func ValidateRecipeWrite(req domain.RecipeWriteRequest, requireImage bool) error {
	verr := &domain.ValidationError{}

	if req.CookingTime < domain.MinCookingTime || req.CookingTime > domain.MaxCookingTime {
		verr.Add("cooking_time", fmt.Sprintf(
			"must be between %d and %d", domain.MinCookingTime, domain.MaxCookingTime,
		))
	}

	if len(req.Tags) == 0 {
		verr.Add("tags", "at least one tag is required")
	}
	seenTags := make(map[string]bool, len(req.Tags))
	for _, tagID := range req.Tags {
		if seenTags[tagID] {
			verr.Add("tags", "duplicate tag: "+tagID)
		}
		seenTags[tagID] = true
	}

	if len(req.Ingredients) == 0 {
		verr.Add("ingredients", "at least one ingredient is required")
	}
	seenIngredients := make(map[string]bool, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if seenIngredients[ing.ID] {
			verr.Add("ingredients", "duplicate ingredient: "+ing.ID)
		}
		seenIngredients[ing.ID] = true

		if ing.Amount < domain.MinIngredientAmount || ing.Amount > domain.MaxIngredientAmount {
			verr.Add("ingredients", fmt.Sprintf(
				"amount for %s must be between %d and %d",
				ing.ID, domain.MinIngredientAmount, domain.MaxIngredientAmount,
			))
		}
	}

	if requireImage && req.Image == "" {
		verr.Add("image", "image is required")
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

// CanModifyRecipe is the write-side access rule: the author may modify
// their own recipe, staff may modify any.
func CanModifyRecipe(recipe *entities.Recipe, userID string, role string) bool {
	return recipe.AuthorID.String() == userID || role == domain.RoleStaff
}

// resolveAssociations maps the request's tag and ingredient ids onto
// catalog rows. Unknown ids are reported as field violations rather than
// surfacing as opaque foreign key errors.
func (s *recipeService) resolveAssociations(ctx context.Context, req domain.RecipeWriteRequest) ([]*entities.Tag, []*entities.RecipeIngredient, error) {
	tagIDs := make([]uuid.UUID, 0, len(req.Tags))
	for _, raw := range req.Tags {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, domain.NewValidationError("tags", "invalid tag id: "+raw)
		}
		tagIDs = append(tagIDs, id)
	}

	tags, err := s.catalogRepository.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, domain.NewValidationError("tags", "unknown tag in list")
	}

	ingredientIDs := make([]uuid.UUID, 0, len(req.Ingredients))
	amounts := make(map[uuid.UUID]int, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		id, err := uuid.Parse(ing.ID)
		if err != nil {
			return nil, nil, domain.NewValidationError("ingredients", "invalid ingredient id: "+ing.ID)
		}
		ingredientIDs = append(ingredientIDs, id)
		amounts[id] = ing.Amount
	}

	ingredients, err := s.catalogRepository.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(ingredients) != len(ingredientIDs) {
		return nil, nil, domain.NewValidationError("ingredients", "unknown ingredient in list")
	}

	rows := make([]*entities.RecipeIngredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		rows = append(rows, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ingredient.ID,
			Amount:       amounts[ingredient.ID],
		})
	}
	return tags, rows, nil
}

func (s *recipeService) recipeAndUser(ctx context.Context, recipeID string, userID string) (*entities.Recipe, uuid.UUID, error) {
	actingUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, uuid.Nil, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, domain.ErrRecipeNotFound
		}
		return nil, uuid.Nil, err
	}
	return recipe, actingUUID, nil
}

func (s *recipeService) buildResponses(ctx context.Context, recipes []*entities.Recipe, actingUserID uuid.UUID) ([]domain.RecipeResponse, error) {
	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	favorites := map[uuid.UUID]bool{}
	carts := map[uuid.UUID]bool{}
	followed := map[uuid.UUID]bool{}
	if actingUserID != uuid.Nil {
		var err error
		favorites, carts, err = s.recipeRepository.GetUserRecipeMarks(ctx, actingUserID, recipeIDs)
		if err != nil {
			return nil, err
		}
		followed, err = s.userRepository.GetFollowedAuthorIDs(ctx, actingUserID, authorIDs)
		if err != nil {
			return nil, err
		}
	}

	responses := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		res := domain.RecipeResponse{
			ID:               r.ID.String(),
			Name:             r.Name,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			ImageURL:         r.ImageURL,
			IsFavorited:      favorites[r.ID],
			IsInShoppingCart: carts[r.ID],
			CreatedAt:        r.CreatedAt,
		}

		if r.Author != nil {
			res.Author = user.ProfileToResponse(r.Author, followed[r.AuthorID])
		}

		res.Tags = make([]domain.TagResponse, 0, len(r.Tags))
		for _, tag := range r.Tags {
			res.Tags = append(res.Tags, catalog.TagToResponse(tag))
		}

		res.Ingredients = make([]domain.RecipeIngredientRead, 0, len(r.Ingredients))
		for _, row := range r.Ingredients {
			read := domain.RecipeIngredientRead{
				ID:     row.IngredientID.String(),
				Amount: row.Amount,
			}
			if row.Ingredient != nil {
				read.Name = row.Ingredient.Name
				read.MeasurementUnit = row.Ingredient.MeasurementUnit
			}
			res.Ingredients = append(res.Ingredients, read)
		}

		responses = append(responses, res)
	}
	return responses, nil
}

func previewOf(recipe *entities.Recipe) domain.RecipePreview {
	return domain.RecipePreview{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}
