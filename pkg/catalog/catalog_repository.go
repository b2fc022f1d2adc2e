package catalog

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CatalogRepository interface {
		GetTags(ctx context.Context) ([]*entities.Tag, error)
		GetTagByID(ctx context.Context, id string) (*entities.Tag, error)
		GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error)
		GetOrCreateTag(ctx context.Context, name, color, slug string) (*entities.Tag, bool, error)

		GetIngredients(ctx context.Context, filter domain.IngredientFilter) ([]*entities.Ingredient, error)
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error)
		GetOrCreateIngredient(ctx context.Context, name, unit string) (*entities.Ingredient, bool, error)
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetTags(ctx context.Context) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *catalogRepository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *catalogRepository) GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *catalogRepository) GetOrCreateTag(ctx context.Context, name, color, slug string) (*entities.Tag, bool, error) {
	var tag entities.Tag
	res := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Attrs(entities.Tag{ID: uuid.New(), Name: name, Color: color, Slug: slug}).
		FirstOrCreate(&tag)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &tag, res.RowsAffected > 0, nil
}

func (r *catalogRepository) GetIngredients(ctx context.Context, filter domain.IngredientFilter) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient

	query := r.db.WithContext(ctx).Model(&entities.Ingredient{})
	if filter.Name != "" {
		// case-insensitive prefix match
		query = query.Where("name ILIKE ?", filter.Name+"%")
	}

	if err := query.Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *catalogRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *catalogRepository) GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *catalogRepository) GetOrCreateIngredient(ctx context.Context, name, unit string) (*entities.Ingredient, bool, error) {
	var ingredient entities.Ingredient
	res := r.db.WithContext(ctx).
		Where("name = ? AND measurement_unit = ?", name, unit).
		Attrs(entities.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}).
		FirstOrCreate(&ingredient)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &ingredient, res.RowsAffected > 0, nil
}
